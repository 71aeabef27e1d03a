package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"psa-proofing-web/internal/config"
	"psa-proofing-web/internal/models"
	"psa-proofing-web/internal/service"
	"psa-proofing-web/internal/utils"
)

type ProcessHandler struct {
	processor *service.Processor
	exporter  *service.ExportService
	cfg       *config.Config
}

func NewProcessHandler(processor *service.Processor, exporter *service.ExportService, cfg *config.Config) *ProcessHandler {
	return &ProcessHandler{
		processor: processor,
		exporter:  exporter,
		cfg:       cfg,
	}
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// readUploads pulls the PSA file and the optional reference workbook
// out of the multipart form.
func (h *ProcessHandler) readUploads(c *fiber.Ctx) ([]byte, []byte, string, error) {
	psaFile, err := c.FormFile("psa_file")
	if err != nil {
		return nil, nil, "", fmt.Errorf("PSA file is required")
	}
	if ext := strings.ToLower(filepath.Ext(psaFile.Filename)); ext != ".psa" {
		return nil, nil, "", fmt.Errorf("only PSA files (.psa) are allowed")
	}
	if psaFile.Size > int64(h.cfg.UploadMaxSize) {
		return nil, nil, "", fmt.Errorf("file size exceeds maximum limit")
	}
	psaBytes, err := readFormFile(psaFile)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read PSA file: %w", err)
	}

	var refBytes []byte
	if refFile, err := c.FormFile("excel_file"); err == nil && refFile != nil {
		if ext := strings.ToLower(filepath.Ext(refFile.Filename)); ext != ".xlsx" && ext != ".xls" {
			return nil, nil, "", fmt.Errorf("reference file must be an Excel workbook (.xlsx, .xls)")
		}
		refBytes, err = readFormFile(refFile)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to read reference file: %w", err)
		}
	}

	return psaBytes, refBytes, psaFile.Filename, nil
}

// ViewReport runs a full processing pass and renders the dashboard.
func (h *ProcessHandler) ViewReport(c *fiber.Ctx) error {
	psaBytes, refBytes, filename, err := h.readUploads(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := h.processor.Process(psaBytes, refBytes)

	return c.Render("report", fiber.Map{
		"Title":        "Validation Report",
		"Filename":     filename,
		"HasReference": len(refBytes) > 0,
		"Combined":     result.Combined,
		"Tables":       tableViews(result),
		"AllChecks":    result.AllChecks,
	})
}

// Process runs a full processing pass and streams back the export
// archive.
func (h *ProcessHandler) Process(c *fiber.Ctx) error {
	psaBytes, refBytes, _, err := h.readUploads(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := h.processor.Process(psaBytes, refBytes)

	archive, err := h.exporter.BuildArchive(result, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build export archive", err)
	}

	runID := uuid.New().String()[:8]
	archiveName := fmt.Sprintf("PSA_Export_%s.zip", runID)
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, archiveName))
	return c.Send(archive)
}

// tableView is the per-table slice of the dashboard model.
type tableView struct {
	Kind    string
	Err     string
	Rows    int
	Summary models.RunSummary
	Checks  []models.CheckResult
}

func tableViews(result *models.ProcessResult) []tableView {
	build := func(kind string, tr models.TableResult) tableView {
		return tableView{
			Kind:    kind,
			Err:     tr.Err,
			Rows:    tr.Table.RowCount(),
			Summary: tr.Summary,
			Checks:  tr.Checks,
		}
	}
	return []tableView{
		build("Product", result.Product),
		build("Planogram", result.Planogram),
		build("Fixture", result.Fixture),
	}
}
