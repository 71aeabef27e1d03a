package service

import (
	"errors"
	"fmt"
	"time"

	"psa-proofing-web/internal/config"
	"psa-proofing-web/internal/models"
	"psa-proofing-web/internal/psa"
	"psa-proofing-web/internal/utils"
	"psa-proofing-web/internal/validation"
)

var (
	ErrNoProductRows     = errors.New("no Product rows found in PSA file")
	ErrNoPlanogramRows   = errors.New("no Planogram rows found in PSA file")
	ErrNoFixtureRows     = errors.New("no Fixture rows found in PSA file")
	ErrFixtureFieldCount = errors.New("fixture extraction aborted")
)

// Processor runs the three table pipelines (tokenize, map, validate)
// over one PSA payload. The pipelines are independent: a terminal
// extraction failure in one table surfaces as an empty TableResult
// for that table and never aborts the others.
type Processor struct {
	productSchema  psa.ProductSchema
	fixtureSchema  psa.FixtureSchema
	fixtureRules   validation.FixtureRules
	referenceSheet string

	// now anchors the planogram effective-date rule so a run is
	// reproducible under test.
	now func() time.Time
}

func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{
		productSchema:  psa.DefaultProductSchema(),
		fixtureSchema:  psa.DefaultFixtureSchema(),
		fixtureRules:   validation.DefaultFixtureRules(),
		referenceSheet: cfg.ReferenceSheet,
		now:            time.Now,
	}
}

// Process executes one full run. refData may be empty, in which case
// reference-backed checks are skipped.
func (p *Processor) Process(psaData, refData []byte) *models.ProcessResult {
	log := utils.GetLogger()

	var ref *validation.Reference
	if len(refData) > 0 {
		ref = validation.LoadReference(refData, p.referenceSheet)
		if ref.Err != nil {
			log.WithError(ref.Err).Warn("Reference workbook could not be read; reference checks will warn")
		}
	}

	result := &models.ProcessResult{
		Product:   p.tableResult(p.extractProduct(psaData, ref)),
		Planogram: p.tableResult(p.extractPlanogram(psaData, ref)),
		Fixture:   p.tableResult(p.extractFixture(psaData)),
	}
	p.combine(result)

	log.WithFields(map[string]interface{}{
		"product_rows":   result.Product.Table.RowCount(),
		"planogram_rows": result.Planogram.Table.RowCount(),
		"fixture_rows":   result.Fixture.Table.RowCount(),
		"overall_status": result.Combined.OverallStatus,
		"total_errors":   result.Combined.TotalErrors,
	}).Info("PSA processing complete")

	return result
}

func (p *Processor) tableResult(t *models.Table, checks []models.CheckResult, err error) models.TableResult {
	if err != nil {
		utils.GetLogger().WithError(err).Warn("Table extraction failed")
		return models.TableResult{Err: err.Error()}
	}
	return models.TableResult{
		Table:   t,
		Checks:  checks,
		Summary: models.Summarize(checks),
	}
}

func (p *Processor) extractProduct(data []byte, ref *validation.Reference) (*models.Table, []models.CheckResult, error) {
	rows := psa.ProductRows(data)
	if len(rows) == 0 {
		return nil, nil, ErrNoProductRows
	}
	table := psa.MapProductTable(rows, p.productSchema)
	checks := validation.RunChecks(validation.ProductChecks(), table, ref)
	return table, checks, nil
}

func (p *Processor) extractPlanogram(data []byte, ref *validation.Reference) (*models.Table, []models.CheckResult, error) {
	rows := psa.PlanogramRows(data)
	if len(rows) == 0 {
		return nil, nil, ErrNoPlanogramRows
	}
	table := psa.MapPlanogramTable(rows, p.now())
	checks := validation.RunChecks(validation.PlanogramChecks(), table, ref)
	return table, checks, nil
}

func (p *Processor) extractFixture(data []byte) (*models.Table, []models.CheckResult, error) {
	rows := psa.FixtureRows(data)
	if len(rows) == 0 {
		return nil, nil, ErrNoFixtureRows
	}

	gate := p.fixtureRules.FieldCountCheck(rows)
	if gate.Status != models.StatusPass {
		return nil, nil, fmt.Errorf("%w: %s", ErrFixtureFieldCount, gate.Message)
	}

	table := psa.MapFixtureTable(rows, p.fixtureSchema)
	checks := append([]models.CheckResult{gate}, validation.RunChecks(validation.FixtureChecks(p.fixtureRules), table, nil)...)
	return table, checks, nil
}

// combine folds the three per-table runs into the cross-table view.
// Check names are prefixed with their table kind so the flat list
// stays unambiguous.
func (p *Processor) combine(result *models.ProcessResult) {
	parts := []struct {
		kind string
		tr   *models.TableResult
	}{
		{"Product", &result.Product},
		{"Planogram", &result.Planogram},
		{"Fixture", &result.Fixture},
	}

	combined := models.CombinedSummary{OverallStatus: models.StatusPass}
	for _, part := range parts {
		combined.TotalChecks += part.tr.Summary.TotalChecks
		combined.Passed += part.tr.Summary.Passed
		combined.Failed += part.tr.Summary.Failed
		combined.Warnings += part.tr.Summary.Warnings
		combined.TotalErrors += part.tr.Summary.TotalErrors
		combined.TotalRecords += part.tr.Table.RowCount()

		for _, check := range part.tr.Checks {
			prefixed := check
			prefixed.Name = fmt.Sprintf("[%s] %s", part.kind, check.Name)
			result.AllChecks = append(result.AllChecks, prefixed)
		}
	}

	if combined.Failed > 0 {
		combined.OverallStatus = models.StatusFail
	} else if combined.Warnings > 0 {
		combined.OverallStatus = models.StatusWarning
	}
	result.Combined = combined
}
