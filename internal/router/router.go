package router

import (
	"psa-proofing-web/internal/config"
	"psa-proofing-web/internal/handler"
	"psa-proofing-web/internal/service"
	"psa-proofing-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, cfg *config.Config) {
	processor := service.NewProcessor(cfg)
	exporter := service.NewExportService()
	processHandler := handler.NewProcessHandler(processor, exporter, cfg)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return utils.SuccessResponse(c, "ok", fiber.Map{
			"app": cfg.AppName,
		})
	})

	// Upload page
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title": "PSA Proofing",
		})
	})

	// Processing
	app.Post("/view-report", processHandler.ViewReport)
	app.Post("/process", processHandler.Process)
}
