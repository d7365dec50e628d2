package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today")
	}

	stats, err := handler.statsService.BuildCycleStats(today)
	if err != nil {
		log.Printf("[stats] build: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load stats")
	}
	return c.JSON(services.LocalizeCycleStats(stats, handler.i18n, currentLanguage(c)))
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today")
	}

	stats, insights, err := handler.statsService.BuildInsights(today)
	if err != nil {
		log.Printf("[stats] insights: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load insights")
	}

	language := currentLanguage(c)
	return c.JSON(fiber.Map{
		"language": language,
		"phase":    services.LocalizeCycleStats(stats, handler.i18n, language).PhaseLabel,
		"insights": services.RenderInsights(insights, handler.i18n, language),
	})
}

func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	summary, err := handler.statsService.BuildSummary()
	if err != nil {
		log.Printf("[stats] summary: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
	}
	return c.JSON(summary)
}
