package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.LoadCycleSettings()
	if err != nil {
		log.Printf("[settings] load: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	input := services.CycleSettings{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	saved, err := handler.settingsService.SaveCycleSettings(input)
	switch {
	case err == nil:
		return c.JSON(saved)
	case errors.Is(err, services.ErrInvalidCycleLength):
		return apiError(c, fiber.StatusBadRequest, "cycle length must be between 20 and 45")
	case errors.Is(err, services.ErrInvalidPeriodLength):
		return apiError(c, fiber.StatusBadRequest, "period length must be between 1 and 10")
	default:
		log.Printf("[settings] save: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save settings")
	}
}
