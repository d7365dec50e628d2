package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	logs, err := handler.dayService.FetchLogsInRange(c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDayRange) {
			return apiError(c, fiber.StatusBadRequest, "invalid range")
		}
		log.Printf("[days] list: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	date, err := services.ParseDayDate(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.dayService.FetchLogByDate(date)
	if err != nil {
		log.Printf("[days] fetch %s: %v", date, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load day")
	}
	return c.JSON(entry)
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	date, err := services.ParseDayDate(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := services.DayEntryInput{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.dayService.UpsertDayEntry(date, payload)
	if err != nil {
		return upsertDayAPIError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	date, err := services.ParseDayDate(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.dayService.DeleteDay(date); err != nil {
		if errors.Is(err, services.ErrDayNotFound) {
			return apiError(c, fiber.StatusNotFound, "day not found")
		}
		log.Printf("[days] delete %s: %v", date, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to delete day")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func upsertDayAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDayFlow):
		return apiError(c, fiber.StatusBadRequest, "invalid flow level")
	case errors.Is(err, services.ErrInvalidDayMood):
		return apiError(c, fiber.StatusBadRequest, "invalid mood")
	case errors.Is(err, services.ErrInvalidDayDate):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrDayEntryLoadFailed):
		log.Printf("[days] upsert: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load day")
	case errors.Is(err, services.ErrDayEntryCreateFailed):
		log.Printf("[days] upsert: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create day")
	default:
		log.Printf("[days] upsert: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to update day")
	}
}
