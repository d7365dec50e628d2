package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// requestToday resolves the optional ?today= override, defaulting to the current date
// in the handler location.
func (handler *Handler) requestToday(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("today")
	if raw == "" {
		return services.CalendarDate(handler.now().In(handler.location)), nil
	}
	day, err := services.ParseDayDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation("2006-01-02", day, time.UTC)
}
