package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetNotifications(c *fiber.Ctx) error {
	notifications, err := handler.reminderService.ListRecent()
	if err != nil {
		log.Printf("[reminders] list: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load notifications")
	}
	return c.JSON(notifications)
}
