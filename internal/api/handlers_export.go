package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func (handler *Handler) ExportBackup(c *fiber.Ctx) error {
	now := handler.now().In(handler.location)
	document, err := handler.backupService.Export(now)
	if err != nil {
		log.Printf("[backup] export: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	content, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.BackupFileName(now)))
	return c.Send(content)
}

// ImportBackup accepts the backup document as the raw JSON body or as a multipart
// upload in the "file" field.
func (handler *Handler) ImportBackup(c *fiber.Ctx) error {
	content, err := importRequestContent(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := services.ParseBackup(content)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid backup file")
	}

	summary, err := handler.backupService.Import(document, handler.now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidBackup) {
			return apiError(c, fiber.StatusBadRequest, "invalid backup file")
		}
		log.Printf("[backup] import: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to import data")
	}
	return c.JSON(summary)
}

func (handler *Handler) ResetData(c *fiber.Ctx) error {
	input := resetInput{}
	if err := c.BodyParser(&input); err != nil || !input.Confirm {
		return apiError(c, fiber.StatusBadRequest, "reset must be confirmed")
	}

	if err := handler.backupService.Reset(); err != nil {
		log.Printf("[backup] reset: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to reset data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func importRequestContent(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxImportSize {
			return nil, errors.New("backup file is too large")
		}
		reader, err := file.Open()
		if err != nil {
			return nil, errors.New("backup file is unreadable")
		}
		defer reader.Close()
		return io.ReadAll(io.LimitReader(reader, maxImportSize))
	}

	body := c.Body()
	if len(body) == 0 {
		return nil, errors.New("backup file is required")
	}
	if len(body) > maxImportSize {
		return nil, errors.New("backup file is too large")
	}
	return body, nil
}
