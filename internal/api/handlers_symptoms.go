package api

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunamia/internal/services"
)

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	catalog, err := handler.symptomService.Catalog()
	if err != nil {
		log.Printf("[symptoms] list: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptoms")
	}
	return c.JSON(catalog)
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	input := symptomInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	symptom, created, err := handler.symptomService.AddCustomSymptom(input.Label)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSymptomLabel) {
			return apiError(c, fiber.StatusBadRequest, "invalid symptom label")
		}
		log.Printf("[symptoms] create: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create symptom")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(symptom)
}

func (handler *Handler) DeleteSymptom(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom id")
	}

	if err := handler.symptomService.RemoveCustomSymptom(uint(id)); err != nil {
		if errors.Is(err, services.ErrSymptomNotFound) {
			return apiError(c, fiber.StatusNotFound, "symptom not found")
		}
		log.Printf("[symptoms] delete %d: %v", id, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to delete symptom")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
