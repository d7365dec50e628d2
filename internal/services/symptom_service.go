package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/lunamia/internal/models"
)

const maxSymptomLabelLength = 64

var (
	ErrInvalidSymptomLabel = errors.New("invalid symptom label")
	ErrSymptomNotFound     = errors.New("symptom not found")
	ErrCreateSymptomFailed = errors.New("create symptom failed")
	ErrDeleteSymptomFailed = errors.New("delete symptom failed")
	ErrListSymptomsFailed  = errors.New("list symptoms failed")
)

type SymptomRepository interface {
	List() ([]models.CustomSymptom, error)
	FindByLabel(label string) (models.CustomSymptom, bool, error)
	Create(symptom *models.CustomSymptom) error
	Delete(id uint) (bool, error)
}

type SymptomCatalog struct {
	Default []string               `json:"default"`
	Custom  []models.CustomSymptom `json:"custom"`
}

type SymptomService struct {
	symptoms SymptomRepository
}

func NewSymptomService(symptoms SymptomRepository) *SymptomService {
	return &SymptomService{symptoms: symptoms}
}

func (service *SymptomService) Catalog() (SymptomCatalog, error) {
	custom, err := service.symptoms.List()
	if err != nil {
		return SymptomCatalog{}, fmt.Errorf("%w: %v", ErrListSymptomsFailed, err)
	}
	if custom == nil {
		custom = []models.CustomSymptom{}
	}
	return SymptomCatalog{
		Default: models.DefaultSymptoms(),
		Custom:  custom,
	}, nil
}

// AddCustomSymptom returns the existing entry when the label is already known. The bool
// reports whether a new row was created.
func (service *SymptomService) AddCustomSymptom(rawLabel string) (models.CustomSymptom, bool, error) {
	label, err := NormalizeSymptomLabel(rawLabel)
	if err != nil {
		return models.CustomSymptom{}, false, err
	}

	existing, found, err := service.symptoms.FindByLabel(label)
	if err != nil {
		return models.CustomSymptom{}, false, fmt.Errorf("%w: %v", ErrCreateSymptomFailed, err)
	}
	if found {
		return existing, false, nil
	}

	symptom := models.CustomSymptom{Label: label}
	if err := service.symptoms.Create(&symptom); err != nil {
		return models.CustomSymptom{}, false, fmt.Errorf("%w: %v", ErrCreateSymptomFailed, err)
	}
	return symptom, true, nil
}

func (service *SymptomService) RemoveCustomSymptom(id uint) error {
	if id == 0 {
		return ErrSymptomNotFound
	}
	deleted, err := service.symptoms.Delete(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteSymptomFailed, err)
	}
	if !deleted {
		return ErrSymptomNotFound
	}
	return nil
}

func NormalizeSymptomLabel(raw string) (string, error) {
	label := strings.Join(strings.Fields(raw), " ")
	if label == "" || utf8.RuneCountInString(label) > maxSymptomLabelLength {
		return "", ErrInvalidSymptomLabel
	}
	return label, nil
}
