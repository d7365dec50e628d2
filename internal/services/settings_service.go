package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/lunamia/internal/models"
)

const (
	MinCycleLength  = 20
	MaxCycleLength  = 45
	MinPeriodLength = 1
	MaxPeriodLength = 10
)

var (
	ErrInvalidCycleLength  = errors.New("invalid cycle length")
	ErrInvalidPeriodLength = errors.New("invalid period length")
	ErrSettingsLoadFailed  = errors.New("load settings failed")
	ErrSettingsSaveFailed  = errors.New("save settings failed")
)

type SettingsRepository interface {
	ListAll() ([]models.Setting, error)
	PutMany(settings []models.Setting) error
}

type CycleSettings struct {
	CycleLength  int `json:"cycle_length"`
	PeriodLength int `json:"period_length"`
}

func DefaultCycleSettings() CycleSettings {
	return CycleSettings{
		CycleLength:  models.DefaultCycleLength,
		PeriodLength: models.DefaultPeriodLength,
	}
}

func (settings CycleSettings) Validate() error {
	if settings.CycleLength < MinCycleLength || settings.CycleLength > MaxCycleLength {
		return ErrInvalidCycleLength
	}
	if settings.PeriodLength < MinPeriodLength || settings.PeriodLength > MaxPeriodLength {
		return ErrInvalidPeriodLength
	}
	return nil
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) LoadCycleSettings() (CycleSettings, error) {
	stored, err := service.settings.ListAll()
	if err != nil {
		return DefaultCycleSettings(), fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	return ResolveCycleSettings(stored), nil
}

func (service *SettingsService) SaveCycleSettings(settings CycleSettings) (CycleSettings, error) {
	if err := settings.Validate(); err != nil {
		return CycleSettings{}, err
	}
	if err := service.settings.PutMany(cycleSettingsRows(settings)); err != nil {
		return CycleSettings{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return settings, nil
}

// ResolveCycleSettings reads the stored key/value rows. Missing, non-numeric or
// out-of-range values fall back to the defaults individually.
func ResolveCycleSettings(stored []models.Setting) CycleSettings {
	resolved := DefaultCycleSettings()
	for _, setting := range stored {
		value, err := strconv.Atoi(strings.TrimSpace(setting.Value))
		if err != nil {
			continue
		}
		switch setting.Key {
		case models.SettingCycleLength:
			if value >= MinCycleLength && value <= MaxCycleLength {
				resolved.CycleLength = value
			}
		case models.SettingPeriodLength:
			if value >= MinPeriodLength && value <= MaxPeriodLength {
				resolved.PeriodLength = value
			}
		}
	}
	return resolved
}

func cycleSettingsRows(settings CycleSettings) []models.Setting {
	return []models.Setting{
		{Key: models.SettingCycleLength, Value: strconv.Itoa(settings.CycleLength)},
		{Key: models.SettingPeriodLength, Value: strconv.Itoa(settings.PeriodLength)},
	}
}
