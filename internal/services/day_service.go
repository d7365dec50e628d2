package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/lunamia/internal/models"
)

var (
	ErrDayEntryLoadFailed   = errors.New("load day entry failed")
	ErrDayEntryCreateFailed = errors.New("create day entry failed")
	ErrDayEntryUpdateFailed = errors.New("update day entry failed")
	ErrDeleteDayFailed      = errors.New("delete day failed")
	ErrDayNotFound          = errors.New("day not found")
	ErrInvalidDayRange      = errors.New("invalid day range")
)

type DayLogRepository interface {
	ListAll() ([]models.DailyLog, error)
	ListRange(from string, to string) ([]models.DailyLog, error)
	FindByDate(date string) (models.DailyLog, bool, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
	DeleteByDate(date string) (bool, error)
}

type DayService struct {
	logs DayLogRepository
}

func NewDayService(logs DayLogRepository) *DayService {
	return &DayService{logs: logs}
}

func (service *DayService) FetchAllLogs() ([]models.DailyLog, error) {
	return service.logs.ListAll()
}

// FetchLogsInRange returns logs between from and to inclusive. Empty bounds are open.
func (service *DayService) FetchLogsInRange(from string, to string) ([]models.DailyLog, error) {
	if from != "" {
		parsed, err := ParseDayDate(from)
		if err != nil {
			return nil, ErrInvalidDayRange
		}
		from = parsed
	}
	if to != "" {
		parsed, err := ParseDayDate(to)
		if err != nil {
			return nil, ErrInvalidDayRange
		}
		to = parsed
	}
	if from != "" && to != "" && from > to {
		return nil, ErrInvalidDayRange
	}
	return service.logs.ListRange(from, to)
}

// FetchLogByDate returns an empty none-flow record for days that were never logged.
func (service *DayService) FetchLogByDate(date string) (models.DailyLog, error) {
	day, err := ParseDayDate(date)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry, found, err := service.logs.FindByDate(day)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayEntryLoadFailed, err)
	}
	if !found {
		return emptyDailyLog(day), nil
	}
	return entry, nil
}

func (service *DayService) UpsertDayEntry(date string, payload DayEntryInput) (models.DailyLog, error) {
	day, err := ParseDayDate(date)
	if err != nil {
		return models.DailyLog{}, err
	}
	payload, err = NormalizeDayEntryInput(payload)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry, found, err := service.logs.FindByDate(day)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayEntryLoadFailed, err)
	}

	entry.Date = day
	entry.FlowLevel = payload.FlowLevel
	entry.SymptomsDefault = payload.SymptomsDefault
	entry.SymptomsCustom = payload.SymptomsCustom
	entry.Mood = payload.Mood
	entry.Note = payload.Note

	if found {
		if err := service.logs.Save(&entry); err != nil {
			return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayEntryUpdateFailed, err)
		}
		return entry, nil
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayEntryCreateFailed, err)
	}
	return entry, nil
}

func (service *DayService) DeleteDay(date string) error {
	day, err := ParseDayDate(date)
	if err != nil {
		return err
	}

	deleted, err := service.logs.DeleteByDate(day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteDayFailed, err)
	}
	if !deleted {
		return ErrDayNotFound
	}
	return nil
}

func emptyDailyLog(date string) models.DailyLog {
	return models.DailyLog{
		Date:            date,
		FlowLevel:       models.FlowNone,
		SymptomsDefault: []string{},
		SymptomsCustom:  []string{},
	}
}
