package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
)

const (
	BackupFormatVersion = 1
	AppVersion          = "1.0.0"
)

var (
	ErrInvalidBackup      = errors.New("invalid backup format")
	ErrBackupExportFailed = errors.New("export backup failed")
	ErrBackupImportFailed = errors.New("import backup failed")
	ErrResetDataFailed    = errors.New("reset data failed")
)

type BackupStore interface {
	ReplaceAll(settings []models.Setting, logs []models.DailyLog, symptoms []models.CustomSymptom) error
	ClearAll() error
}

type BackupSetting struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type BackupDailyLog struct {
	Date            string   `json:"date"`
	FlowLevel       string   `json:"flowLevel"`
	SymptomsDefault []string `json:"symptomsDefault"`
	SymptomsCustom  []string `json:"symptomsCustom"`
	Mood            string   `json:"mood"`
	Note            string   `json:"note"`
}

type BackupCustomSymptom struct {
	ID        uint   `json:"id,omitempty"`
	Label     string `json:"label"`
	CreatedAt string `json:"createdAt"`
}

type BackupDocument struct {
	Version        int                   `json:"version"`
	AppVersion     string                `json:"appVersion"`
	ExportedAt     string                `json:"exportedAt"`
	Settings       []BackupSetting       `json:"settings"`
	DailyLogs      []BackupDailyLog      `json:"dailyLogs"`
	CustomSymptoms []BackupCustomSymptom `json:"customSymptoms"`
}

type ImportSummary struct {
	Settings       int `json:"settings"`
	DailyLogs      int `json:"daily_logs"`
	CustomSymptoms int `json:"custom_symptoms"`
}

type BackupService struct {
	logs     DayLogRepository
	settings SettingsRepository
	symptoms SymptomRepository
	store    BackupStore
}

func NewBackupService(logs DayLogRepository, settings SettingsRepository, symptoms SymptomRepository, store BackupStore) *BackupService {
	return &BackupService{
		logs:     logs,
		settings: settings,
		symptoms: symptoms,
		store:    store,
	}
}

func BackupFileName(now time.Time) string {
	return fmt.Sprintf("lunamia-backup-%s.json", now.UTC().Format(models.DateLayout))
}

func (service *BackupService) Export(now time.Time) (BackupDocument, error) {
	settings, err := service.settings.ListAll()
	if err != nil {
		return BackupDocument{}, fmt.Errorf("%w: %v", ErrBackupExportFailed, err)
	}
	logs, err := service.logs.ListAll()
	if err != nil {
		return BackupDocument{}, fmt.Errorf("%w: %v", ErrBackupExportFailed, err)
	}
	symptoms, err := service.symptoms.List()
	if err != nil {
		return BackupDocument{}, fmt.Errorf("%w: %v", ErrBackupExportFailed, err)
	}

	document := BackupDocument{
		Version:        BackupFormatVersion,
		AppVersion:     AppVersion,
		ExportedAt:     now.UTC().Format(time.RFC3339),
		Settings:       make([]BackupSetting, 0, len(settings)),
		DailyLogs:      make([]BackupDailyLog, 0, len(logs)),
		CustomSymptoms: make([]BackupCustomSymptom, 0, len(symptoms)),
	}
	for _, setting := range settings {
		document.Settings = append(document.Settings, BackupSetting{
			Key:   setting.Key,
			Value: exportSettingValue(setting.Value),
		})
	}
	for _, entry := range logs {
		document.DailyLogs = append(document.DailyLogs, BackupDailyLog{
			Date:            entry.Date,
			FlowLevel:       entry.FlowLevel,
			SymptomsDefault: nonNilStrings(entry.SymptomsDefault),
			SymptomsCustom:  nonNilStrings(entry.SymptomsCustom),
			Mood:            entry.Mood,
			Note:            entry.Note,
		})
	}
	for _, symptom := range symptoms {
		document.CustomSymptoms = append(document.CustomSymptoms, BackupCustomSymptom{
			ID:        symptom.ID,
			Label:     symptom.Label,
			CreatedAt: symptom.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return document, nil
}

// ParseBackup decodes a backup file. The version must be at least 1 and both
// dailyLogs and settings must be present as arrays.
func ParseBackup(content []byte) (BackupDocument, error) {
	var raw struct {
		Version        *int                  `json:"version"`
		AppVersion     string                `json:"appVersion"`
		ExportedAt     string                `json:"exportedAt"`
		Settings       json.RawMessage       `json:"settings"`
		DailyLogs      json.RawMessage       `json:"dailyLogs"`
		CustomSymptoms []BackupCustomSymptom `json:"customSymptoms"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		return BackupDocument{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if raw.Version == nil || *raw.Version < 1 {
		return BackupDocument{}, fmt.Errorf("%w: missing version", ErrInvalidBackup)
	}
	if !isJSONArray(raw.Settings) || !isJSONArray(raw.DailyLogs) {
		return BackupDocument{}, fmt.Errorf("%w: settings and dailyLogs must be arrays", ErrInvalidBackup)
	}

	document := BackupDocument{
		Version:        *raw.Version,
		AppVersion:     raw.AppVersion,
		ExportedAt:     raw.ExportedAt,
		CustomSymptoms: raw.CustomSymptoms,
	}
	if err := json.Unmarshal(raw.Settings, &document.Settings); err != nil {
		return BackupDocument{}, fmt.Errorf("%w: settings: %v", ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(raw.DailyLogs, &document.DailyLogs); err != nil {
		return BackupDocument{}, fmt.Errorf("%w: dailyLogs: %v", ErrInvalidBackup, err)
	}
	return document, nil
}

// Import replaces every stored log, setting and custom symptom with the document
// contents in a single transaction. Later duplicates of a date win; duplicate symptom
// labels keep the first occurrence.
func (service *BackupService) Import(document BackupDocument, now time.Time) (ImportSummary, error) {
	settings, err := backupSettingsToModels(document.Settings)
	if err != nil {
		return ImportSummary{}, err
	}
	logs, err := backupLogsToModels(document.DailyLogs)
	if err != nil {
		return ImportSummary{}, err
	}
	symptoms, err := backupSymptomsToModels(document.CustomSymptoms, now)
	if err != nil {
		return ImportSummary{}, err
	}

	if err := service.store.ReplaceAll(settings, logs, symptoms); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrBackupImportFailed, err)
	}
	return ImportSummary{
		Settings:       len(settings),
		DailyLogs:      len(logs),
		CustomSymptoms: len(symptoms),
	}, nil
}

func (service *BackupService) Reset() error {
	if err := service.store.ClearAll(); err != nil {
		return fmt.Errorf("%w: %v", ErrResetDataFailed, err)
	}
	return nil
}

func backupSettingsToModels(values []BackupSetting) ([]models.Setting, error) {
	byKey := make(map[string]string, len(values))
	for index, value := range values {
		key := strings.TrimSpace(value.Key)
		if key == "" {
			return nil, fmt.Errorf("%w: settings[%d] has no key", ErrInvalidBackup, index)
		}
		stored, ok := importSettingValue(value.Value)
		if !ok {
			return nil, fmt.Errorf("%w: settings[%d] value must be a number or a string", ErrInvalidBackup, index)
		}
		byKey[key] = stored
	}

	result := make([]models.Setting, 0, len(byKey))
	for key, value := range byKey {
		result = append(result, models.Setting{Key: key, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result, nil
}

func backupLogsToModels(values []BackupDailyLog) ([]models.DailyLog, error) {
	byDate := make(map[string]models.DailyLog, len(values))
	for index, value := range values {
		date, err := ParseDayDate(value.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: dailyLogs[%d] date %q", ErrInvalidBackup, index, value.Date)
		}
		input, err := NormalizeDayEntryInput(DayEntryInput{
			FlowLevel:       value.FlowLevel,
			SymptomsDefault: value.SymptomsDefault,
			SymptomsCustom:  value.SymptomsCustom,
			Mood:            value.Mood,
			Note:            value.Note,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: dailyLogs[%d]: %v", ErrInvalidBackup, index, err)
		}
		byDate[date] = models.DailyLog{
			Date:            date,
			FlowLevel:       input.FlowLevel,
			SymptomsDefault: input.SymptomsDefault,
			SymptomsCustom:  input.SymptomsCustom,
			Mood:            input.Mood,
			Note:            input.Note,
		}
	}

	result := make([]models.DailyLog, 0, len(byDate))
	for _, entry := range byDate {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func backupSymptomsToModels(values []BackupCustomSymptom, now time.Time) ([]models.CustomSymptom, error) {
	result := make([]models.CustomSymptom, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for index, value := range values {
		label, err := NormalizeSymptomLabel(value.Label)
		if err != nil {
			return nil, fmt.Errorf("%w: customSymptoms[%d] label", ErrInvalidBackup, index)
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}

		createdAt, err := time.Parse(time.RFC3339, strings.TrimSpace(value.CreatedAt))
		if err != nil {
			createdAt = now
		}
		result = append(result, models.CustomSymptom{Label: label, CreatedAt: createdAt.UTC()})
	}
	return result, nil
}

func importSettingValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return "", false
		}
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

// exportSettingValue writes integers back as JSON numbers so backups round-trip with
// files produced by earlier versions.
func exportSettingValue(value string) any {
	if number, err := strconv.Atoi(value); err == nil {
		return number
	}
	return value
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
