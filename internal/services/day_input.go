package services

import (
	"errors"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/terraincognita07/lunamia/internal/models"
)

const MaxDayNoteLength = 2000

var (
	ErrInvalidDayDate = errors.New("invalid day date")
	ErrInvalidDayFlow = errors.New("invalid day flow")
	ErrInvalidDayMood = errors.New("invalid day mood")
)

var noteSanitizer = bluemonday.StrictPolicy()

type DayEntryInput struct {
	FlowLevel       string   `json:"flow_level"`
	SymptomsDefault []string `json:"symptoms_default"`
	SymptomsCustom  []string `json:"symptoms_custom"`
	Mood            string   `json:"mood"`
	Note            string   `json:"note"`
}

// ParseDayDate accepts only canonical YYYY-MM-DD keys and returns them unchanged.
func ParseDayDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.ParseInLocation(models.DateLayout, value, time.UTC)
	if err != nil || parsed.Format(models.DateLayout) != value {
		return "", ErrInvalidDayDate
	}
	return value, nil
}

func NormalizeDayEntryInput(input DayEntryInput) (DayEntryInput, error) {
	input.FlowLevel = strings.ToLower(strings.TrimSpace(input.FlowLevel))
	if input.FlowLevel == "" {
		input.FlowLevel = models.FlowNone
	}
	if !models.IsValidFlowLevel(input.FlowLevel) {
		return input, ErrInvalidDayFlow
	}

	input.Mood = strings.ToLower(strings.TrimSpace(input.Mood))
	if !models.IsValidMood(input.Mood) {
		return input, ErrInvalidDayMood
	}

	input.Note = SanitizeDayNote(input.Note)
	input.SymptomsDefault = normalizeSymptomList(input.SymptomsDefault)
	input.SymptomsCustom = normalizeSymptomList(input.SymptomsCustom)
	return input, nil
}

// SanitizeDayNote strips markup, trims and caps the note length in runes.
func SanitizeDayNote(value string) string {
	cleaned := strings.TrimSpace(html.UnescapeString(noteSanitizer.Sanitize(value)))
	runes := []rune(cleaned)
	if len(runes) <= MaxDayNoteLength {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:MaxDayNoteLength]))
}

func normalizeSymptomList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
