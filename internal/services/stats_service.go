package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
)

type StatsDayReader interface {
	FetchAllLogs() ([]models.DailyLog, error)
}

type StatsSettingsReader interface {
	LoadCycleSettings() (CycleSettings, error)
}

// MessageCatalog renders a localized message with named integer placeholders.
type MessageCatalog interface {
	Translate(language string, key string) string
	Format(language string, key string, params map[string]int) string
}

type InsightCard struct {
	Key     string         `json:"key"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Params  map[string]int `json:"params,omitempty"`
}

type StatsService struct {
	days     StatsDayReader
	settings StatsSettingsReader
	model    CycleModel
}

func NewStatsService(days StatsDayReader, settings StatsSettingsReader) *StatsService {
	return &StatsService{
		days:     days,
		settings: settings,
		model:    DefaultCycleModel(),
	}
}

func (service *StatsService) load() ([]models.DailyLog, CycleSettings, error) {
	logs, err := service.days.FetchAllLogs()
	if err != nil {
		return nil, CycleSettings{}, fmt.Errorf("load logs: %w", err)
	}
	settings, err := service.settings.LoadCycleSettings()
	if err != nil {
		return nil, CycleSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return logs, settings, nil
}

func (service *StatsService) BuildCycleStats(today time.Time) (CycleStats, error) {
	logs, settings, err := service.load()
	if err != nil {
		return CycleStats{}, err
	}
	return service.model.ComputeCycleStats(logs, settings.CycleLength, settings.PeriodLength, today), nil
}

func (service *StatsService) BuildInsights(today time.Time) (CycleStats, []Insight, error) {
	stats, err := service.BuildCycleStats(today)
	if err != nil {
		return CycleStats{}, nil, err
	}
	return stats, BuildInsights(stats, today), nil
}

func (service *StatsService) BuildSummary() (LogSummary, error) {
	logs, err := service.days.FetchAllLogs()
	if err != nil {
		return LogSummary{}, fmt.Errorf("load logs: %w", err)
	}
	return BuildLogSummary(logs, BuildCycles(DetectPeriodStarts(logs))), nil
}

// LocalizeCycleStats replaces the built-in phase labels with catalog translations.
func LocalizeCycleStats(stats CycleStats, catalog MessageCatalog, language string) CycleStats {
	stats.PhaseLabel = catalog.Translate(language, PhaseMessageKey(stats.Phase))
	phases := make([]PhaseRange, len(stats.Phases))
	for index, phase := range stats.Phases {
		phase.Label = catalog.Translate(language, PhaseMessageKey(phase.Phase))
		phases[index] = phase
	}
	stats.Phases = phases
	return stats
}

func RenderInsights(insights []Insight, catalog MessageCatalog, language string) []InsightCard {
	cards := make([]InsightCard, 0, len(insights))
	for _, insight := range insights {
		cards = append(cards, InsightCard{
			Key:     insight.Key,
			Title:   catalog.Format(language, "insight."+insight.Key+".title", insight.Params),
			Message: catalog.Format(language, "insight."+insight.Key+".message", insight.Params),
			Params:  insight.Params,
		})
	}
	return cards
}

func PhaseMessageKey(phase CyclePhase) string {
	return "phase." + string(phase)
}
