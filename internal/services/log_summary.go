package services

import (
	"math"
	"slices"
	"sort"

	"github.com/terraincognita07/lunamia/internal/models"
)

const topSymptomCount = 6

type SymptomFrequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type LogSummary struct {
	LoggedDays          int                `json:"logged_days"`
	FlowDays            int                `json:"flow_days"`
	CompleteCycles      int                `json:"complete_cycles"`
	MinCycleLength      *int               `json:"min_cycle_length"`
	MaxCycleLength      *int               `json:"max_cycle_length"`
	PeriodLengths       []int              `json:"period_lengths"`
	AveragePeriodLength *int               `json:"average_period_length"`
	TopSymptoms         []SymptomFrequency `json:"top_symptoms"`
	MoodDistribution    map[string]int     `json:"mood_distribution"`
}

// BuildLogSummary aggregates descriptive statistics over the whole log history.
func BuildLogSummary(logs []models.DailyLog, cycles []CycleInterval) LogSummary {
	summary := LogSummary{
		LoggedDays:       len(logs),
		PeriodLengths:    make([]int, 0),
		TopSymptoms:      make([]SymptomFrequency, 0),
		MoodDistribution: make(map[string]int),
	}

	symptomCounts := make(map[string]int)
	for _, entry := range logs {
		if entry.HasFlow() {
			summary.FlowDays++
		}
		if entry.Mood != "" {
			summary.MoodDistribution[entry.Mood]++
		}
		for _, name := range entry.SymptomsDefault {
			symptomCounts[name]++
		}
		for _, name := range entry.SymptomsCustom {
			symptomCounts[name]++
		}
	}

	lengths := completeCycleLengths(cycles)
	summary.CompleteCycles = len(lengths)
	if len(lengths) > 0 {
		shortest := slices.Min(lengths)
		longest := slices.Max(lengths)
		summary.MinCycleLength = &shortest
		summary.MaxCycleLength = &longest
	}

	summary.PeriodLengths = actualPeriodLengths(logs, cycles)
	if len(summary.PeriodLengths) > 0 {
		total := 0
		for _, length := range summary.PeriodLengths {
			total += length
		}
		average := int(math.Round(float64(total) / float64(len(summary.PeriodLengths))))
		summary.AveragePeriodLength = &average
	}

	for name, count := range symptomCounts {
		summary.TopSymptoms = append(summary.TopSymptoms, SymptomFrequency{Name: name, Count: count})
	}
	sort.Slice(summary.TopSymptoms, func(i, j int) bool {
		if summary.TopSymptoms[i].Count != summary.TopSymptoms[j].Count {
			return summary.TopSymptoms[i].Count > summary.TopSymptoms[j].Count
		}
		return summary.TopSymptoms[i].Name < summary.TopSymptoms[j].Name
	})
	if len(summary.TopSymptoms) > topSymptomCount {
		summary.TopSymptoms = summary.TopSymptoms[:topSymptomCount]
	}

	return summary
}

// actualPeriodLengths counts flow days falling inside each cycle; cycles without any are skipped.
func actualPeriodLengths(logs []models.DailyLog, cycles []CycleInterval) []int {
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		count := 0
		for _, entry := range logs {
			if !entry.HasFlow() || entry.Date < cycle.StartDate {
				continue
			}
			if cycle.EndDate != nil && entry.Date > *cycle.EndDate {
				continue
			}
			count++
		}
		if count > 0 {
			lengths = append(lengths, count)
		}
	}
	return lengths
}
