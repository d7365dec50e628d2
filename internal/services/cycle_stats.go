package services

import (
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
)

type CycleStats struct {
	CurrentDay         *int            `json:"current_day"`
	Phase              CyclePhase      `json:"phase"`
	PhaseLabel         string          `json:"phase_label"`
	NextPeriodDate     *string         `json:"next_period_date"`
	AverageCycleLength int             `json:"average_cycle_length"`
	PeriodLength       int             `json:"period_length"`
	OvulationDay       int             `json:"ovulation_day"`
	Cycles             []CycleInterval `json:"cycles"`
	Phases             []PhaseRange    `json:"phases"`
}

// ComputeCycleStats builds the prediction snapshot as of today with the default model.
func ComputeCycleStats(logs []models.DailyLog, cycleLength int, periodLength int, today time.Time) CycleStats {
	return DefaultCycleModel().ComputeCycleStats(logs, cycleLength, periodLength, today)
}

// ComputeCycleStats is pure: the same logs, settings and calendar date always produce the
// same snapshot. Only the calendar date of today, in its own location, is used.
func (model CycleModel) ComputeCycleStats(logs []models.DailyLog, cycleLength int, periodLength int, today time.Time) CycleStats {
	periodStarts := DetectPeriodStarts(logs)
	cycles := BuildCycles(periodStarts)
	averageLength := AverageCycleLength(cycles, model.AverageWindow, cycleLength)

	stats := CycleStats{
		Phase:              PhaseUnknown,
		AverageCycleLength: averageLength,
		PeriodLength:       periodLength,
		OvulationDay:       model.OvulationDay(averageLength, periodLength),
		Cycles:             cycles,
		Phases:             model.BuildPhaseRanges(averageLength, periodLength),
	}

	if len(periodStarts) > 0 {
		lastStart, _ := parseCalendarDay(periodStarts[len(periodStarts)-1])

		currentDay := calendarDaysBetween(lastStart, CalendarDate(today)) + 1
		if currentDay <= averageLength+model.StaleGraceDays {
			stats.CurrentDay = &currentDay
			stats.Phase = GetCyclePhase(currentDay, stats.Phases)
		}

		nextPeriodDate := lastStart.AddDate(0, 0, averageLength).Format(models.DateLayout)
		stats.NextPeriodDate = &nextPeriodDate
	}

	stats.PhaseLabel = PhaseLabel(stats.Phase)
	return stats
}
