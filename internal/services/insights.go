package services

import (
	"slices"
	"time"
)

const (
	InsightPeriodNow      = "period-now"
	InsightPeriodSoon     = "period-soon"
	InsightPeriodLate     = "period-late"
	InsightOvulationNow   = "ovulation-now"
	InsightOvulationSoon  = "ovulation-soon"
	InsightLutealInfo     = "luteal-info"
	InsightFollicularInfo = "follicular-info"
	InsightRegularity     = "regularity"
	InsightIrregularity   = "irregularity"
)

type Insight struct {
	Key    string         `json:"key"`
	Params map[string]int `json:"params,omitempty"`
}

// BuildInsights derives dashboard hints from a stats snapshot. It needs a known cycle day
// and next period date; otherwise it returns an empty list.
func BuildInsights(stats CycleStats, today time.Time) []Insight {
	insights := make([]Insight, 0)
	if stats.CurrentDay == nil || stats.NextPeriodDate == nil {
		return insights
	}
	nextPeriod, ok := parseCalendarDay(*stats.NextPeriodDate)
	if !ok {
		return insights
	}

	currentDay := *stats.CurrentDay
	daysUntilPeriod := calendarDaysBetween(CalendarDate(today), nextPeriod)
	daysUntilOvulation := stats.OvulationDay - currentDay

	switch {
	case stats.Phase == PhasePeriod:
		insights = append(insights, Insight{Key: InsightPeriodNow, Params: map[string]int{"day": currentDay}})
	case daysUntilPeriod >= 0 && daysUntilPeriod <= 3:
		insights = append(insights, Insight{Key: InsightPeriodSoon, Params: map[string]int{"days": daysUntilPeriod}})
	case daysUntilPeriod < 0 && daysUntilPeriod >= -7:
		insights = append(insights, Insight{Key: InsightPeriodLate, Params: map[string]int{"days": -daysUntilPeriod}})
	}

	switch {
	case stats.Phase == PhaseOvulation:
		insights = append(insights, Insight{Key: InsightOvulationNow})
	case daysUntilOvulation > 0 && daysUntilOvulation <= 3:
		insights = append(insights, Insight{Key: InsightOvulationSoon, Params: map[string]int{
			"days":          daysUntilOvulation,
			"ovulation_day": stats.OvulationDay,
		}})
	}

	if stats.Phase == PhaseLuteal && daysUntilPeriod > 3 && daysUntilPeriod <= 10 {
		insights = append(insights, Insight{Key: InsightLutealInfo})
	}
	if stats.Phase == PhaseFollicular {
		insights = append(insights, Insight{Key: InsightFollicularInfo})
	}

	if regularity, ok := cycleRegularityInsight(stats.Cycles); ok {
		insights = append(insights, regularity)
	}
	return insights
}

func cycleRegularityInsight(cycles []CycleInterval) (Insight, bool) {
	lengths := completeCycleLengths(cycles)
	if len(lengths) < 3 {
		return Insight{}, false
	}
	if len(lengths) > 6 {
		lengths = lengths[len(lengths)-6:]
	}

	shortest := slices.Min(lengths)
	longest := slices.Max(lengths)
	params := map[string]int{"min": shortest, "max": longest, "variation": longest - shortest}
	switch {
	case longest-shortest <= 3:
		return Insight{Key: InsightRegularity, Params: params}, true
	case longest-shortest >= 8:
		return Insight{Key: InsightIrregularity, Params: params}, true
	default:
		return Insight{}, false
	}
}
