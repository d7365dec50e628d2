package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
)

// CycleInterval is one menstrual cycle. EndDate and Length stay nil while the cycle is open.
type CycleInterval struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Length    *int    `json:"length"`
}

func (cycle CycleInterval) IsComplete() bool {
	return cycle.Length != nil
}

// DetectPeriodStarts returns the ascending ISO dates on which flow was logged and the
// previous calendar day had none. Unlogged days count as no flow; records with an
// unparseable date are ignored; a date with several records counts as a flow day if any
// of them has flow.
func DetectPeriodStarts(logs []models.DailyLog) []string {
	flowDays := make(map[string]time.Time, len(logs))
	for _, entry := range logs {
		if !entry.HasFlow() {
			continue
		}
		day, ok := parseCalendarDay(entry.Date)
		if !ok {
			continue
		}
		flowDays[day.Format(models.DateLayout)] = day
	}

	starts := make([]string, 0)
	for key, day := range flowDays {
		previous := day.AddDate(0, 0, -1).Format(models.DateLayout)
		if _, ok := flowDays[previous]; !ok {
			starts = append(starts, key)
		}
	}
	sort.Strings(starts)
	return starts
}

// BuildCycles pairs consecutive period starts; the last cycle is always open. Starts that
// are not ISO dates are dropped before pairing so only the last cycle can lack a length.
func BuildCycles(periodStarts []string) []CycleInterval {
	valid := make([]time.Time, 0, len(periodStarts))
	for _, start := range periodStarts {
		if day, ok := parseCalendarDay(start); ok {
			valid = append(valid, day)
		}
	}

	cycles := make([]CycleInterval, 0, len(valid))
	for index, start := range valid {
		cycle := CycleInterval{StartDate: start.Format(models.DateLayout)}
		if index+1 < len(valid) {
			next := valid[index+1]
			endDate := next.AddDate(0, 0, -1).Format(models.DateLayout)
			length := calendarDaysBetween(start, next)
			cycle.EndDate = &endDate
			cycle.Length = &length
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// AverageCycleLength averages the lengths of the last window complete cycles, rounding
// half up. It returns fallback when no cycle is complete. A non-positive window uses all.
func AverageCycleLength(cycles []CycleInterval, window int, fallback int) int {
	lengths := completeCycleLengths(cycles)
	if window > 0 && len(lengths) > window {
		lengths = lengths[len(lengths)-window:]
	}
	if len(lengths) == 0 {
		return fallback
	}

	total := 0
	for _, length := range lengths {
		total += length
	}
	return int(math.Round(float64(total) / float64(len(lengths))))
}

func completeCycleLengths(cycles []CycleInterval) []int {
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.IsComplete() {
			lengths = append(lengths, *cycle.Length)
		}
	}
	return lengths
}

func parseCalendarDay(raw string) (time.Time, bool) {
	day, err := time.ParseInLocation(models.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func calendarDaysBetween(from time.Time, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// CalendarDate reduces value to its calendar date in its own location, expressed at UTC
// midnight so that day arithmetic is free of DST shifts.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
