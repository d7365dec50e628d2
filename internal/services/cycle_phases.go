package services

type CyclePhase string

const (
	PhasePeriod     CyclePhase = "period"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulation  CyclePhase = "ovulation"
	PhaseLuteal     CyclePhase = "luteal"
	PhaseUnknown    CyclePhase = "unknown"
)

var phaseLabels = map[CyclePhase]string{
	PhasePeriod:     "Period",
	PhaseFollicular: "Follicular phase",
	PhaseOvulation:  "Ovulation",
	PhaseLuteal:     "Luteal phase",
	PhaseUnknown:    "Unknown",
}

func PhaseLabel(phase CyclePhase) string {
	if label, ok := phaseLabels[phase]; ok {
		return label
	}
	return phaseLabels[PhaseUnknown]
}

// PhaseRange is a 1-based inclusive day span of the canonical cycle. StartDay may exceed
// EndDay for short cycles or long periods; such a range matches no day.
type PhaseRange struct {
	Phase    CyclePhase `json:"phase"`
	StartDay int        `json:"start_day"`
	EndDay   int        `json:"end_day"`
	Label    string     `json:"label"`
}

func (r PhaseRange) Contains(day int) bool {
	return day >= r.StartDay && day <= r.EndDay
}

func (r PhaseRange) IsEmpty() bool {
	return r.StartDay > r.EndDay
}

// CycleModel holds the heuristic constants of the prediction model.
type CycleModel struct {
	// AverageWindow is how many trailing complete cycles feed the moving average.
	AverageWindow int
	// LutealPhaseDays places ovulation this many days before the next period.
	LutealPhaseDays int
	// StaleGraceDays is how far past the average length a cycle day is still trusted.
	StaleGraceDays int
}

func DefaultCycleModel() CycleModel {
	return CycleModel{
		AverageWindow:   3,
		LutealPhaseDays: 14,
		StaleGraceDays:  14,
	}
}

// OvulationDay estimates ovulation LutealPhaseDays before the next period, never earlier
// than the day after the period ends.
func (model CycleModel) OvulationDay(averageCycleLength int, periodLength int) int {
	return max(periodLength+1, averageCycleLength-model.LutealPhaseDays)
}

func (model CycleModel) BuildPhaseRanges(averageCycleLength int, periodLength int) []PhaseRange {
	ovulationDay := model.OvulationDay(averageCycleLength, periodLength)
	return []PhaseRange{
		newPhaseRange(PhasePeriod, 1, periodLength),
		newPhaseRange(PhaseFollicular, periodLength+1, ovulationDay-2),
		newPhaseRange(PhaseOvulation, ovulationDay-1, ovulationDay+1),
		newPhaseRange(PhaseLuteal, ovulationDay+2, averageCycleLength),
	}
}

// BuildPhaseRanges partitions 1..averageCycleLength with the default model. Degenerate
// inputs produce inverted ranges, which are returned unclamped.
func BuildPhaseRanges(averageCycleLength int, periodLength int) []PhaseRange {
	return DefaultCycleModel().BuildPhaseRanges(averageCycleLength, periodLength)
}

// GetCyclePhase returns the first non-empty range containing currentDay, in slice order.
// Inverted ranges from degenerate settings never match.
func GetCyclePhase(currentDay int, phases []PhaseRange) CyclePhase {
	if currentDay <= 0 {
		return PhaseUnknown
	}
	for _, phase := range phases {
		if phase.IsEmpty() {
			continue
		}
		if phase.Contains(currentDay) {
			return phase.Phase
		}
	}
	return PhaseUnknown
}

func newPhaseRange(phase CyclePhase, startDay int, endDay int) PhaseRange {
	return PhaseRange{
		Phase:    phase,
		StartDay: startDay,
		EndDay:   endDay,
		Label:    PhaseLabel(phase),
	}
}
