package services

import "testing"

func TestBuildPhaseRangesDefault(t *testing.T) {
	t.Parallel()

	phases := BuildPhaseRanges(28, 5)
	want := []PhaseRange{
		{Phase: PhasePeriod, StartDay: 1, EndDay: 5},
		{Phase: PhaseFollicular, StartDay: 6, EndDay: 12},
		{Phase: PhaseOvulation, StartDay: 13, EndDay: 15},
		{Phase: PhaseLuteal, StartDay: 16, EndDay: 28},
	}
	if len(phases) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(phases))
	}
	for index := range want {
		got := phases[index]
		if got.Phase != want[index].Phase || got.StartDay != want[index].StartDay || got.EndDay != want[index].EndDay {
			t.Fatalf("phase %d = %+v, want %+v", index, got, want[index])
		}
		if got.Label != PhaseLabel(got.Phase) {
			t.Fatalf("phase %d label = %q", index, got.Label)
		}
	}
}

func TestBuildPhaseRangesPartitionCycle(t *testing.T) {
	t.Parallel()

	for cycleLength := MinCycleLength; cycleLength <= MaxCycleLength; cycleLength++ {
		for periodLength := MinPeriodLength; periodLength <= MaxPeriodLength; periodLength++ {
			if cycleLength-14 < periodLength+3 {
				continue
			}
			phases := BuildPhaseRanges(cycleLength, periodLength)
			for day := 1; day <= cycleLength; day++ {
				matches := 0
				for _, phase := range phases {
					if phase.Contains(day) {
						matches++
					}
				}
				if matches != 1 {
					t.Fatalf("L=%d P=%d day %d matched %d phases", cycleLength, periodLength, day, matches)
				}
			}
		}
	}
}

func TestBuildPhaseRangesDegenerateRangesAreEmittedUnclamped(t *testing.T) {
	t.Parallel()

	phases := BuildPhaseRanges(20, 10)
	// ovulation day is pushed to periodLength+1 when the luteal span does not fit.
	if phases[1].StartDay != 11 || phases[1].EndDay != 9 || !phases[1].IsEmpty() {
		t.Fatalf("expected inverted follicular range [11,9], got %+v", phases[1])
	}
	if phases[2].StartDay != 10 || phases[2].EndDay != 12 {
		t.Fatalf("unexpected ovulation range %+v", phases[2])
	}
	if phases[3].StartDay != 13 || phases[3].EndDay != 20 {
		t.Fatalf("unexpected luteal range %+v", phases[3])
	}

	if got := GetCyclePhase(10, phases); got != PhasePeriod {
		t.Fatalf("day 10 should resolve to the first matching range, got %q", got)
	}
	if got := GetCyclePhase(11, phases); got != PhaseOvulation {
		t.Fatalf("day 11 should skip the empty follicular range, got %q", got)
	}
}

func TestGetCyclePhaseSkipsInvertedRanges(t *testing.T) {
	t.Parallel()

	phases := []PhaseRange{
		{Phase: PhasePeriod, StartDay: 5, EndDay: 3},
		{Phase: PhaseLuteal, StartDay: 1, EndDay: 10},
	}
	for _, day := range []int{3, 4, 5} {
		if got := GetCyclePhase(day, phases); got != PhaseLuteal {
			t.Fatalf("day %d: expected inverted period range to be skipped, got %q", day, got)
		}
	}
}

func TestGetCyclePhaseIsTotal(t *testing.T) {
	t.Parallel()

	phases := BuildPhaseRanges(28, 5)
	tests := []struct {
		day  int
		want CyclePhase
	}{
		{day: -3, want: PhaseUnknown},
		{day: 0, want: PhaseUnknown},
		{day: 1, want: PhasePeriod},
		{day: 5, want: PhasePeriod},
		{day: 6, want: PhaseFollicular},
		{day: 12, want: PhaseFollicular},
		{day: 13, want: PhaseOvulation},
		{day: 15, want: PhaseOvulation},
		{day: 16, want: PhaseLuteal},
		{day: 28, want: PhaseLuteal},
		{day: 29, want: PhaseUnknown},
		{day: 400, want: PhaseUnknown},
	}
	for _, test := range tests {
		if got := GetCyclePhase(test.day, phases); got != test.want {
			t.Fatalf("GetCyclePhase(%d) = %q, want %q", test.day, got, test.want)
		}
	}

	if got := GetCyclePhase(3, nil); got != PhaseUnknown {
		t.Fatalf("expected unknown without phases, got %q", got)
	}
}

func TestCycleModelLutealPhaseIsConfigurable(t *testing.T) {
	t.Parallel()

	model := DefaultCycleModel()
	model.LutealPhaseDays = 12

	if got := model.OvulationDay(28, 5); got != 16 {
		t.Fatalf("OvulationDay() = %d, want 16", got)
	}
	phases := model.BuildPhaseRanges(28, 5)
	if phases[2].StartDay != 15 || phases[2].EndDay != 17 {
		t.Fatalf("unexpected ovulation range %+v", phases[2])
	}
}
