package models

import (
	"fmt"
	"math"
	"strconv"
)

// DaysPerWeek is the number of workouts in every plan week, rest days included.
const DaysPerWeek = 7

// Workout is one day's prescribed run. Week and Day are 0-based.
type Workout struct {
	Week           int
	Day            int
	DistanceMiles  float64
	PaceMinPerMile float64
	Completed      bool
}

// IsRest reports whether the workout prescribes no running.
func (w Workout) IsRest() bool {
	return w.DistanceMiles == 0
}

// Plan is an ordered schedule, week-major then day-minor.
type Plan struct {
	Workouts []Workout
}

// Progress summarizes how much of a plan has been checked off.
type Progress struct {
	TotalMiles     float64
	MilesCompleted float64
	RunsCompleted  int
	TotalRuns      int
	Percent        int
	Complete       bool
}

// Weeks returns the number of whole weeks in the plan.
func (p Plan) Weeks() int {
	return len(p.Workouts) / DaysPerWeek
}

// Workout returns the workout at the 0-based week and day.
func (p Plan) Workout(week, day int) (Workout, bool) {
	if week < 0 || day < 0 || day >= DaysPerWeek {
		return Workout{}, false
	}
	i := week*DaysPerWeek + day
	if i >= len(p.Workouts) {
		return Workout{}, false
	}
	return p.Workouts[i], true
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	out := Plan{Workouts: make([]Workout, len(p.Workouts))}
	copy(out.Workouts, p.Workouts)
	return out
}

// Toggle flips the completion flag of the workout at index and returns it.
func (p *Plan) Toggle(index int) (Workout, error) {
	if index < 0 || index >= len(p.Workouts) {
		return Workout{}, fmt.Errorf("workout %d out of range [0, %d)", index, len(p.Workouts))
	}
	p.Workouts[index].Completed = !p.Workouts[index].Completed
	return p.Workouts[index], nil
}

// Progress computes totals over the plan. Percent is by mileage, truncated.
func (p Plan) Progress() Progress {
	var pr Progress
	pr.TotalRuns = len(p.Workouts)
	for _, w := range p.Workouts {
		pr.TotalMiles += w.DistanceMiles
		if w.Completed {
			pr.MilesCompleted += w.DistanceMiles
			pr.RunsCompleted++
		}
	}
	if pr.TotalMiles > 0 {
		pr.Percent = int(pr.MilesCompleted / pr.TotalMiles * 100)
	}
	pr.Complete = pr.TotalRuns > 0 && pr.RunsCompleted == pr.TotalRuns
	return pr
}

// FormatPace renders minutes per mile as m:ss. Zero renders as "-".
func FormatPace(minPerMile float64) string {
	if minPerMile <= 0 {
		return "-"
	}
	total := int(math.Round(minPerMile * 60))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// ParseNonNegative parses a distance or pace field. NaN, infinities and
// negative values are refused.
func ParseNonNegative(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%v is negative", v)
	}
	return v, nil
}
