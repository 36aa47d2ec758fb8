package models

import (
	"strings"
	"testing"
)

func weekOf(week int, miles ...float64) []Workout {
	out := make([]Workout, DaysPerWeek)
	for d := range out {
		out[d] = Workout{Week: week, Day: d}
		if d < len(miles) {
			out[d].DistanceMiles = miles[d]
			out[d].PaceMinPerMile = 10
		}
	}
	return out
}

// TestFormatPace verifies m:ss rendering, including zero-padded seconds
// (9.75 is 9:45, 9.083 rounds to 9:05 rather than 9:5).
func TestFormatPace(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "10:00"},
		{9.75, "9:45"},
		{9.0833, "9:05"},
		{7.2, "7:12"},
		{0, "-"},
		{-1, "-"},
	}
	for _, tc := range cases {
		if got := FormatPace(tc.in); got != tc.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestProgress verifies mileage percent truncation and run counting.
func TestProgress(t *testing.T) {
	p := Plan{Workouts: weekOf(0, 2, 0, 3, 0, 4, 0, 1)}
	p.Workouts[0].Completed = true
	p.Workouts[1].Completed = true

	pr := p.Progress()
	if pr.TotalMiles != 10 {
		t.Errorf("TotalMiles = %v, want 10", pr.TotalMiles)
	}
	if pr.MilesCompleted != 2 {
		t.Errorf("MilesCompleted = %v, want 2", pr.MilesCompleted)
	}
	if pr.RunsCompleted != 2 {
		t.Errorf("RunsCompleted = %d, want 2 (rest days count)", pr.RunsCompleted)
	}
	if pr.Percent != 20 {
		t.Errorf("Percent = %d, want 20", pr.Percent)
	}
	if pr.Complete {
		t.Error("Complete = true, want false")
	}
}

// TestProgressComplete verifies a plan is complete only when every day is checked.
func TestProgressComplete(t *testing.T) {
	p := Plan{Workouts: weekOf(0, 1, 1, 1, 1, 1, 1, 1)}
	for i := range p.Workouts {
		p.Workouts[i].Completed = true
	}
	pr := p.Progress()
	if !pr.Complete || pr.Percent != 100 {
		t.Errorf("progress = %+v, want complete at 100%%", pr)
	}
}

// TestProgressEmptyPlan guards the division when a plan has no mileage.
func TestProgressEmptyPlan(t *testing.T) {
	pr := Plan{}.Progress()
	if pr.Percent != 0 || pr.Complete {
		t.Errorf("empty plan progress = %+v", pr)
	}
}

// TestToggle verifies toggling flips the flag both ways and rejects bad indices.
func TestToggle(t *testing.T) {
	p := Plan{Workouts: weekOf(0, 2)}
	w, err := p.Toggle(0)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !w.Completed || !p.Workouts[0].Completed {
		t.Error("first toggle should mark completed")
	}
	if w, _ = p.Toggle(0); w.Completed {
		t.Error("second toggle should clear completed")
	}
	if _, err := p.Toggle(7); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := p.Toggle(-1); err == nil {
		t.Error("expected error for negative index")
	}
}

// TestCloneIsIndependent verifies Clone does not share the workout slice.
func TestCloneIsIndependent(t *testing.T) {
	p := Plan{Workouts: weekOf(0, 2)}
	c := p.Clone()
	c.Workouts[0].DistanceMiles = 99
	if p.Workouts[0].DistanceMiles != 2 {
		t.Error("mutating the clone changed the original")
	}
}

// TestWorkoutLookup verifies week/day addressing.
func TestWorkoutLookup(t *testing.T) {
	p := Plan{Workouts: append(weekOf(0, 1), weekOf(1, 5)...)}
	if p.Weeks() != 2 {
		t.Fatalf("Weeks = %d, want 2", p.Weeks())
	}
	w, ok := p.Workout(1, 0)
	if !ok || w.DistanceMiles != 5 {
		t.Errorf("Workout(1,0) = %+v, %v", w, ok)
	}
	if _, ok := p.Workout(2, 0); ok {
		t.Error("Workout(2,0) should not exist")
	}
	if _, ok := p.Workout(0, 7); ok {
		t.Error("Workout(0,7) should not exist")
	}
}

// TestProfileValidate covers the name and category checks.
func TestProfileValidate(t *testing.T) {
	good := Profile{Name: "megan", Age: Age18To35, Ability: AbilityBeginner, Time: Time7To9Weeks}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Profile)
		want   string
	}{
		{"empty name", func(p *Profile) { p.Name = "  " }, "name is required"},
		{"comma", func(p *Profile) { p.Name = "a,b" }, "must not contain"},
		{"slash", func(p *Profile) { p.Name = "../x" }, "must not contain"},
		{"age", func(p *Profile) { p.Age = 5 }, "age"},
		{"ability", func(p *Profile) { p.Ability = 0 }, "ability"},
		{"time too short", func(p *Profile) { p.Time = TimeUnder5Weeks }, "time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := good
			tc.mutate(&p)
			err := p.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}

// TestCategoryLabels verifies labels and the time-category acceptance range.
func TestCategoryLabels(t *testing.T) {
	if AgeOver56.Label() != "> 56 years old" {
		t.Errorf("AgeOver56.Label() = %q", AgeOver56.Label())
	}
	if TimeUnder5Weeks.Valid() {
		t.Error("under five weeks must not be a valid plan length")
	}
	if TimeUnder5Weeks.Label() != "<5 weeks" {
		t.Errorf("TimeUnder5Weeks.Label() = %q", TimeUnder5Weeks.Label())
	}
	if !TimeOver11Weeks.Valid() || TimeCategory(6).Valid() {
		t.Error("time range should be 2..5")
	}
	if AbilityCategory(9).Label() != "ability group 9" {
		t.Errorf("unknown label = %q", AbilityCategory(9).Label())
	}
}

// TestParseNonNegative verifies distance and pace fields accept plain
// non-negative numbers only.
func TestParseNonNegative(t *testing.T) {
	for _, s := range []string{"0", "2.640", "10.000", "1e1"} {
		if _, err := ParseNonNegative(s); err != nil {
			t.Errorf("ParseNonNegative(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "fast", "-0.5", "NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		if v, err := ParseNonNegative(s); err == nil {
			t.Errorf("ParseNonNegative(%q) = %v, want error", s, v)
		}
	}
}
