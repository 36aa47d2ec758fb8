// Package plan loads the base training schedule and customizes it for a runner.
package plan

import (
	"fmt"

	"github.com/runbuddy/runbuddy/internal/models"
)

// Scale is a distance/pace multiplier pair.
type Scale struct {
	Distance float64
	Pace     float64
}

// resizeRule lists base-week indices to drop or to repeat immediately.
type resizeRule struct {
	drop   []int
	repeat []int
}

var resizeRules = map[models.TimeCategory]resizeRule{
	models.Time5To7Weeks:   {drop: []int{1, 4}},
	models.Time7To9Weeks:   {},
	models.Time9To11Weeks:  {repeat: []int{2, 5}},
	models.TimeOver11Weeks: {repeat: []int{0, 2, 4, 6}},
}

// Younger runners go further and faster; older runners shorter and slower.
var ageScales = map[models.AgeCategory]Scale{
	models.AgeUnder18: {Distance: 1.10, Pace: 0.90},
	models.Age18To35:  {Distance: 1.00, Pace: 1.00},
	models.Age36To55:  {Distance: 0.90, Pace: 1.10},
	models.AgeOver56:  {Distance: 0.80, Pace: 1.20},
}

var abilityScales = map[models.AbilityCategory]Scale{
	models.AbilityBeginner:     {Distance: 0.90, Pace: 1.20},
	models.AbilityIntermediate: {Distance: 1.00, Pace: 1.00},
	models.AbilityAdvanced:     {Distance: 1.20, Pace: 0.80},
}

// AgeScale returns the multipliers applied for an age category.
func AgeScale(a models.AgeCategory) (Scale, bool) {
	s, ok := ageScales[a]
	return s, ok
}

// AbilityScale returns the multipliers applied for an ability category.
func AbilityScale(a models.AbilityCategory) (Scale, bool) {
	s, ok := abilityScales[a]
	return s, ok
}

// WeeksFor returns the plan length produced for a time category.
func WeeksFor(t models.TimeCategory) (int, bool) {
	rule, ok := resizeRules[t]
	if !ok {
		return 0, false
	}
	return BaseWeeks - len(rule.drop) + len(rule.repeat), true
}

// ForProfile generates the plan for a runner's profile.
func ForProfile(base models.Plan, p models.Profile) (models.Plan, error) {
	return Generate(base, p.Time, p.Age, p.Ability)
}

// Generate resizes base for the time category, then scales every workout by
// the age multipliers and then the ability multipliers. The result has all
// completion flags cleared; base is not modified.
func Generate(base models.Plan, t models.TimeCategory, age models.AgeCategory, ability models.AbilityCategory) (models.Plan, error) {
	if len(base.Workouts) != BaseWeeks*models.DaysPerWeek {
		return models.Plan{}, fmt.Errorf("base plan has %d workouts, want %d", len(base.Workouts), BaseWeeks*models.DaysPerWeek)
	}
	rule, ok := resizeRules[t]
	if !ok {
		return models.Plan{}, fmt.Errorf("no plan for time category %d", int(t))
	}
	ageScale, ok := ageScales[age]
	if !ok {
		return models.Plan{}, fmt.Errorf("no scaling for age category %d", int(age))
	}
	abilityScale, ok := abilityScales[ability]
	if !ok {
		return models.Plan{}, fmt.Errorf("no scaling for ability category %d", int(ability))
	}

	out := resize(base, rule)
	scale(&out, ageScale)
	scale(&out, abilityScale)
	return out, nil
}

func resize(base models.Plan, rule resizeRule) models.Plan {
	drop := indexSet(rule.drop)
	repeat := indexSet(rule.repeat)

	weeks := BaseWeeks - len(rule.drop) + len(rule.repeat)
	out := models.Plan{Workouts: make([]models.Workout, 0, weeks*models.DaysPerWeek)}

	next := 0
	for w := 0; w < BaseWeeks; w++ {
		if drop[w] {
			continue
		}
		copies := 1
		if repeat[w] {
			copies = 2
		}
		for c := 0; c < copies; c++ {
			for d := 0; d < models.DaysPerWeek; d++ {
				wo := base.Workouts[w*models.DaysPerWeek+d]
				wo.Week = next
				wo.Day = d
				wo.Completed = false
				out.Workouts = append(out.Workouts, wo)
			}
			next++
		}
	}
	return out
}

func scale(p *models.Plan, s Scale) {
	for i := range p.Workouts {
		p.Workouts[i].DistanceMiles *= s.Distance
		p.Workouts[i].PaceMinPerMile *= s.Pace
	}
}

func indexSet(idx []int) map[int]bool {
	m := make(map[int]bool, len(idx))
	for _, i := range idx {
		m[i] = true
	}
	return m
}
