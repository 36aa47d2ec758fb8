package models

import "fmt"

// AgeCategory is the age group selected on the intake form (1 youngest, 4 oldest).
type AgeCategory int

// AbilityCategory is the weekly-mileage ability group (1 beginner, 3 advanced).
type AbilityCategory int

// TimeCategory is the time available until race day (1 shortest, 5 longest).
type TimeCategory int

const (
	AgeUnder18 AgeCategory = iota + 1
	Age18To35
	Age36To55
	AgeOver56
)

const (
	AbilityBeginner AbilityCategory = iota + 1
	AbilityIntermediate
	AbilityAdvanced
)

const (
	TimeUnder5Weeks TimeCategory = iota + 1
	Time5To7Weeks
	Time7To9Weeks
	Time9To11Weeks
	TimeOver11Weeks
)

var ageLabels = map[AgeCategory]string{
	AgeUnder18: "<18 years old",
	Age18To35:  "18 - 35 years old",
	Age36To55:  "36 - 55 years old",
	AgeOver56:  "> 56 years old",
}

var abilityLabels = map[AbilityCategory]string{
	AbilityBeginner:     "Beginner (0-5 miles per week)",
	AbilityIntermediate: "Intermediate (6-15 miles per week)",
	AbilityAdvanced:     "Advanced (>15 miles per week)",
}

var timeLabels = map[TimeCategory]string{
	TimeUnder5Weeks: "<5 weeks",
	Time5To7Weeks:   "5-7 weeks",
	Time7To9Weeks:   "7-9 weeks",
	Time9To11Weeks:  "9-11 weeks",
	TimeOver11Weeks: ">11 weeks",
}

// AgeCategories lists every age group in display order.
var AgeCategories = []AgeCategory{AgeUnder18, Age18To35, Age36To55, AgeOver56}

// AbilityCategories lists every ability group in display order.
var AbilityCategories = []AbilityCategory{AbilityBeginner, AbilityIntermediate, AbilityAdvanced}

// TimeCategories lists every time group in display order, including the
// one the intake form refuses.
var TimeCategories = []TimeCategory{TimeUnder5Weeks, Time5To7Weeks, Time7To9Weeks, Time9To11Weeks, TimeOver11Weeks}

// Valid reports whether a is a known age group.
func (a AgeCategory) Valid() bool {
	_, ok := ageLabels[a]
	return ok
}

// Label returns the form label for a.
func (a AgeCategory) Label() string {
	if l, ok := ageLabels[a]; ok {
		return l
	}
	return fmt.Sprintf("age group %d", int(a))
}

// Valid reports whether a is a known ability level.
func (a AbilityCategory) Valid() bool {
	_, ok := abilityLabels[a]
	return ok
}

// Label returns the form label for a.
func (a AbilityCategory) Label() string {
	if l, ok := abilityLabels[a]; ok {
		return l
	}
	return fmt.Sprintf("ability group %d", int(a))
}

// Valid reports whether a plan can be generated for t. Under five weeks is
// labelled but is too short to train for a half marathon.
func (t TimeCategory) Valid() bool {
	return t >= Time5To7Weeks && t <= TimeOver11Weeks
}

// Label returns the form label for t, including the refused under-five-weeks group.
func (t TimeCategory) Label() string {
	if l, ok := timeLabels[t]; ok {
		return l
	}
	return fmt.Sprintf("time group %d", int(t))
}
