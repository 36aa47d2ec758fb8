package models

import (
	"fmt"
	"strings"
)

// Profile is the runner's intake answers.
type Profile struct {
	Name    string
	Age     AgeCategory
	Ability AbilityCategory
	Time    TimeCategory
}

// Validate checks that the profile can be stored and used to generate a plan.
// The name doubles as a file name prefix and a CSV field.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(p.Name, ",\r\n/\\") {
		return fmt.Errorf("name %q must not contain commas, line breaks or path separators", p.Name)
	}
	if !p.Age.Valid() {
		return fmt.Errorf("invalid age category %d", int(p.Age))
	}
	if !p.Ability.Valid() {
		return fmt.Errorf("invalid ability category %d", int(p.Ability))
	}
	if !p.Time.Valid() {
		return fmt.Errorf("invalid time category %d", int(p.Time))
	}
	return nil
}
