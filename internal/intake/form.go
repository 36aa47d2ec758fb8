// Package intake holds the state of the new-runner form.
package intake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runbuddy/runbuddy/internal/models"
)

var (
	// ErrNotEnoughTime is returned when under five weeks is selected.
	ErrNotEnoughTime = errors.New("that's not enough time to train for a half marathon, please select another option")
	// ErrIncomplete is returned when a profile is requested before every field is set.
	ErrIncomplete = errors.New("please select one option for each category")
)

// Form collects the four intake answers. The zero value is an empty form.
type Form struct {
	name    string
	age     models.AgeCategory
	ability models.AbilityCategory
	time    models.TimeCategory
}

// SetName records the runner's name with surrounding space trimmed.
func (f *Form) SetName(name string) {
	f.name = strings.TrimSpace(name)
}

// SetAge records the age group. Unknown categories are refused.
func (f *Form) SetAge(a models.AgeCategory) error {
	if !a.Valid() {
		return fmt.Errorf("unknown age category %d", int(a))
	}
	f.age = a
	return nil
}

// SetAbility records the ability level. Unknown categories are refused.
func (f *Form) SetAbility(a models.AbilityCategory) error {
	if !a.Valid() {
		return fmt.Errorf("unknown ability category %d", int(a))
	}
	f.ability = a
	return nil
}

// SetTime records the time category. Under five weeks is refused and the
// previous selection kept.
func (f *Form) SetTime(t models.TimeCategory) error {
	if t == models.TimeUnder5Weeks {
		return ErrNotEnoughTime
	}
	if !t.Valid() {
		return fmt.Errorf("unknown time category %d", int(t))
	}
	f.time = t
	return nil
}

// Name, Age, Ability and Time return the current answers. Unanswered
// categories are zero.
func (f Form) Name() string { return f.name }
func (f Form) Age() models.AgeCategory { return f.age }
func (f Form) Ability() models.AbilityCategory { return f.ability }
func (f Form) Time() models.TimeCategory { return f.time }

// Reset clears every answer.
func (f *Form) Reset() {
	*f = Form{}
}

// Missing lists the fields that still need an answer.
func (f Form) Missing() []string {
	var out []string
	if f.name == "" {
		out = append(out, "name")
	}
	if f.age == 0 {
		out = append(out, "age")
	}
	if f.ability == 0 {
		out = append(out, "ability")
	}
	if f.time == 0 {
		out = append(out, "time")
	}
	return out
}

// Complete reports whether every field has an answer.
func (f Form) Complete() bool {
	return len(f.Missing()) == 0
}

// Profile builds the runner profile from a complete form.
func (f Form) Profile() (models.Profile, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return models.Profile{}, fmt.Errorf("%w (missing %s)", ErrIncomplete, strings.Join(missing, ", "))
	}
	p := models.Profile{Name: f.name, Age: f.age, Ability: f.ability, Time: f.time}
	if err := p.Validate(); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}
