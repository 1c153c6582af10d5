package domain

import "fmt"

const (
	// MinWeeklyGoal and MaxWeeklyGoal bound the weekly points goal.
	MinWeeklyGoal = 10
	MaxWeeklyGoal = 21
)

// Preference holds one user's settings.
type Preference struct {
	ID          Ident `json:"id"`
	WeeklyGoal  int   `json:"weeklyGoal,omitempty"`
	WeightUnits Units `json:"weightUnits"`
}

func (p Preference) Ident() Ident { return p.ID }

func (p Preference) WithIdent(id Ident) Preference {
	p.ID = id
	return p
}

func (p Preference) Validate() error { return validatePreference(p.WeeklyGoal, p.WeightUnits) }

// Preferences is the alternate settings collection; it uses snake_case on the
// wire.
type Preferences struct {
	ID          Ident `json:"id"`
	WeeklyGoal  int   `json:"weekly_goal,omitempty"`
	WeightUnits Units `json:"weight_units"`
}

func (p Preferences) Ident() Ident { return p.ID }

func (p Preferences) WithIdent(id Ident) Preferences {
	p.ID = id
	return p
}

func (p Preferences) Validate() error { return validatePreference(p.WeeklyGoal, p.WeightUnits) }

func validatePreference(goal int, units Units) error {
	if goal != 0 && (goal < MinWeeklyGoal || goal > MaxWeeklyGoal) {
		return fmt.Errorf("%w: weekly goal must be within [%d, %d]", ErrValidation, MinWeeklyGoal, MaxWeeklyGoal)
	}
	if !units.Valid() {
		return fmt.Errorf("%w: weight units must be %q or %q", ErrValidation, UnitsKg, UnitsLb)
	}
	return nil
}
