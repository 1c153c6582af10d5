package cli

import (
	"fmt"

	"healthpoints/internal/domain"
)

// formFunc fills in an entity from the prompter, starting from e.
type formFunc[T any] func(p *prompter, e T) (T, error)

func pointForm(p *prompter, e domain.Point) (domain.Point, error) {
	var err error
	if e.Date, err = p.date("Date", e.Date); err != nil {
		return e, err
	}
	if e.Exercise, err = p.int("Exercise (0|1)", e.Exercise); err != nil {
		return e, err
	}
	if e.Meals, err = p.int("Meals (0|1)", e.Meals); err != nil {
		return e, err
	}
	if e.Alcohol, err = p.int("Alcohol (0|1)", e.Alcohol); err != nil {
		return e, err
	}
	e.Notes, err = p.text("Notes", e.Notes)
	return e, err
}

func pointsForm(p *prompter, e domain.Points) (domain.Points, error) {
	pt, err := pointForm(p, domain.Point(e))
	return domain.Points(pt), err
}

func bloodPressureForm(p *prompter, e domain.BloodPressure) (domain.BloodPressure, error) {
	var err error
	if e.Timestamp, err = p.timestamp("Taken at", e.Timestamp); err != nil {
		return e, err
	}
	if e.Systolic, err = p.int("Systolic", e.Systolic); err != nil {
		return e, err
	}
	e.Diastolic, err = p.int("Diastolic", e.Diastolic)
	return e, err
}

func weightForm(p *prompter, e domain.Weight) (domain.Weight, error) {
	var err error
	if e.Timestamp, err = p.date("Date", e.Timestamp); err != nil {
		return e, err
	}
	e.Weight, err = p.float("Weight", e.Weight)
	return e, err
}

func preferenceForm(p *prompter, e domain.Preference) (domain.Preference, error) {
	var err error
	if e.WeeklyGoal, err = p.int(fmt.Sprintf("Weekly goal (%d-%d)", domain.MinWeeklyGoal, domain.MaxWeeklyGoal), e.WeeklyGoal); err != nil {
		return e, err
	}
	e.WeightUnits, err = p.units("Weight units", e.WeightUnits)
	return e, err
}

func preferencesForm(p *prompter, e domain.Preferences) (domain.Preferences, error) {
	pr, err := preferenceForm(p, domain.Preference(e))
	return domain.Preferences(pr), err
}

func pointRow(e domain.Point) string {
	return fmt.Sprintf("#%-4s %s  exercise=%d meals=%d alcohol=%d  %s", e.ID, e.Date, e.Exercise, e.Meals, e.Alcohol, e.Notes)
}

func pointsRow(e domain.Points) string { return pointRow(domain.Point(e)) }

func bloodPressureRow(e domain.BloodPressure) string {
	return fmt.Sprintf("#%-4s %s  %d/%d", e.ID, e.Timestamp.Time().Format(timestampLayout), e.Systolic, e.Diastolic)
}

func weightRow(e domain.Weight) string {
	return fmt.Sprintf("#%-4s %s  %.1f", e.ID, e.Timestamp, e.Weight)
}

func preferenceRow(e domain.Preference) string {
	return fmt.Sprintf("#%-4s goal=%d units=%s", e.ID, e.WeeklyGoal, e.WeightUnits)
}

func preferencesRow(e domain.Preferences) string { return preferenceRow(domain.Preference(e)) }
