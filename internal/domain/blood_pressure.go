package domain

import (
	"fmt"
	"time"
)

// BloodPressure is a single reading taken at a minute-granular instant.
type BloodPressure struct {
	ID        Ident     `json:"id"`
	Timestamp Timestamp `json:"timestamp"`
	Systolic  int       `json:"systolic"`
	Diastolic int       `json:"diastolic"`
}

func (b BloodPressure) Ident() Ident { return b.ID }

func (b BloodPressure) WithIdent(id Ident) BloodPressure {
	b.ID = id
	return b
}

// WithDefaults stamps a new reading with the current minute in UTC.
func (b BloodPressure) WithDefaults(now time.Time) BloodPressure {
	b.Timestamp = TimestampOf(now)
	return b
}

func (b BloodPressure) Validate() error {
	if b.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrValidation)
	}
	if b.Systolic <= 0 || b.Diastolic <= 0 {
		return fmt.Errorf("%w: systolic and diastolic must be positive", ErrValidation)
	}
	return nil
}
