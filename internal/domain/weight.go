package domain

import "fmt"

// Weight is a weigh-in recorded against a calendar day. The value is in the
// owner's preferred units.
type Weight struct {
	ID        Ident   `json:"id"`
	Timestamp Date    `json:"timestamp"`
	Weight    float64 `json:"weight"`
}

func (w Weight) Ident() Ident { return w.ID }

func (w Weight) WithIdent(id Ident) Weight {
	w.ID = id
	return w
}

func (w Weight) Validate() error {
	if w.Timestamp.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if w.Weight <= 0 {
		return fmt.Errorf("%w: weight must be > 0", ErrValidation)
	}
	return nil
}
