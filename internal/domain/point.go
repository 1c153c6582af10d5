package domain

import (
	"fmt"
	"time"
)

// Point is one day's score inputs. Each score is 0 or 1.
type Point struct {
	ID       Ident  `json:"id"`
	Date     Date   `json:"date"`
	Exercise int    `json:"exercise"`
	Meals    int    `json:"meals"`
	Alcohol  int    `json:"alcohol"`
	Notes    string `json:"notes,omitempty"`
}

func (p Point) Ident() Ident { return p.ID }

func (p Point) WithIdent(id Ident) Point {
	p.ID = id
	return p
}

// WithDefaults fills in today's date and full marks for a new record.
func (p Point) WithDefaults(now time.Time) Point {
	p.Date = DateOf(now)
	p.Exercise, p.Meals, p.Alcohol = 1, 1, 1
	return p
}

// Score is the number of points the day earned.
func (p Point) Score() int { return p.Exercise + p.Meals + p.Alcohol }

func (p Point) Validate() error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return validateScores(p.Exercise, p.Meals, p.Alcohol)
}

// Points is the alternate collection of daily scores. New records start
// blank.
type Points struct {
	ID       Ident  `json:"id"`
	Date     Date   `json:"date"`
	Exercise int    `json:"exercise"`
	Meals    int    `json:"meals"`
	Alcohol  int    `json:"alcohol"`
	Notes    string `json:"notes,omitempty"`
}

func (p Points) Ident() Ident { return p.ID }

func (p Points) WithIdent(id Ident) Points {
	p.ID = id
	return p
}

func (p Points) Validate() error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return validateScores(p.Exercise, p.Meals, p.Alcohol)
}

func validateScores(scores ...int) error {
	for _, s := range scores {
		if s != 0 && s != 1 {
			return fmt.Errorf("%w: scores must be 0 or 1, got %d", ErrValidation, s)
		}
	}
	return nil
}
