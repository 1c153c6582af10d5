package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"healthpoints/internal/domain"
)

func TestIdentJSON(t *testing.T) {
	b, _ := json.Marshal(domain.Point{})
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if v, ok := raw["id"]; !ok || v != nil {
		t.Fatalf("new id should encode as null, got %v", raw["id"])
	}

	var p domain.Point
	if err := json.Unmarshal([]byte(`{"id":42,"date":"2026-02-08","exercise":1,"meals":0,"alcohol":1}`), &p); err != nil {
		t.Fatal(err)
	}
	id, ok := p.Ident().Existing()
	if !ok || id != 42 {
		t.Fatalf("ident = %v", p.Ident())
	}
	if p.Score() != 2 {
		t.Fatalf("score = %d", p.Score())
	}
}

func TestWithIdentReturnsCopy(t *testing.T) {
	p := domain.Point{Notes: "x"}
	q := p.WithIdent(domain.ExistingIdent(7))
	if !p.Ident().IsNew() {
		t.Fatal("receiver was mutated")
	}
	if q.Ident().IsNew() || q.Notes != "x" {
		t.Fatalf("copy = %+v", q)
	}
}

func TestDefaults(t *testing.T) {
	now := time.Date(2026, 2, 8, 14, 37, 29, 0, time.UTC)

	p := domain.Point{}.WithDefaults(now)
	if p.Exercise != 1 || p.Meals != 1 || p.Alcohol != 1 {
		t.Errorf("point scores = %d/%d/%d", p.Exercise, p.Meals, p.Alcohol)
	}
	if p.Date.String() != "2026-02-08" {
		t.Errorf("point date = %s", p.Date)
	}

	bp := domain.BloodPressure{}.WithDefaults(now)
	if !bp.Timestamp.Time().Equal(time.Date(2026, 2, 8, 14, 37, 0, 0, time.UTC)) {
		t.Errorf("bp timestamp = %s", bp.Timestamp)
	}
}

func TestValidate(t *testing.T) {
	day := domain.DateOf(time.Now())
	tests := []struct {
		name string
		v    domain.Validator
		ok   bool
	}{
		{"point ok", domain.Point{Date: day, Exercise: 1}, true},
		{"point no date", domain.Point{}, false},
		{"point score 2", domain.Point{Date: day, Meals: 2}, false},
		{"points ok", domain.Points{Date: day}, true},
		{"bp ok", domain.BloodPressure{Timestamp: domain.TimestampOf(time.Now()), Systolic: 120, Diastolic: 80}, true},
		{"bp missing values", domain.BloodPressure{Timestamp: domain.TimestampOf(time.Now())}, false},
		{"weight ok", domain.Weight{Timestamp: day, Weight: 80}, true},
		{"weight zero", domain.Weight{Timestamp: day}, false},
		{"preference ok", domain.Preference{WeeklyGoal: 15, WeightUnits: domain.UnitsKg}, true},
		{"preference no goal", domain.Preference{WeightUnits: domain.UnitsLb}, true},
		{"preference goal too high", domain.Preference{WeeklyGoal: 22, WeightUnits: domain.UnitsKg}, false},
		{"preferences bad units", domain.Preferences{WeeklyGoal: 12, WeightUnits: "st"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPreferencesWireNames(t *testing.T) {
	b, _ := json.Marshal(domain.Preferences{ID: domain.ExistingIdent(1), WeeklyGoal: 10, WeightUnits: domain.UnitsKg})
	if string(b) != `{"id":1,"weekly_goal":10,"weight_units":"kg"}` {
		t.Fatalf("got %s", b)
	}
	b, _ = json.Marshal(domain.Preference{ID: domain.ExistingIdent(1), WeeklyGoal: 10, WeightUnits: domain.UnitsKg})
	if string(b) != `{"id":1,"weeklyGoal":10,"weightUnits":"kg"}` {
		t.Fatalf("got %s", b)
	}
}

func TestLinksNext(t *testing.T) {
	l := domain.Links{"next": 3, "last": 9}
	if n, ok := l.Next(); !ok || n != 3 {
		t.Fatalf("next = %d, %v", n, ok)
	}
	if _, ok := (domain.Links{}).Next(); ok {
		t.Fatal("empty links have no next")
	}
}
