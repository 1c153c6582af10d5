package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthpoints/internal/domain"
)

var wednesday = time.Date(2016, 3, 9, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return wednesday }

func day(offset int) domain.Date { return domain.DateOf(wednesday).AddDays(offset) }

func TestStoreCRUD(t *testing.T) {
	s := NewStore[domain.Weight](domain.KindWeight)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.Weight{Timestamp: day(0), Weight: 80})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id, ok := created.ID.Existing()
	if !ok || id != 1 {
		t.Fatalf("expected id 1, got %v", created.ID)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Weight != 80 {
		t.Errorf("expected 80, got %f", got.Weight)
	}

	got.Weight = 79.5
	if _, err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = s.Get(ctx, id)
	if got.Weight != 79.5 {
		t.Errorf("expected 79.5, got %f", got.Weight)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStoreRejects(t *testing.T) {
	s := NewStore[domain.Weight](domain.KindWeight)
	ctx := context.Background()

	if _, err := s.Create(ctx, domain.Weight{ID: domain.ExistingIdent(3), Timestamp: day(0), Weight: 1}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("create with id: expected ErrValidation, got %v", err)
	}
	if _, err := s.Create(ctx, domain.Weight{Timestamp: day(0)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("create invalid: expected ErrValidation, got %v", err)
	}
	if _, err := s.Update(ctx, domain.Weight{Timestamp: day(0), Weight: 1}); !errors.Is(err, domain.ErrNewEntity) {
		t.Errorf("update new: expected ErrNewEntity, got %v", err)
	}
	if _, err := s.Update(ctx, domain.Weight{ID: domain.ExistingIdent(42), Timestamp: day(0), Weight: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update missing: expected ErrNotFound, got %v", err)
	}
}

func TestStoreListSortsAndPages(t *testing.T) {
	s := NewStore[domain.Point](domain.KindPoint)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		// dates descend as ids ascend
		if _, err := s.Create(ctx, domain.Point{Date: day(-i)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := s.List(ctx, domain.PageRequest{Page: 0, Size: 2, Sort: "date", Ascending: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 || len(page.Items) != 2 {
		t.Fatalf("expected 2 of 5, got %d of %d", len(page.Items), page.Total)
	}
	if id, _ := page.Items[0].ID.Existing(); id != 5 {
		t.Errorf("expected oldest date (id 5) first, got %d", id)
	}
	if next, ok := page.Links.Next(); !ok || next != 1 {
		t.Errorf("expected next=1, got %d %v", next, ok)
	}
	if page.Links["last"] != 2 {
		t.Errorf("expected last=2, got %d", page.Links["last"])
	}

	page, _ = s.List(ctx, domain.PageRequest{Page: 2, Size: 2, Sort: "id", Ascending: false})
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(page.Items))
	}
	if id, _ := page.Items[0].ID.Existing(); id != 1 {
		t.Errorf("expected id 1 last when descending, got %d", id)
	}
	if _, ok := page.Links.Next(); ok {
		t.Error("expected no next link on last page")
	}
	if page.Links["prev"] != 1 {
		t.Errorf("expected prev=1, got %d", page.Links["prev"])
	}

	page, _ = s.List(ctx, domain.PageRequest{Page: 9, Size: 2})
	if len(page.Items) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(page.Items))
	}
}

func TestStoreSearch(t *testing.T) {
	s := NewStore[domain.Point](domain.KindPoint)
	ctx := context.Background()
	s.Create(ctx, domain.Point{Date: day(0), Notes: "Long walk"})
	s.Create(ctx, domain.Point{Date: day(-1), Notes: "pizza"})

	got, err := s.Search(ctx, "WALK")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Notes != "Long walk" {
		t.Errorf("unexpected results: %+v", got)
	}

	noIndex := NewStore[domain.Point](domain.KindPoint, WithoutSearchIndex())
	if _, err := noIndex.Search(ctx, "walk"); !errors.Is(err, domain.ErrSearchIndexMissing) {
		t.Errorf("expected ErrSearchIndexMissing, got %v", err)
	}
}

func TestPointsThisWeek(t *testing.T) {
	db := New(WithClock(clock))
	ctx := context.Background()
	// Monday 2016-03-07 through Sunday 2016-03-13
	db.Points.Create(ctx, domain.Point{Date: day(-2), Exercise: 1, Meals: 1, Alcohol: 1})
	db.Points.Create(ctx, domain.Point{Date: day(4), Exercise: 1})
	db.Points.Create(ctx, domain.Point{Date: day(-3), Exercise: 1, Meals: 1})
	db.Points.Create(ctx, domain.Point{Date: day(5), Meals: 1})

	got, err := db.PointsThisWeek(ctx)
	if err != nil {
		t.Fatalf("PointsThisWeek: %v", err)
	}
	if got.Week.String() != "2016-03-07" {
		t.Errorf("expected week of 2016-03-07, got %s", got.Week)
	}
	if got.Points != 4 {
		t.Errorf("expected 4 points, got %d", got.Points)
	}
}

func TestByDays(t *testing.T) {
	db := New(WithClock(clock))
	ctx := context.Background()
	db.BloodPressures.Create(ctx, domain.BloodPressure{Timestamp: domain.TimestampOf(wednesday.Add(-time.Hour)), Systolic: 120, Diastolic: 80})
	db.BloodPressures.Create(ctx, domain.BloodPressure{Timestamp: domain.TimestampOf(wednesday.AddDate(0, 0, -2)), Systolic: 125, Diastolic: 82})
	db.BloodPressures.Create(ctx, domain.BloodPressure{Timestamp: domain.TimestampOf(wednesday.AddDate(0, 0, -40)), Systolic: 140, Diastolic: 90})
	db.Weights.Create(ctx, domain.Weight{Timestamp: day(-1), Weight: 80})
	db.Weights.Create(ctx, domain.Weight{Timestamp: day(0), Weight: 79})
	db.Weights.Create(ctx, domain.Weight{Timestamp: day(-31), Weight: 85})

	bp, err := db.BloodPressureByDays(ctx, 30)
	if err != nil {
		t.Fatalf("BloodPressureByDays: %v", err)
	}
	if bp.Period != "Last 30 Days" {
		t.Errorf("unexpected period %q", bp.Period)
	}
	if len(bp.Readings) != 2 || bp.Readings[0].Systolic != 120 {
		t.Errorf("expected 2 readings newest first, got %+v", bp.Readings)
	}

	w, err := db.WeightByDays(ctx, 30)
	if err != nil {
		t.Fatalf("WeightByDays: %v", err)
	}
	if len(w.WeighIns) != 2 || w.WeighIns[0].Weight != 79 {
		t.Errorf("expected 2 weigh-ins newest first, got %+v", w.WeighIns)
	}
}

func TestMyPreferences(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.MyPreferences(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	db.Preference.Create(ctx, domain.Preference{WeeklyGoal: 15, WeightUnits: domain.UnitsLb})
	p, err := db.MyPreferences(ctx)
	if err != nil {
		t.Fatalf("MyPreferences: %v", err)
	}
	if p.WeeklyGoal != 15 || p.WeightUnits != domain.UnitsLb {
		t.Errorf("unexpected preferences %+v", p)
	}
}

func TestWithStoreOptions(t *testing.T) {
	db := New(WithStoreOptions(WithoutSearchIndex()))
	if _, err := db.Weights.Search(context.Background(), "x"); !errors.Is(err, domain.ErrSearchIndexMissing) {
		t.Errorf("expected ErrSearchIndexMissing, got %v", err)
	}
}
