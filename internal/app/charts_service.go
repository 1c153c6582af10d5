package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"healthpoints/internal/domain"
)

const maxChartDays = 366

// BloodPressureReader reads the blood-pressure aggregate.
type BloodPressureReader interface {
	BloodPressureByDays(ctx context.Context, days int) (domain.BloodPressureByPeriod, error)
}

// WeightReader reads the weight aggregate.
type WeightReader interface {
	WeightByDays(ctx context.Context, days int) (domain.WeightByPeriod, error)
}

// PreferenceReader reads the current user's preferences.
type PreferenceReader interface {
	MyPreferences(ctx context.Context) (domain.Preference, error)
}

// XY is one chart sample; X is a Unix timestamp in milliseconds.
type XY struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// Series is one line of a chart, in the shape the chart component consumes.
type Series struct {
	Values []XY   `json:"values"`
	Key    string `json:"key"`
	Color  string `json:"color"`
}

// Chart is a titled set of series.
type Chart struct {
	Title  string       `json:"title"`
	Unit   domain.Units `json:"unit,omitempty"`
	Series []Series     `json:"series"`
}

// ChartsService shapes trend aggregates into chart series.
type ChartsService struct {
	bp     BloodPressureReader
	weight WeightReader
	prefs  PreferenceReader
}

// NewChartsService creates a ChartsService backed by the given readers.
func NewChartsService(bp BloodPressureReader, w WeightReader, p PreferenceReader) *ChartsService {
	return &ChartsService{bp: bp, weight: w, prefs: p}
}

func clampDays(days int) int {
	if days <= 0 {
		return 30
	}
	if days > maxChartDays {
		return maxChartDays
	}
	return days
}

// BloodPressure returns systolic and diastolic series for the last days
// days, oldest sample first.
func (s *ChartsService) BloodPressure(ctx context.Context, days int) (Chart, error) {
	days = clampDays(days)
	agg, err := s.bp.BloodPressureByDays(ctx, days)
	if err != nil {
		return Chart{}, fmt.Errorf("blood pressure chart: %w", err)
	}

	readings := append([]domain.BloodPressure(nil), agg.Readings...)
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Time().Before(readings[j].Timestamp.Time())
	})

	systolic := Series{Key: "Systolic", Color: "#673ab7", Values: make([]XY, 0, len(readings))}
	diastolic := Series{Key: "Diastolic", Color: "#03a9f4", Values: make([]XY, 0, len(readings))}
	for _, r := range readings {
		x := r.Timestamp.Time().UnixMilli()
		systolic.Values = append(systolic.Values, XY{X: x, Y: float64(r.Systolic)})
		diastolic.Values = append(diastolic.Values, XY{X: x, Y: float64(r.Diastolic)})
	}
	return Chart{Title: agg.Period, Series: []Series{systolic, diastolic}}, nil
}

// Weight returns the weigh-ins of the last days days converted into unit.
// Readings are stored in the user's preferred unit; an empty unit keeps it.
func (s *ChartsService) Weight(ctx context.Context, days int, unit domain.Units) (Chart, error) {
	if unit != "" && !unit.Valid() {
		return Chart{}, ErrInvalidUnit
	}
	days = clampDays(days)

	stored := domain.UnitsKg
	prefs, err := s.prefs.MyPreferences(ctx)
	switch {
	case err == nil && prefs.WeightUnits.Valid():
		stored = prefs.WeightUnits
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return Chart{}, fmt.Errorf("weight chart: %w", err)
	}
	if unit == "" {
		unit = stored
	}

	agg, err := s.weight.WeightByDays(ctx, days)
	if err != nil {
		return Chart{}, fmt.Errorf("weight chart: %w", err)
	}

	weighIns := append([]domain.Weight(nil), agg.WeighIns...)
	sort.Slice(weighIns, func(i, j int) bool {
		return weighIns[i].Timestamp.Before(weighIns[j].Timestamp)
	})

	series := Series{Key: "Weight", Color: "#ffeb3b", Values: make([]XY, 0, len(weighIns))}
	for _, w := range weighIns {
		series.Values = append(series.Values, XY{
			X: w.Timestamp.Time().UnixMilli(),
			Y: domain.ConvertWeight(w.Weight, stored, unit),
		})
	}
	return Chart{Title: agg.Period, Unit: unit, Series: []Series{series}}, nil
}
