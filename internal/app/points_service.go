package app

import (
	"context"
	"errors"
	"fmt"

	"healthpoints/internal/domain"
)

// MaxWeeklyPoints is the most points a week can earn: three a day.
const MaxWeeklyPoints = 21

// PointsReader reads the weekly points aggregate.
type PointsReader interface {
	PointsThisWeek(ctx context.Context) (domain.PointsPerWeek, error)
}

// WeeklySummary is the home screen's progress for the current week.
type WeeklySummary struct {
	Week       domain.Date
	Points     int
	Goal       int
	Percentage float64
}

// PointsService computes the weekly summary.
type PointsService struct {
	points PointsReader
	prefs  PreferenceReader
}

// NewPointsService creates a PointsService backed by the given readers.
func NewPointsService(points PointsReader, prefs PreferenceReader) *PointsService {
	return &PointsService{points: points, prefs: prefs}
}

// ThisWeek returns the points earned so far this week as a share of the 21
// available, along with the user's weekly goal.
func (s *PointsService) ThisWeek(ctx context.Context) (WeeklySummary, error) {
	week, err := s.points.PointsThisWeek(ctx)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("points this week: %w", err)
	}

	goal := MaxWeeklyPoints
	prefs, err := s.prefs.MyPreferences(ctx)
	switch {
	case err == nil && prefs.WeeklyGoal > 0:
		goal = prefs.WeeklyGoal
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return WeeklySummary{}, fmt.Errorf("points this week: %w", err)
	}

	return WeeklySummary{
		Week:       week.Week,
		Points:     week.Points,
		Goal:       goal,
		Percentage: float64(week.Points) / MaxWeeklyPoints * 100,
	}, nil
}
