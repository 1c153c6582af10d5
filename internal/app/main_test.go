package app

import (
	"context"
	"testing"

	"healthpoints/internal/domain"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockResource[T any] struct {
	listFn   func(ctx context.Context, req domain.PageRequest) (domain.Page[T], error)
	getFn    func(ctx context.Context, id int64) (T, error)
	createFn func(ctx context.Context, e T) (T, error)
	updateFn func(ctx context.Context, e T) (T, error)
	deleteFn func(ctx context.Context, id int64) error
	searchFn func(ctx context.Context, query string) ([]T, error)
}

func (m *mockResource[T]) List(ctx context.Context, req domain.PageRequest) (domain.Page[T], error) {
	if m.listFn != nil {
		return m.listFn(ctx, req)
	}
	return domain.Page[T]{}, nil
}

func (m *mockResource[T]) Get(ctx context.Context, id int64) (T, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (m *mockResource[T]) Create(ctx context.Context, e T) (T, error) {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return e, nil
}

func (m *mockResource[T]) Update(ctx context.Context, e T) (T, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, e)
	}
	return e, nil
}

func (m *mockResource[T]) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockResource[T]) Search(ctx context.Context, query string) ([]T, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

type mockReaders struct {
	pointsFn  func(ctx context.Context) (domain.PointsPerWeek, error)
	bpFn      func(ctx context.Context, days int) (domain.BloodPressureByPeriod, error)
	weightFn  func(ctx context.Context, days int) (domain.WeightByPeriod, error)
	prefsFn   func(ctx context.Context) (domain.Preference, error)
	accountFn func(ctx context.Context) (domain.Account, error)
}

func (m *mockReaders) PointsThisWeek(ctx context.Context) (domain.PointsPerWeek, error) {
	if m.pointsFn != nil {
		return m.pointsFn(ctx)
	}
	return domain.PointsPerWeek{}, nil
}

func (m *mockReaders) BloodPressureByDays(ctx context.Context, days int) (domain.BloodPressureByPeriod, error) {
	if m.bpFn != nil {
		return m.bpFn(ctx, days)
	}
	return domain.BloodPressureByPeriod{}, nil
}

func (m *mockReaders) WeightByDays(ctx context.Context, days int) (domain.WeightByPeriod, error) {
	if m.weightFn != nil {
		return m.weightFn(ctx, days)
	}
	return domain.WeightByPeriod{}, nil
}

func (m *mockReaders) MyPreferences(ctx context.Context) (domain.Preference, error) {
	if m.prefsFn != nil {
		return m.prefsFn(ctx)
	}
	return domain.Preference{}, domain.ErrNotFound
}

func (m *mockReaders) Account(ctx context.Context) (domain.Account, error) {
	if m.accountFn != nil {
		return m.accountFn(ctx)
	}
	return domain.Account{}, domain.ErrUnauthorized
}

func point(id int64, notes string) domain.Point {
	return domain.Point{
		ID:    domain.ExistingIdent(id),
		Date:  domain.DateOf(fixedNow),
		Notes: notes,
	}
}
