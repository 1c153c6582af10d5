// Package memory implements an in-memory backend for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"healthpoints/internal/domain"
)

// DB holds one store per entity kind plus the account of its single user.
type DB struct {
	Points         *Store[domain.Point]
	PointsAlt      *Store[domain.Points]
	BloodPressures *Store[domain.BloodPressure]
	Weights        *Store[domain.Weight]
	Preference     *Store[domain.Preference]
	Preferences    *Store[domain.Preferences]

	mu        sync.Mutex
	account   domain.Account
	now       func() time.Time
	storeOpts []StoreOption
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the clock used by the aggregate queries.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// WithAccount sets the account served to authenticated callers.
func WithAccount(a domain.Account) Option {
	return func(db *DB) { db.account = a }
}

// WithStoreOptions applies opts to every store of the database.
func WithStoreOptions(opts ...StoreOption) Option {
	return func(db *DB) { db.storeOpts = append(db.storeOpts, opts...) }
}

// New creates an empty in-memory database.
func New(opts ...Option) *DB {
	db := &DB{
		account: domain.Account{
			Login:       "user",
			FirstName:   "User",
			Email:       "user@localhost",
			Authorities: []string{domain.AuthorityUser},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	db.Points = NewStore[domain.Point](domain.KindPoint, db.storeOpts...)
	db.PointsAlt = NewStore[domain.Points](domain.KindPoints, db.storeOpts...)
	db.BloodPressures = NewStore[domain.BloodPressure](domain.KindBloodPressure, db.storeOpts...)
	db.Weights = NewStore[domain.Weight](domain.KindWeight, db.storeOpts...)
	db.Preference = NewStore[domain.Preference](domain.KindPreference, db.storeOpts...)
	db.Preferences = NewStore[domain.Preferences](domain.KindPreferences, db.storeOpts...)
	return db
}

// Ensure interfaces are met.
var (
	_ domain.Resource[domain.Point]         = (*Store[domain.Point])(nil)
	_ domain.Resource[domain.Points]        = (*Store[domain.Points])(nil)
	_ domain.Resource[domain.BloodPressure] = (*Store[domain.BloodPressure])(nil)
	_ domain.Resource[domain.Weight]        = (*Store[domain.Weight])(nil)
	_ domain.Resource[domain.Preference]    = (*Store[domain.Preference])(nil)
	_ domain.Resource[domain.Preferences]   = (*Store[domain.Preferences])(nil)
)

// startOfWeek returns the Monday of the week containing day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// PointsThisWeek sums the scores of the points dated Monday through Sunday of
// the current week.
func (db *DB) PointsThisWeek(ctx context.Context) (domain.PointsPerWeek, error) {
	today := domain.DateOf(db.now())
	monday := domain.DateOf(startOfWeek(today.Time()))
	sunday := monday.AddDays(6)

	total := 0
	for _, p := range db.Points.All() {
		if p.Date.Before(monday) || sunday.Before(p.Date) {
			continue
		}
		total += p.Score()
	}
	return domain.PointsPerWeek{Week: monday, Points: total}, nil
}

// BloodPressureByDays returns the readings of the last days days, newest first.
func (db *DB) BloodPressureByDays(ctx context.Context, days int) (domain.BloodPressureByPeriod, error) {
	now := db.now().UTC()
	from := now.AddDate(0, 0, -days)

	readings := []domain.BloodPressure{}
	for _, bp := range db.BloodPressures.All() {
		ts := bp.Timestamp.Time()
		if ts.Before(from) || ts.After(now) {
			continue
		}
		readings = append(readings, bp)
	}
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Timestamp.Time().After(readings[j].Timestamp.Time())
	})
	return domain.BloodPressureByPeriod{Period: period(days), Readings: readings}, nil
}

// WeightByDays returns the weigh-ins of the last days days, newest first.
func (db *DB) WeightByDays(ctx context.Context, days int) (domain.WeightByPeriod, error) {
	today := domain.DateOf(db.now())
	from := today.AddDays(-days)

	weighIns := []domain.Weight{}
	for _, w := range db.Weights.All() {
		if w.Timestamp.Before(from) || today.Before(w.Timestamp) {
			continue
		}
		weighIns = append(weighIns, w)
	}
	sort.Slice(weighIns, func(i, j int) bool {
		return weighIns[j].Timestamp.Before(weighIns[i].Timestamp)
	})
	return domain.WeightByPeriod{Period: period(days), WeighIns: weighIns}, nil
}

// MyPreferences returns the user's settings, or domain.ErrNotFound if none
// were saved yet.
func (db *DB) MyPreferences(ctx context.Context) (domain.Preference, error) {
	all := db.Preference.All()
	if len(all) == 0 {
		return domain.Preference{}, domain.ErrNotFound
	}
	return all[0], nil
}

// Account returns the account of the single user.
func (db *DB) Account(ctx context.Context) (domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.account, nil
}

func period(days int) string { return fmt.Sprintf("Last %d Days", days) }
