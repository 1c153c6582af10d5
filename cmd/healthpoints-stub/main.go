package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"healthpoints/internal/adapter/memory"
	"healthpoints/internal/adapter/stubapi"
	"healthpoints/internal/config"
	"healthpoints/internal/domain"
	"healthpoints/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadStub(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Setup(logging.SetupParams{Level: cfg.LogLevel})

	var dbOpts []memory.Option
	if cfg.NoSearch {
		dbOpts = append(dbOpts, memory.WithStoreOptions(memory.WithoutSearchIndex()))
	}
	db := memory.New(dbOpts...)
	if cfg.Seed {
		if err := seed(context.Background(), db, time.Now()); err != nil {
			log.WithError(err).Fatal("seed failed")
		}
	}

	var srvOpts []stubapi.Option
	if cfg.Token != "" {
		srvOpts = append(srvOpts, stubapi.WithToken(cfg.Token))
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           stubapi.New(db, srvOpts...).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithFields(log.Fields{"addr": cfg.Addr, "search": !cfg.NoSearch, "auth": cfg.Token != ""}).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}

// seed fills db with a week of sample data ending today.
func seed(ctx context.Context, db *memory.DB, now time.Time) error {
	if _, err := db.Preference.Create(ctx, domain.Preference{WeeklyGoal: 15, WeightUnits: domain.UnitsKg}); err != nil {
		return err
	}
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		p := domain.Point{Date: domain.DateOf(day), Exercise: i % 2, Meals: 1, Alcohol: 1}
		if _, err := db.Points.Create(ctx, p); err != nil {
			return err
		}
		bp := domain.BloodPressure{Timestamp: domain.TimestampOf(day), Systolic: 118 + i, Diastolic: 76 + i%3}
		if _, err := db.BloodPressures.Create(ctx, bp); err != nil {
			return err
		}
		w := domain.Weight{Timestamp: domain.DateOf(day), Weight: 80 + float64(i)/10}
		if _, err := db.Weights.Create(ctx, w); err != nil {
			return err
		}
	}
	return nil
}
