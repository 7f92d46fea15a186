// Package scheduler runs the daily aggregation on a cron schedule for the
// long-lived worker mode. The one-shot CLIs remain the primary way to run
// imports; the worker exists so a deployment without an external cron can
// still get nightly updates.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/aggregator"
)

// Scheduler triggers the daily aggregator on a cron schedule
type Scheduler struct {
	agg        *aggregator.Aggregator
	seasonYear func() int
	spec       string
	cron       *cron.Cron
}

// New creates a scheduler that runs agg for yesterday's date (contest
// timezone) on the given cron spec. seasonYear is resolved at each run so a
// worker left running across New Year picks up the new season.
func New(agg *aggregator.Aggregator, seasonYear func() int, spec string) *Scheduler {
	return &Scheduler{
		agg:        agg,
		seasonYear: seasonYear,
		spec:       spec,
		cron:       cron.New(),
	}
}

// Start registers the cron job and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runDailyUpdate(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule daily update: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.spec).
		Msg("Daily update scheduled")

	return nil
}

// runDailyUpdate runs one aggregation pass for yesterday in the contest
// timezone. The date and season year are resolved here, at run time.
func (s *Scheduler) runDailyUpdate(ctx context.Context) {
	date := aggregator.YesterdayEastern(time.Now())
	season := s.seasonYear()
	log.Info().Str("date", date).Int("season", season).Msg("Running scheduled daily update")

	result, err := s.agg.UpdateForDate(ctx, date, season)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("Scheduled daily update failed")
		return
	}

	log.Info().
		Str("date", date).
		Int("updated", result.Updated).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("Scheduled daily update complete")
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Info().Msg("Scheduler stopped")
}
