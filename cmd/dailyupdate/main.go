// Command dailyupdate aggregates one day's box scores into per-player daily
// and cumulative home run totals. Defaults to yesterday in the contest
// timezone (US Eastern); pass --date to backfill or re-run a specific day.
// Re-runs overwrite the day's rows with identical values.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/aggregator"
	"github.com/Fcontice/HomeRunDerby2.0/internal/cache"
	"github.com/Fcontice/HomeRunDerby2.0/internal/client"
	"github.com/Fcontice/HomeRunDerby2.0/internal/config"
	"github.com/Fcontice/HomeRunDerby2.0/internal/repository"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()
	setupLogger(cfg)

	date := flag.String("date", "", "date to process (YYYY-MM-DD), defaults to yesterday US Eastern")
	season := flag.Int("season-year", cfg.DefaultSeasonYear(), "season year the totals accumulate under")
	flag.Parse()

	if *date == "" {
		*date = aggregator.YesterdayEastern(time.Now())
		log.Info().Str("date", *date).Msg("No date provided, using yesterday")
	}
	if !aggregator.ValidDate(*date) {
		log.Fatal().Str("date", *date).Msg("Date must be in YYYY-MM-DD format")
	}

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	mlb := client.NewClient(cfg.MLBAPIBaseURL, cfg.MLBAPITimeout)

	if cfg.RedisEnabled() {
		redisCache, err := cache.NewRedisCache(ctx, cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer redisCache.Close()
			mlb.UseBoxScoreCache(redisCache, cfg.BoxScoreCacheTTL)
		}
	}

	agg := aggregator.New(mlb, db.Players, db.DailyStats)
	result, err := agg.UpdateForDate(ctx, *date, *season)
	if err != nil {
		log.Fatal().Err(err).Str("date", *date).Msg("Daily stats update failed")
	}

	log.Info().
		Str("date", *date).
		Int("season", *season).
		Int("updated", result.Updated).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("Update summary")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
