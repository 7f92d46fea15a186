// Command eligibility imports a full season's home run totals to determine
// which players qualify for the contest. Run once per year before the
// contest starts; daily updates during the contest are handled by the
// dailyupdate command.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/client"
	"github.com/Fcontice/HomeRunDerby2.0/internal/config"
	"github.com/Fcontice/HomeRunDerby2.0/internal/importer"
	"github.com/Fcontice/HomeRunDerby2.0/internal/repository"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()
	setupLogger(cfg)

	season := flag.Int("season", cfg.DefaultSeasonYear(), "MLB season year to import")
	minHRs := flag.Int("min-hrs", cfg.MinHomeRuns, "minimum home runs for eligibility")
	flag.Parse()

	log.Info().
		Int("season", *season).
		Int("min_hrs", *minHRs).
		Msg("Season eligibility import starting")

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

	imp := importer.New(mlb, db.Players, db.SeasonStats, cfg.LeaderboardPage)
	result, err := imp.ImportSeason(ctx, *season, *minHRs)
	if err != nil {
		log.Fatal().Err(err).Msg("Season eligibility import failed")
	}

	log.Info().
		Int("eligible", result.Eligible).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("errors", result.Errors).
		Msg("Import summary")

	if result.Errors > 0 {
		log.Error().Int("errors", result.Errors).Msg("Import completed with errors")
		os.Exit(1)
	}
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
