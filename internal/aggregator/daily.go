// Package aggregator reconciles per-game box scores into the per-player
// daily time series. It runs once per day, after the previous day's games
// have completed, and re-running it for a date overwrites that date's rows
// with identical values.
package aggregator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/metrics"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

// ScheduleSource fetches a day's games and their box scores
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, date string) ([]models.ScheduledGame, error)
	FetchBoxScore(ctx context.Context, gamePk int) (*models.BoxScore, error)
}

// RosterStore lists the eligible-player roster
type RosterStore interface {
	ListAll(ctx context.Context) ([]*models.Player, error)
}

// DailyStatsStore reads and writes the daily stats time series
type DailyStatsStore interface {
	Upsert(ctx context.Context, stats *models.PlayerStats) error
	GetSeasonTotal(ctx context.Context, playerID string, season int, before string) (int, error)
}

// Result summarizes a daily update run
type Result struct {
	Updated int // players whose cumulative total was extended
	Created int // players recording their first home runs of the season
	Skipped int // home run hitters outside the eligible roster, plus failed writes
}

// Aggregator computes daily and cumulative home run totals for eligible
// players
type Aggregator struct {
	source ScheduleSource
	roster RosterStore
	stats  DailyStatsStore
}

// New creates a daily aggregator
func New(source ScheduleSource, roster RosterStore, stats DailyStatsStore) *Aggregator {
	return &Aggregator{
		source: source,
		roster: roster,
		stats:  stats,
	}
}

// UpdateForDate processes every regular season game on date (YYYY-MM-DD),
// sums each player's home runs across the day's games, and upserts a dated
// stats row per eligible player with the new cumulative total. A date with
// no games, or no home runs league-wide, returns a zero Result and no error.
func (a *Aggregator) UpdateForDate(ctx context.Context, date string, season int) (Result, error) {
	start := time.Now()

	log.Info().
		Str("date", date).
		Int("season", season).
		Msg("Starting daily stats update")

	games, err := a.regularSeasonGames(ctx, date)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues("daily_update", "error").Inc()
		return Result{}, err
	}

	if len(games) == 0 {
		log.Info().Str("date", date).Msg("No regular season games found")
		metrics.JobRunsTotal.WithLabelValues("daily_update", "ok").Inc()
		return Result{}, nil
	}

	dailyTotals := a.dailyHomeRunTotals(ctx, games)
	if len(dailyTotals) == 0 {
		log.Info().Str("date", date).Msg("No home runs recorded league-wide")
		metrics.JobRunsTotal.WithLabelValues("daily_update", "ok").Inc()
		return Result{}, nil
	}

	leagueTotal := 0
	for _, hrs := range dailyTotals {
		leagueTotal += hrs
	}
	metrics.DailyHomeRuns.Set(float64(leagueTotal))

	log.Info().
		Int("home_runs", leagueTotal).
		Int("players", len(dailyTotals)).
		Int("games", len(games)).
		Msg("Daily home run totals aggregated")

	roster, err := a.rosterByMLBID(ctx)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues("daily_update", "error").Inc()
		return Result{}, err
	}

	var result Result
	for mlbPlayerID, dailyHRs := range dailyTotals {
		player, ok := roster[mlbPlayerID]
		if !ok {
			// Below the eligibility threshold, so not part of the contest
			log.Debug().Int("mlb_player_id", mlbPlayerID).Msg("Skipping non-roster player")
			result.Skipped++
			continue
		}

		// The prior total is read from the latest row before this date,
		// never from the row being overwritten, so a re-run reproduces
		// the same cumulative total.
		priorTotal, err := a.stats.GetSeasonTotal(ctx, player.ID, season, date)
		if err != nil {
			log.Error().Err(err).Str("name", player.Name).Msg("Failed to read season total")
			result.Skipped++
			continue
		}

		newTotal := priorTotal + dailyHRs

		stats := &models.PlayerStats{
			PlayerID:         player.ID,
			SeasonYear:       season,
			Date:             date,
			HRsDaily:         dailyHRs,
			HRsTotal:         newTotal,
			HRsRegularSeason: newTotal, // only regular season games are counted
			HRsPostseason:    0,        // always zero for this contest
		}

		if err := a.stats.Upsert(ctx, stats); err != nil {
			log.Error().Err(err).Str("name", player.Name).Msg("Failed to upsert daily stats")
			result.Skipped++
			continue
		}

		if priorTotal > 0 {
			result.Updated++
			log.Info().
				Str("name", player.Name).
				Int("prior", priorTotal).
				Int("total", newTotal).
				Int("daily", dailyHRs).
				Msg("Season total extended")
		} else {
			result.Created++
			log.Info().
				Str("name", player.Name).
				Int("total", newTotal).
				Msg("First home runs of the season")
		}
	}

	metrics.JobRunsTotal.WithLabelValues("daily_update", "ok").Inc()
	metrics.JobDuration.WithLabelValues("daily_update").Observe(time.Since(start).Seconds())

	log.Info().
		Str("date", date).
		Int("updated", result.Updated).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Dur("duration", time.Since(start)).
		Msg("Daily stats update complete")

	return result, nil
}

// regularSeasonGames resolves the date's schedule and keeps only regular
// season games; exhibition, all-star and postseason games do not count for
// the contest
func (a *Aggregator) regularSeasonGames(ctx context.Context, date string) ([]models.ScheduledGame, error) {
	games, err := a.source.FetchSchedule(ctx, date)
	if err != nil {
		return nil, err
	}

	var regular []models.ScheduledGame
	for _, game := range games {
		if game.IsRegularSeason() {
			regular = append(regular, game)
		}
	}

	log.Debug().
		Int("scheduled", len(games)).
		Int("regular_season", len(regular)).
		Msg("Schedule resolved")

	return regular, nil
}

// dailyHomeRunTotals sums home runs per MLB player id across the day's
// games into a fresh accumulator. Under normal scheduling a player bats in
// one game per day, but doubleheaders make the summation necessary. A game
// whose box score cannot be fetched is logged and dropped; its home runs
// are picked up by a manual re-run once the source recovers.
func (a *Aggregator) dailyHomeRunTotals(ctx context.Context, games []models.ScheduledGame) map[int]int {
	totals := make(map[int]int)

	for _, game := range games {
		log.Debug().
			Int("game_pk", game.GamePk).
			Str("away", game.AwayName).
			Str("home", game.HomeName).
			Msg("Processing game")

		boxScore, err := a.source.FetchBoxScore(ctx, game.GamePk)
		if err != nil {
			log.Error().Err(err).Int("game_pk", game.GamePk).Msg("Failed to fetch box score")
			continue
		}

		for mlbPlayerID, hrs := range boxScore.HomeRunsByBatter() {
			totals[mlbPlayerID] += hrs
		}
	}

	return totals
}

// rosterByMLBID loads all players and keys them by normalized MLB id, so
// both stored identifier forms ("656941" and "mlb-656941") resolve to the
// same record
func (a *Aggregator) rosterByMLBID(ctx context.Context) (map[int]*models.Player, error) {
	players, err := a.roster.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	roster := make(map[int]*models.Player, len(players))
	for _, player := range players {
		mlbPlayerID, ok := models.NormalizeMLBID(player.MLBID)
		if !ok {
			log.Warn().
				Str("id", player.ID).
				Str("mlb_id", player.MLBID).
				Msg("Player has unparseable MLB id")
			continue
		}
		roster[mlbPlayerID] = player
	}

	log.Debug().
		Int("players", len(players)).
		Int("mapped", len(roster)).
		Msg("Eligible roster loaded")

	return roster, nil
}
