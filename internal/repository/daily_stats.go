package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/metrics"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

// DailyStatsRepository handles the per-date stats time series
type DailyStatsRepository struct {
	db *Database
}

// Upsert inserts or overwrites the stats row for (playerId, seasonYear,
// date) in a single statement, so two overlapping runs for the same date
// converge to one row instead of violating the unique constraint.
func (r *DailyStatsRepository) Upsert(ctx context.Context, stats *models.PlayerStats) error {
	query := `
		INSERT INTO "PlayerStats" (
			"playerId", "seasonYear", "date",
			"hrsDaily", "hrsTotal", "hrsRegularSeason", "hrsPostseason",
			"lastUpdated"
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, NOW())
		ON CONFLICT ("playerId", "seasonYear", "date") DO UPDATE SET
			"hrsDaily" = EXCLUDED."hrsDaily",
			"hrsTotal" = EXCLUDED."hrsTotal",
			"hrsRegularSeason" = EXCLUDED."hrsRegularSeason",
			"hrsPostseason" = EXCLUDED."hrsPostseason",
			"lastUpdated" = NOW()
		RETURNING "id", "lastUpdated"
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		stats.PlayerID, stats.SeasonYear, stats.Date,
		stats.HRsDaily, stats.HRsTotal, stats.HRsRegularSeason, stats.HRsPostseason,
	).Scan(&stats.ID, &stats.LastUpdated)

	if err != nil {
		metrics.UpsertsTotal.WithLabelValues("PlayerStats", "error").Inc()
		return fmt.Errorf("failed to upsert daily stats: %w", err)
	}

	metrics.UpsertsTotal.WithLabelValues("PlayerStats", "ok").Inc()

	log.Debug().
		Str("player_id", stats.PlayerID).
		Str("date", stats.Date).
		Int("hrs_daily", stats.HRsDaily).
		Int("hrs_total", stats.HRsTotal).
		Msg("Daily stats upserted")

	return nil
}

// GetSeasonTotal returns the player's cumulative total from the most recent
// stats row strictly before the given date, or zero when no such row exists.
// The exclusive bound is what makes re-running a day's import idempotent:
// the prior total never comes from the row being overwritten.
func (r *DailyStatsRepository) GetSeasonTotal(ctx context.Context, playerID string, season int, before string) (int, error) {
	query := `
		SELECT "hrsTotal"
		FROM "PlayerStats"
		WHERE "playerId" = $1 AND "seasonYear" = $2 AND "date" < $3::date
		ORDER BY "date" DESC
		LIMIT 1
	`

	var total int
	err := r.db.Pool.QueryRow(ctx, query, playerID, season, before).Scan(&total)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get season total: %w", err)
	}

	return total, nil
}

// GetByPlayerSeasonDate retrieves the stats row for a single date
func (r *DailyStatsRepository) GetByPlayerSeasonDate(ctx context.Context, playerID string, season int, date string) (*models.PlayerStats, error) {
	query := `
		SELECT "id", "playerId", "seasonYear", to_char("date", 'YYYY-MM-DD'),
		       "hrsDaily", "hrsTotal", "hrsRegularSeason", "hrsPostseason",
		       "lastUpdated"
		FROM "PlayerStats"
		WHERE "playerId" = $1 AND "seasonYear" = $2 AND "date" = $3::date
	`

	var stats models.PlayerStats
	err := r.db.Pool.QueryRow(ctx, query, playerID, season, date).Scan(
		&stats.ID, &stats.PlayerID, &stats.SeasonYear, &stats.Date,
		&stats.HRsDaily, &stats.HRsTotal, &stats.HRsRegularSeason, &stats.HRsPostseason,
		&stats.LastUpdated,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("daily stats not found: playerId=%s, season=%d, date=%s", playerID, season, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	return &stats, nil
}

// LatestStatsDate returns the most recent date with stats recorded for the
// season, or empty string when the season has none
func (r *DailyStatsRepository) LatestStatsDate(ctx context.Context, season int) (string, error) {
	query := `
		SELECT to_char("date", 'YYYY-MM-DD')
		FROM "PlayerStats"
		WHERE "seasonYear" = $1
		ORDER BY "date" DESC
		LIMIT 1
	`

	var date string
	err := r.db.Pool.QueryRow(ctx, query, season).Scan(&date)

	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest stats date: %w", err)
	}

	return date, nil
}
