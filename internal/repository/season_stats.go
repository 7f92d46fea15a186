package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Fcontice/HomeRunDerby2.0/internal/metrics"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

// SeasonStatsRepository handles season-long eligibility stats
type SeasonStatsRepository struct {
	db *Database
}

// Upsert inserts or updates a player's season total keyed by
// (playerId, seasonYear). Returns true when the row was newly inserted.
func (r *SeasonStatsRepository) Upsert(ctx context.Context, stats *models.PlayerSeasonStats) (bool, error) {
	query := `
		INSERT INTO "PlayerSeasonStats" ("playerId", "seasonYear", "hrsTotal", "teamAbbr", "updatedAt")
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT ("playerId", "seasonYear") DO UPDATE SET
			"hrsTotal" = EXCLUDED."hrsTotal",
			"teamAbbr" = EXCLUDED."teamAbbr",
			"updatedAt" = NOW()
		RETURNING "id", "createdAt", "updatedAt", (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.Pool.QueryRow(
		ctx, query,
		stats.PlayerID, stats.SeasonYear, stats.HRsTotal, stats.TeamAbbr,
	).Scan(&stats.ID, &stats.CreatedAt, &stats.UpdatedAt, &inserted)

	if err != nil {
		metrics.UpsertsTotal.WithLabelValues("PlayerSeasonStats", "error").Inc()
		return false, fmt.Errorf("failed to upsert season stats: %w", err)
	}

	metrics.UpsertsTotal.WithLabelValues("PlayerSeasonStats", "ok").Inc()
	return inserted, nil
}

// GetByPlayerAndSeason retrieves a player's season stats row
func (r *SeasonStatsRepository) GetByPlayerAndSeason(ctx context.Context, playerID string, season int) (*models.PlayerSeasonStats, error) {
	query := `
		SELECT "id", "playerId", "seasonYear", "hrsTotal", "teamAbbr", "createdAt", "updatedAt"
		FROM "PlayerSeasonStats"
		WHERE "playerId" = $1 AND "seasonYear" = $2
	`

	var stats models.PlayerSeasonStats
	err := r.db.Pool.QueryRow(ctx, query, playerID, season).Scan(
		&stats.ID, &stats.PlayerID, &stats.SeasonYear,
		&stats.HRsTotal, &stats.TeamAbbr,
		&stats.CreatedAt, &stats.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("season stats not found: playerId=%s, season=%d", playerID, season)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season stats: %w", err)
	}

	return &stats, nil
}

// ListBySeason retrieves all season stats rows for a season, highest HR
// totals first
func (r *SeasonStatsRepository) ListBySeason(ctx context.Context, season int) ([]*models.PlayerSeasonStats, error) {
	query := `
		SELECT "id", "playerId", "seasonYear", "hrsTotal", "teamAbbr", "createdAt", "updatedAt"
		FROM "PlayerSeasonStats"
		WHERE "seasonYear" = $1
		ORDER BY "hrsTotal" DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list season stats: %w", err)
	}
	defer rows.Close()

	var statsList []*models.PlayerSeasonStats
	for rows.Next() {
		var stats models.PlayerSeasonStats
		err := rows.Scan(
			&stats.ID, &stats.PlayerID, &stats.SeasonYear,
			&stats.HRsTotal, &stats.TeamAbbr,
			&stats.CreatedAt, &stats.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season stats: %w", err)
		}
		statsList = append(statsList, &stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating season stats: %w", err)
	}

	return statsList, nil
}
