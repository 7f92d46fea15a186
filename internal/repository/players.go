package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/metrics"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

// Upsert inserts or updates a player keyed by mlbId. Name and team may
// change between imports (trades, corrections). Returns true when the row
// was newly inserted.
func (r *PlayerRepository) Upsert(ctx context.Context, player *models.Player) (bool, error) {
	query := `
		INSERT INTO "Player" ("mlbId", "name", "teamAbbr", "updatedAt")
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT ("mlbId") DO UPDATE SET
			"name" = EXCLUDED."name",
			"teamAbbr" = EXCLUDED."teamAbbr",
			"updatedAt" = NOW()
		RETURNING "id", "createdAt", "updatedAt", (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.Pool.QueryRow(
		ctx, query,
		player.MLBID, player.Name, player.TeamAbbr,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt, &inserted)

	if err != nil {
		metrics.UpsertsTotal.WithLabelValues("Player", "error").Inc()
		return false, fmt.Errorf("failed to upsert player: %w", err)
	}

	metrics.UpsertsTotal.WithLabelValues("Player", "ok").Inc()

	log.Debug().
		Str("id", player.ID).
		Str("mlb_id", player.MLBID).
		Str("name", player.Name).
		Bool("inserted", inserted).
		Msg("Player upserted")

	return inserted, nil
}

// GetByMLBID retrieves a player by the stats source identifier
func (r *PlayerRepository) GetByMLBID(ctx context.Context, mlbID string) (*models.Player, error) {
	query := `
		SELECT "id", "mlbId", "name", "teamAbbr", "createdAt", "updatedAt"
		FROM "Player"
		WHERE "mlbId" = $1
	`

	var player models.Player
	err := r.db.Pool.QueryRow(ctx, query, mlbID).Scan(
		&player.ID, &player.MLBID, &player.Name, &player.TeamAbbr,
		&player.CreatedAt, &player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player not found: mlbId=%s", mlbID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// ListAll retrieves every player record
func (r *PlayerRepository) ListAll(ctx context.Context) ([]*models.Player, error) {
	query := `
		SELECT "id", "mlbId", "name", "teamAbbr", "createdAt", "updatedAt"
		FROM "Player"
		ORDER BY "name"
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		var player models.Player
		err := rows.Scan(
			&player.ID, &player.MLBID, &player.Name, &player.TeamAbbr,
			&player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}
