// Package importer seeds the eligible-player set for a contest season from
// the MLB home run leaderboard. It runs once per season, before the daily
// updates start.
package importer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/metrics"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

// StatsSource fetches leaderboard pages from the remote stats API
type StatsSource interface {
	FetchHomeRunLeaders(ctx context.Context, season, limit, offset int) ([]models.LeaderboardEntry, error)
}

// PlayerStore upserts player identity records
type PlayerStore interface {
	Upsert(ctx context.Context, player *models.Player) (bool, error)
}

// SeasonStatsStore upserts per-season eligibility totals
type SeasonStatsStore interface {
	Upsert(ctx context.Context, stats *models.PlayerSeasonStats) (bool, error)
}

// Result summarizes a season import run
type Result struct {
	Eligible int // players meeting the threshold
	Created  int // season stats rows newly inserted
	Updated  int // season stats rows overwritten
	Errors   int // per-player upsert failures
}

// Importer imports season-long home run totals to determine contest
// eligibility
type Importer struct {
	source      StatsSource
	players     PlayerStore
	seasonStats SeasonStatsStore
	pageSize    int
}

// New creates an eligibility importer. pageSize is the leaderboard page size
// requested per fetch.
func New(source StatsSource, players PlayerStore, seasonStats SeasonStatsStore, pageSize int) *Importer {
	return &Importer{
		source:      source,
		players:     players,
		seasonStats: seasonStats,
		pageSize:    pageSize,
	}
}

// ImportSeason fetches the season home run leaderboard and upserts every
// player at or above minHRs, together with their season stats row. A player
// whose upsert fails is logged and counted; the rest of the batch continues.
// An empty leaderboard fetch fails the whole run.
func (i *Importer) ImportSeason(ctx context.Context, season, minHRs int) (Result, error) {
	start := time.Now()

	log.Info().
		Int("season", season).
		Int("min_hrs", minHRs).
		Msg("Starting season eligibility import")

	eligible, err := i.fetchEligiblePlayers(ctx, season, minHRs)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues("eligibility", "error").Inc()
		return Result{}, err
	}

	if len(eligible) == 0 {
		metrics.JobRunsTotal.WithLabelValues("eligibility", "error").Inc()
		return Result{}, fmt.Errorf("no eligible players found for season %d with threshold %d", season, minHRs)
	}

	log.Info().Int("count", len(eligible)).Msg("Eligible players fetched")

	result := Result{Eligible: len(eligible)}
	for _, entry := range eligible {
		player := entry.ToPlayer()
		if _, err := i.players.Upsert(ctx, player); err != nil {
			log.Error().Err(err).
				Str("mlb_id", entry.MLBID).
				Str("name", entry.Name).
				Msg("Failed to upsert player")
			result.Errors++
			continue
		}

		created, err := i.seasonStats.Upsert(ctx, entry.ToSeasonStats(player.ID, season))
		if err != nil {
			log.Error().Err(err).
				Str("mlb_id", entry.MLBID).
				Str("name", entry.Name).
				Msg("Failed to upsert season stats")
			result.Errors++
			continue
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}

		log.Debug().
			Str("name", entry.Name).
			Str("team", entry.TeamAbbr).
			Int("hrs", entry.HRsTotal).
			Msg("Player imported")
	}

	metrics.EligiblePlayers.Set(float64(result.Eligible))
	metrics.JobRunsTotal.WithLabelValues("eligibility", "ok").Inc()
	metrics.JobDuration.WithLabelValues("eligibility").Observe(time.Since(start).Seconds())

	log.Info().
		Int("eligible", result.Eligible).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("errors", result.Errors).
		Dur("duration", time.Since(start)).
		Msg("Season eligibility import complete")

	return result, nil
}

// fetchEligiblePlayers walks the leaderboard page by page. The leaderboard
// is sorted descending by home runs, so paging stops as soon as a page's
// minimum value drops below the threshold: no later page can qualify. A
// short page means the leaderboard is exhausted.
//
// A traded player appears once per team stint, each entry carrying the full
// season total, so the first occurrence wins and duplicates are dropped
// rather than summed. This is a documented approximation: a season split
// across stints is attributed to the first-listed entry's team.
func (i *Importer) fetchEligiblePlayers(ctx context.Context, season, minHRs int) ([]models.LeaderboardEntry, error) {
	seen := make(map[string]bool)
	var eligible []models.LeaderboardEntry

	for offset := 0; ; offset += i.pageSize {
		page, err := i.source.FetchHomeRunLeaders(ctx, season, i.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("leaderboard fetch failed at offset %d: %w", offset, err)
		}

		if len(page) == 0 {
			break
		}

		log.Debug().
			Int("offset", offset).
			Int("entries", len(page)).
			Msg("Leaderboard page fetched")

		pageMin := page[0].HRsTotal
		for _, entry := range page {
			if entry.HRsTotal < pageMin {
				pageMin = entry.HRsTotal
			}

			if seen[entry.MLBID] {
				continue
			}
			seen[entry.MLBID] = true

			if entry.HRsTotal >= minHRs {
				eligible = append(eligible, entry)
			}
		}

		if len(page) < i.pageSize || pageMin < minHRs {
			break
		}
	}

	sort.SliceStable(eligible, func(a, b int) bool {
		return eligible[a].HRsTotal > eligible[b].HRsTotal
	})

	return eligible, nil
}
