package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fcontice/HomeRunDerby2.0/internal/aggregator"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

type fakeSource struct{}

func (fakeSource) FetchSchedule(_ context.Context, _ string) ([]models.ScheduledGame, error) {
	return []models.ScheduledGame{{GamePk: 745804, GameType: models.GameTypeRegularSeason}}, nil
}

func (fakeSource) FetchBoxScore(_ context.Context, _ int) (*models.BoxScore, error) {
	var box models.BoxScore
	box.Teams.Away = models.BoxScoreTeam{
		Batters: []int{592450},
		Players: map[string]models.BoxScorePlayer{"ID592450": homeRunLine(592450, 1)},
	}
	return &box, nil
}

func homeRunLine(id, hrs int) models.BoxScorePlayer {
	var p models.BoxScorePlayer
	p.Person.ID = id
	p.Stats.Batting.HomeRuns = hrs
	return p
}

type fakeRoster struct{}

func (fakeRoster) ListAll(_ context.Context) ([]*models.Player, error) {
	return []*models.Player{{ID: "p1", MLBID: "592450", Name: "Aaron Judge"}}, nil
}

type fakeStatsStore struct {
	upserts []*models.PlayerStats
}

func (s *fakeStatsStore) Upsert(_ context.Context, stats *models.PlayerStats) error {
	s.upserts = append(s.upserts, stats)
	return nil
}

func (s *fakeStatsStore) GetSeasonTotal(_ context.Context, _ string, _ int, _ string) (int, error) {
	return 0, nil
}

func TestRunDailyUpdateResolvesSeasonPerRun(t *testing.T) {
	stats := &fakeStatsStore{}
	agg := aggregator.New(fakeSource{}, fakeRoster{}, stats)

	season := 2025
	s := New(agg, func() int { return season }, "0 6 * * *")

	s.runDailyUpdate(context.Background())
	season = 2026
	s.runDailyUpdate(context.Background())

	require.Len(t, stats.upserts, 2)
	assert.Equal(t, 2025, stats.upserts[0].SeasonYear)
	assert.Equal(t, 2026, stats.upserts[1].SeasonYear)
}

func TestRunDailyUpdateTargetsYesterdayEastern(t *testing.T) {
	stats := &fakeStatsStore{}
	agg := aggregator.New(fakeSource{}, fakeRoster{}, stats)

	s := New(agg, func() int { return 2025 }, "0 6 * * *")
	s.runDailyUpdate(context.Background())

	require.Len(t, stats.upserts, 1)
	assert.Equal(t, aggregator.YesterdayEastern(time.Now()), stats.upserts[0].Date)
}
