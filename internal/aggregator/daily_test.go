package aggregator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

type fakeSource struct {
	games       []models.ScheduledGame
	boxScores   map[int]*models.BoxScore
	scheduleErr error
	boxErrs     map[int]error
	boxFetches  int
}

func (f *fakeSource) FetchSchedule(_ context.Context, _ string) ([]models.ScheduledGame, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.games, nil
}

func (f *fakeSource) FetchBoxScore(_ context.Context, gamePk int) (*models.BoxScore, error) {
	f.boxFetches++
	if err := f.boxErrs[gamePk]; err != nil {
		return nil, err
	}
	box, ok := f.boxScores[gamePk]
	if !ok {
		return nil, fmt.Errorf("no box score for game %d", gamePk)
	}
	return box, nil
}

type fakeRoster struct {
	players []*models.Player
	err     error
}

func (f *fakeRoster) ListAll(_ context.Context) ([]*models.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.players, nil
}

type fakeStatsStore struct {
	rows       map[string]*models.PlayerStats // playerID/season/date
	failWrites bool
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{rows: make(map[string]*models.PlayerStats)}
}

func statsKey(playerID string, season int, date string) string {
	return fmt.Sprintf("%s/%d/%s", playerID, season, date)
}

func (f *fakeStatsStore) Upsert(_ context.Context, stats *models.PlayerStats) error {
	if f.failWrites {
		return fmt.Errorf("write rejected")
	}
	clone := *stats
	f.rows[statsKey(stats.PlayerID, stats.SeasonYear, stats.Date)] = &clone
	return nil
}

func (f *fakeStatsStore) GetSeasonTotal(_ context.Context, playerID string, season int, before string) (int, error) {
	total := 0
	latest := ""
	for _, row := range f.rows {
		if row.PlayerID != playerID || row.SeasonYear != season {
			continue
		}
		// ISO dates compare lexicographically
		if row.Date < before && row.Date > latest {
			latest = row.Date
			total = row.HRsTotal
		}
	}
	return total, nil
}

// boxScore builds a box score where each map entry is (mlb player id -> home
// runs in the game), split across away and home arbitrarily
func boxScore(awayHRs, homeHRs map[int]int) *models.BoxScore {
	box := &models.BoxScore{}
	box.Teams.Away = boxTeam(awayHRs)
	box.Teams.Home = boxTeam(homeHRs)
	return box
}

func boxTeam(hrs map[int]int) models.BoxScoreTeam {
	team := models.BoxScoreTeam{Players: make(map[string]models.BoxScorePlayer)}
	for id, n := range hrs {
		team.Batters = append(team.Batters, id)
		var player models.BoxScorePlayer
		player.Person.ID = id
		player.Stats.Batting.HomeRuns = n
		team.Players[fmt.Sprintf("ID%d", id)] = player
	}
	return team
}

func regularGame(gamePk int) models.ScheduledGame {
	return models.ScheduledGame{GamePk: gamePk, GameType: models.GameTypeRegularSeason}
}

func rosterPlayer(id, mlbID, name string) *models.Player {
	return &models.Player{ID: id, MLBID: mlbID, Name: name}
}

func TestUpdateForDate_NoGames(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStatsStore()

	result, err := New(source, &fakeRoster{}, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err, "a day without games is a normal outcome")

	assert.Zero(t, result.Updated)
	assert.Zero(t, result.Created)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, store.rows, "no writes may happen")
}

func TestUpdateForDate_OnlyRegularSeasonGamesCount(t *testing.T) {
	source := &fakeSource{
		games: []models.ScheduledGame{
			{GamePk: 1, GameType: "E"}, // exhibition
			{GamePk: 2, GameType: "A"}, // all-star
			{GamePk: 3, GameType: "P"}, // postseason
		},
		boxScores: map[int]*models.BoxScore{
			1: boxScore(map[int]int{656941: 1}, nil),
			2: boxScore(map[int]int{656941: 1}, nil),
			3: boxScore(map[int]int{656941: 1}, nil),
		},
	}
	store := newFakeStatsStore()

	result, err := New(source, &fakeRoster{}, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)

	assert.Zero(t, source.boxFetches, "non-regular-season games must not be fetched")
	assert.Equal(t, Result{}, result)
}

func TestUpdateForDate_ExtendsCumulativeTotal(t *testing.T) {
	// Player X hits 2 on 2025-06-01 with a prior cumulative total of 15:
	// the stored total becomes 17 and the write counts as updated.
	source := &fakeSource{
		games:     []models.ScheduledGame{regularGame(100)},
		boxScores: map[int]*models.BoxScore{100: boxScore(map[int]int{656941: 2}, nil)},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()
	store.rows[statsKey("p1", 2025, "2025-05-30")] = &models.PlayerStats{
		PlayerID: "p1", SeasonYear: 2025, Date: "2025-05-30", HRsTotal: 15,
	}

	result, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Created)

	row := store.rows[statsKey("p1", 2025, "2025-06-01")]
	require.NotNil(t, row)
	assert.Equal(t, 2, row.HRsDaily)
	assert.Equal(t, 17, row.HRsTotal)
	assert.Equal(t, 17, row.HRsRegularSeason)
	assert.Equal(t, 0, row.HRsPostseason)
}

func TestUpdateForDate_FirstHomeRunsCountAsCreated(t *testing.T) {
	source := &fakeSource{
		games:     []models.ScheduledGame{regularGame(100)},
		boxScores: map[int]*models.BoxScore{100: boxScore(nil, map[int]int{656941: 1})},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()

	result, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-04-01", 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, store.rows[statsKey("p1", 2025, "2025-04-01")].HRsTotal)
}

func TestUpdateForDate_NonRosterPlayerSkipped(t *testing.T) {
	source := &fakeSource{
		games:     []models.ScheduledGame{regularGame(100)},
		boxScores: map[int]*models.BoxScore{100: boxScore(map[int]int{999999: 1}, nil)},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()

	result, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Created)
	assert.Zero(t, result.Updated)
	assert.Empty(t, store.rows, "no row may be written for a non-roster player")
}

func TestUpdateForDate_PrefixedIDResolvesSamePlayer(t *testing.T) {
	source := &fakeSource{
		games:     []models.ScheduledGame{regularGame(100)},
		boxScores: map[int]*models.BoxScore{100: boxScore(map[int]int{656941: 1}, nil)},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "mlb-656941", "Player X")}}
	store := newFakeStatsStore()

	result, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.NotNil(t, store.rows[statsKey("p1", 2025, "2025-06-01")])
}

func TestUpdateForDate_DoubleheaderTotalsAreSummed(t *testing.T) {
	source := &fakeSource{
		games: []models.ScheduledGame{regularGame(100), regularGame(101)},
		boxScores: map[int]*models.BoxScore{
			100: boxScore(map[int]int{656941: 1}, nil),
			101: boxScore(nil, map[int]int{656941: 2}),
		},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()

	_, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)

	row := store.rows[statsKey("p1", 2025, "2025-06-01")]
	require.NotNil(t, row)
	assert.Equal(t, 3, row.HRsDaily)
}

func TestUpdateForDate_RerunIsIdempotent(t *testing.T) {
	source := &fakeSource{
		games:     []models.ScheduledGame{regularGame(100)},
		boxScores: map[int]*models.BoxScore{100: boxScore(map[int]int{656941: 2}, nil)},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()
	store.rows[statsKey("p1", 2025, "2025-05-30")] = &models.PlayerStats{
		PlayerID: "p1", SeasonYear: 2025, Date: "2025-05-30", HRsTotal: 15,
	}

	agg := New(source, roster, store)

	first, err := agg.UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)
	firstTotal := store.rows[statsKey("p1", 2025, "2025-06-01")].HRsTotal

	second, err := agg.UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)
	secondTotal := store.rows[statsKey("p1", 2025, "2025-06-01")].HRsTotal

	assert.Equal(t, firstTotal, secondTotal, "re-running a date must not double-apply the daily delta")
	assert.Equal(t, 17, secondTotal)
	assert.Equal(t, first, second)

	rowCount := 0
	for _, row := range store.rows {
		if row.PlayerID == "p1" && row.Date == "2025-06-01" {
			rowCount++
		}
	}
	assert.Equal(t, 1, rowCount, "overwrite, never duplicate")
}

func TestUpdateForDate_TotalsAreMonotonic(t *testing.T) {
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()

	days := []struct {
		date string
		hrs  int
	}{
		{"2025-06-01", 2},
		{"2025-06-02", 1},
		{"2025-06-04", 3},
	}

	prev := 0
	for _, day := range days {
		source := &fakeSource{
			games:     []models.ScheduledGame{regularGame(100)},
			boxScores: map[int]*models.BoxScore{100: boxScore(map[int]int{656941: day.hrs}, nil)},
		}
		_, err := New(source, roster, store).UpdateForDate(context.Background(), day.date, 2025)
		require.NoError(t, err)

		total := store.rows[statsKey("p1", 2025, day.date)].HRsTotal
		assert.GreaterOrEqual(t, total, prev, "cumulative total must never decrease")
		prev = total
	}

	assert.Equal(t, 6, prev)
}

func TestUpdateForDate_BoxScoreFailureDropsGameOnly(t *testing.T) {
	source := &fakeSource{
		games: []models.ScheduledGame{regularGame(100), regularGame(101)},
		boxScores: map[int]*models.BoxScore{
			101: boxScore(map[int]int{656941: 1}, nil),
		},
		boxErrs: map[int]error{100: fmt.Errorf("request timed out")},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()

	result, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err, "a failed box score fetch must not abort the run")

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, store.rows[statsKey("p1", 2025, "2025-06-01")].HRsDaily)
}

func TestUpdateForDate_ScheduleFailureAborts(t *testing.T) {
	source := &fakeSource{scheduleErr: fmt.Errorf("connection refused")}
	store := newFakeStatsStore()

	_, err := New(source, &fakeRoster{}, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.Error(t, err)
	assert.Empty(t, store.rows)
}

func TestUpdateForDate_FailedWriteCountsSkipped(t *testing.T) {
	source := &fakeSource{
		games:     []models.ScheduledGame{regularGame(100)},
		boxScores: map[int]*models.BoxScore{100: boxScore(map[int]int{656941: 1}, nil)},
	}
	roster := &fakeRoster{players: []*models.Player{rosterPlayer("p1", "656941", "Player X")}}
	store := newFakeStatsStore()
	store.failWrites = true

	result, err := New(source, roster, store).UpdateForDate(context.Background(), "2025-06-01", 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Created)
}
