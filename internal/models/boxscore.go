package models

import "fmt"

// BoxScore mirrors the MLB Stats API game/{gamePk}/boxscore payload, trimmed
// to the batting lines. Each team lists its batters by MLB player id and
// keys the per-player stat blocks as "ID{playerId}".
type BoxScore struct {
	Teams struct {
		Away BoxScoreTeam `json:"away"`
		Home BoxScoreTeam `json:"home"`
	} `json:"teams"`
}

// BoxScoreTeam is one side of a box score
type BoxScoreTeam struct {
	Batters []int                     `json:"batters"`
	Players map[string]BoxScorePlayer `json:"players"`
}

// BoxScorePlayer is a single player's stat block within a box score
type BoxScorePlayer struct {
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Stats struct {
		Batting struct {
			HomeRuns int `json:"homeRuns"`
		} `json:"batting"`
	} `json:"stats"`
}

// HomeRunsByBatter extracts the home run count per batter across both teams.
// The map is sparse: batters without a home run are omitted.
func (b *BoxScore) HomeRunsByBatter() map[int]int {
	hrs := make(map[int]int)
	for _, team := range []BoxScoreTeam{b.Teams.Away, b.Teams.Home} {
		for _, batterID := range team.Batters {
			player, ok := team.Players[fmt.Sprintf("ID%d", batterID)]
			if !ok {
				continue
			}
			if n := player.Stats.Batting.HomeRuns; n > 0 {
				hrs[batterID] += n
			}
		}
	}
	return hrs
}
