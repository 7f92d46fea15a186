package models

// GameTypeRegularSeason is the schedule gameType code for regular season
// games; spring training, all-star and postseason games carry other codes.
const GameTypeRegularSeason = "R"

// ScheduleResponse mirrors the MLB Stats API schedule payload
type ScheduleResponse struct {
	Dates []struct {
		Date  string      `json:"date"`
		Games []GameInput `json:"games"`
	} `json:"dates"`
}

// GameInput is a single scheduled game from the API
type GameInput struct {
	GamePk   int    `json:"gamePk"`
	GameType string `json:"gameType"`
	Teams    struct {
		Away struct {
			Team struct {
				Name string `json:"name"`
			} `json:"team"`
		} `json:"away"`
		Home struct {
			Team struct {
				Name string `json:"name"`
			} `json:"team"`
		} `json:"home"`
	} `json:"teams"`
}

// ScheduledGame is a flattened schedule row
type ScheduledGame struct {
	GamePk   int
	GameType string
	AwayName string
	HomeName string
}

// Games flattens the schedule payload across its date buckets
func (r *ScheduleResponse) Games() []ScheduledGame {
	var games []ScheduledGame
	for _, d := range r.Dates {
		for _, g := range d.Games {
			games = append(games, ScheduledGame{
				GamePk:   g.GamePk,
				GameType: g.GameType,
				AwayName: g.Teams.Away.Team.Name,
				HomeName: g.Teams.Home.Team.Name,
			})
		}
	}
	return games
}

// IsRegularSeason reports whether the game counts for the contest
func (g ScheduledGame) IsRegularSeason() bool {
	return g.GameType == GameTypeRegularSeason
}
