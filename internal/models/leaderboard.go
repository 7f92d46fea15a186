package models

import "strconv"

// LeaderboardResponse mirrors the MLB Stats API stats/leaders payload.
// The HR value comes back as a string ("54").
type LeaderboardResponse struct {
	LeagueLeaders []struct {
		Leaders []LeaderInput `json:"leaders"`
	} `json:"leagueLeaders"`
}

// LeaderInput is a single leaderboard row from the API
type LeaderInput struct {
	Rank   int    `json:"rank"`
	Value  string `json:"value"`
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Team struct {
		ID           int    `json:"id"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

// LeaderboardEntry is a flattened leaderboard row
type LeaderboardEntry struct {
	MLBID    string
	Name     string
	TeamAbbr string
	HRsTotal int
}

// Entries flattens the nested leaderboard payload, dropping rows whose HR
// value does not parse
func (r *LeaderboardResponse) Entries() []LeaderboardEntry {
	var entries []LeaderboardEntry
	for _, ll := range r.LeagueLeaders {
		for _, leader := range ll.Leaders {
			hrs, err := strconv.Atoi(leader.Value)
			if err != nil || leader.Person.ID == 0 {
				continue
			}

			name := leader.Person.FullName
			if name == "" {
				name = "Unknown"
			}
			team := leader.Team.Abbreviation
			if team == "" {
				team = "FA"
			}

			entries = append(entries, LeaderboardEntry{
				MLBID:    strconv.Itoa(leader.Person.ID),
				Name:     name,
				TeamAbbr: team,
				HRsTotal: hrs,
			})
		}
	}
	return entries
}

// ToPlayer converts a leaderboard entry to a Player record for upserting
func (e LeaderboardEntry) ToPlayer() *Player {
	return &Player{
		MLBID:    e.MLBID,
		Name:     e.Name,
		TeamAbbr: e.TeamAbbr,
	}
}

// ToSeasonStats converts a leaderboard entry to a PlayerSeasonStats record
// for the given internal player id and season
func (e LeaderboardEntry) ToSeasonStats(playerID string, season int) *PlayerSeasonStats {
	return &PlayerSeasonStats{
		PlayerID:   playerID,
		SeasonYear: season,
		HRsTotal:   e.HRsTotal,
		TeamAbbr:   e.TeamAbbr,
	}
}
