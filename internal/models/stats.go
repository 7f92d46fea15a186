package models

import "time"

// PlayerSeasonStats is the season-long home run total used for eligibility.
// One row per (player, season), written only by the eligibility importer.
type PlayerSeasonStats struct {
	ID         string    `db:"id"`
	PlayerID   string    `db:"playerId"`
	SeasonYear int       `db:"seasonYear"`
	HRsTotal   int       `db:"hrsTotal"`
	TeamAbbr   string    `db:"teamAbbr"`
	CreatedAt  time.Time `db:"createdAt"`
	UpdatedAt  time.Time `db:"updatedAt"`
}

// PlayerStats is one point in a player's daily time series. One row per
// (player, season, date); re-running an import for a date overwrites the row.
// HRsTotal is the cumulative season total as of Date and is non-decreasing
// across dates for a fixed player and season. HRsPostseason stays zero for
// this contest.
type PlayerStats struct {
	ID               string    `db:"id"`
	PlayerID         string    `db:"playerId"`
	SeasonYear       int       `db:"seasonYear"`
	Date             string    `db:"date"` // YYYY-MM-DD
	HRsDaily         int       `db:"hrsDaily"`
	HRsTotal         int       `db:"hrsTotal"`
	HRsRegularSeason int       `db:"hrsRegularSeason"`
	HRsPostseason    int       `db:"hrsPostseason"`
	LastUpdated      time.Time `db:"lastUpdated"`
}
