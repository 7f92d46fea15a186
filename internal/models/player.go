package models

import (
	"strconv"
	"strings"
	"time"
)

// Player is an eligible contest player. MLBID is the stats source's own
// identifier and is unique across players; the contest frontend historically
// wrote it both as a bare numeric string ("656941") and with an "mlb-" prefix
// ("mlb-656941"), so lookups must go through NormalizeMLBID.
type Player struct {
	ID        string    `db:"id"`
	MLBID     string    `db:"mlbId"`
	Name      string    `db:"name"`
	TeamAbbr  string    `db:"teamAbbr"`
	CreatedAt time.Time `db:"createdAt"`
	UpdatedAt time.Time `db:"updatedAt"`
}

// NormalizeMLBID reduces a stored external identifier to the numeric MLB
// player id. Returns false for identifiers in neither accepted form.
func NormalizeMLBID(mlbID string) (int, bool) {
	id := strings.TrimPrefix(mlbID, "mlb-")
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
