package aggregator

import "time"

// DateFormat is the wire and storage format for contest dates
const DateFormat = "2006-01-02"

// contestTimeZone is US Eastern, the timezone the contest day rolls over in
var contestTimeZone = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// YesterdayEastern returns yesterday's date in the contest timezone. Daily
// updates run after midnight for the previous day's completed games.
func YesterdayEastern(now time.Time) string {
	return now.In(contestTimeZone).AddDate(0, 0, -1).Format(DateFormat)
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD date
func ValidDate(date string) bool {
	_, err := time.Parse(DateFormat, date)
	return err == nil
}
