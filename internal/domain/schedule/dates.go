package schedule

import "time"

// Wire formats used by the mobile client. Dates are dd/mm/yyyy, times are
// 24h HH:mm.
const (
	DateLayout     = "02/01/2006"
	ClockLayout    = "15:04"
	DateTimeLayout = "02/01/2006 15:04"
)

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseDateTime parses the combined "date time" pair carried by an
// appointment document.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, date+" "+clock, loc)
}
