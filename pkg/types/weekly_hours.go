package types

import (
	"strings"
	"time"
)

// DayHours holds the wall-clock opening window for a single weekday.
// Both fields use "HH:MM"; an empty field means the restaurant does not
// open that day.
type DayHours struct {
	Opening string `json:"opening"`
	Closing string `json:"closing"`
}

// WeeklyHours maps lowercase weekday names ("monday".."sunday") to their
// opening window. Stored as jsonb on the restaurant row.
type WeeklyHours map[string]DayHours

// ForTime returns the entry for the weekday of t, if present.
func (w WeeklyHours) ForTime(t time.Time) (DayHours, bool) {
	if len(w) == 0 {
		return DayHours{}, false
	}
	hours, ok := w[strings.ToLower(t.Weekday().String())]
	return hours, ok
}

// Weekdays lists the accepted keys in calendar order.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// IsWeekday reports whether key is one of the accepted weekday names.
func IsWeekday(key string) bool {
	for _, day := range Weekdays {
		if day == key {
			return true
		}
	}
	return false
}
