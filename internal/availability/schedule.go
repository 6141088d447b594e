package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/feastline/feastline-backend/pkg/types"
)

// EvaluateTimeout reports whether a restaurant is outside its scheduled hours
// at the given instant. Missing or malformed schedule entries count as
// outside hours so a broken schedule never leaves a restaurant open.
func EvaluateTimeout(hours types.WeeklyHours, now time.Time) bool {
	day, ok := hours.ForTime(now)
	if !ok {
		return true
	}

	opening, err := parseClock(day.Opening)
	if err != nil {
		return true
	}
	closing, err := parseClock(day.Closing)
	if err != nil {
		return true
	}

	// Schedules must not cross midnight; a window that closes at or before
	// it opens is treated as closed all day.
	if closing <= opening {
		return true
	}

	// The window is inclusive on both ends; the closing minute still counts
	// as open.
	minute := now.Hour()*60 + now.Minute()
	return minute < opening || minute > closing
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("clock value %q out of range", value)
	}
	return hour*60 + min, nil
}

// ValidateWeeklyHours checks every configured day parses and keeps its window
// inside a single day. Days may be omitted (closed that day).
func ValidateWeeklyHours(hours types.WeeklyHours) error {
	for day, window := range hours {
		if !types.IsWeekday(day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
		opening, err := parseClock(window.Opening)
		if err != nil {
			return fmt.Errorf("%s opening: %w", day, err)
		}
		closing, err := parseClock(window.Closing)
		if err != nil {
			return fmt.Errorf("%s closing: %w", day, err)
		}
		if closing <= opening {
			return fmt.Errorf("%s window must close after it opens", day)
		}
	}
	return nil
}
