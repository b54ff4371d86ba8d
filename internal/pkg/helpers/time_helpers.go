package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// LastDayOfMonth returns the last calendar day of the given month as a
// date (midnight UTC, no time-of-day component).
func LastDayOfMonth(year int, month time.Month) time.Time {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// ParseDateOnly parses a calendar date in YYYY-MM-DD form.
func ParseDateOnly(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
