package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/birthday-cards/internal/config"
)

// UpcomingWithin returns the subset of records whose next birthday occurrence
// falls within [0, horizon] days from now, annotated with DaysUntil and the
// computed NextOccurrence. Output follows input order.
//
// Records whose birthdate does not parse as MM/DD/YYYY (after normalizing '-'
// and '.' separators to '/') are dropped and counted in the returned skipped
// total. The computation is pure: same inputs, same output.
func UpcomingWithin(records []ContactRecord, now time.Time, horizon int) ([]UpcomingBirthday, int) {
	var upcoming []UpcomingBirthday
	skipped := 0

	for _, rec := range records {
		birthDate, err := ParseBirthdate(rec.Birthdate)
		if err != nil {
			skipped++
			continue
		}

		occurrence := NextOccurrence(now, birthDate)
		days := daysBetween(now, occurrence)

		if days >= 0 && days <= horizon {
			upcoming = append(upcoming, UpcomingBirthday{
				ContactRecord:  rec,
				DaysUntil:      days,
				NextOccurrence: occurrence,
			})
		}
	}

	if skipped > 0 {
		slog.Debug(config.MsgDateSkipped,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeySkipped, skipped)
	}

	return upcoming, skipped
}

// ParseBirthdate parses a birthdate in MM/DD/YYYY form, accepting '-' and '.'
// as alternate separators.
func ParseBirthdate(value string) (time.Time, error) {
	normalized := strings.NewReplacer(
		config.DateSeparatorDash, config.DateSeparatorSlash,
		config.DateSeparatorDot, config.DateSeparatorSlash,
	).Replace(strings.TrimSpace(value))

	return time.Parse(config.DateLayoutInput, normalized)
}

// NextOccurrence projects the birthdate's month/day into the current year,
// or the next year if that date is strictly before today.
//
// time.Date normalizes Feb 29 to Mar 1 in non-leap years, so leapling
// birthdays land on Mar 1 instead of being dropped.
func NextOccurrence(now time.Time, birthDate time.Time) time.Time {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	candidate := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	return candidate
}

// daysBetween counts whole calendar days from the start of now's day to the
// occurrence. Both are midnight-aligned in the same location, so the division
// is exact except across DST shifts, which rounding absorbs.
func daysBetween(now time.Time, occurrence time.Time) int {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hours := occurrence.Sub(todayStart).Hours()
	return int(hours/24 + 0.5)
}
