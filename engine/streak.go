package engine

import (
	"time"

	"github.com/im-Amrith/DriveGuard1/models"
)

// AdvanceStreak applies one trip date to a streak record and returns the
// resulting current streak. Calendar dates only; a same-day repeat trip is a
// no-op, a next-day trip extends, anything else resets to 1. LongestStreak
// never decreases. The caller persists the record and must invoke this
// exactly once per trip-finalization event.
func AdvanceStreak(rec *models.UserStreak, tripDate time.Time) int {
	day := dateOnly(tripDate)
	rec.UpdatedAt = time.Now()

	if rec.LastTripDate == nil {
		rec.CurrentStreak = 1
		if rec.LongestStreak < 1 {
			rec.LongestStreak = 1
		}
		rec.LastTripDate = &day
		return rec.CurrentStreak
	}

	switch diff := daysBetween(*rec.LastTripDate, day); {
	case diff == 1:
		rec.CurrentStreak++
		if rec.CurrentStreak > rec.LongestStreak {
			rec.LongestStreak = rec.CurrentStreak
		}
		rec.LastTripDate = &day
	case diff == 0:
		// Same-day repeat trip: counts unchanged, date already correct.
	default:
		rec.CurrentStreak = 1
		rec.LastTripDate = &day
	}
	return rec.CurrentStreak
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

// sameDay reports whether two timestamps fall on the same UTC calendar date.
func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
