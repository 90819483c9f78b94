package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/im-Amrith/DriveGuard1/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 30, 0, 0, time.UTC)
}

func TestAdvanceStreakFirstTrip(t *testing.T) {
	rec := &models.UserStreak{UserID: 1}

	got := AdvanceStreak(rec, day(2026, 3, 10))

	assert.Equal(t, 1, got)
	assert.Equal(t, 1, rec.CurrentStreak)
	assert.Equal(t, 1, rec.LongestStreak)
	require.NotNil(t, rec.LastTripDate)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *rec.LastTripDate)
}

func TestAdvanceStreakConsecutiveDays(t *testing.T) {
	rec := &models.UserStreak{UserID: 1}

	AdvanceStreak(rec, day(2026, 3, 10))
	AdvanceStreak(rec, day(2026, 3, 11))
	got := AdvanceStreak(rec, day(2026, 3, 12))

	assert.Equal(t, 3, got)
	assert.Equal(t, 3, rec.CurrentStreak)
	assert.Equal(t, 3, rec.LongestStreak)
}

func TestAdvanceStreakSameDayIsNoOp(t *testing.T) {
	rec := &models.UserStreak{UserID: 1}

	AdvanceStreak(rec, day(2026, 3, 10))
	AdvanceStreak(rec, day(2026, 3, 11))
	// Multiple trips on the same calendar day keep the streak unchanged.
	got := AdvanceStreak(rec, time.Date(2026, 3, 11, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, 2, got)
	assert.Equal(t, 2, rec.CurrentStreak)
}

func TestAdvanceStreakGapResets(t *testing.T) {
	rec := &models.UserStreak{UserID: 1}

	AdvanceStreak(rec, day(2026, 3, 10))
	AdvanceStreak(rec, day(2026, 3, 11))
	AdvanceStreak(rec, day(2026, 3, 12))
	got := AdvanceStreak(rec, day(2026, 3, 20))

	assert.Equal(t, 1, got)
	assert.Equal(t, 1, rec.CurrentStreak)
	// The longest streak survives the reset.
	assert.Equal(t, 3, rec.LongestStreak)
}

func TestAdvanceStreakCalendarDateNotDuration(t *testing.T) {
	rec := &models.UserStreak{UserID: 1}

	// Late evening followed by early next morning is still consecutive,
	// even though fewer than 24 hours separate the trips.
	AdvanceStreak(rec, time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC))
	got := AdvanceStreak(rec, time.Date(2026, 3, 11, 0, 10, 0, 0, time.UTC))

	assert.Equal(t, 2, got)
}

func TestAdvanceStreakLongestNeverDecreases(t *testing.T) {
	rec := &models.UserStreak{UserID: 1, CurrentStreak: 2, LongestStreak: 9}
	last := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rec.LastTripDate = &last

	AdvanceStreak(rec, day(2026, 3, 11))

	assert.Equal(t, 3, rec.CurrentStreak)
	assert.Equal(t, 9, rec.LongestStreak)
}
