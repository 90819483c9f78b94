package engine

import (
	"math"

	"github.com/im-Amrith/DriveGuard1/models"
)

// Two score formulas coexist on purpose: the penalty model drives per-trip
// feedback, point awards and analytics, while the rate model normalizes by
// trip length for leaderboard and user-summary reporting. They must not be
// unified without a product decision.

// TripSafetyScore computes the penalty-model score for a single trip,
// clamped to [0,100]. Trips without a positive duration score 100.
func TripSafetyScore(durationSeconds, alertCount, yawnCount int) int {
	if durationSeconds <= 0 {
		return 100
	}
	penalty := alertCount*3 + yawnCount
	score := 100 - penalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RateSafetyScore computes the rate-model score: penalties are weighted per
// driven hour, so a short trip with one alert scores worse than a long one.
// Floored at 0; there is no upper clamp since the penalty is never negative.
func RateSafetyScore(durationSeconds, alertCount, yawnCount int) int {
	hours := float64(durationSeconds) / 3600
	if hours <= 0 {
		return 100
	}
	penalty := (float64(alertCount)*5 + float64(yawnCount)*2) / hours
	score := int(math.Round(100 - penalty))
	if score < 0 {
		return 0
	}
	return score
}

// OverallSafetyScore is the rounded mean of penalty-model scores over trips
// with a positive duration. Users with no scored trips report 100.
func OverallSafetyScore(trips []models.Trip) int {
	sum, n := 0, 0
	for _, t := range trips {
		if t.DurationSeconds > 0 {
			sum += TripSafetyScore(t.DurationSeconds, t.AlertCount, t.YawnCount)
			n++
		}
	}
	if n == 0 {
		return 100
	}
	return int(math.Round(float64(sum) / float64(n)))
}
