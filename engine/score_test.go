package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/im-Amrith/DriveGuard1/models"
)

func TestTripSafetyScore(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		alerts   int
		yawns    int
		want     int
	}{
		{"clean long trip", 5400, 0, 0, 100},
		{"alerts and yawns penalized", 3600, 2, 1, 93},
		{"zero duration scores perfect", 0, 5, 5, 100},
		{"negative duration scores perfect", -10, 3, 0, 100},
		{"heavy penalty clamps at zero", 3600, 40, 0, 0},
		{"short trip uses raw counts", 60, 1, 0, 97},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TripSafetyScore(tt.duration, tt.alerts, tt.yawns))
		})
	}
}

func TestRateSafetyScore(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		alerts   int
		yawns    int
		want     int
	}{
		{"clean hour", 3600, 0, 0, 100},
		{"penalties per hour", 3600, 2, 1, 88},
		{"half hour doubles the rate", 1800, 1, 0, 90},
		{"zero duration scores perfect", 0, 2, 2, 100},
		{"floored at zero", 360, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RateSafetyScore(tt.duration, tt.alerts, tt.yawns))
		})
	}
}

func TestRateSafetyScorePenalizesShortTripsHarder(t *testing.T) {
	short := RateSafetyScore(1800, 1, 0)
	long := RateSafetyScore(7200, 1, 0)
	assert.Less(t, short, long)
}

func TestOverallSafetyScore(t *testing.T) {
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no trips reports perfect", func(t *testing.T) {
		assert.Equal(t, 100, OverallSafetyScore(nil))
	})

	t.Run("zero-duration trips are excluded", func(t *testing.T) {
		trips := []models.Trip{
			{DurationSeconds: 0, AlertCount: 9, YawnCount: 9, Timestamp: ts},
		}
		assert.Equal(t, 100, OverallSafetyScore(trips))
	})

	t.Run("rounded mean of penalty scores", func(t *testing.T) {
		trips := []models.Trip{
			{DurationSeconds: 3600, AlertCount: 2, YawnCount: 1, Timestamp: ts}, // 93
			{DurationSeconds: 3600, AlertCount: 0, YawnCount: 0, Timestamp: ts}, // 100
			{DurationSeconds: 0, AlertCount: 50, YawnCount: 0, Timestamp: ts},   // excluded
		}
		assert.Equal(t, 97, OverallSafetyScore(trips))
	})
}
