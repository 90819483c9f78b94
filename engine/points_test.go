package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTripAward(t *testing.T) {
	tests := []struct {
		name       string
		duration   int
		alerts     int
		yawns      int
		wantPoints int
		wantScore  int
	}{
		{"flawless trip collects every bonus", 5400, 0, 0, 45, 100},
		{"alerts and yawns leave base only", 3600, 2, 1, 15, 93},
		{"yawns forfeit the zero-yawn bonus", 3600, 0, 3, 35, 97},
		{"alerts forfeit bonus and high score", 3600, 4, 0, 20, 88},
		{"zero duration still scores perfect", 0, 0, 0, 45, 100},
		{"score exactly at threshold gets no bonus", 3600, 2, 4, 10, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			award := CalculateTripAward(tt.duration, tt.alerts, tt.yawns)
			assert.Equal(t, tt.wantPoints, award.Points)
			assert.Equal(t, tt.wantScore, award.SafetyScore)
		})
	}
}
