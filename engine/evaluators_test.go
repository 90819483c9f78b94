package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/im-Amrith/DriveGuard1/models"
)

func tripAt(ts time.Time, durationSeconds, alertCount, yawnCount int) models.Trip {
	return models.Trip{DurationSeconds: durationSeconds, AlertCount: alertCount, YawnCount: yawnCount, Timestamp: ts}
}

func TestAchievementSatisfied(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	// Most-recent-first, matching the repository ordering: two clean trips,
	// then an alerted one, then another clean one behind it.
	runTrips := []models.Trip{
		tripAt(now.AddDate(0, 0, -1), 600, 0, 0),
		tripAt(now.AddDate(0, 0, -2), 600, 0, 0),
		tripAt(now.AddDate(0, 0, -3), 600, 2, 0),
		tripAt(now.AddDate(0, 0, -4), 600, 0, 0),
	}

	weekTrips := []models.Trip{
		tripAt(now.AddDate(0, 0, -1), 600, 0, 0),
		tripAt(now.AddDate(0, 0, -6), 600, 1, 0),
		tripAt(now.AddDate(0, 0, -8), 600, 0, 0),
	}

	scoreTrips := []models.Trip{
		tripAt(now.AddDate(0, 0, -1), 3600, 0, 0), // rate score 100
		tripAt(now.AddDate(0, 0, -2), 1800, 0, 0), // rate score 100
		tripAt(now.AddDate(0, 0, -3), 7200, 0, 1), // rate score 99
	}

	tests := []struct {
		name  string
		def   models.Achievement
		trips []models.Trip
		want  bool
	}{
		{"total_trips met", models.Achievement{CriteriaType: "total_trips", CriteriaValue: 4}, runTrips, true},
		{"total_trips short", models.Achievement{CriteriaType: "total_trips", CriteriaValue: 5}, runTrips, false},
		{"zero_alerts counts all clean trips", models.Achievement{CriteriaType: "zero_alerts", CriteriaValue: 3}, runTrips, true},
		{"long_trip any trip over threshold", models.Achievement{CriteriaType: "long_trip", CriteriaValue: 3600}, scoreTrips, true},
		{"long_trip none over threshold", models.Achievement{CriteriaType: "long_trip", CriteriaValue: 7201}, scoreTrips, false},
		{"weekly_trips counts trailing 7 days only", models.Achievement{CriteriaType: "weekly_trips", CriteriaValue: 2}, weekTrips, true},
		{"weekly_trips excludes older trips", models.Achievement{CriteriaType: "weekly_trips", CriteriaValue: 3}, weekTrips, false},
		{"consecutive run stops at alerted trip", models.Achievement{CriteriaType: "consecutive_zero_alerts", CriteriaValue: 3}, runTrips, false},
		{"consecutive run of two unlocks two", models.Achievement{CriteriaType: "consecutive_zero_alerts", CriteriaValue: 2}, runTrips, true},
		{"perfect_scores counts exact 100 only", models.Achievement{CriteriaType: "perfect_scores", CriteriaValue: 2}, scoreTrips, true},
		{"perfect_scores near-miss excluded", models.Achievement{CriteriaType: "perfect_scores", CriteriaValue: 3}, scoreTrips, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := achievementSatisfied(tt.def, tt.trips, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAchievementSatisfiedUnknownCriteria(t *testing.T) {
	_, err := achievementSatisfied(models.Achievement{CriteriaType: "mystery"}, nil, time.Now())
	assert.Error(t, err)
}

func TestBadgeSatisfied(t *testing.T) {
	at := func(hour, alerts int) models.Trip {
		return tripAt(time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC), 600, alerts, 0)
	}

	nightTrips := []models.Trip{
		at(23, 0), // night, clean
		at(4, 0),  // night, clean
		at(23, 1), // night but alerted, must not count
		at(12, 0), // daytime
	}

	morningTrips := []models.Trip{
		at(5, 0), // in [5,8)
		at(7, 2), // alerts irrelevant for mornings
		at(8, 0), // boundary, excluded
	}

	longTrips := []models.Trip{
		tripAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), 10800, 4, 0), // score 88, unsafe
		tripAt(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), 10800, 1, 2), // score 95
	}

	safetyTrips := []models.Trip{
		tripAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), 3600, 1, 2), // score 95
		tripAt(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), 3600, 0, 0), // score 100
		tripAt(time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC), 3600, 2, 0), // score 94
	}

	streak := &models.UserStreak{CurrentStreak: 3, LongestStreak: 30}

	tests := []struct {
		name  string
		def   models.Badge
		trips []models.Trip
		want  bool
	}{
		{"night trips require zero alerts", models.Badge{CriteriaType: "night_trips", CriteriaValue: 2}, nightTrips, true},
		{"alerted night trip excluded", models.Badge{CriteriaType: "night_trips", CriteriaValue: 3}, nightTrips, false},
		{"morning window is [5,8)", models.Badge{CriteriaType: "morning_trips", CriteriaValue: 2}, morningTrips, true},
		{"eight o'clock is not morning", models.Badge{CriteriaType: "morning_trips", CriteriaValue: 3}, morningTrips, false},
		{"long_safe_trip needs the score too", models.Badge{CriteriaType: "long_safe_trip", CriteriaValue: 10800}, longTrips, true},
		{"long_safe_trip rejects unsafe long trip", models.Badge{CriteriaType: "long_safe_trip", CriteriaValue: 10801}, longTrips, false},
		{"high_safety_trips counts 95 and up", models.Badge{CriteriaType: "high_safety_trips", CriteriaValue: 2}, safetyTrips, true},
		{"94 is below the safety bar", models.Badge{CriteriaType: "high_safety_trips", CriteriaValue: 3}, safetyTrips, false},
		{"streak_days uses the longest streak", models.Badge{CriteriaType: "streak_days", CriteriaValue: 30}, nil, true},
		{"streak_days short", models.Badge{CriteriaType: "streak_days", CriteriaValue: 31}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := badgeSatisfied(tt.def, tt.trips, streak)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBadgeSatisfiedUnknownCriteria(t *testing.T) {
	_, err := badgeSatisfied(models.Badge{CriteriaType: "mystery"}, nil, nil)
	assert.Error(t, err)
}

func TestBadgeStreakDaysWithoutRecord(t *testing.T) {
	got, err := badgeSatisfied(models.Badge{CriteriaType: "streak_days", CriteriaValue: 1}, nil, nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestZeroAlertChallengeIgnoresTripsOutsideWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	now := time.Now().UTC()
	repo.challenges = []models.Challenge{
		{
			ID: 1, Name: "Clean Week", ChallengeType: "weekly",
			CriteriaType: "zero_alert_trips", CriteriaValue: 2, PointsReward: 100,
			StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1), IsActive: true,
		},
	}

	// A clean trip from before the window opened must not advance progress.
	preWindow := &models.Trip{UserID: 1, StartLocation: "A", EndLocation: "B", DurationSeconds: 600, Timestamp: now.AddDate(0, 0, -3)}
	require.NoError(t, repo.SaveTrip(preWindow))

	eng, _ := newTestEngine(repo)
	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
	})
	require.NoError(t, err)
	assert.Empty(t, result.CompletedChallenges)

	uc := repo.userChallenges[[2]uint{1, 1}]
	require.NotNil(t, uc)
	assert.Equal(t, 1, uc.Progress)
	assert.False(t, uc.Completed)
}

func TestHighSafetyStreakChallengeNeverAdvances(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	now := time.Now().UTC()
	repo.challenges = []models.Challenge{
		{
			ID: 1, Name: "Safety Streak", ChallengeType: "weekly",
			CriteriaType: "high_safety_streak", CriteriaValue: 1, PointsReward: 100,
			StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1), IsActive: true,
		},
	}

	eng, _ := newTestEngine(repo)
	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
	})
	require.NoError(t, err)
	assert.Empty(t, result.CompletedChallenges)
	// Only the trip award is credited, never the challenge reward.
	assert.Equal(t, 45, repo.users[1].Points)

	uc := repo.userChallenges[[2]uint{1, 1}]
	require.NotNil(t, uc)
	assert.Equal(t, 0, uc.Progress)
	assert.False(t, uc.Completed)
	assert.Nil(t, uc.CompletedAt)
}

func TestExpiredChallengeIsNotEvaluated(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	now := time.Now().UTC()
	repo.challenges = []models.Challenge{
		{
			ID: 1, Name: "Last Week", ChallengeType: "weekly",
			CriteriaType: "zero_alert_trips", CriteriaValue: 1, PointsReward: 100,
			StartDate: now.AddDate(0, 0, -9), EndDate: now.AddDate(0, 0, -2), IsActive: true,
		},
	}

	eng, _ := newTestEngine(repo)
	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
	})
	require.NoError(t, err)
	assert.Empty(t, result.CompletedChallenges)
	assert.Equal(t, 45, repo.users[1].Points)
	assert.Nil(t, repo.userChallenges[[2]uint{1, 1}])
}
