package engine

// Criteria vocabularies are closed sets. Evaluation dispatches over these
// typed constants; an unknown criteria string coming from the catalog is an
// evaluation error for that definition only, never a panic.

// AchievementCriteria selects how an achievement threshold is tested.
type AchievementCriteria string

const (
	AchievementFirstTrip             AchievementCriteria = "first_trip"
	AchievementZeroAlerts            AchievementCriteria = "zero_alerts"
	AchievementLongTrip              AchievementCriteria = "long_trip"
	AchievementWeeklyTrips           AchievementCriteria = "weekly_trips"
	AchievementTotalTrips            AchievementCriteria = "total_trips"
	AchievementConsecutiveZeroAlerts AchievementCriteria = "consecutive_zero_alerts"
	AchievementPerfectScores         AchievementCriteria = "perfect_scores"
)

// BadgeCriteria selects how a badge threshold is tested.
type BadgeCriteria string

const (
	BadgeNightTrips      BadgeCriteria = "night_trips"
	BadgeLongSafeTrip    BadgeCriteria = "long_safe_trip"
	BadgeZeroAlertTrips  BadgeCriteria = "zero_alert_trips"
	BadgeMorningTrips    BadgeCriteria = "morning_trips"
	BadgeStreakDays      BadgeCriteria = "streak_days"
	BadgeHighSafetyTrips BadgeCriteria = "high_safety_trips"
)

// ChallengeCriteria selects how challenge progress advances.
type ChallengeCriteria string

const (
	ChallengeZeroAlertTrips   ChallengeCriteria = "zero_alert_trips"
	ChallengeDailyTrip        ChallengeCriteria = "daily_trip"
	ChallengeHighSafetyStreak ChallengeCriteria = "high_safety_streak"
)
