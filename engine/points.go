package engine

// Point award composition for a finalized trip.
const (
	BasePoints         = 10
	ZeroAlertBonus     = 20
	ZeroYawnBonus      = 10
	HighScoreBonus     = 5
	HighScoreThreshold = 90
)

// TripAward is the outcome of scoring a finalized trip. Callers need both
// the point award and the penalty-model score it was derived from.
type TripAward struct {
	Points      int `json:"points"`
	SafetyScore int `json:"safety_score"`
}

// CalculateTripAward converts raw trip telemetry into a point award. Pure
// function of its inputs; crediting the user is the caller's job.
func CalculateTripAward(durationSeconds, alertCount, yawnCount int) TripAward {
	score := TripSafetyScore(durationSeconds, alertCount, yawnCount)

	points := BasePoints
	if alertCount == 0 {
		points += ZeroAlertBonus
	}
	if yawnCount == 0 {
		points += ZeroYawnBonus
	}
	if score > HighScoreThreshold {
		points += HighScoreBonus
	}

	return TripAward{Points: points, SafetyScore: score}
}
