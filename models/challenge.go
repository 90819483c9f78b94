package models

import "time"

// Challenge is a time-windowed goal. It is only evaluated while active and
// between StartDate and EndDate inclusive.
type Challenge struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Description   string    `gorm:"size:200;not null" json:"description"`
	ChallengeType string    `gorm:"size:50;not null" json:"challenge_type"`
	CriteriaType  string    `gorm:"size:50;not null" json:"criteria_type"`
	CriteriaValue int       `gorm:"not null" json:"criteria_value"`
	PointsReward  int       `gorm:"not null" json:"points_reward"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserChallenge tracks one user's progress against a challenge. Once
// completed, progress updates cease and the row is never reopened.
type UserChallenge struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	ChallengeID uint       `gorm:"index;not null" json:"challenge_id"`
	Progress    int        `gorm:"default:0" json:"progress"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}
