package models

import "time"

// Achievement is a catalog entry describing a permanent unlock criterion.
// The catalog is seeded once and read-only at runtime.
type Achievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"size:200;not null" json:"description"`
	Icon          string    `gorm:"size:50;not null" json:"icon"`
	CriteriaType  string    `gorm:"size:50;not null" json:"criteria_type"`
	CriteriaValue int       `gorm:"not null" json:"criteria_value"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserAchievement records a permanent unlock. Rows are created once per
// user/achievement pair and never updated or deleted.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	AchievementID uint      `gorm:"index;not null" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}
