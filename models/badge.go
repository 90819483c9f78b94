package models

import "time"

// Badge is a catalog entry like Achievement but with a point reward and an
// activation flag; deactivated badges are never evaluated.
type Badge struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"size:200;not null" json:"description"`
	Icon          string    `gorm:"size:50;not null" json:"icon"`
	CriteriaType  string    `gorm:"size:50;not null" json:"criteria_type"`
	CriteriaValue int       `gorm:"not null" json:"criteria_value"`
	PointsReward  int       `gorm:"default:0" json:"points_reward"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserBadge records a permanent badge unlock. Earning credits the badge's
// point reward to the user exactly once, at unlock time.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	BadgeID  uint      `gorm:"index;not null" json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}
