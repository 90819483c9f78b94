package models

import "time"

// UserStreak tracks consecutive calendar days with at least one trip.
// LongestStreak never decreases and is always >= CurrentStreak.
type UserStreak struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastTripDate  *time.Time `gorm:"type:date" json:"last_trip_date"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
