package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is one finalized drive with its drowsiness telemetry. Alert and yawn
// counts only ever increase after creation; there is no decrement path.
type Trip struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	StartLocation   string    `gorm:"size:200;not null" json:"start_location"`
	EndLocation     string    `gorm:"size:200;not null" json:"end_location"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	YawnCount       int       `gorm:"default:0" json:"yawn_count"`
	AlertCount      int       `gorm:"default:0" json:"alert_count"`
	Timestamp       time.Time `gorm:"index" json:"timestamp"`
	CreatedAt       time.Time `json:"created_at"`
}

// BeforeCreate defaults the telemetry timestamp to now for live-recorded trips.
func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return nil
}
