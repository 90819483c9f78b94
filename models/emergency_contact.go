package models

import "time"

// Notification channel preferences for an emergency contact.
const (
	NotifyEmail = "email"
	NotifySMS   = "sms"
	NotifyBoth  = "both"
)

// EmergencyContact is a person notified when a trip crosses the alert
// escalation threshold. At least one of phone or email must be present.
type EmergencyContact struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Phone            string    `gorm:"size:20" json:"phone"`
	Email            string    `gorm:"size:120" json:"email"`
	NotificationType string    `gorm:"size:20;default:'both'" json:"notification_type"`
	CreatedAt        time.Time `json:"created_at"`
}
