package models

import "time"

// UnlimitedStock is the sentinel stock value for items that never run out.
const UnlimitedStock = -1

// StoreItem is a redeemable reward in the points store. Stock of -1 means
// unlimited; unlimited stock is never decremented.
type StoreItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:200;not null" json:"description"`
	Icon        string    `gorm:"size:50;not null" json:"icon"`
	PointsCost  int       `gorm:"not null" json:"points_cost"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Stock       int       `gorm:"default:-1" json:"stock"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Redemption is an append-only ledger row recording a points debit.
type Redemption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	StoreItemID uint      `gorm:"index;not null" json:"store_item_id"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	Reference   string    `gorm:"size:36" json:"reference"`
	Status      string    `gorm:"size:20;default:'completed'" json:"status"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}
