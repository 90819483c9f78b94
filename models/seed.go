package models

import (
	"time"

	"gorm.io/gorm"
)

// SeedCatalogs populates the catalog tables (achievements, badges, challenges,
// store items) when they are empty. Safe to call on every boot; existing
// catalogs are left untouched.
func SeedCatalogs(db *gorm.DB) error {
	if err := seedAchievements(db); err != nil {
		return err
	}
	if err := seedBadges(db); err != nil {
		return err
	}
	if err := seedChallenges(db); err != nil {
		return err
	}
	return seedStoreItems(db)
}

func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	achievements := []Achievement{
		{Name: "Road Warrior", Description: "Complete your first trip", Icon: "🛣️", CriteriaType: "first_trip", CriteriaValue: 1},
		{Name: "Guardian Angel", Description: "Complete 5 trips with 0 alerts", Icon: "👼", CriteriaType: "zero_alerts", CriteriaValue: 5},
		{Name: "Long Hauler", Description: "Drive for 2+ hours in one trip", Icon: "🚛", CriteriaType: "long_trip", CriteriaValue: 7200},
		{Name: "Weekly Champion", Description: "Complete 7 trips in 7 days", Icon: "🏆", CriteriaType: "weekly_trips", CriteriaValue: 7},
		{Name: "Centurion", Description: "Reach 100 total trips", Icon: "💯", CriteriaType: "total_trips", CriteriaValue: 100},
		{Name: "Eagle Eye", Description: "Complete 10 consecutive trips with 0 alerts", Icon: "🦅", CriteriaType: "consecutive_zero_alerts", CriteriaValue: 10},
		{Name: "Perfect Score", Description: "Achieve 100 safety score 5 times", Icon: "⭐", CriteriaType: "perfect_scores", CriteriaValue: 5},
	}
	return db.Create(&achievements).Error
}

func seedBadges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	badges := []Badge{
		{Name: "Night Owl", Description: "Complete 5 safe trips between 10 PM - 5 AM", Icon: "🦉", CriteriaType: "night_trips", CriteriaValue: 5, PointsReward: 50, IsActive: true},
		{Name: "Marathon Driver", Description: "Complete a trip longer than 3 hours with perfect safety", Icon: "🏃", CriteriaType: "long_safe_trip", CriteriaValue: 10800, PointsReward: 100, IsActive: true},
		{Name: "Zero Hero", Description: "Complete 10 trips with zero alerts", Icon: "🦸", CriteriaType: "zero_alert_trips", CriteriaValue: 10, PointsReward: 75, IsActive: true},
		{Name: "Early Bird", Description: "Complete 5 trips between 5 AM - 8 AM", Icon: "🐦", CriteriaType: "morning_trips", CriteriaValue: 5, PointsReward: 50, IsActive: true},
		{Name: "Streak Master", Description: "Maintain a 30-day driving streak", Icon: "🔥", CriteriaType: "streak_days", CriteriaValue: 30, PointsReward: 150, IsActive: true},
		{Name: "Safety Champion", Description: "Achieve 95+ safety score on 20 trips", Icon: "🛡️", CriteriaType: "high_safety_trips", CriteriaValue: 20, PointsReward: 200, IsActive: true},
	}
	return db.Create(&badges).Error
}

func seedChallenges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Challenge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now().UTC()
	weekEnd := now.AddDate(0, 0, 7)
	challenges := []Challenge{
		{Name: "Weekly Zero Alert Challenge", Description: "Complete 5 trips with 0 alerts this week", ChallengeType: "weekly", CriteriaType: "zero_alert_trips", CriteriaValue: 5, PointsReward: 200, StartDate: now, EndDate: weekEnd, IsActive: true},
		{Name: "Daily Driver", Description: "Complete at least 1 trip today", ChallengeType: "daily", CriteriaType: "daily_trip", CriteriaValue: 1, PointsReward: 50, StartDate: now, EndDate: now.AddDate(0, 0, 1), IsActive: true},
		{Name: "Perfect Week", Description: "Maintain 90+ safety score for 7 consecutive days", ChallengeType: "weekly", CriteriaType: "high_safety_streak", CriteriaValue: 7, PointsReward: 300, StartDate: now, EndDate: weekEnd, IsActive: true},
	}
	return db.Create(&challenges).Error
}

func seedStoreItems(db *gorm.DB) error {
	var count int64
	if err := db.Model(&StoreItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	items := []StoreItem{
		{Name: "Premium Dashboard Theme", Description: "Unlock exclusive dark mode theme", Icon: "🎨", PointsCost: 500, Category: "cosmetic", Stock: UnlimitedStock, IsActive: true},
		{Name: "Extended Analytics", Description: "30 days of detailed trip analytics", Icon: "📊", PointsCost: 1000, Category: "feature", Stock: UnlimitedStock, IsActive: true},
		{Name: "Priority Support", Description: "24/7 priority customer support for 1 month", Icon: "💬", PointsCost: 750, Category: "feature", Stock: UnlimitedStock, IsActive: true},
		{Name: "Gift Card $10", Description: "Amazon gift card worth $10", Icon: "🎁", PointsCost: 2000, Category: "discount", Stock: UnlimitedStock, IsActive: true},
		{Name: "Custom Alert Sounds", Description: "Personalize your alert notifications", Icon: "🔔", PointsCost: 300, Category: "cosmetic", Stock: UnlimitedStock, IsActive: true},
		{Name: "Safety Certificate", Description: "Digital safe driving certificate", Icon: "📜", PointsCost: 1500, Category: "discount", Stock: UnlimitedStock, IsActive: true},
	}
	return db.Create(&items).Error
}
