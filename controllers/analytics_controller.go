package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// AnalyticsController serves per-user driving analytics built on the
// penalty-model score.
type AnalyticsController struct {
	db *gorm.DB
}

// NewAnalyticsController creates an AnalyticsController.
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{db: db}
}

// GetSummary returns the caller's driving summary: totals, the overall
// penalty-model score, and a recent per-trip score series for charting.
func (a *AnalyticsController) GetSummary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var trips []models.Trip
	if err := a.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&trips).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load trips")
		return
	}

	totalDuration, totalAlerts, totalYawns := 0, 0, 0
	for _, t := range trips {
		totalDuration += t.DurationSeconds
		totalAlerts += t.AlertCount
		totalYawns += t.YawnCount
	}

	const seriesLimit = 30
	series := make([]gin.H, 0, seriesLimit)
	for _, t := range trips {
		if len(series) == seriesLimit {
			break
		}
		series = append(series, gin.H{
			"trip_id":      t.ID,
			"timestamp":    t.Timestamp,
			"safety_score": engine.TripSafetyScore(t.DurationSeconds, t.AlertCount, t.YawnCount),
			"alert_count":  t.AlertCount,
			"yawn_count":   t.YawnCount,
		})
	}

	utils.Success(ctx, gin.H{
		"trip_count":     len(trips),
		"total_duration": totalDuration,
		"total_alerts":   totalAlerts,
		"total_yawns":    totalYawns,
		"overall_score":  engine.OverallSafetyScore(trips),
		"recent_scores":  series,
	})
}

// GetWeeklyActivity returns trip counts and alert totals per day for the
// trailing seven days, newest day last.
func (a *AnalyticsController) GetWeeklyActivity(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	var trips []models.Trip
	if err := a.db.Where("user_id = ? AND timestamp >= ?", userID, windowStart).Find(&trips).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to load trips")
		return
	}

	type dayBucket struct {
		Date       string `json:"date"`
		TripCount  int    `json:"trip_count"`
		AlertCount int    `json:"alert_count"`
		YawnCount  int    `json:"yawn_count"`
	}
	days := make([]dayBucket, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		d := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		days[i] = dayBucket{Date: d}
		index[d] = i
	}
	for _, t := range trips {
		key := t.Timestamp.UTC().Format("2006-01-02")
		if i, ok := index[key]; ok {
			days[i].TripCount++
			days[i].AlertCount += t.AlertCount
			days[i].YawnCount += t.YawnCount
		}
	}

	utils.Success(ctx, gin.H{"days": days})
}
