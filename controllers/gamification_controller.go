package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// GamificationController exposes read models for the incentive layer:
// earned achievements and badges, challenge progress, streaks, user stats
// and the leaderboard.
type GamificationController struct {
	db *gorm.DB
}

// NewGamificationController creates a GamificationController.
func NewGamificationController(db *gorm.DB) *GamificationController {
	return &GamificationController{db: db}
}

// GetAchievements returns the full catalog annotated with the caller's earned set.
func (g *GamificationController) GetAchievements(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var defs []models.Achievement
	if err := g.db.Order("id").Find(&defs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load achievements")
		return
	}

	var earned []models.UserAchievement
	if err := g.db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load earned achievements")
		return
	}
	earnedAt := make(map[uint]time.Time, len(earned))
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua.EarnedAt
	}

	items := make([]gin.H, 0, len(defs))
	for _, def := range defs {
		item := gin.H{
			"id":             def.ID,
			"name":           def.Name,
			"description":    def.Description,
			"icon":           def.Icon,
			"criteria_type":  def.CriteriaType,
			"criteria_value": def.CriteriaValue,
			"earned":         false,
		}
		if ts, ok := earnedAt[def.ID]; ok {
			item["earned"] = true
			item["earned_at"] = ts
		}
		items = append(items, item)
	}

	utils.Success(ctx, gin.H{"achievements": items, "earned_count": len(earned)})
}

// GetBadges returns active badges annotated with the caller's earned set.
func (g *GamificationController) GetBadges(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var defs []models.Badge
	if err := g.db.Where("is_active = ?", true).Order("id").Find(&defs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load badges")
		return
	}

	var earned []models.UserBadge
	if err := g.db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load earned badges")
		return
	}
	earnedAt := make(map[uint]time.Time, len(earned))
	for _, ub := range earned {
		earnedAt[ub.BadgeID] = ub.EarnedAt
	}

	items := make([]gin.H, 0, len(defs))
	for _, def := range defs {
		item := gin.H{
			"id":             def.ID,
			"name":           def.Name,
			"description":    def.Description,
			"icon":           def.Icon,
			"criteria_type":  def.CriteriaType,
			"criteria_value": def.CriteriaValue,
			"points_reward":  def.PointsReward,
			"earned":         false,
		}
		if ts, ok := earnedAt[def.ID]; ok {
			item["earned"] = true
			item["earned_at"] = ts
		}
		items = append(items, item)
	}

	utils.Success(ctx, gin.H{"badges": items, "earned_count": len(earned)})
}

// GetChallenges returns currently active challenges with the caller's progress.
func (g *GamificationController) GetChallenges(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now().UTC()
	var defs []models.Challenge
	if err := g.db.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("end_date").Find(&defs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to load challenges")
		return
	}

	items := make([]gin.H, 0, len(defs))
	for _, def := range defs {
		item := gin.H{
			"id":             def.ID,
			"name":           def.Name,
			"description":    def.Description,
			"challenge_type": def.ChallengeType,
			"criteria_type":  def.CriteriaType,
			"criteria_value": def.CriteriaValue,
			"points_reward":  def.PointsReward,
			"start_date":     def.StartDate,
			"end_date":       def.EndDate,
			"progress":       0,
			"completed":      false,
		}
		var uc models.UserChallenge
		if err := g.db.Where("user_id = ? AND challenge_id = ?", userID, def.ID).First(&uc).Error; err == nil {
			item["progress"] = uc.Progress
			item["completed"] = uc.Completed
			if uc.CompletedAt != nil {
				item["completed_at"] = uc.CompletedAt
			}
		}
		items = append(items, item)
	}

	utils.Success(ctx, gin.H{"challenges": items})
}

// GetStreak returns the caller's streak record.
func (g *GamificationController) GetStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var rec models.UserStreak
	if err := g.db.Where("user_id = ?", userID).First(&rec).Error; err != nil {
		// No trips yet: report a zero streak rather than 404.
		utils.Success(ctx, gin.H{"current_streak": 0, "longest_streak": 0, "last_trip_date": nil})
		return
	}

	utils.Success(ctx, gin.H{
		"current_streak": rec.CurrentStreak,
		"longest_streak": rec.LongestStreak,
		"last_trip_date": rec.LastTripDate,
	})
}

// GetUserStats returns the caller's aggregate driving summary using the
// rate-model safety score.
func (g *GamificationController) GetUserStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := g.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	agg, err := aggregateTrips(g.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to aggregate trips")
		return
	}

	var rec models.UserStreak
	_ = g.db.Where("user_id = ?", userID).First(&rec).Error

	utils.Success(ctx, gin.H{
		"points":         user.Points,
		"trip_count":     agg.TripCount,
		"total_duration": agg.TotalDuration,
		"total_alerts":   agg.TotalAlerts,
		"total_yawns":    agg.TotalYawns,
		"safety_score":   engine.RateSafetyScore(int(agg.TotalDuration), int(agg.TotalAlerts), int(agg.TotalYawns)),
		"current_streak": rec.CurrentStreak,
		"longest_streak": rec.LongestStreak,
	})
}

// GetLeaderboard returns the top users ranked by points with their
// rate-model safety score. Results are cached briefly in Redis.
func (g *GamificationController) GetLeaderboard(ctx *gin.Context) {
	limit := 20
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	cacheKey := fmt.Sprintf("cache:leaderboard:limit=%d", limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var rows []struct {
		UserID        uint   `json:"user_id"`
		Email         string `json:"email"`
		Points        int    `json:"points"`
		TripCount     int64  `json:"trip_count"`
		TotalDuration int64  `json:"-"`
		TotalAlerts   int64  `json:"-"`
		TotalYawns    int64  `json:"-"`
	}
	err := g.db.Table("users").
		Select("users.id AS user_id, users.email, users.points, "+
			"COUNT(trips.id) AS trip_count, "+
			"COALESCE(SUM(trips.duration_seconds),0) AS total_duration, "+
			"COALESCE(SUM(trips.alert_count),0) AS total_alerts, "+
			"COALESCE(SUM(trips.yawn_count),0) AS total_yawns").
		Joins("LEFT JOIN trips ON trips.user_id = users.id").
		Where("users.deleted_at IS NULL").
		Group("users.id").
		Order("users.points DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to build leaderboard")
		return
	}

	entries := make([]gin.H, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, gin.H{
			"rank":         i + 1,
			"user_id":      r.UserID,
			"email":        r.Email,
			"points":       r.Points,
			"trip_count":   r.TripCount,
			"safety_score": engine.RateSafetyScore(int(r.TotalDuration), int(r.TotalAlerts), int(r.TotalYawns)),
		})
	}

	payload := gin.H{"leaderboard": entries}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}

type tripAggregate struct {
	TripCount     int64
	TotalDuration int64
	TotalAlerts   int64
	TotalYawns    int64
}

func aggregateTrips(db *gorm.DB, userID uint) (*tripAggregate, error) {
	var agg tripAggregate
	err := db.Model(&models.Trip{}).
		Select("COUNT(id) AS trip_count, "+
			"COALESCE(SUM(duration_seconds),0) AS total_duration, "+
			"COALESCE(SUM(alert_count),0) AS total_alerts, "+
			"COALESCE(SUM(yawn_count),0) AS total_yawns").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
