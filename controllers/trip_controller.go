package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// TripController handles trip submission, the gamification fan-out it
// triggers, and in-trip alert logging.
type TripController struct {
	db     *gorm.DB
	engine *engine.Engine
}

// NewTripController creates a TripController.
func NewTripController(db *gorm.DB, eng *engine.Engine) *TripController {
	return &TripController{db: db, engine: eng}
}

// SaveTrip stores a finalized trip and returns the full gamification outcome:
// points, safety score, streak, and any unlocks the trip produced.
func (t *TripController) SaveTrip(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		StartLocation   string     `json:"start_location" binding:"required"`
		EndLocation     string     `json:"end_location" binding:"required"`
		DurationSeconds int        `json:"duration_seconds"`
		AlertCount      int        `json:"alert_count"`
		YawnCount       int        `json:"yawn_count"`
		Timestamp       *time.Time `json:"timestamp"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	in := engine.TripInput{
		StartLocation:   utils.Sanitize(strings.TrimSpace(req.StartLocation)),
		EndLocation:     utils.Sanitize(strings.TrimSpace(req.EndLocation)),
		DurationSeconds: req.DurationSeconds,
		AlertCount:      req.AlertCount,
		YawnCount:       req.YawnCount,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}

	result, err := t.engine.FinalizeTrip(userID, in)
	if err != nil {
		engineError(ctx, 40021, err)
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	utils.Success(ctx, result)
}

// UpdateTrip applies final alert/yawn counts to an existing trip and re-runs
// the unlock evaluators. Counts may only increase.
func (t *TripController) UpdateTrip(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	tripID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid trip id")
		return
	}

	var req struct {
		AlertCount int `json:"alert_count"`
		YawnCount  int `json:"yawn_count"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	result, err := t.engine.UpdateTripCounts(userID, tripID, req.AlertCount, req.YawnCount)
	if err != nil {
		engineError(ctx, 40023, err)
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	utils.Success(ctx, result)
}

// ListTrips returns the user's trips, most recent first, paginated.
func (t *TripController) ListTrips(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var total int64
	if err := t.db.Model(&models.Trip{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to count trips")
		return
	}

	var trips []models.Trip
	if err := t.db.Where("user_id = ?", userID).Order("timestamp DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&trips).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to list trips")
		return
	}

	utils.Success(ctx, gin.H{
		"items": trips,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// DeleteTrip removes a trip owned by the caller. Earned unlocks and awarded
// points are permanent and survive the deletion.
func (t *TripController) DeleteTrip(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	tripID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid trip id")
		return
	}

	res := t.db.Where("id = ? AND user_id = ?", tripID, userID).Delete(&models.Trip{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to delete trip")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40402, "trip not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "trip deleted"})
}

// LogAlert records one drowsiness alert against an in-progress trip and
// reports whether the emergency escalation fired.
func (t *TripController) LogAlert(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	tripID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid trip id")
		return
	}

	result, err := t.engine.LogAlert(userID, tripID)
	if err != nil {
		engineError(ctx, 40024, err)
		return
	}

	utils.Success(ctx, result)
}
