package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// AdminController serves platform-wide statistics and user administration.
// All routes behind it require an admin account.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// GetPlatformStats returns counts across the whole platform.
func (a *AdminController) GetPlatformStats(ctx *gin.Context) {
	var userCount, tripCount, redemptionCount int64
	var totalPoints int64

	if err := a.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to count users")
		return
	}
	if err := a.db.Model(&models.Trip{}).Count(&tripCount).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to count trips")
		return
	}
	if err := a.db.Model(&models.Redemption{}).Count(&redemptionCount).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to count redemptions")
		return
	}
	if err := a.db.Model(&models.User{}).Select("COALESCE(SUM(points),0)").Scan(&totalPoints).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to sum points")
		return
	}

	var alertTotals struct {
		TotalAlerts int64
		TotalYawns  int64
	}
	if err := a.db.Model(&models.Trip{}).
		Select("COALESCE(SUM(alert_count),0) AS total_alerts, COALESCE(SUM(yawn_count),0) AS total_yawns").
		Scan(&alertTotals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50094, "failed to sum alerts")
		return
	}

	utils.Success(ctx, gin.H{
		"user_count":        userCount,
		"trip_count":        tripCount,
		"redemption_count":  redemptionCount,
		"points_in_wallets": totalPoints,
		"total_alerts":      alertTotals.TotalAlerts,
		"total_yawns":       alertTotals.TotalYawns,
	})
}

// ListUsers returns a paginated user listing for administration.
func (a *AdminController) ListUsers(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var total int64
	if err := a.db.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to count users")
		return
	}

	var users []models.User
	if err := a.db.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50096, "failed to list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, sanitizeUserResponse(u))
	}

	utils.Success(ctx, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// UpsertStoreItem creates or updates a store item. Stock -1 marks the item
// as unlimited.
func (a *AdminController) UpsertStoreItem(ctx *gin.Context) {
	var req struct {
		ID          uint   `json:"id"`
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description" binding:"max=200"`
		Icon        string `json:"icon" binding:"max=50"`
		PointsCost  int    `json:"points_cost" binding:"required,gt=0"`
		Category    string `json:"category" binding:"max=50"`
		Stock       int    `json:"stock"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}
	if req.Stock < models.UnlimitedStock {
		utils.Error(ctx, http.StatusBadRequest, 40091, "stock must be -1 (unlimited) or non-negative")
		return
	}

	item := models.StoreItem{
		ID:          req.ID,
		Name:        utils.Sanitize(req.Name),
		Description: utils.Sanitize(req.Description),
		Icon:        req.Icon,
		PointsCost:  req.PointsCost,
		Category:    req.Category,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := a.db.Save(&item).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50097, "failed to save store item")
		return
	}

	utils.Success(ctx, gin.H{"item": item})
}
