package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// StoreController handles the rewards store: browsing items and spending
// points on redemptions.
type StoreController struct {
	db     *gorm.DB
	engine *engine.Engine
}

// NewStoreController creates a StoreController.
func NewStoreController(db *gorm.DB, eng *engine.Engine) *StoreController {
	return &StoreController{db: db, engine: eng}
}

// ListItems returns all active store items.
func (s *StoreController) ListItems(ctx *gin.Context) {
	var items []models.StoreItem
	if err := s.db.Where("is_active = ?", true).Order("points_cost").Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load store items")
		return
	}
	utils.Success(ctx, gin.H{"items": items})
}

// RedeemItem exchanges points for a store item and returns the redemption
// reference along with the remaining balance.
func (s *StoreController) RedeemItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	itemID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid item id")
		return
	}

	result, err := s.engine.RedeemItem(userID, itemID)
	if err != nil {
		engineError(ctx, 40061, err)
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	utils.Success(ctx, result)
}

// ListRedemptions returns the caller's redemption history, most recent first.
func (s *StoreController) ListRedemptions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var total int64
	if err := s.db.Model(&models.Redemption{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to count redemptions")
		return
	}

	var redemptions []models.Redemption
	if err := s.db.Where("user_id = ?", userID).Order("redeemed_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&redemptions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to list redemptions")
		return
	}

	utils.Success(ctx, gin.H{
		"items": redemptions,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}
