package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// EmergencyController manages the emergency contacts notified when a trip
// crosses the alert escalation threshold.
type EmergencyController struct {
	db *gorm.DB
}

// NewEmergencyController creates an EmergencyController.
func NewEmergencyController(db *gorm.DB) *EmergencyController {
	return &EmergencyController{db: db}
}

// ListContacts returns the caller's emergency contacts.
func (e *EmergencyController) ListContacts(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var contacts []models.EmergencyContact
	if err := e.db.Where("user_id = ?", userID).Order("id").Find(&contacts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to list contacts")
		return
	}

	utils.Success(ctx, gin.H{"contacts": contacts})
}

// AddContact creates an emergency contact. A contact must carry at least one
// reachable address for its chosen channel.
func (e *EmergencyController) AddContact(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name             string `json:"name" binding:"required,max=100"`
		Phone            string `json:"phone" binding:"max=20"`
		Email            string `json:"email" binding:"omitempty,email,max=120"`
		NotificationType string `json:"notification_type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Phone == "" && req.Email == "" {
		utils.Error(ctx, http.StatusBadRequest, 40071, "contact needs a phone number or an email")
		return
	}

	notifyVia := req.NotificationType
	switch notifyVia {
	case "":
		notifyVia = models.NotifyBoth
	case models.NotifyEmail, models.NotifySMS, models.NotifyBoth:
	default:
		utils.Error(ctx, http.StatusBadRequest, 40072, "notification_type must be email, sms or both")
		return
	}
	if (notifyVia == models.NotifyEmail || notifyVia == models.NotifyBoth) && req.Email == "" {
		utils.Error(ctx, http.StatusBadRequest, 40073, "email notifications require an email address")
		return
	}
	if (notifyVia == models.NotifySMS || notifyVia == models.NotifyBoth) && req.Phone == "" {
		utils.Error(ctx, http.StatusBadRequest, 40074, "sms notifications require a phone number")
		return
	}

	contact := models.EmergencyContact{
		UserID:           userID,
		Name:             utils.Sanitize(strings.TrimSpace(req.Name)),
		Phone:            req.Phone,
		Email:            req.Email,
		NotificationType: notifyVia,
	}
	if err := e.db.Create(&contact).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to create contact")
		return
	}

	utils.Success(ctx, gin.H{"contact": contact})
}

// DeleteContact removes one of the caller's emergency contacts.
func (e *EmergencyController) DeleteContact(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	contactID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40075, "invalid contact id")
		return
	}

	res := e.db.Where("id = ? AND user_id = ?", contactID, userID).Delete(&models.EmergencyContact{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to delete contact")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40403, "contact not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "contact deleted"})
}
