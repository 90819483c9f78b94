package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/middleware"
	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/utils"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// engineError translates the engine's error taxonomy into the response envelope.
func engineError(ctx *gin.Context, code int, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, code, err.Error())
	case errors.Is(err, engine.ErrInsufficientPoints), errors.Is(err, engine.ErrOutOfStock):
		utils.Error(ctx, http.StatusConflict, code, err.Error())
	default:
		utils.Error(ctx, http.StatusInternalServerError, code, "internal error")
	}
}

func sanitizeUserResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"provider":   user.Provider,
		"points":     user.Points,
		"is_admin":   user.IsAdmin,
		"created_at": user.CreatedAt,
	}
}
