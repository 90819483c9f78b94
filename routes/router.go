package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/im-Amrith/DriveGuard1/config"
	"github.com/im-Amrith/DriveGuard1/controllers"
	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/middleware"
	"github.com/im-Amrith/DriveGuard1/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, eng *engine.Engine) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	tripController := controllers.NewTripController(db, eng)
	gamificationController := controllers.NewGamificationController(db)
	storeController := controllers.NewStoreController(db, eng)
	emergencyController := controllers.NewEmergencyController(db)
	analyticsController := controllers.NewAnalyticsController(db)
	adminController := controllers.NewAdminController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/google/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/google/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/trips", tripController.SaveTrip)
	protected.GET("/trips", tripController.ListTrips)
	protected.PUT("/trips/:id", tripController.UpdateTrip)
	protected.DELETE("/trips/:id", tripController.DeleteTrip)
	protected.POST("/trips/:id/alerts", tripController.LogAlert)

	protected.GET("/achievements", gamificationController.GetAchievements)
	protected.GET("/badges", gamificationController.GetBadges)
	protected.GET("/challenges", gamificationController.GetChallenges)
	protected.GET("/streak", gamificationController.GetStreak)
	protected.GET("/stats", gamificationController.GetUserStats)
	protected.GET("/leaderboard", gamificationController.GetLeaderboard)

	protected.GET("/store/items", storeController.ListItems)
	protected.POST("/store/items/:id/redeem", storeController.RedeemItem)
	protected.GET("/store/redemptions", storeController.ListRedemptions)

	protected.GET("/emergency-contacts", emergencyController.ListContacts)
	protected.POST("/emergency-contacts", emergencyController.AddContact)
	protected.DELETE("/emergency-contacts/:id", emergencyController.DeleteContact)

	protected.GET("/analytics/summary", analyticsController.GetSummary)
	protected.GET("/analytics/weekly", analyticsController.GetWeeklyActivity)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.AdminRequired(db))
	adminGroup.GET("/stats", adminController.GetPlatformStats)
	adminGroup.GET("/users", adminController.ListUsers)
	adminGroup.POST("/store/items", adminController.UpsertStoreItem)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
