package main

import (
	"github.com/im-Amrith/DriveGuard1/config"
	"github.com/im-Amrith/DriveGuard1/engine"
	"github.com/im-Amrith/DriveGuard1/models"
	"github.com/im-Amrith/DriveGuard1/routes"
	"github.com/im-Amrith/DriveGuard1/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Trip{},
		&models.EmergencyContact{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.UserStreak{},
		&models.StoreItem{},
		&models.Redemption{},
	)

	if err := models.SeedCatalogs(db); err != nil {
		utils.Sugar.Fatalf("catalog seeding failed: %v", err)
	}

	repo := engine.NewGormRepository(db)
	notifier := engine.NewEmailNotifier(utils.Sugar)
	eng := engine.New(repo, notifier, utils.Sugar)

	r := routes.SetupRouter(db, eng)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
