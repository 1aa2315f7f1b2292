package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/config"
	"github.com/yeremiapane/business-manager/database"
	"github.com/yeremiapane/business-manager/metrics"
	"github.com/yeremiapane/business-manager/realtime"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/router"
	"github.com/yeremiapane/business-manager/services"
	"github.com/yeremiapane/business-manager/utils"
	"gorm.io/gorm"
)

const globalRequestsPerSecond = 50

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := prepareDatabase(db, cfg); err != nil {
		utils.ErrorLogger.Fatalf("Failed to prepare database: %v", err)
	}

	hub := realtime.NewHub()
	m := metrics.New()
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	orders := services.NewOrderService(repository.NewOrderRepository(db), hub, m)

	r := router.SetupRouter(router.Dependencies{
		DB:                 db,
		Tokens:             tokens,
		Orders:             orders,
		Hub:                hub,
		Metrics:            m,
		CORSOrigins:        cfg.CORSOrigins,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		RequestsPerSecond:  globalRequestsPerSecond,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Infof("Listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	utils.InfoLogger.Info("Shutting down...")

	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Info("Server stopped")
}

func prepareDatabase(db *gorm.DB, cfg *config.Config) error {
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	_, err := database.SeedAdmin(db, database.AdminSeed{
		Username: cfg.SeedAdminUsername,
		Password: cfg.SeedAdminPassword,
		Name:     cfg.SeedAdminName,
	})
	return err
}
