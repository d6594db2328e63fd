package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/config"
	"github.com/Chelo123Mau/P-RENAPP/database"
	_ "github.com/Chelo123Mau/P-RENAPP/docs"
	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/auth"
	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/file"
	"github.com/Chelo123Mau/P-RENAPP/internal/notification"
	"github.com/Chelo123Mau/P-RENAPP/internal/profile"
	"github.com/Chelo123Mau/P-RENAPP/internal/project"
	"github.com/Chelo123Mau/P-RENAPP/internal/review"
	"github.com/Chelo123Mau/P-RENAPP/routes"
	"github.com/Chelo123Mau/P-RENAPP/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	utils.InitRedis(cfg)

	// Seed roles & admin account
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedAdminUser(db, cfg); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin: %v", err))
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auditlog.AuditLog{},
		&profile.ProfileDraft{},
		&profile.UserProfile{},
		&entity.EntityDraft{},
		&entity.Entity{},
		&project.ProjectDraft{},
		&project.Project{},
		&file.File{},
		&review.Decision{},
		&notification.InboxItem{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontOrigin, "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Served uploads only apply to the local storage driver.
	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
			panic(fmt.Sprintf("❌ Failed to create upload directory: %v", err))
		}
		router.Static("/uploads", cfg.UploadDir)
	}

	notifySvc := routes.Setup(router, cfg)
	notification.StartConsumer(context.Background(), cfg, notifySvc)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
