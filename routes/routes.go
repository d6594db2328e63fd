package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Chelo123Mau/P-RENAPP/config"
	"github.com/Chelo123Mau/P-RENAPP/database"
	"github.com/Chelo123Mau/P-RENAPP/internal/auditlog"
	"github.com/Chelo123Mau/P-RENAPP/internal/auth"
	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/file"
	"github.com/Chelo123Mau/P-RENAPP/internal/notification"
	"github.com/Chelo123Mau/P-RENAPP/internal/profile"
	"github.com/Chelo123Mau/P-RENAPP/internal/project"
	"github.com/Chelo123Mau/P-RENAPP/internal/report"
	"github.com/Chelo123Mau/P-RENAPP/internal/review"
	"github.com/Chelo123Mau/P-RENAPP/internal/storage"
	"github.com/Chelo123Mau/P-RENAPP/middleware"
)

// Setup wires every repository, service and handler onto the router and
// returns the notification service so the caller can start the Kafka
// consumer against it.
func Setup(r *gin.Engine, cfg *config.Config) notification.Service {
	db := database.DB

	blobs, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("❌ Storage init failed: %v", err)
	}

	// Repositories
	authRepo := auth.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	fileRepo := file.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	entityRepo := entity.NewRepository(db)
	projectRepo := project.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	inboxRepo := notification.NewRepository(db)

	// Services
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, cfg)
	fileSvc := file.NewService(fileRepo, blobs)
	profileSvc := profile.NewService(profileRepo, authRepo, auditSvc)
	entitySvc := entity.NewService(entityRepo, fileSvc, auditSvc)
	projectSvc := project.NewService(projectRepo, entitySvc, fileSvc, auditSvc)
	notifySvc := notification.NewService(inboxRepo, notification.NewProducer(cfg))
	reviewSvc := review.NewService(reviewRepo, authRepo, profileSvc, entitySvc, projectSvc, blobs, notifySvc)

	// Handlers
	authHandler := auth.NewHandler(authSvc)
	fileHandler := file.NewHandler(fileSvc)
	profileHandler := profile.NewHandler(profileSvc)
	entityHandler := entity.NewHandler(entitySvc)
	projectHandler := project.NewHandler(projectSvc)
	reviewHandler := review.NewHandler(reviewSvc)
	auditHandler := auditlog.NewHandler(auditSvc)
	notifyHandler := notification.NewHandler(notifySvc)
	reportHandler := report.NewHandler(blobs)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(300), middleware.AuditContext())

	// Public auth endpoints
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	// Authenticated applicant endpoints
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/register/user/draft", profileHandler.GetDraft)
		protected.POST("/register/user/draft", profileHandler.SaveDraft)
		protected.POST("/register/user/submit", profileHandler.Submit)
		protected.GET("/register/user", profileHandler.Get)

		protected.POST("/upload", fileHandler.Upload)
		protected.GET("/upload/drafts", fileHandler.ListDrafts)

		protected.GET("/entities/draft", entityHandler.GetDraft)
		protected.POST("/entities/draft", entityHandler.SaveDraft)
		protected.POST("/entities", entityHandler.Create)
		protected.GET("/entities/mine", entityHandler.Mine)
		protected.POST("/entities/:id/request-change", entityHandler.RequestChange)

		protected.GET("/projects/draft", projectHandler.GetDraft)
		protected.POST("/projects/draft", projectHandler.SaveDraft)
		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects/mine", projectHandler.Mine)
		protected.POST("/projects/:id/request-change", projectHandler.RequestChange)

		protected.POST("/pdf/generate", reportHandler.Generate)

		protected.GET("/history/mine", auditHandler.HistoryMine)

		protected.GET("/inbox", notifyHandler.Inbox)
		protected.POST("/inbox/:id/read", notifyHandler.MarkRead)
	}

	// Staff endpoints, role-gated only
	staff := protected.Group("")
	staff.Use(middleware.StaffOnly())
	{
		staff.GET("/review/pendientes/users", reviewHandler.PendingUsers)
		staff.GET("/review/pendientes/entities", reviewHandler.PendingEntities)
		staff.GET("/review/pendientes/projects", reviewHandler.PendingProjects)
		staff.GET("/review/pendientes/summary", reviewHandler.Summary)

		staff.GET("/review/users", reviewHandler.Users)
		staff.GET("/users/:id/profile", reviewHandler.UserProfile)
		staff.GET("/users/:id/documents", fileHandler.UserDocuments)
		staff.GET("/entities/:id/documents", fileHandler.EntityDocuments)
		staff.GET("/projects/:id/documents", fileHandler.ProjectDocuments)

		staff.POST("/review/users/:id/approve", reviewHandler.ApproveUser)
		staff.POST("/review/users/:id/observe", reviewHandler.ObserveUser)
		staff.POST("/review/entities/:id/approve", reviewHandler.ApproveEntity)
		staff.POST("/review/entities/:id/observe", reviewHandler.ObserveEntity)
		staff.POST("/review/projects/:id/approve", reviewHandler.ApproveProject)
		staff.POST("/review/projects/:id/observe", reviewHandler.ObserveProject)

		staff.GET("/review/decisions", reviewHandler.Decisions)
		staff.GET("/review/export/:registry", reviewHandler.Export)

		staff.GET("/documents", fileHandler.ListByDocType)
		staff.GET("/auditlogs", auditHandler.List)
	}

	return notifySvc
}
