package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/scms/backend/internal/controllers"
	"github.com/scms/backend/internal/middleware"
	"github.com/scms/backend/internal/services"
	"github.com/scms/backend/internal/triage"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	classifier := triage.NewClassifier()

	complaintService := services.NewComplaintService(db, classifier)
	adminService := services.NewAdminService(db)
	analyticsService := services.NewAnalyticsService(db)

	authController := controllers.NewAuthController(db)
	complaintController := controllers.NewComplaintController(complaintService)
	adminController := controllers.NewAdminController(adminService, complaintService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)

	// Uploaded images are served statically; only metadata lives in the DB.
	r.Static("/uploads", middleware.UploadDir())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/admin/login", authController.AdminLogin)
			auth.GET("/verify", middleware.AuthMiddleware(), authController.Verify)
		}

		complaints := api.Group("/complaints")
		{
			complaints.POST("", complaintController.Create)
			complaints.GET("", complaintController.List)
			complaints.GET("/:id", complaintController.Get)
			complaints.GET("/user/:email", complaintController.ListByUser)
			complaints.POST("/:id/feedback", complaintController.SubmitFeedback)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/complaints", adminController.ListComplaints)
			admin.PATCH("/complaints/:id/status", adminController.UpdateStatus)
			admin.PATCH("/complaints/:id/assign", adminController.Assign)
			admin.POST("/complaints/prioritize", adminController.Prioritize)
			admin.DELETE("/complaints/:id", adminController.Delete)
		}

		analytics := api.Group("/analytics")
		analytics.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			analytics.GET("/stats", analyticsController.Stats)
			analytics.GET("/by-category", analyticsController.ByCategory)
			analytics.GET("/by-status", analyticsController.ByStatus)
			analytics.GET("/timeline", analyticsController.Timeline)
			analytics.GET("/top-locations", analyticsController.TopLocations)
			analytics.GET("/trends", analyticsController.Trends)
		}
	}
}
