package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scms/backend/internal/db"
	"github.com/scms/backend/internal/logger"
	"github.com/scms/backend/internal/middleware"
	"github.com/scms/backend/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "http://localhost:8000"
		if corsOrigin := os.Getenv("CORS_ORIGIN"); corsOrigin != "" {
			origin = corsOrigin
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func main() {
	logger.Initialize()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using environment variables", nil)
	}

	db.Connect()
	db.AutoMigrate()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.CustomLoggerMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		var dbError string

		if db.DB != nil {
			sqlDB, err := db.DB.DB()
			if err != nil {
				dbStatus = "error"
				dbError = err.Error()
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = "error"
				dbError = err.Error()
			}
		} else {
			dbStatus = "error"
			dbError = "database connection not initialized"
		}

		statusCode := http.StatusOK
		overallStatus := "ok"
		if dbStatus != "ok" {
			overallStatus = "error"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    overallStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   "1.0.0",
			"services": gin.H{
				"database": gin.H{
					"status": dbStatus,
					"error":  dbError,
				},
			},
		})
	})

	routes.SetupRoutes(r, db.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	logger.Info("Starting SCMS backend server", map[string]interface{}{
		"port":     port,
		"gin_mode": gin.Mode(),
	})
	fmt.Printf("Server running on port %s\n", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	logger.Info("Shutting down server gracefully...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		logger.Info("Server exited gracefully", nil)
	}
}
