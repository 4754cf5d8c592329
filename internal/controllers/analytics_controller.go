package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scms/backend/internal/logger"
	"github.com/scms/backend/internal/services"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

func (ac *AnalyticsController) Stats(c *gin.Context) {
	stats, err := ac.analytics.Stats()
	if err != nil {
		logger.WithError(err, "analytics_controller").Error("Failed to fetch statistics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func (ac *AnalyticsController) ByCategory(c *gin.Context) {
	data, err := ac.analytics.ByCategory()
	if err != nil {
		logger.WithError(err, "analytics_controller").Error("Failed to fetch category data")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching category data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func (ac *AnalyticsController) ByStatus(c *gin.Context) {
	data, err := ac.analytics.ByStatus()
	if err != nil {
		logger.WithError(err, "analytics_controller").Error("Failed to fetch status data")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching status data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func (ac *AnalyticsController) Timeline(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	data, err := ac.analytics.Timeline(days)
	if err != nil {
		logger.WithError(err, "analytics_controller").Error("Failed to fetch timeline data")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching timeline data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func (ac *AnalyticsController) TopLocations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	data, err := ac.analytics.TopLocations(limit)
	if err != nil {
		logger.WithError(err, "analytics_controller").Error("Failed to fetch location data")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching location data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func (ac *AnalyticsController) Trends(c *gin.Context) {
	data, err := ac.analytics.Trends()
	if err != nil {
		logger.WithError(err, "analytics_controller").Error("Failed to fetch trend data")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching trend data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
