package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scms/backend/internal/logger"
	"github.com/scms/backend/internal/models"
	"github.com/scms/backend/internal/services"
	"github.com/scms/backend/internal/triage"
)

type AdminController struct {
	admin      *services.AdminService
	complaints *services.ComplaintService
}

func NewAdminController(admin *services.AdminService, complaints *services.ComplaintService) *AdminController {
	return &AdminController{
		admin:      admin,
		complaints: complaints,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignRequest struct {
	AssignedTo *string `json:"assignedTo"`
}

// ListComplaints is the admin view: same filters as the public list but
// highest priority first by default.
func (ac *AdminController) ListComplaints(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	complaints, pagination, err := ac.complaints.List(services.ComplaintFilter{
		Status:  c.Query("status"),
		Urgency: c.Query("urgency"),
		Page:    page,
		Limit:   limit,
		Sort:    c.DefaultQuery("sort", "-priorityScore"),
	})
	if err != nil {
		logger.WithError(err, "admin_controller").Error("Failed to fetch complaints")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching complaints",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       complaints,
		"pagination": pagination,
	})
}

// UpdateStatus transitions a complaint's lifecycle state.
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Status is required",
		})
		return
	}

	complaint, err := ac.admin.SetStatus(c.Param("id"), models.ComplaintStatus(req.Status), actorName(c))
	if err != nil {
		switch {
		case errors.Is(err, triage.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status",
			})
		case errors.Is(err, triage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Complaint not found",
			})
		default:
			logger.WithError(err, "admin_controller").Error("Failed to update status")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error updating status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated successfully",
		"data":    complaint,
	})
}

// Assign sets or clears a complaint's staff assignment.
func (ac *AdminController) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	complaint, err := ac.admin.Assign(c.Param("id"), req.AssignedTo, actorName(c))
	if err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Complaint not found",
			})
			return
		}
		logger.WithError(err, "admin_controller").Error("Failed to assign complaint")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error assigning complaint",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Complaint assigned successfully",
		"data":    complaint,
	})
}

// Prioritize rescores every complaint and reports the batch tally.
func (ac *AdminController) Prioritize(c *gin.Context) {
	processed, failed, err := ac.admin.ReprioritizeAll()
	if err != nil {
		logger.WithError(err, "admin_controller").Error("Failed to prioritize complaints")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error prioritizing complaints",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "All complaints prioritized successfully",
		"count":     processed,
		"failed":    failed,
		"processed": processed,
	})
}

// Delete removes a complaint.
func (ac *AdminController) Delete(c *gin.Context) {
	if err := ac.complaints.Delete(c.Param("id")); err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Complaint not found",
			})
			return
		}
		logger.WithError(err, "admin_controller").Error("Failed to delete complaint")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error deleting complaint",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Complaint deleted successfully",
	})
}

// actorName resolves the audit identity of the authenticated admin.
func actorName(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		if name, ok := username.(string); ok && name != "" {
			return name
		}
	}
	return "admin"
}
