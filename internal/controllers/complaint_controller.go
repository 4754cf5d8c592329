package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scms/backend/internal/logger"
	"github.com/scms/backend/internal/middleware"
	"github.com/scms/backend/internal/models"
	"github.com/scms/backend/internal/services"
	"github.com/scms/backend/internal/triage"
)

type ComplaintController struct {
	complaints *services.ComplaintService
}

func NewComplaintController(complaints *services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaints: complaints}
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create handles a citizen submission: form fields plus optional images and
// a coordinates JSON string.
func (cc *ComplaintController) Create(c *gin.Context) {
	images, err := middleware.SaveImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	sub := triage.Submission{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		Category:    models.ComplaintCategory(c.PostForm("category")),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		NotifyEmail: c.DefaultPostForm("notifyEmail", "true") == "true",
		NotifySMS:   c.PostForm("notifySMS") == "true",
	}

	// Malformed coordinates are dropped, not rejected; they are optional.
	if raw := c.PostForm("coordinates"); raw != "" {
		var coords models.Coordinates
		if err := json.Unmarshal([]byte(raw), &coords); err == nil {
			sub.Coordinates = &coords
		}
	}

	complaint, err := cc.complaints.Submit(sub, images)
	if err != nil {
		middleware.DiscardImages(images)
		if ve, ok := triage.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": ve.Reason,
				"field":   ve.Field,
			})
			return
		}
		logger.WithError(err, "complaint_controller").Error("Failed to create complaint")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error creating complaint",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Complaint submitted successfully",
		"data":    complaint,
	})
}

// List returns complaints with optional filters, search, and pagination.
func (cc *ComplaintController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	complaints, pagination, err := cc.complaints.List(services.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Urgency:  c.Query("urgency"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
		Sort:     c.DefaultQuery("sort", "-createdAt"),
	})
	if err != nil {
		logger.WithError(err, "complaint_controller").Error("Failed to fetch complaints")
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

// Get returns a single complaint by public id.
func (cc *ComplaintController) Get(c *gin.Context) {
	complaint, err := cc.complaints.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Complaint not found",
			})
			return
		}
		logger.WithError(err, "complaint_controller").Error("Failed to fetch complaint")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching complaint",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// ListByUser returns the complaints submitted from one email address.
func (cc *ComplaintController) ListByUser(c *gin.Context) {
	complaints, err := cc.complaints.ListByEmail(c.Param("email"))
	if err != nil {
		logger.WithError(err, "complaint_controller").Error("Failed to fetch user complaints")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching user complaints",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
	})
}

// SubmitFeedback records citizen feedback on a resolved complaint.
func (cc *ComplaintController) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	complaint, err := cc.complaints.RecordFeedback(c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, triage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Complaint not found",
			})
		case errors.Is(err, triage.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Rating must be between 1 and 5",
			})
		case errors.Is(err, triage.ErrNotResolved):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Feedback can only be submitted for resolved complaints",
			})
		default:
			logger.WithError(err, "complaint_controller").Error("Failed to submit feedback")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error submitting feedback",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback submitted successfully",
		"data":    complaint,
	})
}
