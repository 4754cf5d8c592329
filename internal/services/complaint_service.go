package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/scms/backend/internal/logger"
	"github.com/scms/backend/internal/models"
	"github.com/scms/backend/internal/triage"
	"gorm.io/gorm"
)

// ComplaintService orchestrates complaint intake and citizen-facing reads.
// All triage decisions live in the triage package; this layer owns id
// allocation and persistence.
type ComplaintService struct {
	db         *gorm.DB
	classifier *triage.Classifier
}

func NewComplaintService(db *gorm.DB, classifier *triage.Classifier) *ComplaintService {
	return &ComplaintService{
		db:         db,
		classifier: classifier,
	}
}

// ComplaintFilter narrows List results. Zero values (and the literal "all")
// mean no filtering on that field.
type ComplaintFilter struct {
	Status   string
	Category string
	Urgency  string
	Search   string
	Page     int
	Limit    int
	Sort     string
}

// Pagination describes one page of a List result.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Submit runs triage over a raw submission and persists the resulting
// complaint. The sequential public id is allocated inside the insert
// transaction so concurrent submissions cannot collide.
func (s *ComplaintService) Submit(sub triage.Submission, images []models.ComplaintImage) (*models.Complaint, error) {
	complaint, err := triage.NewComplaint(sub, s.classifier, time.Now())
	if err != nil {
		return nil, err
	}
	complaint.Images = images

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Unscoped().Model(&models.Complaint{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count complaints: %w", err)
		}
		complaint.ComplaintID = fmt.Sprintf("SCMS%06d", count+1)
		return tx.Create(complaint).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	logger.WithComplaint(complaint.ComplaintID).WithField("category", complaint.Category).
		WithField("urgency", complaint.Urgency).
		WithField("priority_score", complaint.PriorityScore).
		Info("Complaint submitted")

	return complaint, nil
}

// List returns complaints matching the filter, newest first by default.
func (s *ComplaintService) List(f ComplaintFilter) ([]models.Complaint, *Pagination, error) {
	filtered := func() *gorm.DB {
		query := s.db.Model(&models.Complaint{})
		if f.Status != "" && f.Status != "all" {
			query = query.Where("status = ?", f.Status)
		}
		if f.Category != "" && f.Category != "all" {
			query = query.Where("category = ?", f.Category)
		}
		if f.Urgency != "" && f.Urgency != "all" {
			query = query.Where("urgency = ?", f.Urgency)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			query = query.Where(
				"LOWER(location) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
				pattern, pattern, pattern,
			)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count complaints: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 50
	}

	var complaints []models.Complaint
	err := filtered().
		Order(orderClause(f.Sort)).
		Limit(limit).
		Offset((page - 1) * limit).
		Preload("Images").
		Preload("Updates", updateOrder).
		Find(&complaints).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch complaints: %w", err)
	}

	pagination := &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return complaints, pagination, nil
}

// Get looks a complaint up by its public id.
func (s *ComplaintService) Get(complaintID string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.db.
		Preload("Images").
		Preload("Updates", updateOrder).
		Where("complaint_id = ?", complaintID).
		First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, triage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}
	return &complaint, nil
}

// ListByEmail returns a citizen's own complaints, newest first.
func (s *ComplaintService) ListByEmail(email string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.
		Preload("Images").
		Preload("Updates", updateOrder).
		Where("email = ?", strings.ToLower(email)).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch complaints for %s: %w", email, err)
	}
	return complaints, nil
}

// RecordFeedback stores citizen feedback for a resolved complaint. The
// feedback gate and rating bounds live in the triage package.
func (s *ComplaintService) RecordFeedback(complaintID string, rating int, comment string) (*models.Complaint, error) {
	var complaint *models.Complaint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		complaint, err = s.getForUpdate(tx, complaintID)
		if err != nil {
			return err
		}
		if err := triage.RecordFeedback(complaint, rating, comment, time.Now()); err != nil {
			return err
		}
		return tx.Model(complaint).Update("feedback", complaint.Feedback).Error
	})
	if err != nil {
		return nil, err
	}

	logger.WithComplaint(complaintID).WithField("rating", rating).Info("Feedback recorded")
	return complaint, nil
}

// Delete soft-deletes a complaint by public id.
func (s *ComplaintService) Delete(complaintID string) error {
	result := s.db.Where("complaint_id = ?", complaintID).Delete(&models.Complaint{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return triage.ErrNotFound
	}
	logger.WithComplaint(complaintID).Info("Complaint deleted")
	return nil
}

func (s *ComplaintService) getForUpdate(tx *gorm.DB, complaintID string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := tx.
		Preload("Updates", updateOrder).
		Where("complaint_id = ?", complaintID).
		First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, triage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}
	return &complaint, nil
}

func updateOrder(db *gorm.DB) *gorm.DB {
	return db.Order("complaint_updates.id ASC")
}

func orderClause(sort string) string {
	switch sort {
	case "", "-createdAt":
		return "created_at desc"
	case "createdAt":
		return "created_at asc"
	case "-priorityScore":
		return "priority_score desc, created_at desc"
	case "priorityScore":
		return "priority_score asc, created_at desc"
	case "-urgency":
		// High before Medium before Low rather than reverse-alphabetical.
		return "CASE urgency WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END, created_at desc"
	default:
		return "created_at desc"
	}
}
