package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/scms/backend/internal/logger"
	"github.com/scms/backend/internal/models"
	"github.com/scms/backend/internal/triage"
	"gorm.io/gorm"
)

// AdminService applies administrator-driven lifecycle mutations. Each
// mutation is a read-modify-write over one complaint inside a transaction;
// the appended audit rows are inserted alongside the field updates.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// SetStatus transitions a complaint and appends the audit entry.
func (s *AdminService) SetStatus(complaintID string, status models.ComplaintStatus, actor string) (*models.Complaint, error) {
	var complaint *models.Complaint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		complaint, err = s.load(tx, complaintID)
		if err != nil {
			return err
		}
		if err := triage.SetStatus(complaint, status, actor, time.Now()); err != nil {
			return err
		}
		return s.persist(tx, complaint)
	})
	if err != nil {
		return nil, err
	}

	logger.WithActor(actor).WithField("complaint_id", complaintID).
		WithField("status", status).Info("Status updated")
	return complaint, nil
}

// Assign sets or clears the staff assignment and appends the audit entry.
func (s *AdminService) Assign(complaintID string, assignee *string, actor string) (*models.Complaint, error) {
	var complaint *models.Complaint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		complaint, err = s.load(tx, complaintID)
		if err != nil {
			return err
		}
		triage.Assign(complaint, assignee, actor, time.Now())
		return s.persist(tx, complaint)
	})
	if err != nil {
		return nil, err
	}

	logger.WithActor(actor).WithField("complaint_id", complaintID).Info("Assignment updated")
	return complaint, nil
}

// ReprioritizeAll rescores every stored complaint from its creation time.
// Records are processed independently; a failure on one is tallied and the
// batch continues.
func (s *AdminService) ReprioritizeAll() (processed, failed int, err error) {
	var complaints []models.Complaint
	if err := s.db.Find(&complaints).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to load complaints: %w", err)
	}

	now := time.Now()
	for i := range complaints {
		complaint := &complaints[i]
		triage.Rescore(complaint, now)
		updateErr := s.db.Model(&models.Complaint{}).
			Where("id = ?", complaint.ID).
			Update("priority_score", complaint.PriorityScore).Error
		if updateErr != nil {
			failed++
			logger.WithError(updateErr, "admin_service").
				WithField("complaint_id", complaint.ComplaintID).
				Warn("Failed to reprioritize complaint")
			continue
		}
		processed++
	}

	logger.Info("Reprioritization completed", map[string]interface{}{
		"processed": processed,
		"failed":    failed,
	})
	return processed, failed, nil
}

func (s *AdminService) load(tx *gorm.DB, complaintID string) (*models.Complaint, error) {
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

// persist writes the mutated complaint fields and inserts any audit entries
// the lifecycle appended in this transaction. Existing audit rows are never
// touched.
func (s *AdminService) persist(tx *gorm.DB, c *models.Complaint) error {
	err := tx.Model(c).Select("status", "resolved_date", "assigned_to").
		Updates(map[string]interface{}{
			"status":        c.Status,
			"resolved_date": c.ResolvedDate,
			"assigned_to":   c.AssignedTo,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}

	for i := range c.Updates {
		if c.Updates[i].ID != 0 {
			continue
		}
		c.Updates[i].ComplaintRef = c.ID
		if err := tx.Create(&c.Updates[i]).Error; err != nil {
			return fmt.Errorf("failed to append update: %w", err)
		}
	}
	return nil
}
