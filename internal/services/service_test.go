package services

import (
	"fmt"
	"testing"

	"github.com/scms/backend/internal/models"
	"github.com/scms/backend/internal/triage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test. The shared
// cache keeps every pooled connection pointed at the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.ComplaintImage{},
		&models.ComplaintUpdate{},
	))
	return db
}

func testSubmission() triage.Submission {
	return triage.Submission{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Category:    models.CategoryOthers,
		Location:    "MG Road, Ward 12",
		Description: "Streetlight near the bus stop has been dark for a week",
		NotifyEmail: true,
	}
}

func submitComplaint(t *testing.T, svc *ComplaintService, mutate func(*triage.Submission)) *models.Complaint {
	t.Helper()

	sub := testSubmission()
	if mutate != nil {
		mutate(&sub)
	}
	complaint, err := svc.Submit(sub, nil)
	require.NoError(t, err)
	return complaint
}
