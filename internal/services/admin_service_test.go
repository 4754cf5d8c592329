package services

import (
	"testing"
	"time"

	"github.com/scms/backend/internal/models"
	"github.com/scms/backend/internal/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatusPersistsAuditTrail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, triage.NewClassifier())
	admin := NewAdminService(db)

	created := submitComplaint(t, svc, nil)

	updated, err := admin.SetStatus(created.ComplaintID, models.StatusInProgress, "ward-officer")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	loaded, err := svc.Get(created.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, loaded.Status)
	require.Len(t, loaded.Updates, 2)
	assert.Equal(t, "Complaint submitted successfully", loaded.Updates[0].Message)
	assert.Equal(t, "Status changed from Pending to In Progress", loaded.Updates[1].Message)
	assert.Equal(t, "ward-officer", loaded.Updates[1].UpdatedBy)
}

func TestSetStatusReturnsFullAuditTrail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, triage.NewClassifier())
	admin := NewAdminService(db)

	created := submitComplaint(t, svc, nil)

	_, err := admin.SetStatus(created.ComplaintID, models.StatusInProgress, "admin")
	require.NoError(t, err)
	updated, err := admin.SetStatus(created.ComplaintID, models.StatusResolved, "admin")
	require.NoError(t, err)

	// The mutation response carries the whole trail, not just the new entry.
	require.Len(t, updated.Updates, 3)
	assert.Equal(t, "Complaint submitted successfully", updated.Updates[0].Message)
	assert.Equal(t, "Status changed from Pending to In Progress", updated.Updates[1].Message)
	assert.Equal(t, "Status changed from In Progress to Resolved", updated.Updates[2].Message)

	loaded, err := svc.Get(created.ComplaintID)
	require.NoError(t, err)
	assert.Len(t, loaded.Updates, 3)
}

func TestSetStatusInvalidValue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, triage.NewClassifier())
	admin := NewAdminService(db)

	created := submitComplaint(t, svc, nil)

	_, err := admin.SetStatus(created.ComplaintID, "Escalated", "admin")
	assert.ErrorIs(t, err, triage.ErrInvalidStatus)

	loaded, err := svc.Get(created.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, loaded.Status)
	assert.Len(t, loaded.Updates, 1)
}

func TestSetStatusNotFound(t *testing.T) {
	db := setupTestDB(t)
	admin := NewAdminService(db)

	_, err := admin.SetStatus("SCMS999999", models.StatusResolved, "admin")
	assert.ErrorIs(t, err, triage.ErrNotFound)
}

func TestResolvedDatePersistsAcrossTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, triage.NewClassifier())
	admin := NewAdminService(db)

	created := submitComplaint(t, svc, nil)

	resolved, err := admin.SetStatus(created.ComplaintID, models.StatusResolved, "admin")
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedDate)
	firstResolve := *resolved.ResolvedDate

	_, err = admin.SetStatus(created.ComplaintID, models.StatusClosed, "admin")
	require.NoError(t, err)
	again, err := admin.SetStatus(created.ComplaintID, models.StatusResolved, "admin")
	require.NoError(t, err)

	require.NotNil(t, again.ResolvedDate)
	assert.WithinDuration(t, firstResolve, *again.ResolvedDate, time.Second)

	loaded, err := svc.Get(created.ComplaintID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ResolvedDate)
	assert.Len(t, loaded.Updates, 4)
}

func TestAssignPersistsAndClears(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, triage.NewClassifier())
	admin := NewAdminService(db)

	created := submitComplaint(t, svc, nil)

	crew := "Ward 12 Maintenance Crew"
	updated, err := admin.Assign(created.ComplaintID, &crew, "admin")
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, crew, *updated.AssignedTo)
	assert.Equal(t, models.StatusPending, updated.Status)

	cleared, err := admin.Assign(created.ComplaintID, nil, "admin")
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedTo)

	loaded, err := svc.Get(created.ComplaintID)
	require.NoError(t, err)
	assert.Nil(t, loaded.AssignedTo)
	require.Len(t, loaded.Updates, 3)
	assert.Equal(t, "Assigned to Ward 12 Maintenance Crew", loaded.Updates[1].Message)
	assert.Equal(t, "Assignment removed", loaded.Updates[2].Message)
}

func TestReprioritizeAll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplaintService(db, triage.NewClassifier())
	admin := NewAdminService(db)

	fresh := submitComplaint(t, svc, nil)
	aged := submitComplaint(t, svc, func(s *triage.Submission) {
		s.Email = "ravi@example.com"
	})

	// Age the second complaint by backdating its creation.
	backdated := time.Now().AddDate(0, 0, -6)
	require.NoError(t, db.Model(&models.Complaint{}).
		Where("complaint_id = ?", aged.ComplaintID).
		Update("created_at", backdated).Error)

	processed, failed, err := admin.ReprioritizeAll()
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Zero(t, failed)

	freshLoaded, err := svc.Get(fresh.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, 10, freshLoaded.PriorityScore)

	agedLoaded, err := svc.Get(aged.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, 22, agedLoaded.PriorityScore, "six days of age adds twelve")
}

func TestReprioritizeAllEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	admin := NewAdminService(db)

	processed, failed, err := admin.ReprioritizeAll()
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Zero(t, failed)
}
