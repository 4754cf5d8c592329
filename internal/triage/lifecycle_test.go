package triage

import (
	"testing"
	"time"

	"github.com/scms/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Category:    models.CategoryOthers,
		Location:    "MG Road, Ward 12",
		Description: "Streetlight near the bus stop has been dark for a week",
		NotifyEmail: true,
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{"missing name", func(s *Submission) { s.Name = "" }, "name"},
		{"short name", func(s *Submission) { s.Name = "A" }, "name"},
		{"missing email", func(s *Submission) { s.Email = "" }, "email"},
		{"malformed email", func(s *Submission) { s.Email = "not-an-email" }, "email"},
		{"email without domain dot", func(s *Submission) { s.Email = "asha@example" }, "email"},
		{"email with spaces", func(s *Submission) { s.Email = "asha rao@example.com" }, "email"},
		{"missing phone", func(s *Submission) { s.Phone = "" }, "phone"},
		{"missing category", func(s *Submission) { s.Category = "" }, "category"},
		{"unknown category", func(s *Submission) { s.Category = "Potholes" }, "category"},
		{"missing location", func(s *Submission) { s.Location = "" }, "location"},
		{"missing description", func(s *Submission) { s.Description = "" }, "description"},
		{"short description", func(s *Submission) { s.Description = "too short" }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := ValidateSubmission(s)
			require.Error(t, err)
			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}

	assert.NoError(t, ValidateSubmission(validSubmission()))
}

func TestNewComplaint(t *testing.T) {
	cl := NewClassifier()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	c, err := NewComplaint(validSubmission(), cl, now)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.CategoryStreetLight, c.Category, "classifier should override the fallback")
	assert.Equal(t, models.UrgencyLow, c.Urgency)
	assert.Equal(t, 10, c.PriorityScore)
	assert.Nil(t, c.ResolvedDate)
	assert.Nil(t, c.Feedback)

	require.Len(t, c.Updates, 1)
	assert.Equal(t, SystemActor, c.Updates[0].UpdatedBy)
	assert.Equal(t, "Complaint submitted successfully", c.Updates[0].Message)
	assert.Equal(t, models.StatusPending, c.Updates[0].Status)
}

func TestNewComplaintValidationFailure(t *testing.T) {
	cl := NewClassifier()
	s := validSubmission()
	s.Description = "short"

	c, err := NewComplaint(s, cl, time.Now())
	assert.Nil(t, c)
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestSetStatus(t *testing.T) {
	cl := NewClassifier()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c, err := NewComplaint(validSubmission(), cl, now)
	require.NoError(t, err)

	require.NoError(t, SetStatus(c, models.StatusInProgress, "admin", now.Add(time.Hour)))
	assert.Equal(t, models.StatusInProgress, c.Status)
	assert.Nil(t, c.ResolvedDate)
	require.Len(t, c.Updates, 2)
	assert.Equal(t, "Status changed from Pending to In Progress", c.Updates[1].Message)
	assert.Equal(t, "admin", c.Updates[1].UpdatedBy)
}

func TestSetStatusInvalid(t *testing.T) {
	cl := NewClassifier()
	c, err := NewComplaint(validSubmission(), cl, time.Now())
	require.NoError(t, err)

	err = SetStatus(c, "Escalated", "admin", time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Len(t, c.Updates, 1, "failed transition must not append an audit entry")
}

func TestResolvedDateLatches(t *testing.T) {
	cl := NewClassifier()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c, err := NewComplaint(validSubmission(), cl, now)
	require.NoError(t, err)

	firstResolve := now.Add(24 * time.Hour)
	require.NoError(t, SetStatus(c, models.StatusResolved, "admin", firstResolve))
	require.NotNil(t, c.ResolvedDate)
	assert.Equal(t, firstResolve, *c.ResolvedDate)

	// Move out of Resolved and back in; the original date must survive.
	require.NoError(t, SetStatus(c, models.StatusClosed, "admin", now.Add(48*time.Hour)))
	require.NoError(t, SetStatus(c, models.StatusResolved, "admin", now.Add(72*time.Hour)))
	assert.Equal(t, firstResolve, *c.ResolvedDate)
}

func TestAssign(t *testing.T) {
	cl := NewClassifier()
	now := time.Now()
	c, err := NewComplaint(validSubmission(), cl, now)
	require.NoError(t, err)

	crew := "Ward 12 Maintenance Crew"
	Assign(c, &crew, "admin", now)
	require.NotNil(t, c.AssignedTo)
	assert.Equal(t, crew, *c.AssignedTo)
	assert.Equal(t, models.StatusPending, c.Status, "assignment must not change status")
	require.Len(t, c.Updates, 2)
	assert.Equal(t, "Assigned to Ward 12 Maintenance Crew", c.Updates[1].Message)

	Assign(c, nil, "admin", now)
	assert.Nil(t, c.AssignedTo)
	require.Len(t, c.Updates, 3)
	assert.Equal(t, "Assignment removed", c.Updates[2].Message)
}

func TestRecordFeedback(t *testing.T) {
	cl := NewClassifier()
	now := time.Now()
	c, err := NewComplaint(validSubmission(), cl, now)
	require.NoError(t, err)

	assert.ErrorIs(t, RecordFeedback(c, 5, "great", now), ErrNotResolved)
	assert.ErrorIs(t, RecordFeedback(c, 0, "", now), ErrInvalidRating)
	assert.ErrorIs(t, RecordFeedback(c, 6, "", now), ErrInvalidRating)
	assert.Nil(t, c.Feedback)

	require.NoError(t, SetStatus(c, models.StatusResolved, "admin", now))
	require.NoError(t, RecordFeedback(c, 5, "fixed quickly", now))
	require.NotNil(t, c.Feedback)
	assert.Equal(t, 5, c.Feedback.Rating)
	assert.Equal(t, "fixed quickly", c.Feedback.Comment)

	// A second submission overwrites.
	require.NoError(t, RecordFeedback(c, 3, "came back", now))
	assert.Equal(t, 3, c.Feedback.Rating)
}

func TestRescore(t *testing.T) {
	cl := NewClassifier()
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	c, err := NewComplaint(validSubmission(), cl, created)
	require.NoError(t, err)
	assert.Equal(t, 10, c.PriorityScore)

	Rescore(c, created.AddDate(0, 0, 5))
	assert.Equal(t, 20, c.PriorityScore, "five days of age adds ten")
}
