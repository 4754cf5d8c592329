package triage

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/scms/backend/internal/models"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	// SystemActor is the audit identity for updates the system writes itself.
	SystemActor = "System"

	minNameLength        = 2
	minDescriptionLength = 10
)

// Submission is a raw citizen complaint before triage.
type Submission struct {
	Name        string
	Email       string
	Phone       string
	Category    models.ComplaintCategory
	Location    string
	Description string
	Coordinates *models.Coordinates
	NotifyEmail bool
	NotifySMS   bool
}

// ValidateSubmission checks required fields in a fixed order and reports
// the first failing field.
func ValidateSubmission(s Submission) error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if len(strings.TrimSpace(s.Name)) < minNameLength {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("name must be at least %d characters", minNameLength)}
	}
	if strings.TrimSpace(s.Email) == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(s.Email)) {
		return &ValidationError{Field: "email", Reason: "please enter a valid email"}
	}
	if strings.TrimSpace(s.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	if s.Category == "" {
		return &ValidationError{Field: "category", Reason: "category is required"}
	}
	if !models.ValidCategory(s.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if strings.TrimSpace(s.Location) == "" {
		return &ValidationError{Field: "location", Reason: "location is required"}
	}
	if strings.TrimSpace(s.Description) == "" {
		return &ValidationError{Field: "description", Reason: "description is required"}
	}
	if len(strings.TrimSpace(s.Description)) < minDescriptionLength {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("description must be at least %d characters", minDescriptionLength)}
	}
	return nil
}

// NewComplaint runs the full triage sequence over a submission: validate,
// classify, score, and initialize the lifecycle. The returned complaint is
// Pending with exactly one system-authored audit entry. The caller assigns
// the public complaint id and persists.
func NewComplaint(s Submission, classifier *Classifier, now time.Time) (*models.Complaint, error) {
	if err := ValidateSubmission(s); err != nil {
		return nil, err
	}

	category := classifier.Classify(s.Description, s.Category)
	urgency := classifier.DetectUrgency(s.Description)

	c := &models.Complaint{
		Name:            strings.TrimSpace(s.Name),
		Email:           strings.ToLower(strings.TrimSpace(s.Email)),
		Phone:           strings.TrimSpace(s.Phone),
		Category:        category,
		Location:        strings.TrimSpace(s.Location),
		Coordinates:     s.Coordinates,
		Description:     strings.TrimSpace(s.Description),
		Status:          models.StatusPending,
		Urgency:         urgency,
		MatchedKeywords: classifier.MatchedKeywords(s.Description),
		NotifyEmail:     s.NotifyEmail,
		NotifySMS:       s.NotifySMS,
		CreatedAt:       now,
	}
	c.PriorityScore = Score(urgency, category, now, now)

	c.Updates = append(c.Updates, models.ComplaintUpdate{
		Status:    models.StatusPending,
		Message:   "Complaint submitted successfully",
		Date:      now,
		UpdatedBy: SystemActor,
	})

	return c, nil
}

// SetStatus writes the new status and appends an audit entry. Any of the
// four statuses may be written at any time; the graph is intentionally
// unconstrained and the audit trail is the record of what happened.
// ResolvedDate latches on the first transition into Resolved and is never
// overwritten or cleared afterward.
func SetStatus(c *models.Complaint, newStatus models.ComplaintStatus, actor string, now time.Time) error {
	if !models.ValidStatus(newStatus) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	oldStatus := c.Status
	c.Status = newStatus

	if newStatus == models.StatusResolved && oldStatus != models.StatusResolved && c.ResolvedDate == nil {
		resolved := now
		c.ResolvedDate = &resolved
	}

	c.Updates = append(c.Updates, models.ComplaintUpdate{
		Status:    newStatus,
		Message:   fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus),
		Date:      now,
		UpdatedBy: actor,
	})
	return nil
}

// Assign sets or clears the staff assignment and appends an audit entry.
// Status is untouched.
func Assign(c *models.Complaint, assignee *string, actor string, now time.Time) {
	message := "Assignment removed"
	if assignee != nil && strings.TrimSpace(*assignee) != "" {
		trimmed := strings.TrimSpace(*assignee)
		c.AssignedTo = &trimmed
		message = fmt.Sprintf("Assigned to %s", trimmed)
	} else {
		c.AssignedTo = nil
	}

	c.Updates = append(c.Updates, models.ComplaintUpdate{
		Status:    c.Status,
		Message:   message,
		Date:      now,
		UpdatedBy: actor,
	})
}

// RecordFeedback stores citizen feedback. Only allowed while the complaint
// is Resolved at the time of submission; a repeat call overwrites.
func RecordFeedback(c *models.Complaint, rating int, comment string, now time.Time) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if c.Status != models.StatusResolved {
		return ErrNotResolved
	}

	c.Feedback = &models.Feedback{
		Rating:  rating,
		Comment: comment,
		Date:    now,
	}
	return nil
}

// Rescore recomputes the priority snapshot from the stored attributes.
func Rescore(c *models.Complaint, now time.Time) {
	c.PriorityScore = Score(c.Urgency, c.Category, c.CreatedAt, now)
}
