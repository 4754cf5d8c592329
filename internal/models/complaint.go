package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ComplaintCategory string
type ComplaintStatus string
type Urgency string

const (
	CategoryGarbage      ComplaintCategory = "Garbage"
	CategoryStreetLight  ComplaintCategory = "Street Light"
	CategoryWaterLeakage ComplaintCategory = "Water Leakage"
	CategoryRoadDamage   ComplaintCategory = "Road Damage"
	CategoryDrainage     ComplaintCategory = "Drainage"
	CategoryParks        ComplaintCategory = "Parks"
	CategoryNoise        ComplaintCategory = "Noise"
	CategoryTraffic      ComplaintCategory = "Traffic"
	CategoryOthers       ComplaintCategory = "Others"
)

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
	StatusClosed     ComplaintStatus = "Closed"
)

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Categories lists every valid complaint category in display order.
var Categories = []ComplaintCategory{
	CategoryGarbage,
	CategoryStreetLight,
	CategoryWaterLeakage,
	CategoryRoadDamage,
	CategoryDrainage,
	CategoryParks,
	CategoryNoise,
	CategoryTraffic,
	CategoryOthers,
}

func ValidCategory(c ComplaintCategory) bool {
	for _, candidate := range Categories {
		if c == candidate {
			return true
		}
	}
	return false
}

func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Coordinates is an optional lat/long pair attached to a complaint,
// stored as a jsonb column.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Coordinates) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		return nil
	}
	return fmt.Errorf("unsupported coordinates column type %T", value)
}

// Feedback is citizen feedback on a resolved complaint, stored as jsonb.
// At most one feedback per complaint; recording again overwrites.
type Feedback struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

func (f Feedback) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *Feedback) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		return nil
	}
	return fmt.Errorf("unsupported feedback column type %T", value)
}

type Complaint struct {
	ID          uint              `json:"-" gorm:"primaryKey"`
	ComplaintID string            `json:"id" gorm:"uniqueIndex;not null"`
	Name        string            `json:"name" gorm:"not null"`
	Email       string            `json:"email" gorm:"not null;index"`
	Phone       string            `json:"phone" gorm:"not null"`
	Category    ComplaintCategory `json:"category" gorm:"not null;index"`
	Location    string            `json:"location" gorm:"not null"`
	Coordinates *Coordinates      `json:"coordinates" gorm:"type:jsonb"`
	Description string            `json:"description" gorm:"type:text;not null"`
	Status      ComplaintStatus   `json:"status" gorm:"not null;default:'Pending';index"`
	Urgency     Urgency           `json:"urgency" gorm:"not null;default:'Low';index"`
	// PriorityScore is a snapshot in [0,100]; it is recomputed at creation
	// and on bulk reprioritization, never on read.
	PriorityScore   int               `json:"priorityScore" gorm:"not null;default:0;index"`
	MatchedKeywords pq.StringArray    `json:"matchedKeywords" gorm:"type:text[]"`
	NotifyEmail     bool              `json:"notifyEmail" gorm:"default:true"`
	NotifySMS       bool              `json:"notifySMS" gorm:"default:false"`
	Feedback        *Feedback         `json:"feedback" gorm:"type:jsonb"`
	ResolvedDate    *time.Time        `json:"resolvedDate"`
	AssignedTo      *string           `json:"assignedTo"`
	Images          []ComplaintImage  `json:"images" gorm:"foreignKey:ComplaintRef"`
	Updates         []ComplaintUpdate `json:"updates" gorm:"foreignKey:ComplaintRef"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt    `json:"-" gorm:"index"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintImage holds metadata for an uploaded attachment. Raw bytes live
// on disk under the upload directory; only metadata is persisted.
type ComplaintImage struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	ComplaintRef uint      `json:"-" gorm:"not null;index"`
	Filename     string    `json:"filename" gorm:"not null"`
	Path         string    `json:"path" gorm:"not null"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"-"`
}

func (ComplaintImage) TableName() string {
	return "complaint_images"
}

// ComplaintUpdate is one entry of a complaint's append-only audit trail.
// Rows are only ever inserted; the first entry is written by the system at
// submission time.
type ComplaintUpdate struct {
	ID           uint            `json:"-" gorm:"primaryKey"`
	ComplaintRef uint            `json:"-" gorm:"not null;index"`
	Status       ComplaintStatus `json:"status" gorm:"not null"`
	Message      string          `json:"message" gorm:"type:text;not null"`
	Date         time.Time       `json:"date"`
	UpdatedBy    string          `json:"updatedBy" gorm:"not null"`
	CreatedAt    time.Time       `json:"-"`
}

func (ComplaintUpdate) TableName() string {
	return "complaint_updates"
}
