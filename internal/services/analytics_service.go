package services

import (
	"fmt"
	"math"
	"time"

	"github.com/scms/backend/internal/models"
	"gorm.io/gorm"
)

// AnalyticsService produces the dashboard aggregates. Read-only.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type UrgencyBreakdown struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
}

type Stats struct {
	Total          int64            `json:"total"`
	Pending        int64            `json:"pending"`
	InProgress     int64            `json:"inProgress"`
	Resolved       int64            `json:"resolved"`
	Closed         int64            `json:"closed"`
	ResolvedTotal  int64            `json:"resolvedTotal"`
	ResolutionRate float64          `json:"resolutionRate"`
	Urgency        UrgencyBreakdown `json:"urgency"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type Trends struct {
	MostCommonCategory    *CategoryCount `json:"mostCommonCategory"`
	ResolutionRate        float64        `json:"resolutionRate"`
	AverageResolutionDays int            `json:"averageResolutionTime"`
}

// Stats returns the headline dashboard counters.
func (s *AnalyticsService) Stats() (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		dest  *int64
		where []interface{}
	}{
		{&stats.Total, nil},
		{&stats.Pending, []interface{}{"status = ?", models.StatusPending}},
		{&stats.InProgress, []interface{}{"status = ?", models.StatusInProgress}},
		{&stats.Resolved, []interface{}{"status = ?", models.StatusResolved}},
		{&stats.Closed, []interface{}{"status = ?", models.StatusClosed}},
		{&stats.Urgency.High, []interface{}{"urgency = ?", models.UrgencyHigh}},
		{&stats.Urgency.Medium, []interface{}{"urgency = ?", models.UrgencyMedium}},
		{&stats.Urgency.Low, []interface{}{"urgency = ?", models.UrgencyLow}},
	}
	for _, c := range counts {
		query := s.db.Model(&models.Complaint{})
		if c.where != nil {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count complaints: %w", err)
		}
	}

	stats.ResolvedTotal = stats.Resolved + stats.Closed
	stats.ResolutionRate = resolutionRate(stats.ResolvedTotal, stats.Total)
	return stats, nil
}

// ByCategory groups complaint counts per category, most frequent first.
func (s *AnalyticsService) ByCategory() ([]CategoryCount, error) {
	var results []CategoryCount
	err := s.db.Model(&models.Complaint{}).
		Select("category, count(*) as count").
		Group("category").
		Order("count desc").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}
	return results, nil
}

// ByStatus groups complaint counts per status, most frequent first.
func (s *AnalyticsService) ByStatus() ([]StatusCount, error) {
	var results []StatusCount
	err := s.db.Model(&models.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Order("count desc").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by status: %w", err)
	}
	return results, nil
}

// Timeline returns daily submission counts for the last N days.
func (s *AnalyticsService) Timeline(days int) ([]DateCount, error) {
	if days < 1 {
		days = 7
	}
	start := time.Now().AddDate(0, 0, -days)

	dayExpr := s.dayExpression()
	var results []DateCount
	err := s.db.Model(&models.Complaint{}).
		Select(dayExpr + " as date, count(*) as count").
		Where("created_at >= ?", start).
		Group(dayExpr).
		Order("date asc").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate timeline: %w", err)
	}
	return results, nil
}

// dayExpression formats created_at as YYYY-MM-DD in the connected dialect.
func (s *AnalyticsService) dayExpression() string {
	if s.db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', created_at)"
	}
	return "to_char(created_at, 'YYYY-MM-DD')"
}

// TopLocations returns the locations reporting the most complaints.
func (s *AnalyticsService) TopLocations(limit int) ([]LocationCount, error) {
	if limit < 1 {
		limit = 5
	}

	var results []LocationCount
	err := s.db.Model(&models.Complaint{}).
		Select("location, count(*) as count").
		Group("location").
		Order("count desc").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate locations: %w", err)
	}
	return results, nil
}

// Trends summarizes resolution behavior: the most reported category, the
// overall resolution rate, and the mean days from submission to resolution.
func (s *AnalyticsService) Trends() (*Trends, error) {
	trends := &Trends{}

	var top []CategoryCount
	err := s.db.Model(&models.Complaint{}).
		Select("category, count(*) as count").
		Group("category").
		Order("count desc").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find most common category: %w", err)
	}
	if len(top) > 0 {
		trends.MostCommonCategory = &top[0]
	}

	var total, resolved int64
	if err := s.db.Model(&models.Complaint{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}
	err = s.db.Model(&models.Complaint{}).
		Where("status IN ?", []models.ComplaintStatus{models.StatusResolved, models.StatusClosed}).
		Count(&resolved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count resolved complaints: %w", err)
	}
	trends.ResolutionRate = resolutionRate(resolved, total)

	var resolvedComplaints []models.Complaint
	err = s.db.
		Where("status IN ?", []models.ComplaintStatus{models.StatusResolved, models.StatusClosed}).
		Where("resolved_date IS NOT NULL").
		Find(&resolvedComplaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load resolved complaints: %w", err)
	}
	if len(resolvedComplaints) > 0 {
		var totalDays float64
		for _, c := range resolvedComplaints {
			totalDays += c.ResolvedDate.Sub(c.CreatedAt).Hours() / 24
		}
		trends.AverageResolutionDays = int(math.Round(totalDays / float64(len(resolvedComplaints))))
	}

	return trends, nil
}

func resolutionRate(resolved, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(resolved) / float64(total) * 100
	return math.Round(rate*100) / 100
}
