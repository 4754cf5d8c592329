package triage

import (
	"time"

	"github.com/scms/backend/internal/models"
)

const (
	urgencyHighBase   = 50
	urgencyMediumBase = 30
	urgencyLowBase    = 10

	criticalCategoryBonus = 20

	ageBonusPerDay = 2
	ageBonusCap    = 20

	maxPriorityScore = 100
)

// criticalCategories get a flat scoring bonus; these are the categories
// where an unattended complaint degrades fastest.
var criticalCategories = map[models.ComplaintCategory]bool{
	models.CategoryWaterLeakage: true,
	models.CategoryRoadDamage:   true,
	models.CategoryGarbage:      true,
}

// Score combines urgency, category criticality, and complaint age into a
// priority in [0,100]. The age term grows by 2 per full day, capped at 20,
// so unresolved complaints drift upward over time when rescored.
func Score(urgency models.Urgency, category models.ComplaintCategory, createdAt, now time.Time) int {
	score := 0

	switch urgency {
	case models.UrgencyHigh:
		score += urgencyHighBase
	case models.UrgencyMedium:
		score += urgencyMediumBase
	case models.UrgencyLow:
		score += urgencyLowBase
	}

	if criticalCategories[category] {
		score += criticalCategoryBonus
	}

	days := int(now.Sub(createdAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	ageBonus := days * ageBonusPerDay
	if ageBonus > ageBonusCap {
		ageBonus = ageBonusCap
	}
	score += ageBonus

	if score > maxPriorityScore {
		score = maxPriorityScore
	}
	return score
}
