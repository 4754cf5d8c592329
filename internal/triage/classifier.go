package triage

import (
	"strings"

	"github.com/scms/backend/internal/models"
)

// Classifier maps free-text complaint descriptions to a category and an
// urgency tier using static keyword vocabularies. All methods are pure.
type Classifier struct {
	categoryKeywords map[models.ComplaintCategory][]string
	highUrgency      []string
	mediumUrgency    []string
}

func NewClassifier() *Classifier {
	return &Classifier{
		categoryKeywords: defaultCategoryKeywords,
		highUrgency:      defaultHighUrgencyKeywords,
		mediumUrgency:    defaultMediumUrgencyKeywords,
	}
}

// Classify picks the category whose keywords occur in the description with
// the strictly greatest count. Matching is lowercased substring containment,
// no stemming. Ties and all-zero counts keep the caller-selected fallback.
func (cl *Classifier) Classify(description string, fallback models.ComplaintCategory) models.ComplaintCategory {
	desc := strings.ToLower(description)

	best := fallback
	bestScore := 0
	tied := false

	// Iterate in declared category order so tie detection is deterministic.
	for _, category := range models.Categories {
		keywords, ok := cl.categoryKeywords[category]
		if !ok {
			continue
		}
		score := 0
		for _, keyword := range keywords {
			if strings.Contains(desc, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = category
			tied = false
		} else if score == bestScore && score > 0 {
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return fallback
	}
	return best
}

// DetectUrgency checks the high-urgency vocabulary first, then medium.
// High wins even when both match.
func (cl *Classifier) DetectUrgency(description string) models.Urgency {
	desc := strings.ToLower(description)

	for _, keyword := range cl.highUrgency {
		if strings.Contains(desc, keyword) {
			return models.UrgencyHigh
		}
	}
	for _, keyword := range cl.mediumUrgency {
		if strings.Contains(desc, keyword) {
			return models.UrgencyMedium
		}
	}
	return models.UrgencyLow
}

// MatchedKeywords returns the distinct category keywords found in the
// description, in category order. Stored on the complaint so the dashboard
// can show why the classifier picked a category.
func (cl *Classifier) MatchedKeywords(description string) []string {
	desc := strings.ToLower(description)

	var matched []string
	seen := make(map[string]bool)
	for _, category := range models.Categories {
		for _, keyword := range cl.categoryKeywords[category] {
			if seen[keyword] {
				continue
			}
			if strings.Contains(desc, keyword) {
				matched = append(matched, keyword)
				seen[keyword] = true
			}
		}
	}
	return matched
}
