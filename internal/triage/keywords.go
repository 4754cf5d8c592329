package triage

import "github.com/scms/backend/internal/models"

// Keyword vocabularies used by the classifier. Built once at startup and
// treated as immutable; nothing mutates these after NewClassifier returns.

var defaultCategoryKeywords = map[models.ComplaintCategory][]string{
	models.CategoryGarbage:      {"garbage", "trash", "waste", "dump", "rubbish", "litter", "garbage collection", "bin"},
	models.CategoryStreetLight:  {"light", "lamp", "streetlight", "dark", "bulb", "illumination", "street lamp"},
	models.CategoryWaterLeakage: {"water", "leak", "flood", "drain", "pipe", "sewer", "overflow", "leakage"},
	models.CategoryRoadDamage:   {"road", "pothole", "crack", "damage", "asphalt", "pavement", "path", "street"},
	models.CategoryDrainage:     {"drain", "drainage", "block", "clog", "sewer", "overflow"},
	models.CategoryParks:        {"park", "playground", "garden", "grass", "bench", "tree"},
	models.CategoryNoise:        {"noise", "loud", "sound", "disturbance", "annoying"},
	models.CategoryTraffic:      {"traffic", "parking", "vehicle", "car", "signal", "congestion"},
}

var defaultHighUrgencyKeywords = []string{
	"emergency", "urgent", "immediate", "critical", "dangerous",
	"accident", "fire", "flooding", "collapse",
}

var defaultMediumUrgencyKeywords = []string{
	"soon", "important", "problem", "issue", "need", "required",
}
