package scoring

import (
	"fmt"
	"sort"

	"seoAnalyzerGO/internal/models"
)

const maxPriorityActions = 5

// Fixed action sentence per category, used when that category scores below 60.
var categoryActions = map[string]string{
	"contentQuality":     "Expand and restructure thin content; aim for 600+ words with clear expertise and trust signals",
	"technicalSEO":       "Fix missing or malformed meta tags, heading structure and structured data",
	"onPageOptimization": "Improve internal linking and repair broken links",
	"performance":        "Reduce page weight and improve Core Web Vitals",
	"userExperience":     "Add a responsive viewport and complete image alt coverage",
}

var healthMessages = map[models.HealthLevel]string{
	models.HealthExcellent: "Excellent SEO health. Keep monitoring to maintain your position.",
	models.HealthGood:      "Good SEO health with room for targeted improvements.",
	models.HealthFair:      "Fair SEO health. Several areas need attention.",
	models.HealthPoor:      "Poor SEO health. Prioritize the actions below.",
	models.HealthCritical:  "Critical SEO problems are holding this site back.",
}

// healthStatus classifies the final score into a fixed band and derives up to
// five priority actions: critical issues first, then the lowest categories.
func healthStatus(total int, cats models.CategoryScores, issues []models.SEOIssue) models.HealthStatus {
	level := healthLevel(total)

	var actions []string
	for _, is := range issues {
		if is.Type != models.IssueCritical {
			continue
		}
		actions = append(actions, fmt.Sprintf("Fix: %s", is.Title))
		if len(actions) >= maxPriorityActions {
			break
		}
	}

	type catScore struct {
		name  string
		score float64
	}
	ranked := []catScore{
		{"contentQuality", cats.ContentQuality},
		{"technicalSEO", cats.TechnicalSEO},
		{"onPageOptimization", cats.OnPageOptimization},
		{"performance", cats.Performance},
		{"userExperience", cats.UserExperience},
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	added := 0
	for _, cs := range ranked {
		if len(actions) >= maxPriorityActions || added >= 3 {
			break
		}
		if cs.score < 60 {
			actions = append(actions, categoryActions[cs.name])
			added++
		}
	}

	return models.HealthStatus{
		Status:          level,
		Message:         healthMessages[level],
		PriorityActions: actions,
	}
}

func healthLevel(total int) models.HealthLevel {
	switch {
	case total >= 85:
		return models.HealthExcellent
	case total >= 70:
		return models.HealthGood
	case total >= 55:
		return models.HealthFair
	case total >= 35:
		return models.HealthPoor
	default:
		return models.HealthCritical
	}
}
