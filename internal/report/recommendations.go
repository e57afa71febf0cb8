package report

import (
	"fmt"

	"seoAnalyzerGO/internal/models"
)

const maxRecommendations = 15

// Recommendations translates issues and category scores into a prioritized,
// capped action list. Critical issues map to high priority, warnings to
// medium, info to low; weak categories contribute one recommendation each.
func Recommendations(issues []models.SEOIssue, cats models.CategoryScores) []models.Recommendation {
	recs := make([]models.Recommendation, 0, maxRecommendations)

	appendRec := func(r models.Recommendation) bool {
		if len(recs) >= maxRecommendations {
			return false
		}
		recs = append(recs, r)
		return true
	}

	for _, is := range issues {
		if is.Type != models.IssueCritical {
			continue
		}
		if !appendRec(models.Recommendation{
			Priority:       "high",
			Category:       is.Category,
			Description:    is.Description,
			ExpectedImpact: "Resolving this should produce a clear score improvement",
			Evidence:       is.Title,
		}) {
			return recs
		}
	}

	for _, cr := range categoryRecommendations(cats) {
		if !appendRec(cr) {
			return recs
		}
	}

	for _, is := range issues {
		if is.Type != models.IssueWarning {
			continue
		}
		if !appendRec(models.Recommendation{
			Priority:       "medium",
			Category:       is.Category,
			Description:    is.Description,
			ExpectedImpact: "A moderate improvement once addressed",
			Evidence:       is.Title,
		}) {
			return recs
		}
	}

	for _, is := range issues {
		if is.Type != models.IssueInfo {
			continue
		}
		if !appendRec(models.Recommendation{
			Priority:       "low",
			Category:       is.Category,
			Description:    is.Description,
			ExpectedImpact: "A minor refinement",
			Evidence:       is.Title,
		}) {
			return recs
		}
	}

	return recs
}

// categoryRecommendations produces one medium-priority recommendation for each
// category scoring below 60.
func categoryRecommendations(cats models.CategoryScores) []models.Recommendation {
	type weak struct {
		score    float64
		category models.IssueCategory
		text     string
	}
	candidates := []weak{
		{cats.ContentQuality, models.CategoryContent,
			"Invest in deeper, better-structured content with visible expertise and trust signals"},
		{cats.TechnicalSEO, models.CategoryTechnical,
			"Bring meta tags, heading structure, canonical and structured data up to standard"},
		{cats.OnPageOptimization, models.CategoryOnPage,
			"Strengthen internal linking and remove broken links"},
		{cats.Performance, models.CategoryPerformance,
			"Reduce page weight and improve loading metrics"},
		{cats.UserExperience, models.CategoryUX,
			"Improve mobile responsiveness, readability and image accessibility"},
	}

	var recs []models.Recommendation
	for _, c := range candidates {
		if c.score >= 60 {
			continue
		}
		recs = append(recs, models.Recommendation{
			Priority:       "medium",
			Category:       c.category,
			Description:    c.text,
			ExpectedImpact: fmt.Sprintf("Raising this category from %.0f would lift the weighted total", c.score),
			Evidence:       fmt.Sprintf("category score %.0f", c.score),
		})
	}
	return recs
}
