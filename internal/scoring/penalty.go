package scoring

import (
	"math"

	"seoAnalyzerGO/internal/models"
)

// Per-tier penalty constants. The first issue of a tier costs the full amount;
// every further one costs a shrinking fraction of the additional unit, so large
// issue counts cannot drive the score toward zero. Each tier is capped.
type penaltyTier struct {
	first      float64
	additional float64
	decay      float64
	cap        float64
}

var (
	criticalTier = penaltyTier{first: 8, additional: 4, decay: 0.8, cap: 25}
	warningTier  = penaltyTier{first: 4, additional: 2, decay: 0.8, cap: 15}
	infoTier     = penaltyTier{first: 1, additional: 0.5, decay: 0.8, cap: 5}
)

// issuesPenalty computes the global penalty subtracted from the weighted base
// score. Three criticals cost 8 + 4*0.8 + 4*0.64 = 13.76, not 24.
func issuesPenalty(issues []models.SEOIssue) float64 {
	var criticals, warnings, infos int
	for _, is := range issues {
		switch is.Type {
		case models.IssueCritical:
			criticals++
		case models.IssueWarning:
			warnings++
		case models.IssueInfo:
			infos++
		}
	}
	return tierPenalty(criticals, criticalTier) +
		tierPenalty(warnings, warningTier) +
		tierPenalty(infos, infoTier)
}

func tierPenalty(count int, t penaltyTier) float64 {
	if count <= 0 {
		return 0
	}
	p := t.first
	factor := t.decay
	for i := 1; i < count; i++ {
		p += t.additional * factor
		factor *= t.decay
	}
	return math.Min(p, t.cap)
}

// categoryIssuePenalty is the smaller, uncapped deduction applied inside each
// category for issues tagged with that category.
func categoryIssuePenalty(issues []models.SEOIssue, cat models.IssueCategory) float64 {
	p := 0.0
	for _, is := range issues {
		if is.Category != cat {
			continue
		}
		switch is.Type {
		case models.IssueCritical:
			p += 7
		case models.IssueWarning:
			p += 3
		case models.IssueInfo:
			p += 1
		}
	}
	return p
}
