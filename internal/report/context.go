package report

import (
	"seoAnalyzerGO/internal/models"
)

// Fixed measurement limitations disclosed with every score
var scoreLimitations = []string{
	"Off-page factors such as backlinks and domain authority are not included",
	"Keyword rankings and search visibility are not measured",
	"Real user behavior signals are not available to this analysis",
	"Competitor content quality is not compared directly",
}

// Context builds the disclosure object describing what the score covers.
// Content and performance coverage depend on whether AI analysis and
// Lighthouse data were actually available for this run.
func Context(aiUsed, lighthouseUsed bool) models.ScoreContext {
	contentCoverage := models.CoveragePartial
	if aiUsed {
		contentCoverage = models.CoverageComprehensive
	}
	performanceCoverage := models.CoveragePartial
	if lighthouseUsed {
		performanceCoverage = models.CoverageGood
	}

	return models.ScoreContext{
		Limitations: scoreLimitations,
		FactorCoverage: map[string]models.FactorCoverage{
			"technical":   models.CoverageComprehensive,
			"onPage":      models.CoverageGood,
			"content":     contentCoverage,
			"performance": performanceCoverage,
			"authority":   models.CoverageNotMeasured,
			"backlinks":   models.CoverageNotMeasured,
			"userSignals": models.CoverageNotMeasured,
		},
	}
}
