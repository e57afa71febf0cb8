package scoring

import (
	"math"

	"seoAnalyzerGO/internal/models"
)

// Content length bands (words)
const (
	minWordCount         = 300
	recommendedWordCount = 600
	optimalWordsLow      = 800
	optimalWordsHigh     = 2500
)

// Readability bands (reading-ease points)
const (
	readabilityPoor = 40
	readabilityMin  = 55
	readabilityGood = 70
)

// scoreContentQuality starts from 100 and applies graduated adjustments for
// content length, readability, E-A-T signals, structure and heading flow.
func scoreContentQuality(c models.ContentAnalysisResult, issues []models.SEOIssue) float64 {
	score := 100.0

	switch {
	case c.WordCount < minWordCount:
		score -= 20
	case c.WordCount < recommendedWordCount:
		score -= 7
	case c.WordCount >= optimalWordsLow && c.WordCount <= optimalWordsHigh:
		score += 8
	}

	switch {
	case c.ReadabilityScore < readabilityPoor:
		score -= 15
	case c.ReadabilityScore < readabilityMin:
		score -= 8
	case c.ReadabilityScore >= readabilityGood:
		score += 5
	}

	if !c.HasQualitySignals {
		score -= 8
	}
	if !c.HasExpertiseSignals {
		score -= 6
	}
	if !c.HasTrustSignals {
		score -= 6
	}
	if c.HasQualitySignals && c.HasExpertiseSignals {
		score += 5
	}

	switch {
	case c.StructureScore >= 85:
		score += 5
	case c.StructureScore < 70:
		score -= 7
	}

	if !c.LogicalHeadingFlow {
		score -= 5
	}
	if c.HeadingCount >= 5 {
		score += 3
	}

	score -= categoryIssuePenalty(issues, models.CategoryContent)
	return clamp(score, 0, 100)
}

// technicalCheck is one entry of the technical checklist
type technicalCheck struct {
	weight float64
	passed func(t models.TechnicalSEODetails) bool
}

// The nine technical requirements; weights sum to 100.
var technicalChecks = []technicalCheck{
	{15, func(t models.TechnicalSEODetails) bool {
		return t.HasTitle && t.TitleLength >= 30 && t.TitleLength <= 60
	}},
	{12, func(t models.TechnicalSEODetails) bool {
		return t.HasDescription && t.DescriptionLength >= 120 && t.DescriptionLength <= 160
	}},
	{13, func(t models.TechnicalSEODetails) bool { return t.H1Count >= 1 }},
	{10, func(t models.TechnicalSEODetails) bool { return t.HasProperHierarchy }},
	{10, func(t models.TechnicalSEODetails) bool { return t.HasStructuredData }},
	{10, func(t models.TechnicalSEODetails) bool { return t.HasCanonical }},
	{12, func(t models.TechnicalSEODetails) bool { return t.HasViewport }},
	{8, func(t models.TechnicalSEODetails) bool { return t.HasOgTags }},
	{10, func(t models.TechnicalSEODetails) bool {
		if t.ImagesTotal == 0 {
			return true
		}
		return float64(t.ImagesWithoutAlt)/float64(t.ImagesTotal) < 0.10
	}},
}

// scoreTechnicalSEO is a weighted checklist: earned weight over total weight.
func scoreTechnicalSEO(t models.TechnicalSEODetails, issues []models.SEOIssue) float64 {
	var earned, total float64
	for _, check := range technicalChecks {
		total += check.weight
		if check.passed(t) {
			earned += check.weight
		}
	}
	score := earned / total * 100
	score -= categoryIssuePenalty(issues, models.CategoryTechnical)
	return clamp(score, 0, 100)
}

// scoreOnPage starts from a base of 80 and adjusts for structure, headings,
// internal linking and broken links.
func scoreOnPage(t models.TechnicalSEODetails, c models.ContentAnalysisResult, issues []models.SEOIssue) float64 {
	score := 80.0

	score += (c.StructureScore - 70) * 0.25

	if t.LogicalHeadingFlow {
		score += 5
	}
	if t.HeadingCount >= 3 {
		score += 3
	}

	switch {
	case t.InternalLinks == 0:
		score -= 15
	case t.InternalLinks >= 2 && t.InternalLinks <= 15:
		score += 10
	case t.InternalLinks > 15:
		score += 5
	default:
		score += 3
	}

	score -= math.Min(float64(t.BrokenLinks)*5, 20)

	score -= categoryIssuePenalty(issues, models.CategoryOnPage)
	return clamp(score, 0, 100)
}

// defaultPerformanceScore is used when no Lighthouse data is available. It sits
// above the midpoint because most production sites are not catastrophically
// slow; confidence reporting covers the uncertainty.
const defaultPerformanceScore = 65

// scorePerformance starts from the Lighthouse performance score (or the
// neutral default) and adjusts for Core Web Vitals and page weight.
func scorePerformance(lh *models.LighthouseScores, t models.TechnicalSEODetails, issues []models.SEOIssue) float64 {
	score := float64(defaultPerformanceScore)
	if lh != nil {
		score = lh.Performance
	}

	if lh != nil && lh.Vitals != nil {
		v := lh.Vitals
		switch {
		case v.LCPMs > 0 && v.LCPMs <= 2500:
			score += 5
		case v.LCPMs > 2500 && v.LCPMs <= 4000:
			score -= 3
		case v.LCPMs > 4000:
			score -= 8
		}
		switch {
		case v.CLS <= 0.1:
			score += 4
		case v.CLS <= 0.25:
			score -= 3
		default:
			score -= 7
		}
		switch {
		case v.FCPMs > 0 && v.FCPMs <= 1800:
			score += 3
		case v.FCPMs > 1800 && v.FCPMs <= 3000:
			score -= 2
		case v.FCPMs > 3000:
			score -= 5
		}
	}

	sizeMB := float64(t.PageSizeBytes) / (1024 * 1024)
	switch {
	case sizeMB > 5:
		score -= 12
	case sizeMB > 3:
		score -= 8
	case sizeMB > 2:
		score -= 5
	case sizeMB > 1:
		score -= 2
	case sizeMB > 0 && sizeMB < 0.5:
		score += 3
	}

	score -= categoryIssuePenalty(issues, models.CategoryPerformance)
	return clamp(score, 0, 100)
}

// uxCheck is one entry of the user-experience checklist
type uxCheck struct {
	weight float64
	passed bool
}

// scoreUserExperience is a weighted checklist of five user-facing factors.
func scoreUserExperience(t models.TechnicalSEODetails, c models.ContentAnalysisResult, issues []models.SEOIssue) float64 {
	altOK := true
	if t.ImagesTotal > 0 {
		altOK = float64(t.ImagesWithoutAlt)/float64(t.ImagesTotal) < 0.20
	}

	checks := []uxCheck{
		{35, t.HasViewport && t.IsResponsive},
		{25, c.ReadabilityScore >= readabilityMin},
		{20, altOK},
		{10, t.HasProperHierarchy},
		{10, t.LogicalHeadingFlow},
	}

	var earned, total float64
	for _, check := range checks {
		total += check.weight
		if check.passed {
			earned += check.weight
		}
	}
	score := earned / total * 100
	score -= categoryIssuePenalty(issues, models.CategoryUX)
	return clamp(score, 0, 100)
}
