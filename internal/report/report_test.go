package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoAnalyzerGO/internal/models"
)

func TestBenchmarkAtIndustryAverage(t *testing.T) {
	b := Benchmark(70, "default")
	assert.Equal(t, 70.0, b.IndustryAverage)
	assert.Equal(t, 50.0, b.Percentile)
	assert.Equal(t, "Average: this site is on par with its industry", b.Interpretation)
}

func TestBenchmarkIndustryRows(t *testing.T) {
	cases := []struct {
		industry string
		avg      float64
	}{
		{"ecommerce", 68},
		{"blog", 72},
		{"saas", 75},
		{"local-business", 65},
	}
	for _, tc := range cases {
		b := Benchmark(70, tc.industry)
		assert.Equal(t, tc.industry, b.Industry)
		assert.Equal(t, tc.avg, b.IndustryAverage)
	}

	// unknown industries fall back to the default row
	b := Benchmark(70, "underwater-basket-weaving")
	assert.Equal(t, "default", b.Industry)
	assert.Equal(t, 70.0, b.IndustryAverage)
}

func TestBenchmarkPercentileClamped(t *testing.T) {
	low := Benchmark(0, "saas")
	assert.Equal(t, 0.0, low.Percentile)

	high := Benchmark(100, "local-business")
	assert.InDelta(t, 96.67, high.Percentile, 0.01) // 50 + 20*(35/15)
	assert.LessOrEqual(t, high.Percentile, 100.0)
}

func TestBenchmarkInterpretationBands(t *testing.T) {
	// percentile = 50 + 20*(score-70)/15 for the default industry
	cases := []struct {
		score    int
		contains string
	}{
		{100, "Outstanding"},
		{92, "Above average"},
		{70, "Average"},
		{56, "Below average"},
		{30, "Far below average"},
	}
	for _, tc := range cases {
		b := Benchmark(tc.score, "default")
		assert.Contains(t, b.Interpretation, tc.contains, "score %d", tc.score)
	}
}

func TestRecommendationsPriorities(t *testing.T) {
	issues := []models.SEOIssue{
		{Type: models.IssueWarning, Title: "Title tag too long", Description: "too long", Category: models.CategoryTechnical},
		{Type: models.IssueCritical, Title: "Missing title tag", Description: "no title", Category: models.CategoryTechnical},
		{Type: models.IssueInfo, Title: "No structured data", Description: "no schema", Category: models.CategoryTechnical},
	}
	cats := models.CategoryScores{
		ContentQuality:     55,
		TechnicalSEO:       80,
		OnPageOptimization: 80,
		Performance:        80,
		UserExperience:     80,
	}

	recs := Recommendations(issues, cats)
	require.Len(t, recs, 4)

	assert.Equal(t, "high", recs[0].Priority)
	assert.Equal(t, "Missing title tag", recs[0].Evidence)
	// weak category recommendation comes before the warnings
	assert.Equal(t, "medium", recs[1].Priority)
	assert.Equal(t, models.CategoryContent, recs[1].Category)
	assert.Equal(t, "medium", recs[2].Priority)
	assert.Equal(t, "Title tag too long", recs[2].Evidence)
	assert.Equal(t, "low", recs[3].Priority)
}

func TestRecommendationsCap(t *testing.T) {
	var issues []models.SEOIssue
	for i := 0; i < 30; i++ {
		issues = append(issues, models.SEOIssue{
			Type: models.IssueCritical, Title: "c", Description: "c", Category: models.CategorySecurity,
		})
	}
	recs := Recommendations(issues, models.CategoryScores{})
	assert.Len(t, recs, 15)
}

func TestContextCoverageReflectsDataSources(t *testing.T) {
	heuristic := Context(false, false)
	assert.Equal(t, models.CoveragePartial, heuristic.FactorCoverage["content"])
	assert.Equal(t, models.CoveragePartial, heuristic.FactorCoverage["performance"])
	assert.NotEmpty(t, heuristic.Limitations)

	full := Context(true, true)
	assert.Equal(t, models.CoverageComprehensive, full.FactorCoverage["content"])
	assert.Equal(t, models.CoverageGood, full.FactorCoverage["performance"])

	// factors the analysis never measures stay disclosed as such
	for _, factor := range []string{"authority", "backlinks", "userSignals"} {
		assert.Equal(t, models.CoverageNotMeasured, full.FactorCoverage[factor])
	}
}
