package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoAnalyzerGO/internal/models"
)

func issueTitles(issues []models.SEOIssue) []string {
	titles := make([]string, 0, len(issues))
	for _, is := range issues {
		titles = append(titles, is.Title)
	}
	return titles
}

func findIssue(issues []models.SEOIssue, title string) *models.SEOIssue {
	for i := range issues {
		if issues[i].Title == title {
			return &issues[i]
		}
	}
	return nil
}

func healthyInput() DetectorInput {
	return DetectorInput{
		Technical: models.TechnicalSEODetails{
			HasTitle:           true,
			TitleLength:        45,
			HasDescription:     true,
			DescriptionLength:  140,
			H1Count:            1,
			HeadingCount:       5,
			HasProperHierarchy: true,
			LogicalHeadingFlow: true,
			ImagesTotal:        4,
			InternalLinks:      8,
			HasCanonical:       true,
			HasViewport:        true,
			IsResponsive:       true,
			HasOgTags:          true,
			HasStructuredData:  true,
			LoadTimeMs:         800,
			PageSizeBytes:      500 * 1024,
			StatusCode:         200,
		},
		Content: models.ContentAnalysisResult{
			WordCount:           900,
			ReadabilityScore:    70,
			HasQualitySignals:   true,
			HasExpertiseSignals: true,
			HasTrustSignals:     true,
		},
		Security: models.SecurityAnalysis{
			HTTPS: true, HSTS: true, CSPHeader: true,
			XContentTypeNosniff: true, XFrameOptions: true,
		},
		PageURL: "https://example.com/",
	}
}

func TestDetectIssuesHealthyPage(t *testing.T) {
	issues := DetectIssues(healthyInput())
	assert.Empty(t, issues, "healthy page produced issues: %v", issueTitles(issues))
}

func TestDetectIssuesTitleChecksAreExclusive(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		in := healthyInput()
		in.Technical.HasTitle = false
		in.Technical.TitleLength = 0

		issues := DetectIssues(in)
		assert.NotNil(t, findIssue(issues, "Missing title tag"))
		assert.Nil(t, findIssue(issues, "Title tag too long"))
		assert.Nil(t, findIssue(issues, "Title tag too short"))
	})

	t.Run("TooLong", func(t *testing.T) {
		in := healthyInput()
		in.Technical.TitleLength = 80

		issues := DetectIssues(in)
		long := findIssue(issues, "Title tag too long")
		require.NotNil(t, long)
		assert.Equal(t, models.IssueWarning, long.Type)
		assert.Nil(t, findIssue(issues, "Missing title tag"))
	})
}

func TestDetectIssuesSeveritiesAndCategories(t *testing.T) {
	in := healthyInput()
	in.Technical.H1Count = 0
	in.Content.WordCount = 150
	in.Security.HTTPS = false
	in.Technical.BrokenLinks = 2

	issues := DetectIssues(in)

	h1 := findIssue(issues, "Missing H1 heading")
	require.NotNil(t, h1)
	assert.Equal(t, models.IssueCritical, h1.Type)
	assert.Equal(t, models.CategoryTechnical, h1.Category)

	thin := findIssue(issues, "Thin content")
	require.NotNil(t, thin)
	assert.Equal(t, models.IssueCritical, thin.Type)
	assert.Equal(t, models.CategoryContent, thin.Category)

	https := findIssue(issues, "Not served over HTTPS")
	require.NotNil(t, https)
	assert.Equal(t, models.CategorySecurity, https.Category)

	broken := findIssue(issues, "Broken links")
	require.NotNil(t, broken)
	assert.Equal(t, models.CategoryOnPage, broken.Category)

	for _, is := range issues {
		assert.Equal(t, 1, is.AffectedPages)
		assert.Equal(t, "https://example.com/", is.URL)
	}
}

func TestDetectIssuesWordPress(t *testing.T) {
	in := healthyInput()
	in.WordPress = &models.WordPressAnalysis{
		Detected:       true,
		Version:        "6.4",
		VersionExposed: true,
		RestAPIExposed: true,
	}

	issues := DetectIssues(in)
	version := findIssue(issues, "WordPress version exposed")
	require.NotNil(t, version)
	assert.Equal(t, models.CategoryWordPress, version.Category)
	assert.True(t, version.AutoFixAvailable)
	assert.NotNil(t, findIssue(issues, "WordPress REST API publicly reachable"))
}

func TestAutoFixAllowList(t *testing.T) {
	in := healthyInput()
	in.Technical.HasCanonical = false
	in.Technical.HasTitle = false
	in.Technical.TitleLength = 0

	issues := DetectIssues(in)

	canonical := findIssue(issues, "Missing canonical tag")
	require.NotNil(t, canonical)
	assert.True(t, canonical.AutoFixAvailable)

	// a missing title needs a human; it is not on the fixable list
	title := findIssue(issues, "Missing title tag")
	require.NotNil(t, title)
	assert.False(t, title.AutoFixAvailable)
}

func TestMergeIssues(t *testing.T) {
	pageA := []models.SEOIssue{
		{Title: "Missing meta description", Type: models.IssueCritical, AffectedPages: 1},
		{Title: "No internal links", Type: models.IssueWarning, AffectedPages: 1},
	}
	pageB := []models.SEOIssue{
		{Title: "Missing meta description", Type: models.IssueCritical, AffectedPages: 1},
	}
	pageC := []models.SEOIssue{
		{Title: "Missing meta description", Type: models.IssueCritical, AffectedPages: 1},
		{Title: "Thin content", Type: models.IssueCritical, AffectedPages: 1},
	}

	merged := MergeIssues(pageA, pageB, pageC)
	require.Len(t, merged, 3)

	desc := findIssue(merged, "Missing meta description")
	require.NotNil(t, desc)
	assert.Equal(t, 3, desc.AffectedPages)

	links := findIssue(merged, "No internal links")
	require.NotNil(t, links)
	assert.Equal(t, 1, links.AffectedPages)
}
