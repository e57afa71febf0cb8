package analyzer

import (
	"fmt"

	"seoAnalyzerGO/internal/models"
)

// autoFixableTitles is the set of issue titles the fix subsystem can act on.
// Membership is a static contract; adding a title here without a matching fix
// handler is a bug.
var autoFixableTitles = map[string]bool{
	"Missing meta description":     true,
	"Meta description too long":    true,
	"Meta description too short":   true,
	"Title tag too long":           true,
	"Title tag too short":          true,
	"Images missing alt text":      true,
	"Missing canonical tag":        true,
	"Missing Open Graph tags":      true,
	"Images without lazy loading":  true,
	"WordPress version exposed":    true,
}

// DetectorInput bundles the collected facts issue detection runs over
type DetectorInput struct {
	Technical models.TechnicalSEODetails
	Content   models.ContentAnalysisResult
	Security  models.SecurityAnalysis
	WordPress *models.WordPressAnalysis
	PageURL   string
}

// DetectIssues runs every check over the input. Each check is an independent
// predicate producing zero or one issue; within a check, conditions are
// mutually exclusive so "missing title" and "title too long" never both fire.
func DetectIssues(in DetectorInput) []models.SEOIssue {
	var issues []models.SEOIssue

	issues = append(issues, technicalIssues(in.Technical)...)
	issues = append(issues, contentIssues(in.Content)...)
	issues = append(issues, onPageIssues(in.Technical)...)
	issues = append(issues, performanceIssues(in.Technical)...)
	issues = append(issues, uxIssues(in.Technical)...)
	issues = append(issues, securityIssues(in.Security)...)
	if in.WordPress != nil && in.WordPress.Detected {
		issues = append(issues, wordPressIssues(*in.WordPress)...)
	}

	for i := range issues {
		issues[i].AffectedPages = 1
		issues[i].AutoFixAvailable = autoFixableTitles[issues[i].Title]
		issues[i].URL = in.PageURL
	}
	return issues
}

func newIssue(t models.IssueType, cat models.IssueCategory, title, description string) models.SEOIssue {
	return models.SEOIssue{
		Type:        t,
		Category:    cat,
		Title:       title,
		Description: description,
	}
}

func technicalIssues(t models.TechnicalSEODetails) []models.SEOIssue {
	var issues []models.SEOIssue

	switch {
	case !t.HasTitle:
		issues = append(issues, newIssue(models.IssueCritical, models.CategoryTechnical,
			"Missing title tag",
			"The page has no <title> tag. Search engines rely on it as the primary page label."))
	case t.TitleLength > 60:
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryTechnical,
			"Title tag too long",
			fmt.Sprintf("Title is %d characters; titles beyond 60 characters are truncated in search results.", t.TitleLength)))
	case t.TitleLength < 30:
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryTechnical,
			"Title tag too short",
			fmt.Sprintf("Title is %d characters; titles under 30 characters waste ranking signal space.", t.TitleLength)))
	}

	switch {
	case !t.HasDescription:
		issues = append(issues, newIssue(models.IssueCritical, models.CategoryTechnical,
			"Missing meta description",
			"The page has no meta description. Search engines will generate an arbitrary snippet."))
	case t.DescriptionLength > 160:
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryTechnical,
			"Meta description too long",
			fmt.Sprintf("Description is %d characters; descriptions beyond 160 characters are truncated.", t.DescriptionLength)))
	case t.DescriptionLength < 70:
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryTechnical,
			"Meta description too short",
			fmt.Sprintf("Description is %d characters; short descriptions rarely earn clicks.", t.DescriptionLength)))
	}

	switch {
	case t.H1Count == 0:
		issues = append(issues, newIssue(models.IssueCritical, models.CategoryTechnical,
			"Missing H1 heading",
			"No H1 heading found. Every page needs exactly one H1 stating its topic."))
	case t.H1Count > 1:
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryTechnical,
			"Multiple H1 headings",
			fmt.Sprintf("Found %d H1 headings; the page topic signal is diluted across them.", t.H1Count)))
	}

	if !t.HasCanonical {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryTechnical,
			"Missing canonical tag",
			"No canonical link found. Duplicate URL variants may split ranking signals."))
	}
	if !t.HasStructuredData {
		issues = append(issues, newIssue(models.IssueInfo, models.CategoryTechnical,
			"No structured data",
			"No JSON-LD or microdata markup found. Structured data enables rich search results."))
	}
	return issues
}

func contentIssues(c models.ContentAnalysisResult) []models.SEOIssue {
	var issues []models.SEOIssue

	switch {
	case c.WordCount < 300:
		issues = append(issues, newIssue(models.IssueCritical, models.CategoryContent,
			"Thin content",
			fmt.Sprintf("Page has only %d words. Pages under 300 words rarely rank for competitive terms.", c.WordCount)))
	case c.WordCount < 600:
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryContent,
			"Content below recommended length",
			fmt.Sprintf("Page has %d words; 600 or more gives topical depth room.", c.WordCount)))
	}

	if c.ReadabilityScore < 40 {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryContent,
			"Difficult to read",
			fmt.Sprintf("Readability score is %.0f; dense prose loses most readers.", c.ReadabilityScore)))
	}
	if !c.HasExpertiseSignals {
		issues = append(issues, newIssue(models.IssueInfo, models.CategoryContent,
			"No expertise signals",
			"No author attribution, citations, or sourcing detected. Expertise markers support E-A-T."))
	}
	if !c.HasTrustSignals {
		issues = append(issues, newIssue(models.IssueInfo, models.CategoryContent,
			"No trust signals",
			"No contact, policy, or credential markers detected on the page."))
	}
	return issues
}

func onPageIssues(t models.TechnicalSEODetails) []models.SEOIssue {
	var issues []models.SEOIssue

	if t.InternalLinks == 0 {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryOnPage,
			"No internal links",
			"The page links to no other pages on the site, leaving crawlers and visitors stranded."))
	}
	if t.BrokenLinks > 0 {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryOnPage,
			"Broken links",
			fmt.Sprintf("%d linked pages did not respond successfully.", t.BrokenLinks)))
	}
	if t.ImagesTotal > 0 && t.ImagesWithoutAlt > 0 {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryOnPage,
			"Images missing alt text",
			fmt.Sprintf("%d of %d images have no alt attribute.", t.ImagesWithoutAlt, t.ImagesTotal)))
	}
	if !t.HasOgTags {
		issues = append(issues, newIssue(models.IssueInfo, models.CategoryOnPage,
			"Missing Open Graph tags",
			"No Open Graph metadata found; shared links will render without preview cards."))
	}
	if !t.HasProperHierarchy && t.HeadingCount > 0 {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryOnPage,
			"Broken heading hierarchy",
			"Heading levels skip downward (for example H2 directly to H4)."))
	}
	return issues
}

func performanceIssues(t models.TechnicalSEODetails) []models.SEOIssue {
	var issues []models.SEOIssue

	if t.LoadTimeMs > 3000 {
		issues = append(issues, newIssue(models.IssueCritical, models.CategoryPerformance,
			"Slow page load",
			fmt.Sprintf("Page took %dms to load; beyond 3 seconds most visitors abandon.", t.LoadTimeMs)))
	} else if t.LoadTimeMs > 1500 {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryPerformance,
			"Page load could be faster",
			fmt.Sprintf("Page took %dms to load.", t.LoadTimeMs)))
	}

	const fiveMB = 5 * 1024 * 1024
	if t.PageSizeBytes > fiveMB {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryPerformance,
			"Very large page",
			fmt.Sprintf("Page weighs %.1fMB; mobile connections will struggle.", float64(t.PageSizeBytes)/(1024*1024))))
	}
	if t.ImagesTotal >= 5 && t.ImagesLazyLoaded == 0 {
		issues = append(issues, newIssue(models.IssueInfo, models.CategoryPerformance,
			"Images without lazy loading",
			fmt.Sprintf("%d images load eagerly; lazy loading defers offscreen image cost.", t.ImagesTotal)))
	}
	return issues
}

func uxIssues(t models.TechnicalSEODetails) []models.SEOIssue {
	var issues []models.SEOIssue

	if !t.HasViewport {
		issues = append(issues, newIssue(models.IssueCritical, models.CategoryUX,
			"Missing viewport meta tag",
			"No viewport meta tag; the page will not scale on mobile devices."))
	} else if !t.IsResponsive {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryUX,
			"Page not responsive",
			"Viewport tag present but the page does not adapt to device width."))
	}
	return issues
}

func securityIssues(s models.SecurityAnalysis) []models.SEOIssue {
	var issues []models.SEOIssue

	if !s.HTTPS {
		issues = append(issues, newIssue(models.IssueCritical, models.CategorySecurity,
			"Not served over HTTPS",
			"The page is served over plain HTTP. Browsers flag it as not secure and rankings suffer."))
	} else if !s.HSTS {
		issues = append(issues, newIssue(models.IssueInfo, models.CategorySecurity,
			"Missing HSTS header",
			"No Strict-Transport-Security header; first visits can be downgraded to HTTP."))
	}
	if !s.CSPHeader {
		issues = append(issues, newIssue(models.IssueInfo, models.CategorySecurity,
			"Missing Content-Security-Policy",
			"No CSP header found; the page has no script-injection defense in depth."))
	}
	if !s.XContentTypeNosniff {
		issues = append(issues, newIssue(models.IssueInfo, models.CategorySecurity,
			"Missing X-Content-Type-Options",
			"Responses can be MIME-sniffed without the nosniff header."))
	}
	return issues
}

func wordPressIssues(wp models.WordPressAnalysis) []models.SEOIssue {
	var issues []models.SEOIssue

	if wp.VersionExposed {
		issues = append(issues, newIssue(models.IssueWarning, models.CategoryWordPress,
			"WordPress version exposed",
			fmt.Sprintf("The generator meta tag reveals WordPress %s, helping attackers target known exploits.", wp.Version)))
	}
	if wp.RestAPIExposed {
		issues = append(issues, newIssue(models.IssueInfo, models.CategoryWordPress,
			"WordPress REST API publicly reachable",
			"The /wp-json endpoint responds publicly; consider restricting user enumeration routes."))
	}
	return issues
}

// MergeIssues deduplicates issues across crawled pages. The same title seen on
// another page increments AffectedPages instead of adding a duplicate entry.
func MergeIssues(all ...[]models.SEOIssue) []models.SEOIssue {
	var merged []models.SEOIssue
	index := make(map[string]int)

	for _, pageIssues := range all {
		for _, issue := range pageIssues {
			if i, seen := index[issue.Title]; seen {
				merged[i].AffectedPages += issue.AffectedPages
				continue
			}
			index[issue.Title] = len(merged)
			merged = append(merged, issue)
		}
	}
	return merged
}
