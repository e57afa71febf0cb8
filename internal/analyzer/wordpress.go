package analyzer

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoAnalyzerGO/internal/models"
)

var wpGeneratorPattern = regexp.MustCompile(`(?i)wordpress\s*([\d.]+)?`)

// DetectWordPress looks for WordPress fingerprints in the page markup and,
// in deep mode, probes the REST API root. Returns nil when no signal is found.
func (f *Fetcher) DetectWordPress(ctx context.Context, doc *goquery.Document, baseURL *url.URL, deep bool) *models.WordPressAnalysis {
	wp := &models.WordPressAnalysis{}
	signals := 0

	generator, _ := doc.Find(`meta[name="generator"]`).Attr("content")
	if match := wpGeneratorPattern.FindStringSubmatch(generator); match != nil {
		signals++
		if len(match) > 1 && match[1] != "" {
			wp.Version = match[1]
			wp.VersionExposed = true
		}
	}

	var hasWPAssets bool
	doc.Find("link[href], script[src], img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"href", "src"} {
			if val, _ := s.Attr(attr); strings.Contains(val, "/wp-content/") || strings.Contains(val, "/wp-includes/") {
				hasWPAssets = true
				return false
			}
		}
		return true
	})
	if hasWPAssets {
		signals++
		wp.Theme = detectTheme(doc)
		wp.Plugins = detectPlugins(doc)
	}

	if deep && f.probeRestAPI(ctx, baseURL) {
		signals++
		wp.RestAPIExposed = true
	}

	if signals == 0 {
		return nil
	}

	wp.Detected = true
	switch {
	case signals >= 3:
		wp.DetectionConfidence = "high"
	case signals == 2:
		wp.DetectionConfidence = "medium"
	default:
		wp.DetectionConfidence = "low"
	}
	return wp
}

// probeRestAPI checks whether the standard WordPress REST root responds
func (f *Fetcher) probeRestAPI(ctx context.Context, baseURL *url.URL) bool {
	probe := *baseURL
	probe.Path = "/wp-json/"
	probe.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probe.String(), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func detectTheme(doc *goquery.Document) string {
	theme := ""
	doc.Find(`link[href*="/wp-content/themes/"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if name := pathSegmentAfter(href, "/wp-content/themes/"); name != "" {
			theme = name
			return false
		}
		return true
	})
	return theme
}

func detectPlugins(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var plugins []string
	doc.Find(`link[href*="/wp-content/plugins/"], script[src*="/wp-content/plugins/"]`).Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"href", "src"} {
			val, _ := s.Attr(attr)
			if name := pathSegmentAfter(val, "/wp-content/plugins/"); name != "" && !seen[name] {
				seen[name] = true
				plugins = append(plugins, name)
			}
		}
	})
	return plugins
}

// pathSegmentAfter returns the path segment that directly follows the marker
func pathSegmentAfter(s, marker string) string {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(marker):]
	if end := strings.IndexAny(rest, "/?"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
