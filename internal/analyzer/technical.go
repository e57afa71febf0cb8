package analyzer

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"seoAnalyzerGO/internal/models"
)

// ExtractTechnicalDetails builds the per-page structural snapshot from the
// fetched document. Link accessibility checks run with bounded concurrency
// and are skipped entirely when CheckLinks is off.
func (f *Fetcher) ExtractTechnicalDetails(ctx context.Context, fetch *FetchResult, baseURL *url.URL, doc *goquery.Document) models.TechnicalSEODetails {
	details := models.TechnicalSEODetails{
		PageSizeBytes:   int64(len(fetch.Body)),
		LoadTimeMs:      fetch.LoadTime.Milliseconds(),
		StatusCode:      fetch.StatusCode,
		ResponseHeaders: fetch.Headers,
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	details.Title = title
	details.TitleLength = len(title)
	details.HasTitle = details.TitleLength > 0

	description, _ := doc.Find(`meta[name="description"]`).Attr("content")
	description = strings.TrimSpace(description)
	details.Description = description
	details.DescriptionLength = len(description)
	details.HasDescription = details.DescriptionLength > 0

	f.extractHeadings(doc, &details)
	f.extractImages(doc, &details)

	canonical, hasCanonical := doc.Find(`link[rel="canonical"]`).Attr("href")
	details.HasCanonical = hasCanonical && canonical != ""
	details.CanonicalURL = canonical

	viewport, hasViewport := doc.Find(`meta[name="viewport"]`).Attr("content")
	details.HasViewport = hasViewport
	details.IsResponsive = strings.Contains(strings.ToLower(viewport), "width=device-width")

	details.HasOgTags = doc.Find(`meta[property="og:title"], meta[property="og:description"], meta[property="og:image"]`).Length() > 0

	f.extractStructuredData(doc, &details)
	f.extractLinks(ctx, doc, baseURL, &details)

	return details
}

// extractHeadings counts headings and validates the hierarchy. A hierarchy is
// proper when no level is skipped going down; the flow is logical when the
// sequence additionally starts at h1.
func (f *Fetcher) extractHeadings(doc *goquery.Document, details *models.TechnicalSEODetails) {
	var levels []int
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			if node.Type != html.ElementNode || len(node.Data) != 2 {
				continue
			}
			level, err := strconv.Atoi(node.Data[1:])
			if err != nil {
				continue
			}
			levels = append(levels, level)
			switch level {
			case 1:
				details.H1Count++
			case 2:
				details.H2Count++
			case 3:
				details.H3Count++
			}
		}
	})

	details.HeadingCount = len(levels)
	details.HasProperHierarchy = properHierarchy(levels)
	details.LogicalHeadingFlow = details.HasProperHierarchy && len(levels) > 0 && levels[0] == 1
}

func properHierarchy(levels []int) bool {
	if len(levels) == 0 {
		return false
	}
	prev := levels[0]
	for _, level := range levels[1:] {
		if level > prev+1 {
			return false
		}
		prev = level
	}
	return true
}

func (f *Fetcher) extractImages(doc *goquery.Document, details *models.TechnicalSEODetails) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		details.ImagesTotal++
		if alt, exists := s.Attr("alt"); !exists || strings.TrimSpace(alt) == "" {
			details.ImagesWithoutAlt++
		}
		if _, hasWidth := s.Attr("width"); hasWidth {
			if _, hasHeight := s.Attr("height"); hasHeight {
				details.ImagesWithDims++
			}
		}
		if loading, _ := s.Attr("loading"); loading == "lazy" {
			details.ImagesLazyLoaded++
		}
	})
}

func (f *Fetcher) extractStructuredData(doc *goquery.Document, details *models.TechnicalSEODetails) {
	seen := make(map[string]bool)

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		details.HasStructuredData = true
		for _, schemaType := range extractSchemaTypes(s.Text()) {
			if !seen[schemaType] {
				seen[schemaType] = true
				details.SchemaTypes = append(details.SchemaTypes, schemaType)
			}
		}
	})

	doc.Find("[itemtype]").Each(func(_ int, s *goquery.Selection) {
		details.HasStructuredData = true
		if itemType, _ := s.Attr("itemtype"); strings.Contains(itemType, "schema.org/") {
			schemaType := itemType[strings.LastIndex(itemType, "/")+1:]
			if schemaType != "" && !seen[schemaType] {
				seen[schemaType] = true
				details.SchemaTypes = append(details.SchemaTypes, schemaType)
			}
		}
	})
}

// extractSchemaTypes pulls "@type" values out of a JSON-LD block without
// fully decoding it; malformed blocks still count as structured data present.
func extractSchemaTypes(jsonLD string) []string {
	var types []string
	rest := jsonLD
	for {
		idx := strings.Index(rest, `"@type"`)
		if idx < 0 {
			return types
		}
		rest = rest[idx+len(`"@type"`):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return types
		}
		value := strings.TrimSpace(rest[colon+1:])
		if len(value) == 0 || value[0] != '"' {
			continue
		}
		end := strings.Index(value[1:], `"`)
		if end < 0 {
			return types
		}
		types = append(types, value[1:1+end])
	}
}

// extractLinks categorizes links as internal or external and, when enabled,
// checks a bounded number of them for accessibility.
func (f *Fetcher) extractLinks(ctx context.Context, doc *goquery.Document, baseURL *url.URL, details *models.TechnicalSEODetails) {
	seen := make(map[string]bool)
	var toCheck []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return
		}

		parsedLink, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(parsedLink)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if seen[resolved.String()] {
			return
		}
		seen[resolved.String()] = true

		if resolved.Host == baseURL.Host {
			details.InternalLinks++
		} else {
			details.ExternalLinks++
		}
		toCheck = append(toCheck, resolved.String())
	})

	if !f.config.CheckLinks || len(toCheck) == 0 {
		return
	}
	if len(toCheck) > f.config.MaxLinkChecks {
		toCheck = toCheck[:f.config.MaxLinkChecks]
	}

	var broken int64
	g, checkCtx := errgroup.WithContext(ctx)
	g.SetLimit(10)
	results := make([]bool, len(toCheck))
	for i, link := range toCheck {
		i, link := i, link
		g.Go(func() error {
			results[i] = f.isLinkAccessible(checkCtx, link)
			return nil
		})
	}
	_ = g.Wait()
	for _, ok := range results {
		if !ok {
			broken++
		}
	}
	details.BrokenLinks = int(broken)
}

// isLinkAccessible checks a link with a short-timeout HEAD request
func (f *Fetcher) isLinkAccessible(ctx context.Context, link string) bool {
	client := &http.Client{
		Timeout: 3 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
