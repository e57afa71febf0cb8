package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"seoAnalyzerGO/internal/aigateway"
	"seoAnalyzerGO/internal/config"
	"seoAnalyzerGO/internal/crawler"
	"seoAnalyzerGO/internal/keycache"
	"seoAnalyzerGO/internal/models"
	"seoAnalyzerGO/internal/report"
	"seoAnalyzerGO/internal/scoring"
)

// Service runs the full analysis pipeline for a URL: fetch, probe, measure,
// detect issues, score and report. One call produces one immutable
// AnalysisResult; persistence is the caller's concern.
type Service struct {
	cfg        *config.Config
	fetcher    *Fetcher
	lighthouse *LighthouseClient
	heuristic  ContentAnalyzer
	ai         ContentAnalyzer
	engine     *scoring.Engine
	logger     *slog.Logger
}

// NewService wires the analysis pipeline from configuration. The AI content
// path is only constructed when the gateway is enabled; the heuristic path is
// always available as the fallback.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	s := &Service{
		cfg:        cfg,
		fetcher:    NewFetcher(cfg.Analyzer, logger),
		lighthouse: NewLighthouseClient(cfg.Lighthouse, logger),
		heuristic:  NewHeuristicContentAnalyzer(logger),
		engine:     scoring.New(logger),
		logger:     logger,
	}

	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		keys := keycache.New(cfg.AI.CacheTTL)
		gateway := aigateway.New(cfg.AI, keys, logger)
		s.ai = NewAIContentAnalyzer(gateway, logger)
	}
	return s
}

// pageAnalysis holds everything measured for a single page
type pageAnalysis struct {
	URL       string
	Fetch     *FetchResult
	Technical models.TechnicalSEODetails
	Content   models.ContentAnalysisResult
	Security  models.SecurityAnalysis
	WordPress *models.WordPressAnalysis
	Issues    []models.SEOIssue
	Links     []string
}

// Analyze runs one analysis. Only a total fetch failure of the primary URL
// returns an error; every other degradation is recorded in the result's
// confidence and measurement limitations instead.
func (s *Service) Analyze(ctx context.Context, rawURL string, opts models.AnalysisOptions) (*models.AnalysisResult, error) {
	started := time.Now()

	parsed, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	target := parsed.String()

	page, err := s.analyzePage(ctx, target, opts, true)
	if err != nil {
		return nil, fmt.Errorf("analysis of %s failed: %w", target, err)
	}

	var lighthouse *models.LighthouseScores
	if opts.RunLighthouse {
		lighthouse = s.runLighthouse(ctx, target)
	}

	var crawl *models.CrawlSummary
	content := page.Content
	issues := page.Issues
	if opts.CrawlEnabled {
		crawl, content, issues = s.crawlSite(ctx, target, opts, page)
	}

	outcome := s.engine.Calculate(scoring.Input{
		Issues:     issues,
		Lighthouse: lighthouse,
		Technical:  page.Technical,
		Content:    content,
		WordPress:  page.WordPress,
	})

	aiUsed := content.AIInsights != nil
	lighthouseUsed := lighthouse != nil

	result := &models.AnalysisResult{
		Website:         parsed.Host,
		URL:             target,
		Score:           outcome.Breakdown.Total,
		Confidence:      outcome.Confidence,
		CategoryScores:  outcome.Categories,
		ScoreBreakdown:  outcome.Breakdown,
		HealthStatus:    outcome.Health,
		Issues:          issues,
		Recommendations: report.Recommendations(issues, outcome.Categories),
		Lighthouse:      lighthouse,
		Technical:       page.Technical,
		Content:         content,
		WordPress:       page.WordPress,
		Security:        page.Security,
		Crawl:           crawl,
		ScoreContext:    report.Context(aiUsed, lighthouseUsed),
		Benchmark:       report.Benchmark(outcome.Breakdown.Total, opts.Industry),
		CreatedAt:       time.Now(),
		Metadata: models.AnalysisMetadata{
			RunID:                  uuid.NewString(),
			AnalyzedAt:             started,
			DurationMs:             time.Since(started).Milliseconds(),
			RenderedWithBrowser:    page.Fetch.Rendered,
			LighthouseUsed:         lighthouseUsed,
			AIContentAnalysisUsed:  aiUsed,
			MeasurementLimitations: measurementLimitations(opts, page.Fetch.Rendered, lighthouseUsed, aiUsed),
		},
	}

	if opts.SkipIssueTracking {
		result.Issues = nil
	}

	s.logger.Info("analysis completed",
		"url", target, "score", result.Score, "confidence", result.Confidence,
		"issues", len(issues), "duration_ms", result.Metadata.DurationMs)
	return result, nil
}

// analyzePage fetches and measures one page. The WordPress probe only runs on
// the primary page; crawled pages reuse the primary verdict.
func (s *Service) analyzePage(ctx context.Context, pageURL string, opts models.AnalysisOptions, primary bool) (*pageAnalysis, error) {
	fetch, err := s.fetcher.Fetch(ctx, pageURL, opts.RenderJS)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fetch.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	baseURL, err := url.Parse(fetch.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid fetched URL: %w", err)
	}

	page := &pageAnalysis{
		URL:      pageURL,
		Fetch:    fetch,
		Security: BuildSecurityAnalysis(baseURL, fetch.Headers),
	}

	// The probes read the same parsed document but never write to it, so
	// they can fan out safely.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page.Technical = s.fetcher.ExtractTechnicalDetails(gctx, fetch, baseURL, doc)
		return nil
	})
	if primary {
		g.Go(func() error {
			page.WordPress = s.fetcher.DetectWordPress(gctx, doc, baseURL, opts.DeepWordPress)
			return nil
		})
	}
	_ = g.Wait()

	page.Content = s.contentAnalyzer().Analyze(ctx, ContentInput{
		Text:               extractVisibleText(doc),
		Title:              page.Technical.Title,
		Description:        page.Technical.Description,
		HeadingCount:       page.Technical.HeadingCount,
		ParagraphCount:     doc.Find("p").Length(),
		HasProperHierarchy: page.Technical.HasProperHierarchy,
		LogicalHeadingFlow: page.Technical.LogicalHeadingFlow,
	})

	page.Issues = DetectIssues(DetectorInput{
		Technical: page.Technical,
		Content:   page.Content,
		Security:  page.Security,
		WordPress: page.WordPress,
		PageURL:   pageURL,
	})
	page.Links = collectSameHostLinks(doc, baseURL)
	return page, nil
}

// crawlSite walks the site from the primary page and folds the per-page
// measurements into site-level content, issues and a crawl summary. The
// primary page is already analyzed and seeds the aggregation.
func (s *Service) crawlSite(ctx context.Context, startURL string, opts models.AnalysisOptions, primary *pageAnalysis) (*models.CrawlSummary, models.ContentAnalysisResult, []models.SEOIssue) {
	var (
		mu    sync.Mutex
		pages = []*pageAnalysis{primary}
	)

	pageOpts := opts
	pageOpts.RenderJS = false // crawled pages get the plain fetch

	walker := crawler.New(s.cfg.Crawler, opts.MaxCrawlPages, opts.CrawlDepth, s.logger)
	crawlResult, err := walker.Crawl(ctx, startURL, func(ctx context.Context, pageURL string) ([]string, error) {
		if pageURL == startURL {
			return primary.Links, nil
		}
		page, err := s.analyzePage(ctx, pageURL, pageOpts, false)
		if err != nil {
			return nil, err
		}
		page.WordPress = primary.WordPress
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
		return page.Links, nil
	})
	if err != nil {
		s.logger.Warn("crawl aborted, using primary page only", "error", err)
		return nil, primary.Content, primary.Issues
	}

	var (
		contents   []models.ContentAnalysisResult
		pageIssues [][]models.SEOIssue
		scoreSum   float64
		withIssues int
	)
	for _, page := range pages {
		contents = append(contents, page.Content)
		pageIssues = append(pageIssues, page.Issues)
		if len(page.Issues) > 0 {
			withIssues++
		}
		pageOutcome := s.engine.Calculate(scoring.Input{
			Issues:    page.Issues,
			Technical: page.Technical,
			Content:   page.Content,
			WordPress: page.WordPress,
		})
		scoreSum += float64(pageOutcome.Breakdown.Total)
	}

	summary := &models.CrawlSummary{
		PagesAnalyzed:    len(pages),
		PagesWithIssues:  withIssues,
		AveragePageScore: scoreSum / float64(len(pages)),
		CrawledURLs:      crawlResult.Crawled,
		SkippedURLs:      crawlResult.Skipped,
	}
	return summary, AggregateContent(contents), MergeIssues(pageIssues...)
}

// runLighthouse audits the page; failure degrades to no scores
func (s *Service) runLighthouse(ctx context.Context, target string) *models.LighthouseScores {
	scores, err := s.lighthouse.Run(ctx, target)
	if err != nil {
		s.logger.Warn("lighthouse audit unavailable, using default performance baseline",
			"url", target, "error", err)
		return nil
	}
	return scores
}

func (s *Service) contentAnalyzer() ContentAnalyzer {
	if s.ai != nil {
		return s.ai
	}
	return s.heuristic
}

// extractVisibleText flattens the body text, skipping script and style blocks
func extractVisibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(body.Text()), " ")
}

// collectSameHostLinks gathers resolved same-host anchor targets for crawling
func collectSameHostLinks(doc *goquery.Document, baseURL *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := baseURL.ResolveReference(parsed)
		if resolved.Host != baseURL.Host || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}
		resolved.Fragment = ""
		link := resolved.String()
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})
	return links
}

// measurementLimitations builds the disclosure list for the run metadata
func measurementLimitations(opts models.AnalysisOptions, rendered, lighthouseUsed, aiUsed bool) []string {
	limitations := []string{
		"Off-page factors such as backlinks and keyword rankings are not measured",
	}
	if opts.RenderJS && !rendered {
		limitations = append(limitations, "Browser render failed; analysis ran on the raw HTML response")
	}
	if !lighthouseUsed {
		limitations = append(limitations, "Performance measured without a Lighthouse audit; a neutral baseline was used")
	}
	if !aiUsed {
		limitations = append(limitations, "Content quality judged by heuristics; AI content analysis was not used")
	}
	return limitations
}
