package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"

	"seoAnalyzerGO/internal/config"
)

// FetchResult is the raw material for one page analysis
type FetchResult struct {
	URL        string
	Body       []byte
	Headers    http.Header
	StatusCode int
	LoadTime   time.Duration
	Rendered   bool
}

// Fetcher retrieves pages either with a plain HTTP GET or, when requested,
// through a headless browser so client-rendered markup is visible. A failed
// render falls back to the plain fetch; only a total fetch failure is fatal.
type Fetcher struct {
	client *http.Client
	config config.AnalyzerConfig
	logger *slog.Logger
}

// NewFetcher creates a Fetcher
func NewFetcher(cfg config.AnalyzerConfig, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		config: cfg,
		logger: logger,
	}
}

// Fetch retrieves the page at urlStr. With renderJS set it tries the headless
// browser first and silently degrades to a plain fetch on any render error.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string, renderJS bool) (*FetchResult, error) {
	if renderJS {
		result, err := f.renderWithBrowser(ctx, urlStr)
		if err == nil {
			return result, nil
		}
		f.logger.Warn("browser render failed, falling back to plain fetch", "url", urlStr, "error", err)
	}
	return f.fetchPlain(ctx, urlStr)
}

// NormalizeURL parses a raw URL and defaults the scheme to https
func NormalizeURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host in %q", rawURL)
	}
	return parsed, nil
}

func (f *Fetcher) fetchPlain(ctx context.Context, urlStr string) (*FetchResult, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	f.logger.Debug("Sending request", "url", urlStr)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &FetchResult{
		URL:        urlStr,
		Body:       body,
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
		LoadTime:   time.Since(startTime),
	}, nil
}

// renderWithBrowser loads the page in a headless browser and captures the
// rendered markup. Response headers still come from a lightweight HEAD request
// because the browser does not expose them directly.
func (f *Fetcher) renderWithBrowser(ctx context.Context, urlStr string) (*FetchResult, error) {
	renderCtx, cancel := context.WithTimeout(ctx, f.config.RenderTimeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(renderCtx)
	defer browserCancel()

	startTime := time.Now()
	var renderedHTML string
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.OuterHTML("html", &renderedHTML),
	); err != nil {
		return nil, fmt.Errorf("headless render: %w", err)
	}
	loadTime := time.Since(startTime)

	headers, statusCode := f.probeHeaders(ctx, urlStr)

	return &FetchResult{
		URL:        urlStr,
		Body:       []byte(renderedHTML),
		Headers:    headers,
		StatusCode: statusCode,
		LoadTime:   loadTime,
		Rendered:   true,
	}, nil
}

// probeHeaders fetches response headers with a HEAD request. Failure is not
// fatal; the analysis just loses header-derived signals.
func (f *Fetcher) probeHeaders(ctx context.Context, urlStr string) (http.Header, int) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, urlStr, nil)
	if err != nil {
		return nil, http.StatusOK
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, http.StatusOK
	}
	defer resp.Body.Close()

	return resp.Header, resp.StatusCode
}
