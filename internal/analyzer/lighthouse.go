package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"seoAnalyzerGO/internal/config"
	"seoAnalyzerGO/internal/models"
)

// ErrLighthouseNotConfigured is returned when no audit endpoint is set
var ErrLighthouseNotConfigured = errors.New("lighthouse endpoint not configured")

// LighthouseClient calls an external PageSpeed-style audit service. Any
// failure leaves the analysis with a neutral default performance score and
// reduced confidence; it is never fatal.
type LighthouseClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewLighthouseClient creates a LighthouseClient
func NewLighthouseClient(cfg config.LighthouseConfig, logger *slog.Logger) *LighthouseClient {
	return &LighthouseClient{
		endpoint: cfg.Endpoint,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// pagespeed-style response, reduced to the fields we read
type lighthouseResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance   struct{ Score float64 } `json:"performance"`
			Accessibility struct{ Score float64 } `json:"accessibility"`
			BestPractices struct{ Score float64 } `json:"best-practices"`
			SEO           struct{ Score float64 } `json:"seo"`
		} `json:"categories"`
		Audits struct {
			LCP struct{ NumericValue float64 } `json:"largest-contentful-paint"`
			CLS struct{ NumericValue float64 } `json:"cumulative-layout-shift"`
			FCP struct{ NumericValue float64 } `json:"first-contentful-paint"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// Run audits the given URL and returns its Lighthouse scores
func (lc *LighthouseClient) Run(ctx context.Context, pageURL string) (*models.LighthouseScores, error) {
	if lc.endpoint == "" {
		return nil, ErrLighthouseNotConfigured
	}

	auditURL := fmt.Sprintf("%s?url=%s&strategy=mobile", lc.endpoint, url.QueryEscape(pageURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, auditURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit request: %w", err)
	}

	resp, err := lc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audit service error: %d %s", resp.StatusCode, resp.Status)
	}

	var parsed lighthouseResponse
	limited := io.LimitReader(resp.Body, 4*1024*1024)
	if err := json.NewDecoder(limited).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode audit response: %w", err)
	}

	lr := parsed.LighthouseResult
	scores := &models.LighthouseScores{
		Performance:   lr.Categories.Performance.Score * 100,
		Accessibility: lr.Categories.Accessibility.Score * 100,
		BestPractices: lr.Categories.BestPractices.Score * 100,
		SEO:           lr.Categories.SEO.Score * 100,
	}
	if lr.Audits.LCP.NumericValue > 0 || lr.Audits.FCP.NumericValue > 0 {
		scores.Vitals = &models.CoreWebVitals{
			LCPMs: lr.Audits.LCP.NumericValue,
			CLS:   lr.Audits.CLS.NumericValue,
			FCPMs: lr.Audits.FCP.NumericValue,
		}
	}
	return scores, nil
}
