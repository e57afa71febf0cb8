package crawler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoAnalyzerGO/internal/config"
)

func testCrawler(maxPages, maxDepth int) *Crawler {
	cfg := config.CrawlerConfig{
		Workers:           3,
		RequestsPerSecond: 1000,
		DefaultMaxPages:   10,
		DefaultDepth:      2,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, maxPages, maxDepth, logger)
}

// siteMap-backed visit function recording which pages were visited
func siteVisitor(site map[string][]string) (VisitFunc, *sync.Map) {
	var visited sync.Map
	return func(_ context.Context, pageURL string) ([]string, error) {
		visited.Store(pageURL, true)
		links, ok := site[pageURL]
		if !ok {
			return nil, errors.New("not found")
		}
		return links, nil
	}, &visited
}

func TestCrawlFollowsSameHostLinks(t *testing.T) {
	site := map[string][]string{
		"https://example.com":      {"https://example.com/a", "https://example.com/b", "https://other.com/x"},
		"https://example.com/a":    {"https://example.com/deep"},
		"https://example.com/b":    {},
		"https://example.com/deep": {},
	}
	visit, seen := siteVisitor(site)

	result, err := testCrawler(10, 3).Crawl(context.Background(), "https://example.com", visit)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"https://example.com",
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/deep",
	}, result.Crawled)

	_, crossedHosts := seen.Load("https://other.com/x")
	assert.False(t, crossedHosts, "crawler followed a cross-host link")
}

func TestCrawlRespectsPageCap(t *testing.T) {
	site := map[string][]string{
		"https://example.com": {
			"https://example.com/1", "https://example.com/2",
			"https://example.com/3", "https://example.com/4",
		},
		"https://example.com/1": {},
		"https://example.com/2": {},
		"https://example.com/3": {},
		"https://example.com/4": {},
	}
	visit, _ := siteVisitor(site)

	result, err := testCrawler(3, 3).Crawl(context.Background(), "https://example.com", visit)
	require.NoError(t, err)

	assert.Len(t, result.Crawled, 3)
	assert.Len(t, result.Skipped, 2)
}

func TestCrawlRespectsDepthCap(t *testing.T) {
	site := map[string][]string{
		"https://example.com":    {"https://example.com/l1"},
		"https://example.com/l1": {"https://example.com/l2"},
		"https://example.com/l2": {"https://example.com/l3"},
		"https://example.com/l3": {},
	}
	visit, _ := siteVisitor(site)

	result, err := testCrawler(10, 1).Crawl(context.Background(), "https://example.com", visit)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"https://example.com", "https://example.com/l1"}, result.Crawled)
	assert.Contains(t, result.Skipped, "https://example.com/l2")
}

func TestCrawlIsolatesPageFailures(t *testing.T) {
	site := map[string][]string{
		"https://example.com":      {"https://example.com/bad", "https://example.com/good"},
		"https://example.com/good": {},
		// /bad is missing from the map, so its visit fails
	}
	visit, _ := siteVisitor(site)

	result, err := testCrawler(10, 2).Crawl(context.Background(), "https://example.com", visit)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"https://example.com", "https://example.com/good"}, result.Crawled)
	assert.Contains(t, result.Skipped, "https://example.com/bad")
}

func TestCrawlDeduplicatesByFragmentAndTrailingSlash(t *testing.T) {
	site := map[string][]string{
		"https://example.com": {
			"https://example.com/page",
			"https://example.com/page#section",
			"https://example.com/page/",
		},
		"https://example.com/page": {},
	}
	visit, _ := siteVisitor(site)

	result, err := testCrawler(10, 2).Crawl(context.Background(), "https://example.com", visit)
	require.NoError(t, err)
	assert.Len(t, result.Crawled, 2)
}

func TestCrawlInvalidStartURL(t *testing.T) {
	visit, _ := siteVisitor(nil)
	_, err := testCrawler(10, 2).Crawl(context.Background(), "://bad", visit)
	assert.Error(t, err)
}
