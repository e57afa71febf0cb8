// Package crawler walks a site breadth-first within depth and page caps. It
// owns the frontier, the visited set, and politeness; what happens to each
// page is the caller's visit function, so the crawler stays free of analysis
// concerns.
package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"seoAnalyzerGO/internal/config"
)

// VisitFunc processes one page and returns the outbound links discovered on
// it. An error skips the page without aborting the crawl.
type VisitFunc func(ctx context.Context, pageURL string) (links []string, err error)

// Result reports which URLs were crawled and which were seen but skipped,
// whether by failure or by hitting a cap.
type Result struct {
	Crawled []string
	Skipped []string
}

// Crawler is a bounded-concurrency breadth-first site walker
type Crawler struct {
	workers  int
	maxPages int
	maxDepth int
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// New creates a Crawler. maxPages and maxDepth override the configured
// defaults when positive.
func New(cfg config.CrawlerConfig, maxPages, maxDepth int, logger *slog.Logger) *Crawler {
	if maxPages <= 0 {
		maxPages = cfg.DefaultMaxPages
	}
	if maxDepth <= 0 {
		maxDepth = cfg.DefaultDepth
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Crawler{
		workers:  workers,
		maxPages: maxPages,
		maxDepth: maxDepth,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:   logger,
	}
}

// Crawl walks the site starting at startURL, calling visit for each page.
// Only same-host links are followed. Pages beyond the caps are recorded as
// skipped. The returned Crawled list preserves breadth-first order.
func (c *Crawler) Crawl(ctx context.Context, startURL string, visit VisitFunc) (*Result, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	visited := map[string]bool{canonicalize(startURL): true}
	frontier := []string{startURL}

	for depth := 0; depth <= c.maxDepth && len(frontier) > 0; depth++ {
		var (
			mu      sync.Mutex
			next    []string
			g, gctx = errgroup.WithContext(ctx)
		)
		g.SetLimit(c.workers)

		for _, pageURL := range frontier {
			pageURL := pageURL
			mu.Lock()
			atCap := len(result.Crawled) >= c.maxPages
			if atCap {
				result.Skipped = append(result.Skipped, pageURL)
			} else {
				result.Crawled = append(result.Crawled, pageURL)
			}
			mu.Unlock()
			if atCap {
				continue
			}

			g.Go(func() error {
				if err := c.limiter.Wait(gctx); err != nil {
					return err
				}

				links, err := visit(gctx, pageURL)
				if err != nil {
					c.logger.Warn("page visit failed, skipping", "url", pageURL, "error", err)
					mu.Lock()
					result.Skipped = append(result.Skipped, pageURL)
					result.Crawled = remove(result.Crawled, pageURL)
					mu.Unlock()
					return nil
				}

				mu.Lock()
				for _, link := range links {
					if !sameHost(start, link) {
						continue
					}
					key := canonicalize(link)
					if visited[key] {
						continue
					}
					visited[key] = true
					next = append(next, link)
				}
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
		frontier = next
	}

	// frontier left when depth ran out
	result.Skipped = append(result.Skipped, frontier...)
	return result, nil
}

func sameHost(start *url.URL, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, start.Host)
}

// canonicalize normalizes a URL for visited-set membership
func canonicalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	s := u.String()
	return strings.TrimSuffix(s, "/")
}

func remove(list []string, item string) []string {
	for i, v := range list {
		if v == item {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
