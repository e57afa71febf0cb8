// Package aigateway talks to an OpenAI-compatible chat completions endpoint
// to obtain an editorial judgment of page content. The gateway is optional:
// callers treat any error as a signal to fall back to heuristics.
package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"seoAnalyzerGO/internal/config"
	"seoAnalyzerGO/internal/keycache"
)

// ErrNotConfigured is returned when the gateway is disabled or has no credential
var ErrNotConfigured = errors.New("ai gateway not configured")

const (
	// keep the prompt bounded; anything past this adds cost without
	// changing the judgment
	maxPromptTextLen = 6000

	maxResponseBytes = 1 * 1024 * 1024
)

// ContentPrompt carries the page material sent to the model
type ContentPrompt struct {
	Title       string
	Description string
	Text        string
	Keywords    []string
}

// ContentJudgment is the model's structured verdict on the content
type ContentJudgment struct {
	QualitySignals   bool     `json:"qualitySignals"`
	ExpertiseSignals bool     `json:"expertiseSignals"`
	TrustSignals     bool     `json:"trustSignals"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	TopicCoverage    string   `json:"topicCoverage"`
}

// KeyResolver returns the credential for a provider. Resolution may be
// expensive (a secrets manager, a file read), so the client memoizes results
// in its key cache for the cache TTL.
type KeyResolver func(provider string) (string, error)

// Client calls the configured completion endpoint and parses the JSON verdict
// out of the model's reply.
type Client struct {
	config  config.AIConfig
	keys    *keycache.Cache
	resolve KeyResolver
	client  *http.Client
	logger  *slog.Logger
}

// New creates a Client that authenticates with the statically configured key
func New(cfg config.AIConfig, keys *keycache.Cache, logger *slog.Logger) *Client {
	var resolve KeyResolver
	if cfg.APIKey != "" {
		resolve = func(string) (string, error) { return cfg.APIKey, nil }
	}
	return NewWithKeyResolver(cfg, keys, resolve, logger)
}

// NewWithKeyResolver creates a Client that obtains its credential through
// resolve, consulting the key cache first on every request.
func NewWithKeyResolver(cfg config.AIConfig, keys *keycache.Cache, resolve KeyResolver, logger *slog.Logger) *Client {
	return &Client{
		config:  cfg,
		keys:    keys,
		resolve: resolve,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether the gateway can serve requests
func (c *Client) Enabled() bool {
	return c.config.Enabled && c.config.Endpoint != "" && c.resolve != nil
}

// AnalyzeContent asks the model for a content quality judgment
func (c *Client) AnalyzeContent(ctx context.Context, prompt ContentPrompt) (*ContentJudgment, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	reqBody := map[string]any{
		"model": c.config.Model,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(prompt)},
		},
		"temperature": 0.2,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completion request: %w", err)
	}

	key, err := c.apiKey()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("ai provider rejected credentials: %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai provider error: %d %s", resp.StatusCode, resp.Status)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	limited := io.LimitReader(resp.Body, maxResponseBytes)
	if err := json.NewDecoder(limited).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("ai provider returned no choices")
	}

	judgment, err := parseJudgment(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return judgment, nil
}

// apiKey returns the provider credential, resolving it only when the cached
// entry is missing or expired
func (c *Client) apiKey() (string, error) {
	if c.keys != nil {
		if key, ok := c.keys.Get("service", c.config.Provider); ok {
			return key, nil
		}
	}
	key, err := c.resolve(c.config.Provider)
	if err != nil {
		return "", err
	}
	if c.keys != nil {
		c.keys.Put("service", c.config.Provider, key)
	}
	return key, nil
}

// parseJudgment extracts the JSON object from the model reply. Models often
// wrap JSON in markdown fences or surround it with prose, so strip fences
// first and fall back to the outermost brace pair.
func parseJudgment(content string) (*ContentJudgment, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var judgment ContentJudgment
	if err := json.Unmarshal([]byte(content), &judgment); err == nil {
		return &judgment, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in ai reply")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &judgment); err != nil {
		return nil, fmt.Errorf("failed to parse ai judgment: %w", err)
	}
	return &judgment, nil
}

func buildPrompt(p ContentPrompt) string {
	text := p.Text
	if len(text) > maxPromptTextLen {
		text = text[:maxPromptTextLen]
	}

	var b strings.Builder
	b.WriteString("You are an SEO content auditor. Evaluate the page content below and respond with JSON only, no markdown fences:\n")
	b.WriteString(`{"qualitySignals": bool, "expertiseSignals": bool, "trustSignals": bool, "strengths": ["..."], "improvements": ["..."], "topicCoverage": "one sentence"}`)
	b.WriteString("\n\nqualitySignals: content is substantive and well organized.\n")
	b.WriteString("expertiseSignals: content demonstrates author expertise or cites sources.\n")
	b.WriteString("trustSignals: content shows trust markers such as policies, contact info, or credentials.\n")

	fmt.Fprintf(&b, "\nTitle: %s\nMeta description: %s\n", p.Title, p.Description)
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&b, "Target keywords: %s\n", strings.Join(p.Keywords, ", "))
	}
	fmt.Fprintf(&b, "\nContent:\n%s\n", text)
	return b.String()
}
