package aigateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoAnalyzerGO/internal/config"
	"seoAnalyzerGO/internal/keycache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.NotEmpty(t, req.Messages)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(endpoint string) *Client {
	cfg := config.AIConfig{
		Enabled:  true,
		Provider: "openai",
		Endpoint: endpoint,
		Model:    "test-model",
		APIKey:   "sk-test",
		Timeout:  5 * time.Second,
	}
	return New(cfg, keycache.New(time.Minute), testLogger())
}

const judgmentJSON = `{"qualitySignals":true,"expertiseSignals":true,"trustSignals":false,` +
	`"strengths":["clear structure"],"improvements":["add sources"],"topicCoverage":"covers the basics"}`

func TestAnalyzeContentPlainJSON(t *testing.T) {
	server := completionServer(t, judgmentJSON)
	defer server.Close()

	judgment, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{
		Title: "Soil health",
		Text:  "Healthy soil grows healthy plants.",
	})
	require.NoError(t, err)
	assert.True(t, judgment.QualitySignals)
	assert.True(t, judgment.ExpertiseSignals)
	assert.False(t, judgment.TrustSignals)
	assert.Equal(t, []string{"clear structure"}, judgment.Strengths)
	assert.Equal(t, "covers the basics", judgment.TopicCoverage)
}

func TestAnalyzeContentStripsMarkdownFences(t *testing.T) {
	server := completionServer(t, "```json\n"+judgmentJSON+"\n```")
	defer server.Close()

	judgment, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
	require.NoError(t, err)
	assert.True(t, judgment.QualitySignals)
}

func TestAnalyzeContentExtractsJSONFromProse(t *testing.T) {
	reply := fmt.Sprintf("Here is my assessment of the page:\n%s\nLet me know if you need more.", judgmentJSON)
	server := completionServer(t, reply)
	defer server.Close()

	judgment, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "covers the basics", judgment.TopicCoverage)
}

func TestAnalyzeContentUnparseableReply(t *testing.T) {
	server := completionServer(t, "I cannot produce JSON today.")
	defer server.Close()

	_, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
	assert.Error(t, err)
}

func TestAnalyzeContentProviderErrors(t *testing.T) {
	t.Run("Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
		assert.Error(t, err)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
		assert.Error(t, err)
	})

	t.Run("EmptyChoices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := testClient(server.URL).AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
		assert.Error(t, err)
	})
}

func TestAnalyzeContentNotConfigured(t *testing.T) {
	cfg := config.AIConfig{Enabled: false}
	client := New(cfg, nil, testLogger())

	_, err := client.AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, client.Enabled())
}

func TestKeyResolverMemoizedByCache(t *testing.T) {
	server := completionServer(t, judgmentJSON)
	defer server.Close()

	cfg := config.AIConfig{
		Enabled:  true,
		Provider: "openai",
		Endpoint: server.URL,
		Model:    "test-model",
		Timeout:  5 * time.Second,
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	keys := keycache.NewWithClock(time.Minute, func() time.Time { return now })

	calls := 0
	resolve := func(provider string) (string, error) {
		calls++
		assert.Equal(t, "openai", provider)
		return "sk-test", nil
	}
	client := NewWithKeyResolver(cfg, keys, resolve, testLogger())

	for i := 0; i < 3; i++ {
		_, err := client.AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls, "cached credential must not be re-resolved")

	now = now.Add(2 * time.Minute)
	_, err := client.AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired credential must be resolved again")
}

func TestKeyResolverFailure(t *testing.T) {
	cfg := config.AIConfig{
		Enabled:  true,
		Provider: "openai",
		Endpoint: "http://127.0.0.1:0",
		Model:    "test-model",
		Timeout:  5 * time.Second,
	}
	resolve := func(string) (string, error) { return "", errors.New("vault sealed") }
	client := NewWithKeyResolver(cfg, keycache.New(time.Minute), resolve, testLogger())

	_, err := client.AnalyzeContent(context.Background(), ContentPrompt{Text: "x"})
	assert.ErrorContains(t, err, "vault sealed")
}

func TestPromptTruncation(t *testing.T) {
	longText := make([]byte, maxPromptTextLen*2)
	for i := range longText {
		longText[i] = 'a'
	}

	prompt := buildPrompt(ContentPrompt{Title: "t", Text: string(longText)})
	assert.Less(t, len(prompt), maxPromptTextLen+1000)
}
