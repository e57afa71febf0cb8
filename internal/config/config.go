package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Analyzer   AnalyzerConfig
	AI         AIConfig
	Lighthouse LighthouseConfig
	Crawler    CrawlerConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	CollectionName string
	Timeout        time.Duration
}

// AnalyzerConfig holds page fetch and extraction configuration
type AnalyzerConfig struct {
	RequestTimeout time.Duration
	RenderTimeout  time.Duration
	UserAgent      string
	CheckLinks     bool
	MaxLinkChecks  int
}

// AIConfig holds the AI content analysis gateway configuration
type AIConfig struct {
	Enabled  bool
	Provider string
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// LighthouseConfig holds the external performance audit configuration
type LighthouseConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// CrawlerConfig holds multi-page crawl configuration
type CrawlerConfig struct {
	Workers           int
	RequestsPerSecond float64
	DefaultMaxPages   int
	DefaultDepth      int
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// New creates a new Config with values from environment variables
func New() (*Config, error) {
	port := getEnv("PORT", "9090")
	readTimeout, err := getEnvInt("READ_TIMEOUT", 5)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("WRITE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvInt("SHUTDOWN_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getEnvInt("REQUEST_TIMEOUT", 15)
	if err != nil {
		return nil, err
	}
	renderTimeout, err := getEnvInt("RENDER_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	maxLinkChecks, err := getEnvInt("MAX_LINK_CHECKS", 20)
	if err != nil {
		return nil, err
	}
	mongoTimeout, err := getEnvInt("MONGO_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	aiTimeout, err := getEnvInt("AI_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	aiCacheTTL, err := getEnvInt("AI_KEY_CACHE_TTL", 300)
	if err != nil {
		return nil, err
	}
	lighthouseTimeout, err := getEnvInt("LIGHTHOUSE_TIMEOUT", 60)
	if err != nil {
		return nil, err
	}
	crawlWorkers, err := getEnvInt("CRAWL_WORKERS", 5)
	if err != nil {
		return nil, err
	}
	crawlMaxPages, err := getEnvInt("CRAWL_MAX_PAGES", 10)
	if err != nil {
		return nil, err
	}
	crawlDepth, err := getEnvInt("CRAWL_DEPTH", 2)
	if err != nil {
		return nil, err
	}
	crawlRPS, err := getEnvFloat("CRAWL_REQUESTS_PER_SECOND", 2)
	if err != nil {
		return nil, err
	}
	rateLimitRPM, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return nil, err
	}
	rateLimitBurst, err := getEnvInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     time.Duration(readTimeout) * time.Second,
			WriteTimeout:    time.Duration(writeTimeout) * time.Second,
			ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DB", "seo_analyzer"),
			CollectionName: getEnv("MONGO_COLLECTION", "analyses"),
			Timeout:        time.Duration(mongoTimeout) * time.Second,
		},
		Analyzer: AnalyzerConfig{
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
			RenderTimeout:  time.Duration(renderTimeout) * time.Second,
			UserAgent:      getEnv("USER_AGENT", "SEOAnalyzer/1.0"),
			CheckLinks:     getEnvBool("CHECK_LINKS", true),
			MaxLinkChecks:  maxLinkChecks,
		},
		AI: AIConfig{
			Enabled:  getEnvBool("AI_ENABLED", false),
			Provider: getEnv("AI_PROVIDER", "openai"),
			Endpoint: getEnv("AI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			Model:    getEnv("AI_MODEL", "gpt-4o-mini"),
			APIKey:   getEnv("AI_API_KEY", ""),
			Timeout:  time.Duration(aiTimeout) * time.Second,
			CacheTTL: time.Duration(aiCacheTTL) * time.Second,
		},
		Lighthouse: LighthouseConfig{
			Endpoint: getEnv("LIGHTHOUSE_ENDPOINT", ""),
			Timeout:  time.Duration(lighthouseTimeout) * time.Second,
		},
		Crawler: CrawlerConfig{
			Workers:           crawlWorkers,
			RequestsPerSecond: crawlRPS,
			DefaultMaxPages:   crawlMaxPages,
			DefaultDepth:      crawlDepth,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: rateLimitRPM,
			Burst:             rateLimitBurst,
		},
	}, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
