package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyzeRequest represents the request to analyze a URL
type AnalyzeRequest struct {
	URL     string          `json:"url" binding:"required,url"`
	Options AnalysisOptions `json:"options"`
}

// AnalysisOptions holds the recognized per-run options
type AnalysisOptions struct {
	RenderJS          bool   `json:"renderJs" bson:"render_js"`
	RunLighthouse     bool   `json:"runLighthouse" bson:"run_lighthouse"`
	DeepWordPress     bool   `json:"deepWordPress" bson:"deep_wordpress"`
	CrawlEnabled      bool   `json:"crawlEnabled" bson:"crawl_enabled"`
	MaxCrawlPages     int    `json:"maxCrawlPages" bson:"max_crawl_pages"`
	CrawlDepth        int    `json:"crawlDepth" bson:"crawl_depth"`
	Industry          string `json:"industry" bson:"industry"`
	SkipIssueTracking bool   `json:"skipIssueTracking" bson:"skip_issue_tracking"`
}

// TechnicalSEODetails is the immutable per-page structural snapshot produced
// by the collector and consumed by issue detection and scoring.
type TechnicalSEODetails struct {
	HasTitle           bool                `json:"hasTitle" bson:"has_title"`
	Title              string              `json:"title" bson:"title"`
	TitleLength        int                 `json:"titleLength" bson:"title_length"`
	HasDescription     bool                `json:"hasDescription" bson:"has_description"`
	Description        string              `json:"description" bson:"description"`
	DescriptionLength  int                 `json:"descriptionLength" bson:"description_length"`
	H1Count            int                 `json:"h1Count" bson:"h1_count"`
	H2Count            int                 `json:"h2Count" bson:"h2_count"`
	H3Count            int                 `json:"h3Count" bson:"h3_count"`
	HeadingCount       int                 `json:"headingCount" bson:"heading_count"`
	HasProperHierarchy bool                `json:"hasProperHierarchy" bson:"has_proper_hierarchy"`
	LogicalHeadingFlow bool                `json:"logicalHeadingFlow" bson:"logical_heading_flow"`
	ImagesTotal        int                 `json:"imagesTotal" bson:"images_total"`
	ImagesWithoutAlt   int                 `json:"imagesWithoutAlt" bson:"images_without_alt"`
	ImagesWithDims     int                 `json:"imagesWithDims" bson:"images_with_dims"`
	ImagesLazyLoaded   int                 `json:"imagesLazyLoaded" bson:"images_lazy_loaded"`
	InternalLinks      int                 `json:"internalLinks" bson:"internal_links"`
	ExternalLinks      int                 `json:"externalLinks" bson:"external_links"`
	BrokenLinks        int                 `json:"brokenLinks" bson:"broken_links"`
	HasCanonical       bool                `json:"hasCanonical" bson:"has_canonical"`
	CanonicalURL       string              `json:"canonicalUrl,omitempty" bson:"canonical_url,omitempty"`
	HasViewport        bool                `json:"hasViewport" bson:"has_viewport"`
	IsResponsive       bool                `json:"isResponsive" bson:"is_responsive"`
	HasOgTags          bool                `json:"hasOgTags" bson:"has_og_tags"`
	HasStructuredData  bool                `json:"hasStructuredData" bson:"has_structured_data"`
	SchemaTypes        []string            `json:"schemaTypes,omitempty" bson:"schema_types,omitempty"`
	PageSizeBytes      int64               `json:"pageSizeBytes" bson:"page_size_bytes"`
	LoadTimeMs         int64               `json:"loadTimeMs" bson:"load_time_ms"`
	StatusCode         int                 `json:"statusCode" bson:"status_code"`
	ResponseHeaders    map[string][]string `json:"responseHeaders,omitempty" bson:"response_headers,omitempty"`
}

// MeasurementConfidence records whether AI or heuristic analysis produced a
// content result.
type MeasurementConfidence string

const (
	ConfidenceHigh   MeasurementConfidence = "high"
	ConfidenceMedium MeasurementConfidence = "medium"
	ConfidenceLow    MeasurementConfidence = "low"
)

// AIInsights carries the optional AI-derived content judgment
type AIInsights struct {
	Strengths     []string `json:"strengths" bson:"strengths"`
	Improvements  []string `json:"improvements" bson:"improvements"`
	TopicCoverage string   `json:"topicCoverage" bson:"topic_coverage"`
}

// ContentAnalysisResult is one page's content measurement. In crawl mode the
// per-page results are combined by word-count weighted average.
type ContentAnalysisResult struct {
	WordCount             int                   `json:"wordCount" bson:"word_count"`
	ReadabilityScore      float64               `json:"readabilityScore" bson:"readability_score"`
	ReadabilityGrade      string                `json:"readabilityGrade" bson:"readability_grade"`
	StructureScore        float64               `json:"structureScore" bson:"structure_score"`
	HasQualitySignals     bool                  `json:"hasQualitySignals" bson:"has_quality_signals"`
	HasExpertiseSignals   bool                  `json:"hasExpertiseSignals" bson:"has_expertise_signals"`
	HasTrustSignals       bool                  `json:"hasTrustSignals" bson:"has_trust_signals"`
	LogicalHeadingFlow    bool                  `json:"logicalHeadingFlow" bson:"logical_heading_flow"`
	HeadingCount          int                   `json:"headingCount" bson:"heading_count"`
	AIInsights            *AIInsights           `json:"aiInsights,omitempty" bson:"ai_insights,omitempty"`
	MeasurementConfidence MeasurementConfidence `json:"measurementConfidence" bson:"measurement_confidence"`
}

// SecurityAnalysis holds the security posture derived from scheme and headers
type SecurityAnalysis struct {
	HTTPS               bool `json:"https" bson:"https"`
	HSTS                bool `json:"hsts" bson:"hsts"`
	CSPHeader           bool `json:"cspHeader" bson:"csp_header"`
	XContentTypeNosniff bool `json:"xContentTypeNosniff" bson:"x_content_type_nosniff"`
	XFrameOptions       bool `json:"xFrameOptions" bson:"x_frame_options"`
	XSSProtection       bool `json:"xssProtection" bson:"xss_protection"`
}

// WordPressAnalysis describes CMS detection results for WordPress sites
type WordPressAnalysis struct {
	Detected            bool     `json:"detected" bson:"detected"`
	DetectionConfidence string   `json:"detectionConfidence" bson:"detection_confidence"` // high|medium|low
	Version             string   `json:"version,omitempty" bson:"version,omitempty"`
	Theme               string   `json:"theme,omitempty" bson:"theme,omitempty"`
	Plugins             []string `json:"plugins,omitempty" bson:"plugins,omitempty"`
	RestAPIExposed      bool     `json:"restApiExposed" bson:"rest_api_exposed"`
	VersionExposed      bool     `json:"versionExposed" bson:"version_exposed"`
}

// CoreWebVitals carries the per-metric page performance measurements
type CoreWebVitals struct {
	LCPMs float64 `json:"lcpMs" bson:"lcp_ms"`
	CLS   float64 `json:"cls" bson:"cls"`
	FCPMs float64 `json:"fcpMs" bson:"fcp_ms"`
}

// LighthouseScores holds the external audit result when available
type LighthouseScores struct {
	Performance   float64        `json:"performance" bson:"performance"`
	Accessibility float64        `json:"accessibility" bson:"accessibility"`
	BestPractices float64        `json:"bestPractices" bson:"best_practices"`
	SEO           float64        `json:"seo" bson:"seo"`
	Vitals        *CoreWebVitals `json:"vitals,omitempty" bson:"vitals,omitempty"`
}

// CrawlSummary aggregates a multi-page crawl
type CrawlSummary struct {
	PagesAnalyzed    int      `json:"pagesAnalyzed" bson:"pages_analyzed"`
	PagesWithIssues  int      `json:"pagesWithIssues" bson:"pages_with_issues"`
	AveragePageScore float64  `json:"averagePageScore" bson:"average_page_score"`
	CrawledURLs      []string `json:"crawledUrls" bson:"crawled_urls"`
	SkippedURLs      []string `json:"skippedUrls,omitempty" bson:"skipped_urls,omitempty"`
}

// AnalysisMetadata records how a run was performed and what it could not measure
type AnalysisMetadata struct {
	RunID                  string    `json:"runId" bson:"run_id"`
	AnalyzedAt             time.Time `json:"analyzedAt" bson:"analyzed_at"`
	DurationMs             int64     `json:"durationMs" bson:"duration_ms"`
	RenderedWithBrowser    bool      `json:"renderedWithBrowser" bson:"rendered_with_browser"`
	LighthouseUsed         bool      `json:"lighthouseUsed" bson:"lighthouse_used"`
	AIContentAnalysisUsed  bool      `json:"aiContentAnalysisUsed" bson:"ai_content_analysis_used"`
	MeasurementLimitations []string  `json:"measurementLimitations" bson:"measurement_limitations"`
}

// AnalysisResult is the root aggregate returned to callers. It is constructed
// once per run and never mutated afterwards.
type AnalysisResult struct {
	ID              primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	Website         string                `json:"website" bson:"website"`
	URL             string                `json:"url" bson:"url"`
	Score           int                   `json:"score" bson:"score"`
	Confidence      int                   `json:"confidence" bson:"confidence"`
	CategoryScores  CategoryScores        `json:"categoryScores" bson:"category_scores"`
	ScoreBreakdown  ScoreBreakdown        `json:"scoreBreakdown" bson:"score_breakdown"`
	HealthStatus    HealthStatus          `json:"healthStatus" bson:"health_status"`
	Issues          []SEOIssue            `json:"issues" bson:"issues"`
	Recommendations []Recommendation      `json:"recommendations" bson:"recommendations"`
	Lighthouse      *LighthouseScores     `json:"lighthouse,omitempty" bson:"lighthouse,omitempty"`
	Technical       TechnicalSEODetails   `json:"technical" bson:"technical"`
	Content         ContentAnalysisResult `json:"content" bson:"content"`
	WordPress       *WordPressAnalysis    `json:"wordpress,omitempty" bson:"wordpress,omitempty"`
	Security        SecurityAnalysis      `json:"security" bson:"security"`
	Crawl           *CrawlSummary         `json:"crawl,omitempty" bson:"crawl,omitempty"`
	Metadata        AnalysisMetadata      `json:"metadata" bson:"metadata"`
	ScoreContext    ScoreContext          `json:"scoreContext" bson:"score_context"`
	Benchmark       BenchmarkComparison   `json:"benchmark" bson:"benchmark"`
	CreatedAt       time.Time             `json:"created_at" bson:"created_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}
