package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"seoAnalyzerGO/internal/aigateway"
	"seoAnalyzerGO/internal/models"
)

// ContentInput is the raw material for content analysis, extracted from a
// fetched page before any strategy runs.
type ContentInput struct {
	Text               string
	Title              string
	Description        string
	Keywords           []string
	HeadingCount       int
	ParagraphCount     int
	HasProperHierarchy bool
	LogicalHeadingFlow bool
}

// ContentAnalyzer measures content quality. The heuristic implementation is
// always available; the AI implementation upgrades the E-A-T judgment when a
// provider is configured and silently degrades to heuristics when the call
// fails.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, in ContentInput) models.ContentAnalysisResult
}

// HeuristicContentAnalyzer derives all signals from lexical and structural
// heuristics, with no external calls.
type HeuristicContentAnalyzer struct {
	logger *slog.Logger
}

// NewHeuristicContentAnalyzer creates a HeuristicContentAnalyzer
func NewHeuristicContentAnalyzer(logger *slog.Logger) *HeuristicContentAnalyzer {
	return &HeuristicContentAnalyzer{logger: logger}
}

func (h *HeuristicContentAnalyzer) Analyze(_ context.Context, in ContentInput) models.ContentAnalysisResult {
	result := baseContentAnalysis(in)

	result.HasQualitySignals = hasQualitySignals(in)
	result.HasExpertiseSignals = hasExpertiseSignals(in)
	result.HasTrustSignals = hasTrustSignals(in)

	if result.WordCount >= 300 {
		result.MeasurementConfidence = models.ConfidenceMedium
	} else {
		result.MeasurementConfidence = models.ConfidenceLow
	}
	return result
}

// AIContentAnalyzer runs the heuristic pass first, then replaces the E-A-T
// judgment with the provider's verdict and attaches its insights. A provider
// failure is logged and falls back to the heuristic result; AI is an
// enhancement, never a hard dependency.
type AIContentAnalyzer struct {
	heuristic *HeuristicContentAnalyzer
	gateway   *aigateway.Client
	logger    *slog.Logger
}

// NewAIContentAnalyzer creates an AIContentAnalyzer backed by the gateway
func NewAIContentAnalyzer(gateway *aigateway.Client, logger *slog.Logger) *AIContentAnalyzer {
	return &AIContentAnalyzer{
		heuristic: NewHeuristicContentAnalyzer(logger),
		gateway:   gateway,
		logger:    logger,
	}
}

func (a *AIContentAnalyzer) Analyze(ctx context.Context, in ContentInput) models.ContentAnalysisResult {
	result := a.heuristic.Analyze(ctx, in)

	judgment, err := a.gateway.AnalyzeContent(ctx, aigateway.ContentPrompt{
		Title:       in.Title,
		Description: in.Description,
		Text:        in.Text,
		Keywords:    in.Keywords,
	})
	if err != nil {
		a.logger.Warn("AI content analysis failed, using heuristic result", "error", err)
		return result
	}

	result.HasQualitySignals = judgment.QualitySignals
	result.HasExpertiseSignals = judgment.ExpertiseSignals
	result.HasTrustSignals = judgment.TrustSignals
	result.AIInsights = &models.AIInsights{
		Strengths:     judgment.Strengths,
		Improvements:  judgment.Improvements,
		TopicCoverage: judgment.TopicCoverage,
	}
	result.MeasurementConfidence = models.ConfidenceHigh
	return result
}

// baseContentAnalysis computes the strategy-independent measurements
func baseContentAnalysis(in ContentInput) models.ContentAnalysisResult {
	readability := fleschReadingEase(in.Text)

	return models.ContentAnalysisResult{
		WordCount:          len(strings.Fields(in.Text)),
		ReadabilityScore:   readability,
		ReadabilityGrade:   readabilityGrade(readability),
		StructureScore:     structureScore(in),
		LogicalHeadingFlow: in.LogicalHeadingFlow,
		HeadingCount:       in.HeadingCount,
	}
}

// structureScore evaluates heading organization and paragraph granularity,
// independent of readability.
func structureScore(in ContentInput) float64 {
	score := 50.0

	if in.HeadingCount > 0 {
		score += 20
	}
	if in.HasProperHierarchy {
		score += 15
	}

	words := len(strings.Fields(in.Text))
	if in.ParagraphCount > 0 {
		wordsPerParagraph := float64(words) / float64(in.ParagraphCount)
		if wordsPerParagraph <= 150 {
			score += 15
		} else {
			score += 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

func hasQualitySignals(in ContentInput) bool {
	words := len(strings.Fields(in.Text))
	if words < 200 {
		return false
	}
	return in.HeadingCount >= 2 && in.ParagraphCount >= 3
}

var expertiseMarkers = []string{
	"according to", "research", "study", "studies", "source", "data shows",
	"written by", "about the author", "reviewed by", "expert",
}

func hasExpertiseSignals(in ContentInput) bool {
	text := strings.ToLower(in.Text)
	hits := 0
	for _, marker := range expertiseMarkers {
		if strings.Contains(text, marker) {
			hits++
		}
	}
	return hits >= 2
}

var trustMarkers = []string{
	"privacy policy", "terms of service", "contact us", "contact",
	"guarantee", "refund", "secure", "certified", "©",
}

func hasTrustSignals(in ContentInput) bool {
	text := strings.ToLower(in.Text)
	hits := 0
	for _, marker := range trustMarkers {
		if strings.Contains(text, marker) {
			hits++
		}
	}
	return hits >= 2
}

// AggregateContent combines per-page content results using a word-count
// weighted average so thin pages do not distort the aggregate. Boolean
// signals hold when the weighted majority of content carries them.
func AggregateContent(pages []models.ContentAnalysisResult) models.ContentAnalysisResult {
	if len(pages) == 0 {
		return models.ContentAnalysisResult{MeasurementConfidence: models.ConfidenceLow}
	}
	if len(pages) == 1 {
		return pages[0]
	}

	var totalWords float64
	for _, p := range pages {
		totalWords += float64(p.WordCount)
	}
	if totalWords == 0 {
		return pages[0]
	}

	agg := models.ContentAnalysisResult{}
	var readability, structure float64
	var qualityWeight, expertiseWeight, trustWeight, flowWeight float64
	var headings float64
	confidence := models.ConfidenceHigh

	for _, p := range pages {
		w := float64(p.WordCount) / totalWords
		agg.WordCount += p.WordCount
		readability += p.ReadabilityScore * w
		structure += p.StructureScore * w
		headings += float64(p.HeadingCount) * w
		if p.HasQualitySignals {
			qualityWeight += w
		}
		if p.HasExpertiseSignals {
			expertiseWeight += w
		}
		if p.HasTrustSignals {
			trustWeight += w
		}
		if p.LogicalHeadingFlow {
			flowWeight += w
		}
		if rankConfidence(p.MeasurementConfidence) < rankConfidence(confidence) {
			confidence = p.MeasurementConfidence
		}
		if p.AIInsights != nil && agg.AIInsights == nil {
			agg.AIInsights = p.AIInsights
		}
	}

	agg.ReadabilityScore = readability
	agg.ReadabilityGrade = readabilityGrade(readability)
	agg.StructureScore = structure
	agg.HeadingCount = int(headings + 0.5)
	agg.HasQualitySignals = qualityWeight > 0.5
	agg.HasExpertiseSignals = expertiseWeight > 0.5
	agg.HasTrustSignals = trustWeight > 0.5
	agg.LogicalHeadingFlow = flowWeight > 0.5
	agg.MeasurementConfidence = confidence
	return agg
}

func rankConfidence(c models.MeasurementConfidence) int {
	switch c {
	case models.ConfidenceHigh:
		return 2
	case models.ConfidenceMedium:
		return 1
	default:
		return 0
	}
}
