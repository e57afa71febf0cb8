package scoring

import (
	"log/slog"
	"math"
	"math/rand"

	"seoAnalyzerGO/internal/models"
)

// Category weights. They sum to exactly 1.0; content and technical correctness
// carry the most weight because they are the most controllable factors.
const (
	WeightContentQuality = 0.30
	WeightTechnicalSEO   = 0.25
	WeightPerformance    = 0.20
	WeightOnPage         = 0.15
	WeightUserExperience = 0.10
)

// Classification thresholds for the health bands
var healthThresholds = []float64{20, 35, 55, 70, 85}

// Engine computes the final score, its breakdown, the confidence estimate and
// the health classification from the collected analysis data.
//
// The jitter source smooths scores that land within two points of a health
// threshold so near-identical sites do not flip bands across repeated runs.
// A nil source disables jitter entirely, which keeps the engine deterministic.
type Engine struct {
	logger *slog.Logger
	jitter *rand.Rand
}

// New creates a deterministic scoring engine (threshold jitter off)
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// NewWithJitter creates an engine whose near-threshold smoothing draws from
// the given source. Pass a seeded source in tests to assert statistical bounds.
func NewWithJitter(logger *slog.Logger, src rand.Source) *Engine {
	return &Engine{logger: logger, jitter: rand.New(src)}
}

// Input is everything the engine needs for one run. All fields are read-only.
type Input struct {
	Issues     []models.SEOIssue
	Lighthouse *models.LighthouseScores
	Technical  models.TechnicalSEODetails
	Content    models.ContentAnalysisResult
	WordPress  *models.WordPressAnalysis
}

// Outcome is the engine's complete verdict for one run
type Outcome struct {
	Breakdown  models.ScoreBreakdown
	Categories models.CategoryScores
	Health     models.HealthStatus
	Confidence int
}

// Calculate runs the full scoring pipeline: per-category scores, weighted sum,
// global issue penalty, bonus points, normalization and classification.
func (e *Engine) Calculate(in Input) Outcome {
	cats := models.CategoryScores{
		ContentQuality:     scoreContentQuality(in.Content, in.Issues),
		TechnicalSEO:       scoreTechnicalSEO(in.Technical, in.Issues),
		OnPageOptimization: scoreOnPage(in.Technical, in.Content, in.Issues),
		Performance:        scorePerformance(in.Lighthouse, in.Technical, in.Issues),
		UserExperience:     scoreUserExperience(in.Technical, in.Content, in.Issues),
	}

	contributions := []models.CategoryContribution{
		{Category: "contentQuality", Score: cats.ContentQuality, Weight: WeightContentQuality},
		{Category: "technicalSEO", Score: cats.TechnicalSEO, Weight: WeightTechnicalSEO},
		{Category: "performance", Score: cats.Performance, Weight: WeightPerformance},
		{Category: "onPageOptimization", Score: cats.OnPageOptimization, Weight: WeightOnPage},
		{Category: "userExperience", Score: cats.UserExperience, Weight: WeightUserExperience},
	}

	baseScore := 0.0
	for i := range contributions {
		contributions[i].Contribution = contributions[i].Score * contributions[i].Weight
		baseScore += contributions[i].Contribution
	}

	penalty := issuesPenalty(in.Issues)
	bonus := bonusPoints(cats, in)

	final := baseScore - penalty + bonus

	// Floor lift: heavy penalties should not drag a broadly fine site to a
	// near-zero total. The floor holds whenever the category average does,
	// with no separate trigger on the raw total, so adding an issue can only
	// lower or hold the final score, never push it up across a boundary.
	avgCategory := (cats.ContentQuality + cats.TechnicalSEO + cats.OnPageOptimization +
		cats.Performance + cats.UserExperience) / 5
	floorLifted := false
	if avgCategory > 60 {
		floor := avgCategory * 0.6
		if final < floor {
			final = floor
			floorLifted = true
		}
	}

	final = e.applyThresholdJitter(final)
	final = clamp(final, 0, 100)
	total := int(math.Round(final))

	if e.logger != nil {
		e.logger.Debug("score calculated",
			"base", baseScore, "penalty", penalty, "bonus", bonus, "total", total)
	}

	return Outcome{
		Breakdown: models.ScoreBreakdown{
			Total:         total,
			BaseScore:     baseScore,
			Contributions: contributions,
			IssuesPenalty: penalty,
			BonusPoints:   bonus,
			FloorLifted:   floorLifted,
		},
		Categories: cats,
		Health:     healthStatus(total, cats, in.Issues),
		Confidence: confidence(in),
	}
}

// applyThresholdJitter perturbs scores within two points of a health band
// boundary by up to one point in either direction. This is a presentation
// smoothing device, not a measurement; it is disabled unless a jitter source
// was supplied.
func (e *Engine) applyThresholdJitter(score float64) float64 {
	if e.jitter == nil {
		return score
	}
	for _, t := range healthThresholds {
		if math.Abs(score-t) <= 2 {
			return score + (e.jitter.Float64()*2 - 1)
		}
	}
	return score
}

// bonusPoints rewards exceptional combinations, capped at +20 total
func bonusPoints(cats models.CategoryScores, in Input) float64 {
	bonus := 0.0

	excellent := 0
	for _, s := range []float64{cats.ContentQuality, cats.TechnicalSEO,
		cats.OnPageOptimization, cats.Performance, cats.UserExperience} {
		if s >= 90 {
			excellent++
		}
	}
	if excellent >= 4 {
		bonus += 8
	}

	if in.Technical.HasStructuredData && len(in.Technical.SchemaTypes) >= 2 {
		bonus += 4
	}

	if in.Lighthouse != nil && in.Lighthouse.Vitals != nil && perfectVitals(*in.Lighthouse.Vitals) {
		bonus += 5
	}

	if in.Content.HasQualitySignals && in.Content.HasExpertiseSignals &&
		in.Content.HasTrustSignals && in.Content.ReadabilityScore >= 70 {
		bonus += 3
	}

	return math.Min(bonus, 20)
}

func perfectVitals(v models.CoreWebVitals) bool {
	return v.LCPMs > 0 && v.LCPMs <= 2500 && v.CLS <= 0.1 && v.FCPMs > 0 && v.FCPMs <= 1800
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
