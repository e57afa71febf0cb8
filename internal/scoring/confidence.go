package scoring

import (
	"math"

	"seoAnalyzerGO/internal/models"
)

// confidence estimates how much of the score rests on real measurement rather
// than fallback heuristics. It averages one 0-100 factor per data source and
// is independent of the score itself.
func confidence(in Input) int {
	var factors []float64

	if in.Lighthouse != nil {
		factors = append(factors, 95)
	} else {
		factors = append(factors, 40)
	}

	if in.Content.AIInsights != nil {
		factors = append(factors, 95)
	} else {
		factors = append(factors, 55)
	}

	switch in.Content.MeasurementConfidence {
	case models.ConfidenceHigh:
		factors = append(factors, 95)
	case models.ConfidenceMedium:
		factors = append(factors, 70)
	default:
		factors = append(factors, 45)
	}

	factors = append(factors, technicalCompleteness(in.Technical))

	if in.WordPress != nil && in.WordPress.Detected {
		switch in.WordPress.DetectionConfidence {
		case "high":
			factors = append(factors, 90)
		case "medium":
			factors = append(factors, 70)
		default:
			factors = append(factors, 50)
		}
	}

	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	return int(math.Round(clamp(sum/float64(len(factors)), 0, 100)))
}

// technicalCompleteness grants a 50-point base for having a technical snapshot
// at all, plus 11.25 points per piece of measured fetch data.
func technicalCompleteness(t models.TechnicalSEODetails) float64 {
	score := 50.0
	checks := []bool{
		t.StatusCode != 0,
		len(t.ResponseHeaders) > 0,
		t.LoadTimeMs > 0,
		t.PageSizeBytes > 0,
	}
	for _, ok := range checks {
		if ok {
			score += 11.25
		}
	}
	return score
}
