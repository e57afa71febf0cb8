package report

import (
	"seoAnalyzerGO/internal/models"
)

// Fixed per-industry score averages. Unknown industries use the default row.
var industryAverages = map[string]float64{
	"ecommerce":      68,
	"blog":           72,
	"saas":           75,
	"local-business": 65,
}

const defaultIndustryAverage = 70

// Benchmark maps a final score against the industry average using a
// normal-distribution percentile approximation (sigma 15).
func Benchmark(score int, industry string) models.BenchmarkComparison {
	avg, ok := industryAverages[industry]
	if !ok {
		industry = "default"
		avg = defaultIndustryAverage
	}

	z := (float64(score) - avg) / 15
	percentile := 50 + 20*z
	if percentile < 0 {
		percentile = 0
	}
	if percentile > 100 {
		percentile = 100
	}

	return models.BenchmarkComparison{
		Industry:        industry,
		IndustryAverage: avg,
		Percentile:      percentile,
		Interpretation:  interpretPercentile(percentile),
	}
}

func interpretPercentile(p float64) string {
	switch {
	case p >= 90:
		return "Outstanding: this site scores better than nearly all sites in its industry"
	case p >= 75:
		return "Above average: this site outperforms most of its industry"
	case p >= 50:
		return "Average: this site is on par with its industry"
	case p >= 25:
		return "Below average: most sites in this industry score higher"
	default:
		return "Far below average: significant work is needed to catch up with the industry"
	}
}
