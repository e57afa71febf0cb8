package analyzer

import (
	"net/http"
	"net/url"

	"seoAnalyzerGO/internal/models"
)

// BuildSecurityAnalysis derives the security posture from the URL scheme and
// the response headers captured during the fetch.
func BuildSecurityAnalysis(pageURL *url.URL, headers http.Header) models.SecurityAnalysis {
	sec := models.SecurityAnalysis{
		HTTPS: pageURL.Scheme == "https",
	}
	if headers == nil {
		return sec
	}

	sec.HSTS = headers.Get("Strict-Transport-Security") != ""
	sec.CSPHeader = headers.Get("Content-Security-Policy") != ""
	sec.XContentTypeNosniff = headers.Get("X-Content-Type-Options") != ""
	sec.XFrameOptions = headers.Get("X-Frame-Options") != ""
	sec.XSSProtection = headers.Get("X-XSS-Protection") != ""
	return sec
}
