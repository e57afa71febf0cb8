package models

// IssueType classifies an issue's severity
type IssueType string

const (
	IssueCritical IssueType = "critical"
	IssueWarning  IssueType = "warning"
	IssueInfo     IssueType = "info"
)

// IssueCategory tags an issue for category-specific scoring and grouping
type IssueCategory string

const (
	CategoryContent     IssueCategory = "content"
	CategoryTechnical   IssueCategory = "technical"
	CategoryOnPage      IssueCategory = "on-page"
	CategoryPerformance IssueCategory = "performance"
	CategoryUX          IssueCategory = "ux"
	CategoryWordPress   IssueCategory = "wordpress"
	CategorySecurity    IssueCategory = "security"
)

// SEOIssue is a fact discovered during one analysis run. Issues have no
// lifecycle of their own; they exist only inside an AnalysisResult.
type SEOIssue struct {
	Type             IssueType     `json:"type" bson:"type"`
	Title            string        `json:"title" bson:"title"`
	Description      string        `json:"description" bson:"description"`
	AffectedPages    int           `json:"affectedPages" bson:"affected_pages"`
	AutoFixAvailable bool          `json:"autoFixAvailable" bson:"auto_fix_available"`
	Category         IssueCategory `json:"category" bson:"category"`
	URL              string        `json:"url,omitempty" bson:"url,omitempty"`
}

// CategoryScores holds the five derived category scores, each in [0,100]
type CategoryScores struct {
	ContentQuality     float64 `json:"contentQuality" bson:"content_quality"`
	TechnicalSEO       float64 `json:"technicalSeo" bson:"technical_seo"`
	OnPageOptimization float64 `json:"onPageOptimization" bson:"on_page_optimization"`
	Performance        float64 `json:"performance" bson:"performance"`
	UserExperience     float64 `json:"userExperience" bson:"user_experience"`
}

// CategoryContribution is one category's weighted share of the base score
type CategoryContribution struct {
	Category     string  `json:"category" bson:"category"`
	Score        float64 `json:"score" bson:"score"`
	Weight       float64 `json:"weight" bson:"weight"`
	Contribution float64 `json:"contribution" bson:"contribution"`
}

// ScoreBreakdown is the auditable decomposition of the total score
type ScoreBreakdown struct {
	Total         int                    `json:"total" bson:"total"`
	BaseScore     float64                `json:"baseScore" bson:"base_score"`
	Contributions []CategoryContribution `json:"contributions" bson:"contributions"`
	IssuesPenalty float64                `json:"issuesPenalty" bson:"issues_penalty"`
	BonusPoints   float64                `json:"bonusPoints" bson:"bonus_points"`
	FloorLifted   bool                   `json:"floorLifted" bson:"floor_lifted"`
}

// HealthLevel classifies the final score into a fixed band
type HealthLevel string

const (
	HealthExcellent HealthLevel = "excellent"
	HealthGood      HealthLevel = "good"
	HealthFair      HealthLevel = "fair"
	HealthPoor      HealthLevel = "poor"
	HealthCritical  HealthLevel = "critical"
)

// HealthStatus pairs the health band with a message and priority actions
type HealthStatus struct {
	Status          HealthLevel `json:"status" bson:"status"`
	Message         string      `json:"message" bson:"message"`
	PriorityActions []string    `json:"priorityActions" bson:"priority_actions"`
}

// Recommendation is a prioritized, human-readable action derived from issues
// and category scores.
type Recommendation struct {
	Priority       string        `json:"priority" bson:"priority"` // high|medium|low
	Category       IssueCategory `json:"category" bson:"category"`
	Description    string        `json:"description" bson:"description"`
	ExpectedImpact string        `json:"expectedImpact" bson:"expected_impact"`
	Evidence       string        `json:"evidence,omitempty" bson:"evidence,omitempty"`
}

// BenchmarkComparison estimates standing against an industry average via a
// normal-distribution percentile approximation.
type BenchmarkComparison struct {
	Industry        string  `json:"industry" bson:"industry"`
	IndustryAverage float64 `json:"industryAverage" bson:"industry_average"`
	Percentile      float64 `json:"percentile" bson:"percentile"`
	Interpretation  string  `json:"interpretation" bson:"interpretation"`
}

// FactorCoverage rates how completely one ranking factor was measured
type FactorCoverage string

const (
	CoverageComprehensive FactorCoverage = "comprehensive"
	CoverageGood          FactorCoverage = "good"
	CoveragePartial       FactorCoverage = "partial"
	CoverageNotMeasured   FactorCoverage = "not-measured"
)

// ScoreContext discloses what the score does and does not measure
type ScoreContext struct {
	Limitations    []string                  `json:"limitations" bson:"limitations"`
	FactorCoverage map[string]FactorCoverage `json:"factorCoverage" bson:"factor_coverage"`
}
