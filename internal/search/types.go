// Package search wires retrieval, fusion, scoring, safety,
// personalization and caching into the staged pipeline behind every
// query.
package search

import (
	"github.com/vidyarthi-io/scholarseek/internal/eligibility"
	"github.com/vidyarthi-io/scholarseek/internal/safety"
	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// Filters narrow results by record attributes before scoring.
type Filters struct {
	Category string `json:"category,omitempty"`
	State    string `json:"state,omitempty"`
}

// Request is one search call. Profile nil means the default profile;
// TopK zero means the pipeline default.
type Request struct {
	Query        string         `json:"query"`
	Profile      *store.Profile `json:"profile,omitempty"`
	Filters      Filters        `json:"filters,omitempty"`
	TopK         int            `json:"top_k,omitempty"`
	OnlyEligible bool           `json:"only_eligible,omitempty"`
}

// Result is one scored, enriched record.
type Result struct {
	*store.Scholarship

	MatchScore        int                     `json:"match_score"`
	EligibilityStatus eligibility.Status      `json:"eligibility_status"`
	MatchReasons      []eligibility.Criterion `json:"match_reasons"`
	RadarScores       map[string]int          `json:"radar_scores"`
	MissingDocuments  []string                `json:"missing_documents,omitempty"`

	SafetyTrustScore float64             `json:"trust_score_computed"`
	ScamIndicators   []string            `json:"scam_indicators"`
	DeadlineInfo     safety.DeadlineInfo `json:"deadline_info"`
	IsSafe           bool                `json:"is_safe"`

	// Boost is the personalization delta already folded into MatchScore.
	Boost float64 `json:"personalization_boost,omitempty"`
}

// Response is the ordered result set for one request.
type Response struct {
	SearchID  string   `json:"search_id"`
	Results   []Result `json:"results"`
	Total     int      `json:"total"`
	LatencyMS float64  `json:"latency_ms"`
	Logs      []string `json:"logs"`
	CacheHit  bool     `json:"cache_hit"`
}
