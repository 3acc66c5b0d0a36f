// Package domain defines the core entities of the comparison engine:
// per-source raw metrics, composite scores, verdicts, comparison metrics,
// persisted snapshots, and peak/disambiguation results.
package domain

import "time"

// SearchInterestMetrics holds the search-trend readings for one term.
// This is the mandatory signal family; the score calculator substitutes a
// neutral value when it is absent rather than failing.
type SearchInterestMetrics struct {
	Average        float64
	Momentum       float64
	Volatility     float64
	LeadPercentage float64
}

// VideoMetrics holds engagement-weighted video reach readings.
type VideoMetrics struct {
	TotalViews     int64
	ItemCount      int
	EngagementRate float64
}

// SocialMetrics holds a follower/popularity index already on a 0-100 scale.
type SocialMetrics struct {
	PopularityIndex float64
}

// KnowledgeMetrics holds raw knowledge-base interest (page-view style counts).
type KnowledgeMetrics struct {
	Interest float64
}

// RatingMetric is a single authority signal. Value is on the source's native
// scale; Scale is the maximum of that scale, used to rescale to 0-100.
type RatingMetric struct {
	Source string
	Value  float64
	Scale  float64
}

// SourceMetrics aggregates the per-source raw readings for one term.
// Every field is optional: a nil pointer (or empty slice) means the source
// was not collected, which is distinct from a zero reading.
type SourceMetrics struct {
	SearchInterest *SearchInterestMetrics
	Video          *VideoMetrics
	Social         *SocialMetrics
	Knowledge      *KnowledgeMetrics
	Ratings        []RatingMetric
}

// Source name constants used in TrendArcScore.Sources.
const (
	SourceSearchInterest = "search_interest"
	SourceVideo          = "video"
	SourceSocial         = "social"
	SourceKnowledge      = "knowledge"
	SourceRatings        = "ratings"
)

// Breakdown holds the four weighted sub-scores of a composite score.
// Each value is an integer clamped to [0,100].
type Breakdown struct {
	SearchInterest int
	SocialBuzz     int
	Authority      int
	Momentum       int
}

// TrendArcScore is the composite 0-100 score for one term.
type TrendArcScore struct {
	Overall     int
	Confidence  int
	Breakdown   Breakdown
	Sources     []string
	Explanation string
}

// ComparisonVerdict summarizes which of two terms wins a comparison.
type ComparisonVerdict struct {
	Winner         string
	Loser          string
	WinnerScore    int
	LoserScore     int
	Margin         int
	Confidence     int
	Headline       string
	Recommendation string
	Evidence       []string
}

// Stability classifies the recent shape of an interest series.
type Stability string

// Stability values.
const (
	StabilityStable   Stability = "stable"
	StabilityHype     Stability = "hype"
	StabilityVolatile Stability = "volatile"
)

// Driver names one breakdown dimension and how strongly it separates the
// two compared terms.
type Driver struct {
	Name   string
	Impact float64
}

// ComparisonMetrics is the full current-period and change-vs-baseline metric
// set for one comparison.
type ComparisonMetrics struct {
	MarginPoints     float64
	Confidence       float64
	Volatility       float64
	AgreementIndex   float64
	DisagreementFlag bool
	Stability        Stability

	GapChangePoints  float64
	ConfidenceChange float64
	VolatilityDelta  float64
	AgreementChange  float64

	TopDrivers []Driver
	RiskFlags  []string
}

// ComparisonKey identifies a stored comparison.
type ComparisonKey struct {
	UserID    string
	Slug      string
	Timeframe string
	Geo       string
}

// ComparisonSnapshot is a persisted, timestamped record of a comparison's
// computed metrics, used to measure change since a prior check.
type ComparisonSnapshot struct {
	ID             string
	Key            ComparisonKey
	TermA          string
	TermB          string
	ComputedAt     time.Time
	MarginPoints   float64
	Confidence     float64
	Volatility     float64
	AgreementIndex float64
	Winner         string
	WinnerScore    int
	LoserScore     int
	Category       Category
}

// CandidateEvent is a real-world event returned by an event-search provider
// as a possible explanation for a trend peak.
type CandidateEvent struct {
	Title       string
	Description string
	Date        time.Time
	Source      string
	URL         string
	Verified    bool
	Score       float64
}

// Citation points at a source document backing a peak's event attribution.
type Citation struct {
	Title  string
	URL    string
	Source string
}

// PeakEvent is a detected local maximum in a term's series, optionally
// correlated with a candidate event.
type PeakEvent struct {
	Date       time.Time
	Value      float64
	Term       string
	Event      *CandidateEvent
	Confidence int
	Citations  []Citation
}

// ComparisonContext carries the two compared terms and their context
// category, used to decide which sense of an ambiguous keyword a candidate
// event refers to. Context categories (technology, food, entertainment, ...)
// are a broader label set than the scoring Category enum.
type ComparisonContext struct {
	TermA    string
	TermB    string
	Category string
}

// ContextualRelevanceResult is the verifier's judgement for one
// (candidate event, ambiguous keyword, comparison context) triple.
type ContextualRelevanceResult struct {
	RelevanceScore int
	Interpretation string
	Reasoning      string
	Confidence     int
	ContextMatch   bool
}

// ScoredPeakEvent pairs a peak event with its contextual relevance result.
type ScoredPeakEvent struct {
	Peak      PeakEvent
	Relevance ContextualRelevanceResult
}
