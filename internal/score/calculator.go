// Package score computes the composite TrendArc score for a single term from
// heterogeneous, partially-available per-source signals.
package score

import (
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
)

const (
	neutralSubScore = 50.0

	maxConfidence        = 95
	baseConfidence       = 40
	confidencePerSource  = 15
	degradedOverall      = 50
	degradedConfidence   = 30
	degradedExplanation  = "score unavailable: no weight data for any category"
	explanationSeparator = ", "

	// Video reach sub-score caps. The three components are capped separately
	// so a single viral outlier cannot saturate the whole social dimension.
	videoReachCap      = 60.0
	videoReachLogScale = 8.0
	videoCountCap      = 25.0
	videoCountLogScale = 10.0
	videoEngageCap     = 15.0
	videoEngageScale   = 300.0

	knowledgeLogScale = 12.0

	highSubScore = 60.0
	lowMomentum  = 40.0
)

// Calculator turns SourceMetrics into a TrendArcScore using a per-category
// weight table.
type Calculator struct {
	weights map[domain.Category]Weights
	logger  *zerolog.Logger
}

// NewCalculator creates a calculator with the given weight table. Pass
// DefaultWeights() unless a test needs custom vectors.
func NewCalculator(weights map[domain.Category]Weights, logger *zerolog.Logger) *Calculator {
	return &Calculator{weights: weights, logger: logger}
}

// Calculate computes the composite score for one term. Missing sources never
// fail the computation: they degrade to neutral sub-scores and a smaller
// sources list, which lowers confidence.
func (c *Calculator) Calculate(metrics domain.SourceMetrics, category domain.Category) domain.TrendArcScore {
	weights, ok := c.lookupWeights(category)
	if !ok {
		return degradedScore()
	}

	sources := make([]string, 0, 5)

	searchInterest := neutralSubScore
	momentumRaw := 0.0

	if metrics.SearchInterest != nil {
		searchInterest = metrics.SearchInterest.Average
		momentumRaw = metrics.SearchInterest.Momentum

		sources = append(sources, domain.SourceSearchInterest)
	}

	socialBuzz, socialSources := socialBuzzScore(metrics)
	sources = append(sources, socialSources...)

	authority := neutralSubScore
	if len(metrics.Ratings) > 0 {
		authority = authorityScore(metrics.Ratings)
		sources = append(sources, domain.SourceRatings)
	}

	momentum := clamp100(neutralSubScore + momentumRaw/2)

	breakdown := domain.Breakdown{
		SearchInterest: clampInt(searchInterest),
		SocialBuzz:     clampInt(socialBuzz),
		Authority:      clampInt(authority),
		Momentum:       clampInt(momentum),
	}

	overall := weights.SearchInterest*float64(breakdown.SearchInterest) +
		weights.SocialBuzz*float64(breakdown.SocialBuzz) +
		weights.Authority*float64(breakdown.Authority) +
		weights.Momentum*float64(breakdown.Momentum)

	return domain.TrendArcScore{
		Overall:     clampInt(overall),
		Confidence:  confidenceFor(len(sources)),
		Breakdown:   breakdown,
		Sources:     sources,
		Explanation: buildExplanation(breakdown),
	}
}

// lookupWeights resolves the weight vector for a category, falling back to
// general weights for unrecognized categories.
func (c *Calculator) lookupWeights(category domain.Category) (Weights, bool) {
	if len(c.weights) == 0 {
		if c.logger != nil {
			c.logger.Warn().Str("category", string(category)).Msg("no weight table configured, returning degraded score")
		}

		return Weights{}, false
	}

	if w, ok := c.weights[category]; ok {
		return w, true
	}

	w, ok := c.weights[domain.CategoryGeneral]

	return w, ok
}

// socialBuzzScore averages whichever social signals are present and returns
// the source names that contributed.
func socialBuzzScore(metrics domain.SourceMetrics) (float64, []string) {
	var (
		parts   []float64
		sources []string
	)

	if metrics.Video != nil {
		parts = append(parts, videoReachScore(*metrics.Video))
		sources = append(sources, domain.SourceVideo)
	}

	if metrics.Social != nil {
		parts = append(parts, clamp100(metrics.Social.PopularityIndex))
		sources = append(sources, domain.SourceSocial)
	}

	if metrics.Knowledge != nil {
		parts = append(parts, clamp100(knowledgeLogScale*math.Log10(metrics.Knowledge.Interest+1)))
		sources = append(sources, domain.SourceKnowledge)
	}

	if len(parts) == 0 {
		return neutralSubScore, nil
	}

	return mean(parts), sources
}

// videoReachScore combines log-scaled reach, log-scaled item count, and an
// engagement-rate bonus, each capped separately.
func videoReachScore(v domain.VideoMetrics) float64 {
	reach := math.Min(videoReachCap, videoReachLogScale*math.Log10(float64(v.TotalViews)+1))
	count := math.Min(videoCountCap, videoCountLogScale*math.Log10(float64(v.ItemCount)+1))
	engagement := math.Min(videoEngageCap, v.EngagementRate*videoEngageScale)

	return clamp100(reach + count + engagement)
}

// authorityScore averages all rating-style signals, each rescaled to 0-100.
func authorityScore(ratings []domain.RatingMetric) float64 {
	parts := make([]float64, 0, len(ratings))

	for _, r := range ratings {
		if r.Scale <= 0 {
			continue
		}

		parts = append(parts, clamp100(r.Value/r.Scale*100))
	}

	if len(parts) == 0 {
		return neutralSubScore
	}

	return mean(parts)
}

// buildExplanation concatenates threshold-triggered phrases. Phrase order and
// thresholds are user-visible and must stay stable.
func buildExplanation(b domain.Breakdown) string {
	var phrases []string

	if float64(b.SearchInterest) >= highSubScore {
		phrases = append(phrases, "high search interest")
	}

	if float64(b.SocialBuzz) >= highSubScore {
		phrases = append(phrases, "strong social buzz")
	}

	if float64(b.Authority) >= highSubScore {
		phrases = append(phrases, "well-rated across review sources")
	}

	if float64(b.Momentum) >= highSubScore {
		phrases = append(phrases, "trending upward")
	} else if float64(b.Momentum) <= lowMomentum {
		phrases = append(phrases, "losing momentum")
	}

	if len(phrases) == 0 {
		return "steady interest levels"
	}

	return strings.Join(phrases, explanationSeparator)
}

func confidenceFor(sourceCount int) int {
	confidence := baseConfidence + confidencePerSource*sourceCount
	if confidence > maxConfidence {
		return maxConfidence
	}

	return confidence
}

func degradedScore() domain.TrendArcScore {
	return domain.TrendArcScore{
		Overall:     degradedOverall,
		Confidence:  degradedConfidence,
		Breakdown:   domain.Breakdown{SearchInterest: degradedOverall, SocialBuzz: degradedOverall, Authority: degradedOverall, Momentum: degradedOverall},
		Explanation: degradedExplanation,
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 100 {
		return 100
	}

	return v
}

func clampInt(v float64) int {
	return int(math.Round(clamp100(v)))
}
