package disambig

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/platform/observability"
)

// ContextMatchThreshold is the relevance score a result must clear before
// contextMatch may be set.
const ContextMatchThreshold = 70

// Relevance levels produced by the rule table.
const (
	relevanceMatched     = 90
	relevanceUnambiguous = 80
	relevanceUnknown     = 50
	relevanceNoMapping   = 40
	relevanceMismatched  = 10
)

// Confidence levels: cue hits raise confidence up to a cap.
const (
	confidenceBase    = 60
	confidencePerCue  = 10
	confidenceCap     = 90
	confidenceUnknown = 30
)

// RuleVerifier resolves keyword senses with cue-word tables. It needs no
// network and is the deterministic fallback behind the generative verifier.
// Results go through the five-line wire format so both backends share one
// surface.
type RuleVerifier struct{}

// NewRuleVerifier creates a rule-based verifier.
func NewRuleVerifier() *RuleVerifier {
	return &RuleVerifier{}
}

// VerifyEventWithContext decides which sense of keyword the event text uses
// and scores it against the comparison context. Pure function of its inputs.
func (v *RuleVerifier) VerifyEventWithContext(
	_ context.Context,
	event domain.CandidateEvent,
	keyword string,
	compCtx domain.ComparisonContext,
	targetDate time.Time,
) (domain.ContextualRelevanceResult, error) {
	start := time.Now()

	result := evaluateRules(event, keyword, compCtx, targetDate)

	// Round-trip through the wire format keeps rule output constrained to
	// exactly what a remote verifier could express.
	parsed, err := ParseVerifierResponse(FormatVerifierResponse(result))
	if err != nil {
		observability.VerifierRequests.WithLabelValues("rule", "error").Inc()

		return domain.ContextualRelevanceResult{}, fmt.Errorf("render rule verdict: %w", err)
	}

	observability.VerifierRequests.WithLabelValues("rule", "ok").Inc()
	observability.VerifierRequestDuration.WithLabelValues("rule").Observe(time.Since(start).Seconds())

	return parsed, nil
}

func evaluateRules(event domain.CandidateEvent, keyword string, compCtx domain.ComparisonContext, targetDate time.Time) domain.ContextualRelevanceResult {
	senses := sensesFor(keyword)
	if len(senses) == 0 {
		return domain.ContextualRelevanceResult{
			RelevanceScore: relevanceUnambiguous,
			Interpretation: fmt.Sprintf("direct reference to %q", keyword),
			Reasoning:      fmt.Sprintf("%q has a single known sense; no disambiguation needed", keyword),
			Confidence:     confidenceBase,
			ContextMatch:   true,
		}
	}

	text := strings.ToLower(event.Title + " " + event.Description)
	detected, hits := detectSense(senses, text)

	if detected == nil {
		return domain.ContextualRelevanceResult{
			RelevanceScore: relevanceUnknown,
			Interpretation: fmt.Sprintf("unclear which sense of %q the event uses", keyword),
			Reasoning:      "event text carries no cues for any known sense",
			Confidence:     confidenceUnknown,
			ContextMatch:   false,
		}
	}

	implied := contextSense(senses, compCtx.Category)
	if implied == nil {
		return domain.ContextualRelevanceResult{
			RelevanceScore: relevanceNoMapping,
			Interpretation: fmt.Sprintf("the event uses the %s sense of %q", detected.label, keyword),
			Reasoning:      fmt.Sprintf("context category %q does not map to any known sense of %q", compCtx.Category, keyword),
			Confidence:     cueConfidence(hits),
			ContextMatch:   false,
		}
	}

	dayGap := int(targetDate.Sub(event.Date).Hours() / 24)
	if dayGap < 0 {
		dayGap = -dayGap
	}

	if detected.label == implied.label {
		return domain.ContextualRelevanceResult{
			RelevanceScore: relevanceMatched,
			Interpretation: fmt.Sprintf("the event uses the %s sense of %q", detected.label, keyword),
			Reasoning: fmt.Sprintf("event cues match the %s sense implied by comparing %s and %s (%d days from the peak)",
				implied.label, compCtx.TermA, compCtx.TermB, dayGap),
			Confidence:   cueConfidence(hits),
			ContextMatch: true,
		}
	}

	return domain.ContextualRelevanceResult{
		RelevanceScore: relevanceMismatched,
		Interpretation: fmt.Sprintf("the event uses the %s sense of %q", detected.label, keyword),
		Reasoning: fmt.Sprintf("the comparison of %s and %s implies the %s sense, but the event text points at the %s sense",
			compCtx.TermA, compCtx.TermB, implied.label, detected.label),
		Confidence:   cueConfidence(hits),
		ContextMatch: false,
	}
}

// detectSense picks the sense with the most cue hits in text. Ties keep the
// earlier sense; zero hits means no detection.
func detectSense(senses []sense, text string) (*sense, int) {
	var (
		best     *sense
		bestHits int
	)

	for i := range senses {
		hits := 0

		for _, cue := range senses[i].cues {
			if strings.Contains(text, cue) {
				hits++
			}
		}

		if hits > bestHits {
			best = &senses[i]
			bestHits = hits
		}
	}

	return best, bestHits
}

// contextSense finds the sense a context category implies.
func contextSense(senses []sense, category string) *sense {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil
	}

	for i := range senses {
		for _, c := range senses[i].categories {
			if c == category {
				return &senses[i]
			}
		}
	}

	return nil
}

func cueConfidence(hits int) int {
	confidence := confidenceBase + confidencePerCue*hits
	if confidence > confidenceCap {
		return confidenceCap
	}

	return confidence
}

var _ ports.Verifier = (*RuleVerifier)(nil)
