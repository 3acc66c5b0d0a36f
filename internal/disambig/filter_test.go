package disambig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendarc/trendarc/internal/core/domain"
)

func scoredEvent(term string, match bool, relevance int) domain.ScoredPeakEvent {
	return domain.ScoredPeakEvent{
		Peak:      domain.PeakEvent{Term: term},
		Relevance: domain.ContextualRelevanceResult{ContextMatch: match, RelevanceScore: relevance},
	}
}

func TestFilterByContextMatch(t *testing.T) {
	scored := []domain.ScoredPeakEvent{
		scoredEvent("keep", true, 90),
		scoredEvent("low relevance", true, 50),
		scoredEvent("no match", false, 95),
		scoredEvent("boundary", true, 70),
	}

	kept := FilterByContextMatch(scored, 70)

	require.Len(t, kept, 2)
	assert.Equal(t, "keep", kept[0].Peak.Term)
	assert.Equal(t, "boundary", kept[1].Peak.Term)
}

func TestFilterByContextMatchEmpty(t *testing.T) {
	assert.Empty(t, FilterByContextMatch(nil, 70))
}

func TestGetInterpretationSummary(t *testing.T) {
	compCtx := domain.ComparisonContext{TermA: "iPhone", TermB: "Android", Category: "technology"}

	got := GetInterpretationSummary("Apple", "the technology company", compCtx)

	assert.Contains(t, got, "iPhone")
	assert.Contains(t, got, "Android")
	assert.Contains(t, got, "the technology company")
	assert.Contains(t, got, "Apple")
}
