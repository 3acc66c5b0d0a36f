package disambig

import "github.com/trendarc/trendarc/internal/core/domain"

// FilterByContextMatch keeps scored events whose verifier result matched the
// comparison context with at least minRelevance.
func FilterByContextMatch(scored []domain.ScoredPeakEvent, minRelevance int) []domain.ScoredPeakEvent {
	kept := make([]domain.ScoredPeakEvent, 0, len(scored))

	for _, s := range scored {
		if s.Relevance.ContextMatch && s.Relevance.RelevanceScore >= minRelevance {
			kept = append(kept, s)
		}
	}

	return kept
}
