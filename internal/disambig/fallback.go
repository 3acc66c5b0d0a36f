package disambig

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// FallbackVerifier tries the primary verifier and degrades to the secondary
// when it fails. Used to keep disambiguation working while the generative
// backend is rate-limited or its circuit breaker is open.
type FallbackVerifier struct {
	primary   ports.Verifier
	secondary ports.Verifier
	logger    *zerolog.Logger
}

// NewFallbackVerifier composes primary over secondary.
func NewFallbackVerifier(primary, secondary ports.Verifier, logger *zerolog.Logger) *FallbackVerifier {
	return &FallbackVerifier{primary: primary, secondary: secondary, logger: logger}
}

// VerifyEventWithContext delegates to the primary verifier, falling back on
// any error.
func (v *FallbackVerifier) VerifyEventWithContext(
	ctx context.Context,
	event domain.CandidateEvent,
	keyword string,
	compCtx domain.ComparisonContext,
	targetDate time.Time,
) (domain.ContextualRelevanceResult, error) {
	result, err := v.primary.VerifyEventWithContext(ctx, event, keyword, compCtx, targetDate)
	if err == nil {
		return result, nil
	}

	if v.logger != nil {
		v.logger.Warn().Err(err).Msg("primary verifier failed, falling back to rules")
	}

	return v.secondary.VerifyEventWithContext(ctx, event, keyword, compCtx, targetDate)
}

var _ ports.Verifier = (*FallbackVerifier)(nil)
