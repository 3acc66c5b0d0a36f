package mocks

import (
	"context"
	"time"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// Verifier is a configurable mock ports.Verifier.
type Verifier struct {
	// Result is returned when VerifyFn is not set.
	Result domain.ContextualRelevanceResult

	// Err is returned when VerifyFn is not set.
	Err error

	// VerifyFn allows overriding VerifyEventWithContext behavior.
	VerifyFn func(ctx context.Context, event domain.CandidateEvent, keyword string, compCtx domain.ComparisonContext, targetDate time.Time) (domain.ContextualRelevanceResult, error)
}

// VerifyEventWithContext returns the configured result or delegates to VerifyFn.
func (v *Verifier) VerifyEventWithContext(ctx context.Context, event domain.CandidateEvent, keyword string, compCtx domain.ComparisonContext, targetDate time.Time) (domain.ContextualRelevanceResult, error) {
	if v.VerifyFn != nil {
		return v.VerifyFn(ctx, event, keyword, compCtx, targetDate)
	}

	return v.Result, v.Err
}

var _ ports.Verifier = (*Verifier)(nil)
