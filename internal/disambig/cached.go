package disambig

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/memo"
	"github.com/trendarc/trendarc/internal/platform/observability"
)

// CachedVerifier wraps a Verifier with a persistent result cache, keyed by a
// deterministic hash of all verifier inputs. Verifiers behave as pure
// functions, so a hit never needs revalidation; entries age out via the
// cache's own pruning.
type CachedVerifier struct {
	inner  ports.Verifier
	cache  ports.VerificationCache
	logger *zerolog.Logger
}

// NewCachedVerifier wraps inner with cache.
func NewCachedVerifier(inner ports.Verifier, cache ports.VerificationCache, logger *zerolog.Logger) *CachedVerifier {
	return &CachedVerifier{inner: inner, cache: cache, logger: logger}
}

// VerifyEventWithContext returns the cached result when present, otherwise
// delegates and stores. Cache failures are logged and bypassed, never fatal.
func (v *CachedVerifier) VerifyEventWithContext(
	ctx context.Context,
	event domain.CandidateEvent,
	keyword string,
	compCtx domain.ComparisonContext,
	targetDate time.Time,
) (domain.ContextualRelevanceResult, error) {
	hash, err := VerificationInputHash(event, keyword, compCtx, targetDate)
	if err != nil {
		return v.inner.VerifyEventWithContext(ctx, event, keyword, compCtx, targetDate)
	}

	cached, err := v.cache.GetVerification(ctx, hash)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn().Err(err).Msg("verification cache read failed, bypassing")
		}
	} else if cached != nil {
		observability.VerificationCacheHits.Inc()

		return *cached, nil
	}

	observability.VerificationCacheMisses.Inc()

	result, err := v.inner.VerifyEventWithContext(ctx, event, keyword, compCtx, targetDate)
	if err != nil {
		return result, err
	}

	if err := v.cache.SaveVerification(ctx, hash, result); err != nil && v.logger != nil {
		v.logger.Warn().Err(err).Msg("verification cache write failed")
	}

	return result, nil
}

// VerificationInputHash derives the cache key for one verifier invocation.
func VerificationInputHash(event domain.CandidateEvent, keyword string, compCtx domain.ComparisonContext, targetDate time.Time) (string, error) {
	hash, err := memo.Key(event, keyword, compCtx, targetDate.UTC())
	if err != nil {
		return "", fmt.Errorf("hash verification input: %w", err)
	}

	return hash, nil
}

var _ ports.Verifier = (*CachedVerifier)(nil)
