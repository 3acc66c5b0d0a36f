package disambig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports/mocks"
)

func countingVerifier(result domain.ContextualRelevanceResult, calls *int) *mocks.Verifier {
	return &mocks.Verifier{
		VerifyFn: func(context.Context, domain.CandidateEvent, string, domain.ComparisonContext, time.Time) (domain.ContextualRelevanceResult, error) {
			*calls++

			return result, nil
		},
	}
}

func TestCachedVerifierStoresAndReuses(t *testing.T) {
	logger := zerolog.Nop()
	want := domain.ContextualRelevanceResult{RelevanceScore: 90, Interpretation: "the fruit", ContextMatch: true}

	calls := 0
	cache := mocks.NewVerificationCache()
	verifier := NewCachedVerifier(countingVerifier(want, &calls), cache, &logger)

	compCtx := domain.ComparisonContext{TermA: "Oranges", TermB: "Apples", Category: "food"}

	first, err := verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", compCtx, targetDate())
	require.NoError(t, err)

	second, err := verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", compCtx, targetDate())
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestCachedVerifierDistinguishesInputs(t *testing.T) {
	logger := zerolog.Nop()

	calls := 0
	cache := mocks.NewVerificationCache()
	verifier := NewCachedVerifier(countingVerifier(domain.ContextualRelevanceResult{}, &calls), cache, &logger)

	techCtx := domain.ComparisonContext{TermA: "iPhone", TermB: "Android", Category: "technology"}
	foodCtx := domain.ComparisonContext{TermA: "Oranges", TermB: "Apples", Category: "food"}

	_, err := verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", techCtx, targetDate())
	require.NoError(t, err)

	_, err = verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", foodCtx, targetDate())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.Len())
}

func TestCachedVerifierBypassesBrokenCache(t *testing.T) {
	logger := zerolog.Nop()
	want := domain.ContextualRelevanceResult{RelevanceScore: 90}

	calls := 0
	cache := mocks.NewVerificationCache()
	cache.GetErr = errors.New("cache down")
	cache.SaveErr = errors.New("cache down")

	verifier := NewCachedVerifier(countingVerifier(want, &calls), cache, &logger)

	compCtx := domain.ComparisonContext{TermA: "Oranges", TermB: "Apples", Category: "food"}

	got, err := verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", compCtx, targetDate())
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, 1, calls)
}

func TestFallbackVerifierUsesPrimaryWhenHealthy(t *testing.T) {
	logger := zerolog.Nop()
	want := domain.ContextualRelevanceResult{RelevanceScore: 90}

	primary := &mocks.Verifier{Result: want}
	secondary := &mocks.Verifier{Result: domain.ContextualRelevanceResult{RelevanceScore: 10}}

	verifier := NewFallbackVerifier(primary, secondary, &logger)

	got, err := verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", domain.ComparisonContext{}, targetDate())
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestFallbackVerifierDegradesToSecondary(t *testing.T) {
	logger := zerolog.Nop()
	want := domain.ContextualRelevanceResult{RelevanceScore: 10, Interpretation: "rules"}

	primary := &mocks.Verifier{Err: errors.New("model offline")}
	secondary := &mocks.Verifier{Result: want}

	verifier := NewFallbackVerifier(primary, secondary, &logger)

	got, err := verifier.VerifyEventWithContext(context.Background(), harvestEvent(), "Apple", domain.ComparisonContext{}, targetDate())
	require.NoError(t, err)

	assert.Equal(t, want, got)
}
