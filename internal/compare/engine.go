package compare

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/memo"
	"github.com/trendarc/trendarc/internal/platform/observability"
)

// Leader-change risk: volatility weighted down, plus a bonus that shrinks as
// the margin grows past the 5- and 15-point tiers.
const (
	leaderRiskVolatilityWeight = 0.7
	leaderRiskCap              = 100.0

	marginBonusNarrow = 30.0
	marginBonusMid    = 15.0
	marginBonusWide   = 5.0
	marginTierNarrow  = 5.0
	marginTierMid     = 15.0
)

// Options configure engine behavior.
type Options struct {
	// CorrectedAgreement selects the corrected agreement-index semantics
	// instead of the compatibility-mode default.
	CorrectedAgreement bool

	// TopDrivers overrides the number of reported drivers.
	TopDrivers int
}

// Engine computes comparison metrics. Computation is pure and synchronous;
// the only shared state is the memoization cache, which is safe for
// concurrent use.
type Engine struct {
	confidence ports.ConfidenceModel
	cache      *memo.Cache
	opts       Options
	logger     *zerolog.Logger
}

// NewEngine creates a metrics engine. The cache may be nil to disable
// memoization (tests).
func NewEngine(confidence ports.ConfidenceModel, cache *memo.Cache, opts Options, logger *zerolog.Logger) *Engine {
	if opts.TopDrivers <= 0 {
		opts.TopDrivers = DefaultTopDrivers
	}

	return &Engine{confidence: confidence, cache: cache, opts: opts, logger: logger}
}

// ComputeComparisonMetrics combines the full metric set for one comparison.
// A nil prev snapshot switches the change metrics to a synthetic midpoint
// baseline. Results are memoized for the cache TTL, keyed by a deterministic
// hash of all inputs.
func (e *Engine) ComputeComparisonMetrics(
	ctx context.Context,
	series domain.TrendSeries,
	termA, termB string,
	v domain.ComparisonVerdict,
	breakdownA, breakdownB *domain.Breakdown,
	prev *domain.ComparisonSnapshot,
) (domain.ComparisonMetrics, error) {
	key, keyErr := memo.Key(series, termA, termB, v, breakdownA, breakdownB, prev, e.opts.CorrectedAgreement)
	if keyErr == nil && e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if metrics, ok := cached.(domain.ComparisonMetrics); ok {
				observability.MemoCacheHits.Inc()
				return metrics, nil
			}
		}

		observability.MemoCacheMisses.Inc()
	}

	valuesA := series.ValuesFor(termA)
	valuesB := series.ValuesFor(termB)

	winnerDir := winnerDirection(termA, v)
	winnerValues := valuesA

	if v.Winner == termB {
		winnerValues = valuesB
	}

	margin := float64(v.Margin)
	volatility := pairVolatility(valuesA, valuesB)
	agreement := AgreementIndex(breakdownA, breakdownB, winnerDir, e.opts.CorrectedAgreement)
	stability := ClassifyStability(winnerValues)

	confidence := e.resolveConfidence(ctx, ports.ConfidenceInput{
		Agreement:        agreement,
		Volatility:       volatility,
		SeriesLength:     series.Len(),
		SourceCount:      sourceCount(breakdownA, breakdownB),
		Margin:           margin,
		LeaderChangeRisk: leaderChangeRisk(volatility, margin),
	}, v)

	basis := changeBasisFor(prev, series, termA, termB, winnerDir)

	metrics := domain.ComparisonMetrics{
		MarginPoints:     margin,
		Confidence:       confidence,
		Volatility:       volatility,
		AgreementIndex:   agreement,
		DisagreementFlag: agreement < riskAgreementThreshold,
		Stability:        stability,
		GapChangePoints:  margin - basis.margin,
		VolatilityDelta:  volatility - basis.volatility,
		AgreementChange:  agreement - basis.agreement,
		TopDrivers:       topDriversFor(breakdownA, breakdownB, e.opts.TopDrivers),
		RiskFlags:        RiskFlags(volatility, agreement, stability, valuesA, valuesB),
	}

	if basis.hasConfidence {
		metrics.ConfidenceChange = confidence - basis.confidence
	}

	if keyErr == nil && e.cache != nil {
		e.cache.Set(key, metrics)
	}

	observability.ComparisonsComputed.Inc()

	return metrics, nil
}

// resolveConfidence asks the external confidence model, degrading to the
// verdict confidence when the model fails.
func (e *Engine) resolveConfidence(ctx context.Context, input ports.ConfidenceInput, v domain.ComparisonVerdict) float64 {
	if e.confidence == nil {
		return float64(v.Confidence)
	}

	confidence, err := e.confidence.Confidence(ctx, input)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn().Err(err).Msg("confidence model failed, falling back to verdict confidence")
		}

		return float64(v.Confidence)
	}

	return confidence
}

func changeBasisFor(prev *domain.ComparisonSnapshot, series domain.TrendSeries, termA, termB string, winnerDir int) changeBasis {
	if prev != nil {
		return basisFromSnapshot(prev)
	}

	return syntheticBasis(series, termA, termB, winnerDir)
}

func topDriversFor(a, b *domain.Breakdown, n int) []domain.Driver {
	if a == nil || b == nil {
		return nil
	}

	return TopDrivers(*a, *b, n)
}

// leaderChangeRisk estimates how likely the current leader is to be
// overtaken: high volatility plus a narrow margin.
func leaderChangeRisk(volatility, margin float64) float64 {
	bonus := marginBonusWide

	switch {
	case margin < marginTierNarrow:
		bonus = marginBonusNarrow
	case margin < marginTierMid:
		bonus = marginBonusMid
	}

	risk := volatility*leaderRiskVolatilityWeight + bonus
	if risk > leaderRiskCap {
		return leaderRiskCap
	}

	return risk
}

func winnerDirection(termA string, v domain.ComparisonVerdict) int {
	if v.Margin == 0 {
		return 0
	}

	if v.Winner == termA {
		return 1
	}

	return -1
}

// sourceCount approximates how many independent dimensions carry signal:
// dimensions where either term deviates from the neutral 50.
func sourceCount(a, b *domain.Breakdown) int {
	if a == nil || b == nil {
		return 0
	}

	count := 0

	pairs := [][2]int{
		{a.SearchInterest, b.SearchInterest},
		{a.SocialBuzz, b.SocialBuzz},
		{a.Authority, b.Authority},
		{a.Momentum, b.Momentum},
	}

	for _, pair := range pairs {
		if pair[0] != 50 || pair[1] != 50 {
			count++
		}
	}

	return count
}
