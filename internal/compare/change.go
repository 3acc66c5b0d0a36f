package compare

import "github.com/trendarc/trendarc/internal/core/domain"

// changeBasis is the previous-period reference the change metrics are
// computed against.
type changeBasis struct {
	margin     float64
	confidence float64
	volatility float64
	agreement  float64

	hasConfidence bool
}

// basisFromSnapshot builds the change basis from a persisted snapshot.
func basisFromSnapshot(prev *domain.ComparisonSnapshot) changeBasis {
	return changeBasis{
		margin:        prev.MarginPoints,
		confidence:    prev.Confidence,
		volatility:    prev.Volatility,
		agreement:     prev.AgreementIndex,
		hasConfidence: true,
	}
}

// syntheticBasis approximates a previous period when no snapshot exists by
// splitting the series at its midpoint and recomputing margin, agreement,
// and volatility over the first half. There is no previous confidence to
// compare against, so the confidence delta stays zero.
func syntheticBasis(series domain.TrendSeries, termA, termB string, winnerDir int) changeBasis {
	half := series.Len() / 2
	firstHalf := domain.TrendSeries{Points: series.Points[:half]}

	valuesA := firstHalf.ValuesFor(termA)
	valuesB := firstHalf.ValuesFor(termB)

	margin := 0.0
	if len(valuesA) > 0 && len(valuesB) > 0 {
		margin = mean(valuesA) - mean(valuesB)
		if margin < 0 {
			margin = -margin
		}
	}

	return changeBasis{
		margin:     margin,
		volatility: pairVolatility(valuesA, valuesB),
		agreement:  directionalAgreement(valuesA, valuesB, winnerDir),
	}
}

// directionalAgreement is the percentage of paired points whose per-point
// winner matches the overall winner direction. Points with equal values
// count as agreement, mirroring the aggregate agreement rule.
func directionalAgreement(valuesA, valuesB []float64, winnerDir int) float64 {
	n := len(valuesA)
	if len(valuesB) < n {
		n = len(valuesB)
	}

	if n == 0 {
		return defaultAgreement
	}

	agreements := 0

	for i := 0; i < n; i++ {
		dir := 0

		switch {
		case valuesA[i] > valuesB[i]:
			dir = 1
		case valuesA[i] < valuesB[i]:
			dir = -1
		}

		if dir == 0 || dir == winnerDir {
			agreements++
		}
	}

	return float64(agreements) / float64(n) * 100
}

// pairVolatility is the volatility of the riskier of the two terms.
func pairVolatility(valuesA, valuesB []float64) float64 {
	volA := CalculateVolatility(valuesA)
	volB := CalculateVolatility(valuesB)

	if volB > volA {
		return volB
	}

	return volA
}
