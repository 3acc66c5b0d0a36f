package compare

import "github.com/trendarc/trendarc/internal/core/domain"

const (
	minStabilityPoints = 7
	recentWindowSize   = 10

	// Hype heuristics: a recent max far above the baseline average, or high
	// recent variance combined with a fall off the recent peak.
	hypeSpikeRatio    = 2.5
	hypeVarianceRatio = 0.5
	hypeDropRatio     = 0.7

	volatileThreshold = 40.0
)

// ClassifyStability labels the recent shape of a term's interest series as
// stable, hype, or volatile. Series shorter than seven points are always
// volatile: there is not enough signal to call them anything else.
func ClassifyStability(values []float64) domain.Stability {
	if len(values) < minStabilityPoints {
		return domain.StabilityVolatile
	}

	recent := values
	baseline := []float64{}

	if len(values) > recentWindowSize {
		recent = values[len(values)-recentWindowSize:]
		baseline = values[:len(values)-recentWindowSize]
	}

	baselineAvg := mean(recent)
	if len(baseline) > 0 {
		baselineAvg = mean(baseline)
	}

	if isHype(recent, baselineAvg) {
		return domain.StabilityHype
	}

	if CalculateVolatility(values) > volatileThreshold {
		return domain.StabilityVolatile
	}

	return domain.StabilityStable
}

func isHype(recent []float64, baselineAvg float64) bool {
	recentMax := maxValue(recent)
	if recentMax > hypeSpikeRatio*baselineAvg {
		return true
	}

	recentVariance := variance(recent, mean(recent))
	last := recent[len(recent)-1]

	return recentVariance > baselineAvg*hypeVarianceRatio && last < hypeDropRatio*recentMax
}
