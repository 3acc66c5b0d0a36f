package compare

import "github.com/trendarc/trendarc/internal/core/domain"

// Risk flag wording. Flags are user-visible and may co-occur.
const (
	FlagHighVolatility = "High volatility detected"
	FlagDisagreement   = "Source disagreement"
	FlagHypePattern    = "Potential hype pattern"
	FlagRecentSpike    = "Recent spike detected"
)

const (
	riskVolatilityThreshold = 50.0
	riskAgreementThreshold  = 60.0
	riskSpikeRatio          = 2.0
)

// RiskFlags evaluates the risk rule set. termSeries holds each compared
// term's value sequence; a spike in either triggers the spike flag.
func RiskFlags(volatility, agreement float64, stability domain.Stability, termSeries ...[]float64) []string {
	var flags []string

	if volatility > riskVolatilityThreshold {
		flags = append(flags, FlagHighVolatility)
	}

	if agreement < riskAgreementThreshold {
		flags = append(flags, FlagDisagreement)
	}

	if stability == domain.StabilityHype {
		flags = append(flags, FlagHypePattern)
	}

	for _, values := range termSeries {
		if hasRecentSpike(values) {
			flags = append(flags, FlagRecentSpike)
			break
		}
	}

	return flags
}

// hasRecentSpike reports whether the most recent window's max exceeds twice
// its own average.
func hasRecentSpike(values []float64) bool {
	if len(values) == 0 {
		return false
	}

	recent := values
	if len(values) > recentWindowSize {
		recent = values[len(values)-recentWindowSize:]
	}

	avg := mean(recent)
	if avg <= 0 {
		return false
	}

	return maxValue(recent) > riskSpikeRatio*avg
}
