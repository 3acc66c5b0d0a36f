// Package compare implements the comparison metrics engine: volatility,
// agreement, stability classification, change-vs-baseline deltas, top
// drivers, and risk flags for a two-term comparison.
package compare

import "math"

const volatilityCap = 100.0

// CalculateVolatility returns the coefficient of variation of values as a
// percentage, capped at 100. It returns 0 when fewer than two finite,
// non-negative points remain or the mean is not positive.
func CalculateVolatility(values []float64) float64 {
	finite := make([]float64, 0, len(values))

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}

		finite = append(finite, v)
	}

	if len(finite) < 2 {
		return 0
	}

	m := mean(finite)
	if m <= 0 {
		return 0
	}

	cv := stddev(finite, m) / m * 100
	if cv > volatilityCap {
		return volatilityCap
	}

	return cv
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stddev is the population standard deviation around m.
func stddev(values []float64, m float64) float64 {
	return math.Sqrt(variance(values, m))
}

func variance(values []float64, m float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return sum / float64(len(values))
}

func maxValue(values []float64) float64 {
	max := math.Inf(-1)
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	return max
}
