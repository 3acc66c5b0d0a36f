// Package peaks detects local maxima in trend series and correlates them
// with candidate real-world events from an external event-search service.
package peaks

import (
	"time"

	"github.com/trendarc/trendarc/internal/core/domain"
)

// DefaultMinProminence is how far above the series mean a point must sit to
// qualify as a peak.
const DefaultMinProminence = 20.0

// neighborRatio requires a peak to stand clearly above its lower neighbor,
// filtering out broad rounded bumps.
const neighborRatio = 1.2

// DetectPeaks scans one term's series for peaks. An interior point is a peak
// when it is strictly greater than both neighbors, at least minProminence
// above the series mean, and at least 1.2 times its lower neighbor. The first
// and last points are never peaks.
func DetectPeaks(series domain.TrendSeries, term string, minProminence float64) []domain.PeakEvent {
	samples := samplesFor(series, term)
	if len(samples) < 3 {
		return nil
	}

	total := 0.0
	for _, s := range samples {
		total += s.value
	}

	seriesMean := total / float64(len(samples))

	var detected []domain.PeakEvent

	for i := 1; i < len(samples)-1; i++ {
		value := samples[i].value
		left := samples[i-1].value
		right := samples[i+1].value

		if value <= left || value <= right {
			continue
		}

		if value < seriesMean+minProminence {
			continue
		}

		lower := left
		if right < lower {
			lower = right
		}

		if value < neighborRatio*lower {
			continue
		}

		detected = append(detected, domain.PeakEvent{
			Date:  samples[i].date,
			Value: value,
			Term:  term,
		})
	}

	return detected
}

type sample struct {
	date  time.Time
	value float64
}

func samplesFor(series domain.TrendSeries, term string) []sample {
	samples := make([]sample, 0, len(series.Points))

	for _, p := range series.Points {
		if v, ok := p.Values[term]; ok {
			samples = append(samples, sample{date: p.Date, value: v})
		}
	}

	return samples
}
