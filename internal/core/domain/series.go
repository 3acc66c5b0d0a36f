package domain

import "time"

// TrendPoint is one sample of a trend series: the values of every compared
// term at a single date.
type TrendPoint struct {
	Date   time.Time
	Values map[string]float64
}

// TrendSeries is a date-ordered sequence of trend points for a comparison.
type TrendSeries struct {
	Points []TrendPoint
}

// ValuesFor extracts the ordered value sequence for one term. Points that do
// not carry the term are skipped.
func (s TrendSeries) ValuesFor(term string) []float64 {
	values := make([]float64, 0, len(s.Points))

	for _, p := range s.Points {
		if v, ok := p.Values[term]; ok {
			values = append(values, v)
		}
	}

	return values
}

// Len returns the number of points in the series.
func (s TrendSeries) Len() int {
	return len(s.Points)
}
