// Package confidence provides the default deterministic confidence model:
// a logistic blend of agreement, margin, volatility, and sample-size signals
// mapped onto a bounded 0-100 score.
package confidence

import (
	"context"
	"math"

	"github.com/trendarc/trendarc/internal/core/ports"
)

// Logistic coefficients. Signals are first normalized to roughly [-1, 1]
// around their neutral points, then combined; the steepness keeps the model
// responsive in the mid range without saturating on a single strong signal.
const (
	agreementWeight  = 1.2
	marginWeight     = 0.9
	volatilityWeight = 1.0
	riskWeight       = 0.6
	lengthWeight     = 0.4
	sourceWeight     = 0.5

	steepness = 1.6

	neutralAgreement = 50.0
	marginScale      = 25.0
	fullLength       = 30.0
	fullSources      = 4.0

	minConfidence = 5.0
	maxConfidence = 95.0
)

// Model is the default ports.ConfidenceModel. It is stateless and safe for
// concurrent use.
type Model struct{}

// NewModel creates the default confidence model.
func NewModel() *Model {
	return &Model{}
}

// Confidence maps the input signals to a confidence score in [5, 95].
// Identical inputs always produce the identical score.
func (m *Model) Confidence(_ context.Context, input ports.ConfidenceInput) (float64, error) {
	agreement := (input.Agreement - neutralAgreement) / neutralAgreement
	margin := clampUnit(input.Margin / marginScale)
	volatility := input.Volatility / 100
	risk := input.LeaderChangeRisk / 100
	length := clampUnit(float64(input.SeriesLength) / fullLength)
	sources := clampUnit(float64(input.SourceCount) / fullSources)

	signal := agreement*agreementWeight +
		margin*marginWeight +
		length*lengthWeight +
		sources*sourceWeight -
		volatility*volatilityWeight -
		risk*riskWeight

	score := 100 / (1 + math.Exp(-steepness*signal))

	switch {
	case score < minConfidence:
		return minConfidence, nil
	case score > maxConfidence:
		return maxConfidence, nil
	}

	return score, nil
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}

	if v < 0 {
		return 0
	}

	return v
}

var _ ports.ConfidenceModel = (*Model)(nil)
