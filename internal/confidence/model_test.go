package confidence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendarc/trendarc/internal/core/ports"
)

func strongInput() ports.ConfidenceInput {
	return ports.ConfidenceInput{
		Agreement:        100,
		Volatility:       5,
		SeriesLength:     60,
		SourceCount:      4,
		Margin:           30,
		LeaderChangeRisk: 10,
	}
}

func weakInput() ports.ConfidenceInput {
	return ports.ConfidenceInput{
		Agreement:        10,
		Volatility:       90,
		SeriesLength:     5,
		SourceCount:      1,
		Margin:           1,
		LeaderChangeRisk: 95,
	}
}

func TestConfidenceOrdering(t *testing.T) {
	model := NewModel()

	strong, err := model.Confidence(context.Background(), strongInput())
	require.NoError(t, err)

	weak, err := model.Confidence(context.Background(), weakInput())
	require.NoError(t, err)

	assert.Greater(t, strong, 70.0)
	assert.Less(t, weak, 30.0)
	assert.Greater(t, strong, weak)
}

func TestConfidenceBounds(t *testing.T) {
	model := NewModel()

	tests := []struct {
		name  string
		input ports.ConfidenceInput
	}{
		{name: "strong", input: strongInput()},
		{name: "weak", input: weakInput()},
		{name: "zero value", input: ports.ConfidenceInput{}},
		{name: "extreme", input: ports.ConfidenceInput{Agreement: 100, Margin: 1000, SeriesLength: 10000, SourceCount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Confidence(context.Background(), tt.input)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, got, 5.0)
			assert.LessOrEqual(t, got, 95.0)
		})
	}
}

func TestConfidenceDeterministic(t *testing.T) {
	model := NewModel()

	first, err := model.Confidence(context.Background(), strongInput())
	require.NoError(t, err)

	second, err := model.Confidence(context.Background(), strongInput())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConfidenceMonotonicInAgreement(t *testing.T) {
	model := NewModel()
	input := strongInput()

	prev := -1.0

	for _, agreement := range []float64{0, 25, 50, 75, 100} {
		input.Agreement = agreement

		got, err := model.Confidence(context.Background(), input)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}
