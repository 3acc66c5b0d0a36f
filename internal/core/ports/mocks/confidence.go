package mocks

import (
	"context"

	"github.com/trendarc/trendarc/internal/core/ports"
)

// ConfidenceModel is a configurable mock ports.ConfidenceModel.
type ConfidenceModel struct {
	// Value is returned when ConfidenceFn is not set.
	Value float64

	// Err is returned when ConfidenceFn is not set.
	Err error

	// ConfidenceFn allows overriding Confidence behavior.
	ConfidenceFn func(ctx context.Context, input ports.ConfidenceInput) (float64, error)

	// LastInput records the most recent input for assertions.
	LastInput ports.ConfidenceInput

	// CallCount records how many times Confidence was invoked.
	CallCount int
}

// Confidence returns the configured value or delegates to ConfidenceFn.
func (m *ConfidenceModel) Confidence(ctx context.Context, input ports.ConfidenceInput) (float64, error) {
	m.CallCount++
	m.LastInput = input

	if m.ConfidenceFn != nil {
		return m.ConfidenceFn(ctx, input)
	}

	return m.Value, m.Err
}

var _ ports.ConfidenceModel = (*ConfidenceModel)(nil)
