package mocks

import (
	"context"
	"sync"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// ComparisonLoader is a configurable in-memory ports.ComparisonLoader.
type ComparisonLoader struct {
	mu     sync.Mutex
	inputs map[domain.ComparisonKey]*ports.ComparisonInput

	// LoadFn allows overriding LoadComparison behavior.
	LoadFn func(ctx context.Context, key domain.ComparisonKey) (*ports.ComparisonInput, error)
}

// NewComparisonLoader creates an empty mock comparison loader.
func NewComparisonLoader() *ComparisonLoader {
	return &ComparisonLoader{inputs: make(map[domain.ComparisonKey]*ports.ComparisonInput)}
}

// AddInput registers the input returned for a key.
func (l *ComparisonLoader) AddInput(input *ports.ComparisonInput) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.inputs[input.Key] = input
}

// LoadComparison returns the registered input for key.
func (l *ComparisonLoader) LoadComparison(ctx context.Context, key domain.ComparisonKey) (*ports.ComparisonInput, error) {
	if l.LoadFn != nil {
		return l.LoadFn(ctx, key)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	input, ok := l.inputs[key]
	if !ok {
		return nil, nil //nolint:nilnil // nil,nil indicates no comparison registered
	}

	return input, nil
}

var _ ports.ComparisonLoader = (*ComparisonLoader)(nil)
