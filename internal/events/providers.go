// Package events implements event-search providers and their registry. A
// provider returns candidate real-world events for a keyword inside a date
// window; the registry tries providers in registration order with per-provider
// circuit breakers.
package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
	coreerrors "github.com/trendarc/trendarc/internal/core/errors"
	"github.com/trendarc/trendarc/internal/core/ports"
)

type ProviderName string

const (
	ProviderGDELT ProviderName = "gdelt"
	ProviderRSS   ProviderName = "rss"
)

var errProviderNotFound = errors.New("provider not found")

// Provider is one event-search backend.
type Provider interface {
	Name() ProviderName
	SearchEvents(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error)
	IsAvailable() bool
}

// ProviderRegistry tries registered providers in order until one returns
// results. It implements ports.EventSearcher.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[ProviderName]Provider
	order     []ProviderName

	circuitBreakers map[ProviderName]*circuitBreaker

	logger *zerolog.Logger
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry(logger *zerolog.Logger) *ProviderRegistry {
	return &ProviderRegistry{
		providers:       make(map[ProviderName]Provider),
		order:           []ProviderName{},
		circuitBreakers: make(map[ProviderName]*circuitBreaker),
		logger:          logger,
	}
}

// Register adds a provider at the end of the fallback order.
func (r *ProviderRegistry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	r.providers[name] = p
	r.order = append(r.order, name)
	r.circuitBreakers[name] = newCircuitBreaker()
}

// Get returns a registered provider by name.
func (r *ProviderRegistry) Get(name ProviderName) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, errProviderNotFound
	}

	return p, nil
}

// SearchEvents queries providers in order and returns the first non-empty
// result set. Providers that fail trip their circuit breaker and are skipped
// until it resets.
func (r *ProviderRegistry) SearchEvents(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error) {
	r.mu.RLock()
	order := make([]ProviderName, len(r.order))
	copy(order, r.order)
	r.mu.RUnlock()

	for _, name := range order {
		provider, err := r.Get(name)
		if err != nil {
			continue
		}

		if !provider.IsAvailable() {
			continue
		}

		cb := r.getCircuitBreaker(name)
		if !cb.canAttempt() {
			continue
		}

		events, err := provider.SearchEvents(ctx, keyword, from, to, maxResults)
		if err != nil {
			cb.recordFailure()

			if r.logger != nil {
				r.logger.Warn().Err(err).Str("provider", string(name)).Msg("event provider failed, trying next")
			}

			continue
		}

		cb.recordSuccess()

		if len(events) == 0 {
			continue
		}

		return events, nil
	}

	return nil, coreerrors.ErrProviderUnavailable
}

// AvailableProviders lists providers currently willing to serve requests.
func (r *ProviderRegistry) AvailableProviders() []ProviderName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	available := []ProviderName{}

	for _, name := range r.order {
		if r.providers[name].IsAvailable() && r.circuitBreakers[name].canAttempt() {
			available = append(available, name)
		}
	}

	return available
}

func (r *ProviderRegistry) getCircuitBreaker(name ProviderName) *circuitBreaker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.circuitBreakers[name]
}

var _ ports.EventSearcher = (*ProviderRegistry)(nil)
