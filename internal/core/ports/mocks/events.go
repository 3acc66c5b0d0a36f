package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// EventSearcher is a configurable in-memory ports.EventSearcher.
type EventSearcher struct {
	mu     sync.Mutex
	events map[string][]domain.CandidateEvent
	calls  int

	// SearchFn allows overriding SearchEvents behavior.
	SearchFn func(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error)
}

// NewEventSearcher creates an empty mock event searcher.
func NewEventSearcher() *EventSearcher {
	return &EventSearcher{events: make(map[string][]domain.CandidateEvent)}
}

// AddEvents registers candidate events returned for a keyword.
func (s *EventSearcher) AddEvents(keyword string, events ...domain.CandidateEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[keyword] = append(s.events[keyword], events...)
}

// SearchEvents returns registered events for the keyword that fall inside
// the date window.
func (s *EventSearcher) SearchEvents(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.SearchFn != nil {
		return s.SearchFn(ctx, keyword, from, to, maxResults)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.CandidateEvent

	for _, event := range s.events[keyword] {
		if event.Date.Before(from) || event.Date.After(to) {
			continue
		}

		matched = append(matched, event)
		if len(matched) >= maxResults {
			break
		}
	}

	return matched, nil
}

// Calls returns how many times SearchEvents was invoked.
func (s *EventSearcher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

var _ ports.EventSearcher = (*EventSearcher)(nil)
