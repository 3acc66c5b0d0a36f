package mocks

import (
	"context"
	"sync"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// VerificationCache is a thread-safe in-memory ports.VerificationCache.
type VerificationCache struct {
	mu      sync.Mutex
	entries map[string]domain.ContextualRelevanceResult

	// GetErr and SaveErr force cache operations to fail.
	GetErr  error
	SaveErr error
}

// NewVerificationCache creates an empty mock verification cache.
func NewVerificationCache() *VerificationCache {
	return &VerificationCache{entries: make(map[string]domain.ContextualRelevanceResult)}
}

// GetVerification returns the stored result for inputHash, or nil if absent.
func (c *VerificationCache) GetVerification(_ context.Context, inputHash string) (*domain.ContextualRelevanceResult, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[inputHash]
	if !ok {
		return nil, nil //nolint:nilnil // nil,nil indicates no cached verification
	}

	return &result, nil
}

// SaveVerification stores result under inputHash.
func (c *VerificationCache) SaveVerification(_ context.Context, inputHash string, result domain.ContextualRelevanceResult) error {
	if c.SaveErr != nil {
		return c.SaveErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[inputHash] = result

	return nil
}

// Len returns the number of stored entries.
func (c *VerificationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

var _ ports.VerificationCache = (*VerificationCache)(nil)
