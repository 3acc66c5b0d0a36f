package mocks

import (
	"context"
	"sync"

	"github.com/trendarc/trendarc/internal/core/ports"
)

// LockManager is a thread-safe in-memory ports.LockManager.
type LockManager struct {
	mu   sync.Mutex
	held map[int64]bool
}

// NewLockManager creates an empty mock lock manager.
func NewLockManager() *LockManager {
	return &LockManager{held: make(map[int64]bool)}
}

// TryAcquireAdvisoryLock acquires the lock if free.
func (m *LockManager) TryAcquireAdvisoryLock(_ context.Context, lockID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held[lockID] {
		return false, nil
	}

	m.held[lockID] = true

	return true, nil
}

// ReleaseAdvisoryLock releases the lock.
func (m *LockManager) ReleaseAdvisoryLock(_ context.Context, lockID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.held, lockID)

	return nil
}

var _ ports.LockManager = (*LockManager)(nil)
