package contracts

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Contract
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Contract)}
}

// Upsert inserts or replaces the contract values for a user.
func (r *MemoryRepo) Upsert(ctx context.Context, contract Contract) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.rows[contract.UserID]; ok {
		contract.ID = existing.ID
		contract.CreatedAt = existing.CreatedAt
	} else {
		contract.CreatedAt = now
	}
	contract.UpdatedAt = now
	r.rows[contract.UserID] = contract
	return nil
}

// GetByUser fetches the contract row for a user.
func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Contract, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.rows[userID]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return c, nil
}

var _ Repo = (*MemoryRepo)(nil)
