package listings

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Listing
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Listing)}
}

func (r *MemoryRepo) Create(ctx context.Context, listing Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now
	r.data[listing.ID] = listing
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Listing, error) {
	if err := ctx.Err(); err != nil {
		return Listing{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.data[id]
	if !ok {
		return Listing{}, ErrNotFound
	}
	return listing, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var out []Listing
	for _, listing := range r.data {
		if filter.Status != "" && listing.Status != filter.Status {
			continue
		}
		if filter.LandlordID != "" && listing.LandlordID != filter.LandlordID {
			continue
		}
		out = append(out, listing)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Listing{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, listing Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[listing.ID]
	if !ok || existing.LandlordID != listing.LandlordID {
		return ErrNotFound
	}
	listing.CreatedAt = existing.CreatedAt
	listing.UpdatedAt = time.Now().UTC()
	r.data[listing.ID] = listing
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, landlordID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[id]
	if !ok || existing.LandlordID != landlordID {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
