package profilepictures

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]ProfilePicture // userId -> pictures
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]ProfilePicture)}
}

func (r *MemoryRepo) Create(ctx context.Context, pic ProfilePicture) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if pic.CreatedAt.IsZero() {
		pic.CreatedAt = now
	}
	pic.UpdatedAt = now
	r.data[pic.UserID] = append(r.data[pic.UserID], pic)
	return nil
}

func (r *MemoryRepo) GetActive(ctx context.Context, userID string) (ProfilePicture, error) {
	if err := ctx.Err(); err != nil {
		return ProfilePicture{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var actives []ProfilePicture
	for _, pic := range r.data[userID] {
		if pic.IsActive {
			actives = append(actives, pic)
		}
	}
	if len(actives) == 0 {
		return ProfilePicture{}, ErrNotFound
	}
	sort.Slice(actives, func(i, j int) bool {
		return actives[i].CreatedAt.After(actives[j].CreatedAt)
	})
	return actives[0], nil
}

func (r *MemoryRepo) ListActiveExcept(ctx context.Context, userID, keepID string) ([]ProfilePicture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ProfilePicture
	for _, pic := range r.data[userID] {
		if pic.IsActive && pic.ID != keepID {
			out = append(out, pic)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListInactive(ctx context.Context, userID string) ([]ProfilePicture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ProfilePicture
	for _, pic := range r.data[userID] {
		if !pic.IsActive {
			out = append(out, pic)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Deactivate(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	idSet := toSet(ids)
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for userID, pics := range r.data {
		for i := range pics {
			if idSet[pics[i].ID] {
				pics[i].IsActive = false
				pics[i].UpdatedAt = now
			}
		}
		r.data[userID] = pics
	}
	return nil
}

func (r *MemoryRepo) DeleteRows(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	idSet := toSet(ids)
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, pics := range r.data {
		kept := pics[:0]
		for _, pic := range pics {
			if !idSet[pic.ID] {
				kept = append(kept, pic)
			}
		}
		r.data[userID] = kept
	}
	return nil
}

// ClaimGuest reassigns all of a guest's pictures to an authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pics := r.data[guestUserID]
	if len(pics) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for i := range pics {
		pics[i].UserID = authedUserID
		pics[i].UpdatedAt = now
	}
	r.data[authedUserID] = append(r.data[authedUserID], pics...)
	delete(r.data, guestUserID)
	return len(pics), nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

var _ Repo = (*MemoryRepo)(nil)
