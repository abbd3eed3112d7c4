package contracts

import (
	"context"
	"errors"
)

// ErrNotFound indicates no contract row exists for the user.
var ErrNotFound = errors.New("contract not found")

// Repo persists per-user contract values.
type Repo interface {
	Upsert(ctx context.Context, contract Contract) error
	GetByUser(ctx context.Context, userID string) (Contract, error)
}
