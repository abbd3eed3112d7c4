package profilepictures

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile picture not found")

// Repo defines persistence operations for profile pictures.
type Repo interface {
	Create(ctx context.Context, pic ProfilePicture) error
	// GetActive returns the newest active picture for a user.
	GetActive(ctx context.Context, userID string) (ProfilePicture, error)
	// ListActiveExcept returns active rows for a user other than keepID.
	ListActiveExcept(ctx context.Context, userID, keepID string) ([]ProfilePicture, error)
	ListInactive(ctx context.Context, userID string) ([]ProfilePicture, error)
	Deactivate(ctx context.Context, ids []string) error
	DeleteRows(ctx context.Context, ids []string) error
}
