package listings

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("listing not found")

// Filter narrows listing queries.
type Filter struct {
	Status     string
	LandlordID string
	Limit      int
	Offset     int
}

// Repo defines persistence operations for listings.
type Repo interface {
	Create(ctx context.Context, listing Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	List(ctx context.Context, filter Filter) ([]Listing, error)
	Update(ctx context.Context, listing Listing) error
	Delete(ctx context.Context, landlordID, id string) error
}
