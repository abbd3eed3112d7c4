package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("listing belongs to another landlord")

// Service contains business logic for listings.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Draft is the caller-supplied portion of a listing.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	MonthlyRent float64  `json:"monthlyRent"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Thumbnail   string   `json:"thumbnail"`
}

// Create posts a new listing for a landlord.
func (s *Service) Create(ctx context.Context, landlordID string, draft Draft) (Listing, error) {
	if landlordID == "" {
		return Listing{}, errors.New("landlord id required")
	}
	if strings.TrimSpace(draft.Title) == "" {
		return Listing{}, errors.New("title is required")
	}
	if draft.MonthlyRent < 0 {
		return Listing{}, errors.New("monthly rent cannot be negative")
	}
	status := draft.Status
	if status == "" {
		status = StatusDraft
	}
	if !ValidStatus(status) {
		return Listing{}, fmt.Errorf("unknown status %q", status)
	}

	now := time.Now().UTC()
	listing := Listing{
		ID:           uuid.NewString(),
		LandlordID:   landlordID,
		Title:        strings.TrimSpace(draft.Title),
		Description:  draft.Description,
		Address:      draft.Address,
		Bedrooms:     draft.Bedrooms,
		Bathrooms:    draft.Bathrooms,
		MonthlyRent:  draft.MonthlyRent,
		Tags:         draft.Tags,
		Status:       status,
		Verification: VerificationUnverified,
		Images:       draft.Images,
		Thumbnail:    draft.Thumbnail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, listing); err != nil {
		return Listing{}, err
	}
	return listing, nil
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, id string) (Listing, error) {
	if id == "" {
		return Listing{}, errors.New("listing id required")
	}
	return s.Repo.GetByID(ctx, id)
}

// Browse lists available listings for tenants.
func (s *Service) Browse(ctx context.Context, limit, offset int) ([]Listing, error) {
	return s.Repo.List(ctx, Filter{Status: StatusAvailable, Limit: limit, Offset: offset})
}

// Mine lists a landlord's own listings regardless of status.
func (s *Service) Mine(ctx context.Context, landlordID string, limit, offset int) ([]Listing, error) {
	if landlordID == "" {
		return nil, errors.New("landlord id required")
	}
	return s.Repo.List(ctx, Filter{LandlordID: landlordID, Limit: limit, Offset: offset})
}

// Update replaces the mutable fields of a listing the landlord owns.
func (s *Service) Update(ctx context.Context, landlordID, id string, draft Draft) (Listing, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	if existing.LandlordID != landlordID {
		return Listing{}, ErrForbidden
	}
	if strings.TrimSpace(draft.Title) == "" {
		return Listing{}, errors.New("title is required")
	}
	status := draft.Status
	if status == "" {
		status = existing.Status
	}
	if !ValidStatus(status) {
		return Listing{}, fmt.Errorf("unknown status %q", status)
	}

	existing.Title = strings.TrimSpace(draft.Title)
	existing.Description = draft.Description
	existing.Address = draft.Address
	existing.Bedrooms = draft.Bedrooms
	existing.Bathrooms = draft.Bathrooms
	existing.MonthlyRent = draft.MonthlyRent
	existing.Tags = draft.Tags
	existing.Status = status
	existing.Images = draft.Images
	existing.Thumbnail = draft.Thumbnail

	if err := s.Repo.Update(ctx, existing); err != nil {
		return Listing{}, err
	}
	return existing, nil
}

// Delete removes a listing the landlord owns.
func (s *Service) Delete(ctx context.Context, landlordID, id string) error {
	if landlordID == "" || id == "" {
		return errors.New("landlord id and listing id required")
	}
	return s.Repo.Delete(ctx, landlordID, id)
}
