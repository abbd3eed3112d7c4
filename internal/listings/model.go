package listings

import "time"

// Listing statuses.
const (
	StatusDraft     = "draft"
	StatusAvailable = "available"
	StatusRented    = "rented"
	StatusArchived  = "archived"
)

// Verification states for a listing.
const (
	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
)

// Listing is one rental property posted by a landlord.
type Listing struct {
	ID           string    `json:"id"`
	LandlordID   string    `json:"landlordId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	MonthlyRent  float64   `json:"monthlyRent"`
	Tags         []string  `json:"tags"`
	Status       string    `json:"status"`
	Verification string    `json:"verification"`
	Images       []string  `json:"images"`
	Thumbnail    string    `json:"thumbnail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidStatus reports whether status is a known listing status.
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusAvailable, StatusRented, StatusArchived:
		return true
	}
	return false
}
