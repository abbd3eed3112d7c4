package documents

import "time"

// Document categories. profile_picture rows are managed by the
// profilepictures package but share this table's category tag.
const (
	CategoryIdentity       = "identity"
	CategoryIncomeProof    = "income_proof"
	CategoryMiscellaneous  = "miscellaneous"
	CategoryProfilePicture = "profile_picture"
)

// Verification statuses.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// VerifiedByServer marks rows verified automatically rather than by manual review.
const VerifiedByServer = "server"

// Document represents an uploaded document owned by a user.
type Document struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	FileName           string     `json:"fileName"`
	FilePath           string     `json:"filePath"`
	FileSize           int64      `json:"fileSize"`
	FileType           string     `json:"fileType"`
	Category           string     `json:"documentCategory"`
	VerificationStatus string     `json:"verificationStatus"`
	VerifiedBy         string     `json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time `json:"verifiedAt,omitempty"`
	UploadDate         time.Time  `json:"uploadDate"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ValidCategory reports whether category is one of the document categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryIdentity, CategoryIncomeProof, CategoryMiscellaneous, CategoryProfilePicture:
		return true
	}
	return false
}
