package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID         string     `json:"documentId"`
	FileName           string     `json:"fileName"`
	FileType           string     `json:"fileType"`
	SizeBytes          int64      `json:"sizeBytes"`
	Category           string     `json:"documentCategory"`
	VerificationStatus string     `json:"verificationStatus"`
	VerifiedBy         string     `json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time `json:"verifiedAt,omitempty"`
	URL                string     `json:"url,omitempty"`
	UploadedAt         time.Time  `json:"uploadedAt"`
}

func toResponse(doc Document, url string) DocumentResponse {
	return DocumentResponse{
		DocumentID:         doc.ID,
		FileName:           doc.FileName,
		FileType:           doc.FileType,
		SizeBytes:          doc.FileSize,
		Category:           doc.Category,
		VerificationStatus: doc.VerificationStatus,
		VerifiedBy:         doc.VerifiedBy,
		VerifiedAt:         doc.VerifiedAt,
		URL:                url,
		UploadedAt:         doc.UploadDate,
	}
}
