package documents

import (
	"fmt"
	"time"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/util"
)

// Size ceilings. Profile pictures are additionally pre-checked by the UI
// before the recorder is invoked.
const (
	MaxDocumentBytes       = 100 << 20
	MaxProfilePictureBytes = 5 << 20
)

// generalMimeTypes is the allow-list for identity, income_proof and
// miscellaneous uploads.
var generalMimeTypes = map[string]string{
	"application/pdf":    "pdf",
	"image/png":          "png",
	"image/jpg":          "jpg",
	"image/jpeg":         "jpeg",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"text/plain": "txt",
}

// pictureMimeTypes is the allow-list for profile pictures.
var pictureMimeTypes = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

var ErrUnsupportedType = errUnsupportedType{}

type errUnsupportedType struct{}

func (errUnsupportedType) Error() string { return "unsupported file type" }

// SizeLimitError names the ceiling that was exceeded.
type SizeLimitError struct {
	LimitBytes int64
}

func (e SizeLimitError) Error() string {
	return fmt.Sprintf("file exceeds the %d MB size limit", e.LimitBytes>>20)
}

// ValidateUpload checks the declared MIME type and size against the
// allow-list for the target category, before any storage call is made.
// It returns the per-MIME file-type tag recorded on the row.
func ValidateUpload(category, mimeType string, sizeBytes int64) (string, error) {
	allowed := generalMimeTypes
	limit := int64(MaxDocumentBytes)
	if category == CategoryProfilePicture {
		allowed = pictureMimeTypes
		limit = MaxProfilePictureBytes
	}

	fileType, ok := allowed[mimeType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if sizeBytes < 0 {
		return "", fmt.Errorf("invalid file size %d", sizeBytes)
	}
	if sizeBytes > limit {
		return "", SizeLimitError{LimitBytes: limit}
	}
	return fileType, nil
}

// StoragePath derives the deterministic object key for a document upload:
// {ownerId}/{category}/{millisecond-timestamp}_{sanitized-name}. Uniqueness
// holds as long as no two uploads by the same user for the same category
// land in the same millisecond with the same sanitized name; the store
// rejects overwrites so a collision fails the upload rather than clobbering.
func StoragePath(userID, category, fileName string, at time.Time) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%d_%s", userID, category, at.UnixMilli(), sanitized), nil
}
