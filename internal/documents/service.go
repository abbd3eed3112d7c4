package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/AndyisCodingMate/housesync-product/internal/queue"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/metrics"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

// ActivePictureReplacer removes a user's current profile picture (object and
// row) ahead of a replacement upload. Implemented by the profilepictures
// service; kept as a local interface to avoid an import cycle.
type ActivePictureReplacer interface {
	RemoveCurrent(ctx context.Context, userID string) error
}

// Service contains the upload validator/recorder logic for documents.
type Service struct {
	Store    object.ObjectStore
	Repo     DocumentsRepo
	Queue    queue.Client
	Replacer ActivePictureReplacer

	now func() time.Time
}

// NewService constructs a Service. queueClient and replacer may be nil.
func NewService(store object.ObjectStore, repo DocumentsRepo, queueClient queue.Client, replacer ActivePictureReplacer) *Service {
	return &Service{
		Store:    store,
		Repo:     repo,
		Queue:    queueClient,
		Replacer: replacer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Upload holds the caller-declared attributes of an incoming file.
type Upload struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Content   io.Reader
}

// Upload validates the file, writes it to object storage and records one
// metadata row. The object is written first; if the row insert fails the
// just-written object is deleted best-effort so no row ever references a
// missing object.
func (s *Service) Upload(ctx context.Context, userID, category string, up Upload, requestID string) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if !ValidCategory(category) {
		return Document{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	fileType, err := ValidateUpload(category, up.MimeType, up.SizeBytes)
	if err != nil {
		metrics.IncUploadRejected()
		return Document{}, err
	}

	now := s.now()
	path, err := StoragePath(userID, category, up.FileName, now)
	if err != nil {
		metrics.IncUploadRejected()
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	// Legacy replace-before-write: an avatar uploaded through the general
	// document path evicts the current picture synchronously.
	if category == CategoryProfilePicture && s.Replacer != nil {
		if err := s.Replacer.RemoveCurrent(ctx, userID); err != nil {
			telemetry.Error("documents.upload.replace_current_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	metrics.IncUploadStarted()
	start := time.Now()

	written, err := s.Store.Put(ctx, path, up.MimeType, up.Content)
	if err != nil {
		return Document{}, fmt.Errorf("store object: %w", err)
	}

	doc := Document{
		ID:                 uuid.NewString(),
		UserID:             userID,
		FileName:           up.FileName,
		FilePath:           path,
		FileSize:           written,
		FileType:           fileType,
		Category:           category,
		VerificationStatus: StatusPending,
		UploadDate:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if category == CategoryProfilePicture {
		// Avatars skip manual review entirely.
		doc.VerificationStatus = StatusVerified
		doc.VerifiedBy = VerifiedByServer
		doc.VerifiedAt = &now
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(ctx, path); delErr != nil {
			telemetry.Error("documents.upload.rollback_failed", map[string]any{
				"user_id": userID,
				"path":    path,
				"error":   delErr.Error(),
			})
		}
		metrics.IncUploadRolledBack()
		return Document{}, fmt.Errorf("record document: %w", err)
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Milliseconds()))

	s.enqueueVerification(ctx, doc, requestID)
	return doc, nil
}

// enqueueVerification hands the document to the async verification worker.
// Queue failures are logged, not surfaced; the row stays pending and the
// synchronous verify endpoint remains available.
func (s *Service) enqueueVerification(ctx context.Context, doc Document, requestID string) {
	if s.Queue == nil || doc.Category == CategoryProfilePicture {
		return
	}
	msg := queue.Message{
		DocumentID: doc.ID,
		UserID:     doc.UserID,
		RequestID:  requestID,
		EnqueuedAt: s.now().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Error("documents.upload.enqueue_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}
}

// List returns a user's documents, excluding profile pictures.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Get returns one document owned by the user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, fmt.Errorf("%w: user id and document id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// Delete removes the row first, then the backing object. An object-delete
// failure leaves an orphan object, logged and tolerated.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, doc.FilePath); err != nil {
		telemetry.Error("documents.delete.object_failed", map[string]any{
			"user_id": userID,
			"path":    doc.FilePath,
			"error":   err.Error(),
		})
	}
	return nil
}

// PublicURL returns the browser-reachable URL for a document.
func (s *Service) PublicURL(doc Document) string {
	return s.Store.PublicURL(doc.FilePath)
}

// Open streams a stored document, for serving local files.
func (s *Service) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, errors.New("storage key required")
	}
	return s.Store.Open(ctx, key)
}
