package profilepictures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/metrics"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/util"
)

// Service implements the newer insert-then-reclaim-async avatar recorder.
// The caller is unblocked as soon as the new picture is durably stored;
// deactivation and deletion of old rows runs on the Reclaimer. More than
// one row can briefly be active, an accepted tradeoff for latency.
type Service struct {
	Store     object.ObjectStore
	Repo      Repo
	Cache     *Cache
	Reclaimer *Reclaimer

	now func() time.Time
}

// NewService constructs a Service. cache and reclaimer may be nil.
func NewService(store object.ObjectStore, repo Repo, cache *Cache, reclaimer *Reclaimer) *Service {
	return &Service{
		Store:     store,
		Repo:      repo,
		Cache:     cache,
		Reclaimer: reclaimer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload holds the caller-declared attributes of an incoming picture.
type Upload struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Content   io.Reader
}

// StoragePath derives the avatar object key:
// profile-pictures/{ownerId}/{millisecond-timestamp}_{sanitized-name}.
func StoragePath(userID, fileName string, at time.Time) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("profile-pictures/%s/%d_%s", userID, at.UnixMilli(), sanitized), nil
}

// UploadAndActivate validates and stores a new picture, inserts it as the
// active row, then hands stale-row cleanup to the Reclaimer without waiting.
func (s *Service) UploadAndActivate(ctx context.Context, userID string, up Upload, crop CropGeometry, rotation float64) (ProfilePicture, error) {
	if userID == "" {
		return ProfilePicture{}, errors.New("user id required")
	}

	if _, err := documents.ValidateUpload(documents.CategoryProfilePicture, up.MimeType, up.SizeBytes); err != nil {
		metrics.IncUploadRejected()
		return ProfilePicture{}, err
	}

	now := s.now()
	path, err := StoragePath(userID, up.FileName, now)
	if err != nil {
		metrics.IncUploadRejected()
		return ProfilePicture{}, err
	}

	metrics.IncUploadStarted()
	start := time.Now()

	written, err := s.Store.Put(ctx, path, up.MimeType, up.Content)
	if err != nil {
		return ProfilePicture{}, fmt.Errorf("store picture: %w", err)
	}

	pic := ProfilePicture{
		ID:        uuid.NewString(),
		UserID:    userID,
		FilePath:  path,
		FileName:  up.FileName,
		FileSize:  written,
		Crop:      crop,
		ZoomLevel: 1,
		Rotation:  rotation,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, pic); err != nil {
		if delErr := s.Store.Delete(ctx, path); delErr != nil {
			telemetry.Error("profilepictures.upload.rollback_failed", map[string]any{
				"user_id": userID,
				"path":    path,
				"error":   delErr.Error(),
			})
		}
		metrics.IncUploadRolledBack()
		return ProfilePicture{}, fmt.Errorf("record picture: %w", err)
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Milliseconds()))

	s.Cache.Set(ctx, pic)
	if s.Reclaimer != nil {
		s.Reclaimer.Enqueue(userID, pic.ID)
	}
	return pic, nil
}

// Active returns the user's current picture, reading through the cache.
func (s *Service) Active(ctx context.Context, userID string) (ProfilePicture, error) {
	if userID == "" {
		return ProfilePicture{}, errors.New("user id required")
	}
	if pic, ok := s.Cache.Get(ctx, userID); ok {
		return pic, nil
	}
	pic, err := s.Repo.GetActive(ctx, userID)
	if err != nil {
		return ProfilePicture{}, err
	}
	s.Cache.Set(ctx, pic)
	return pic, nil
}

// RemoveCurrent deletes the active picture's object and row. It also backs
// the legacy replace-before-write path in the documents recorder.
func (s *Service) RemoveCurrent(ctx context.Context, userID string) error {
	pic, err := s.Repo.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.Store.Delete(ctx, pic.FilePath); err != nil {
		telemetry.Error("profilepictures.remove.object_delete_failed", map[string]any{
			"user_id": userID,
			"path":    pic.FilePath,
			"error":   err.Error(),
		})
	}
	if err := s.Repo.DeleteRows(ctx, []string{pic.ID}); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, userID)
	return nil
}

// SweepInactive reclaims rows already marked inactive for one user,
// independent of the automatic reclaim path.
func (s *Service) SweepInactive(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user id required")
	}
	return sweepInactive(ctx, s.Repo, s.Store, userID)
}

// PublicURL returns the browser-reachable URL for a picture.
func (s *Service) PublicURL(pic ProfilePicture) string {
	return s.Store.PublicURL(pic.FilePath)
}
