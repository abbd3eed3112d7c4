package profilepictures

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; ok {
		return 0, errors.New("object already exists")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[key] = data
	return int64(len(data)), nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) PublicURL(key string) string { return "http://store.test/" + key }

func (s *fakeStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func newTestService(t *testing.T, store *fakeStore, repo Repo) *Service {
	t.Helper()
	reclaimer := NewReclaimer(repo, store, 0)
	t.Cleanup(reclaimer.Close)
	svc := NewService(store, repo, nil, reclaimer)
	base := time.UnixMilli(1700000000000).UTC()
	var tick int64
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}
	return svc
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestReclaimLeavesExactlyOneActive(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	repo := NewMemoryRepo()
	svc := newTestService(t, store, repo)
	ctx := context.Background()

	var paths []string
	var last ProfilePicture
	for i := 0; i < 4; i++ {
		up := Upload{
			FileName:  "face.png",
			MimeType:  "image/png",
			SizeBytes: 4,
			Content:   strings.NewReader("pngx"),
		}
		pic, err := svc.UploadAndActivate(ctx, "u1", up, CropGeometry{X: 10, Y: 10, Width: 200, Height: 200}, 90)
		if err != nil {
			t.Fatalf("upload %d failed: %v", i, err)
		}
		paths = append(paths, pic.FilePath)
		last = pic
	}

	waitFor(t, 2*time.Second, func() bool {
		stale, err := repo.ListActiveExcept(ctx, "u1", last.ID)
		return err == nil && len(stale) == 0 && store.count() == 1
	})

	active, err := repo.GetActive(ctx, "u1")
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != last.ID {
		t.Fatalf("active = %q, want newest %q", active.ID, last.ID)
	}
	if !store.has(last.FilePath) {
		t.Fatal("newest object missing from store")
	}
	for _, path := range paths[:len(paths)-1] {
		if store.has(path) {
			t.Fatalf("stale object %q still retrievable", path)
		}
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newTestService(t, store, NewMemoryRepo())

	up := Upload{
		FileName:  "lease.pdf",
		MimeType:  "application/pdf",
		SizeBytes: 4,
		Content:   strings.NewReader("pdfx"),
	}
	_, err := svc.UploadAndActivate(context.Background(), "u1", up, CropGeometry{}, 0)
	if !errors.Is(err, documents.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if store.count() != 0 {
		t.Fatal("store touched for rejected upload")
	}
}

func TestRemoveCurrent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	repo := NewMemoryRepo()
	svc := newTestService(t, store, repo)
	ctx := context.Background()

	up := Upload{
		FileName:  "face.jpg",
		MimeType:  "image/jpeg",
		SizeBytes: 4,
		Content:   strings.NewReader("jpgx"),
	}
	pic, err := svc.UploadAndActivate(ctx, "u1", up, CropGeometry{}, 0)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.RemoveCurrent(ctx, "u1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := repo.GetActive(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no active picture, got %v", err)
	}
	if store.has(pic.FilePath) {
		t.Fatal("object still present after remove")
	}

	// Removing when nothing is active is not an error.
	if err := svc.RemoveCurrent(ctx, "u1"); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
}

func TestSweepInactive(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	repo := NewMemoryRepo()
	svc := NewService(store, repo, nil, nil)
	ctx := context.Background()

	// Simulate a crash that left inactive rows with live objects.
	for i, id := range []string{"p1", "p2"} {
		path := "profile-pictures/u1/" + id
		if _, err := store.Put(ctx, path, "image/png", strings.NewReader("pngx")); err != nil {
			t.Fatalf("seed put: %v", err)
		}
		if err := repo.Create(ctx, ProfilePicture{
			ID:       id,
			UserID:   "u1",
			FilePath: path,
			FileName: "face.png",
			FileSize: 4,
			IsActive: i == 0,
		}); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}
	if err := repo.Deactivate(ctx, []string{"p2"}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if err := svc.SweepInactive(ctx, "u1"); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	inactive, err := repo.ListInactive(ctx, "u1")
	if err != nil {
		t.Fatalf("list inactive: %v", err)
	}
	if len(inactive) != 0 {
		t.Fatalf("expected no inactive rows, got %d", len(inactive))
	}
	if store.has("profile-pictures/u1/p2") {
		t.Fatal("swept object still present")
	}
	if !store.has("profile-pictures/u1/p1") {
		t.Fatal("active object removed by sweep")
	}
}
