package verification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/queue"
)

type stubStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newStubStore() *stubStore {
	return &stubStore{objects: make(map[string][]byte)}
}

func (s *stubStore) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[key] = data
	return int64(len(data)), nil
}

func (s *stubStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error { return nil }
func (s *stubStore) PublicURL(key string) string                  { return key }

func vendorServer(t *testing.T, tampered bool, wantBody []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode vendor request: %v", err)
		}
		if wantBody != nil {
			decoded, err := base64.StdEncoding.DecodeString(req.DocBase64)
			if err != nil {
				t.Errorf("invalid base64: %v", err)
			}
			if !bytes.Equal(decoded, wantBody) {
				t.Errorf("vendor received %q, want %q", decoded, wantBody)
			}
		}
		json.NewEncoder(w).Encode(Result{Success: true, Tampered: tampered, Severity: "low"})
	}))
}

func seedDocument(t *testing.T, repo documents.DocumentsRepo, store *stubStore, body []byte) documents.Document {
	t.Helper()
	ctx := context.Background()
	if _, err := store.Put(ctx, "u1/identity/1_id.pdf", "application/pdf", bytes.NewReader(body)); err != nil {
		t.Fatalf("seed object: %v", err)
	}
	doc := documents.Document{
		ID:                 "doc-1",
		UserID:             "u1",
		FileName:           "id.pdf",
		FilePath:           "u1/identity/1_id.pdf",
		FileSize:           int64(len(body)),
		FileType:           "pdf",
		Category:           documents.CategoryIdentity,
		VerificationStatus: documents.StatusPending,
	}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}

func TestProcessMarksCleanDocumentVerified(t *testing.T) {
	body := []byte("pdf bytes")
	server := vendorServer(t, false, body)
	defer server.Close()

	repo := documents.NewMemoryRepo()
	store := newStubStore()
	doc := seedDocument(t, repo, store, body)

	proc := NewProcessor(repo, store, NewClient(server.URL, "test-token"))
	msg := queue.Message{DocumentID: doc.ID, UserID: doc.UserID, RequestID: "req-1"}
	if err := proc.Process(context.Background(), msg); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "u1", doc.ID)
	if err != nil {
		t.Fatalf("reload document: %v", err)
	}
	if got.VerificationStatus != documents.StatusVerified {
		t.Fatalf("status = %q, want verified", got.VerificationStatus)
	}
	if got.VerifiedBy != documents.VerifiedByServer {
		t.Fatalf("verified_by = %q, want server", got.VerifiedBy)
	}
}

func TestProcessMarksTamperedDocumentRejected(t *testing.T) {
	body := []byte("pdf bytes")
	server := vendorServer(t, true, nil)
	defer server.Close()

	repo := documents.NewMemoryRepo()
	store := newStubStore()
	doc := seedDocument(t, repo, store, body)

	proc := NewProcessor(repo, store, NewClient(server.URL, ""))
	msg := queue.Message{DocumentID: doc.ID, UserID: doc.UserID}
	if err := proc.Process(context.Background(), msg); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "u1", doc.ID)
	if err != nil {
		t.Fatalf("reload document: %v", err)
	}
	if got.VerificationStatus != documents.StatusRejected {
		t.Fatalf("status = %q, want rejected", got.VerificationStatus)
	}
}

func TestProcessSkipsMissingDocument(t *testing.T) {
	server := vendorServer(t, false, nil)
	defer server.Close()

	proc := NewProcessor(documents.NewMemoryRepo(), newStubStore(), NewClient(server.URL, ""))
	msg := queue.Message{DocumentID: "gone", UserID: "u1"}
	if err := proc.Process(context.Background(), msg); err != nil {
		t.Fatalf("expected missing document to be skipped, got %v", err)
	}
}

func TestClientForwardsCallerToken(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("token")
		json.NewEncoder(w).Encode(Result{Success: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "default-token")

	if _, err := client.Check(context.Background(), Request{DocType: "pdf", DocBase64: "aGk=", ReqID: "r1"}, "caller-token"); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if gotToken != "caller-token" {
		t.Fatalf("token = %q, want caller-token", gotToken)
	}

	if _, err := client.Check(context.Background(), Request{DocType: "pdf", DocBase64: "aGk=", ReqID: "r2"}, ""); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if gotToken != "default-token" {
		t.Fatalf("token = %q, want default-token", gotToken)
	}
}
