package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object"
)

func TestPutRefusesOverwrite(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	n, err := store.Put(ctx, "u1/general/1700000000000_lease.pdf", "application/pdf", bytes.NewReader([]byte("first")))
	if err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	_, err = store.Put(ctx, "u1/general/1700000000000_lease.pdf", "application/pdf", bytes.NewReader([]byte("second")))
	if !errors.Is(err, object.ErrObjectExists) {
		t.Fatalf("expected ErrObjectExists, got %v", err)
	}

	rc, err := store.Open(ctx, "u1/general/1700000000000_lease.pdf")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "first" {
		t.Fatalf("expected original contents to survive, got %q", data)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	if _, err := store.Put(ctx, "u1/general/1_a.txt", "text/plain", bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Delete(ctx, "u1/general/1_a.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, "u1/general/1_a.txt"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if _, err := store.Open(ctx, "u1/general/1_a.txt"); err == nil {
		t.Fatal("expected open to fail after delete")
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	for _, key := range []string{"../escape.txt", "/etc/passwd", "a/../../b"} {
		if _, err := store.Put(ctx, key, "text/plain", bytes.NewReader([]byte("x"))); err == nil {
			t.Fatalf("expected put to reject key %q", key)
		}
		if _, err := store.Open(ctx, key); err == nil {
			t.Fatalf("expected open to reject key %q", key)
		}
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir(), "http://localhost:8080/files/")
	got := store.PublicURL("/u1/general/1_a.txt")
	want := "http://localhost:8080/files/u1/general/1_a.txt"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}
