package contracts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndyisCodingMate/housesync-product/internal/llm"
)

type stubLLM struct {
	gotSystem string
	gotUser   string
	gotTemp   float32
	out       string
	err       error
}

func (s *stubLLM) Complete(ctx context.Context, req llm.CompleteRequest) (string, error) {
	s.gotSystem = req.System
	s.gotUser = req.User
	s.gotTemp = req.Temperature
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestFillTemplate(t *testing.T) {
	template := "Tenant: {{tenant_name}}, Rent: {{ rent_amount }}, Missing: {{unknown_key}}"
	got := FillTemplate(template, map[string]string{
		"tenant_name": "Ada",
		"rent_amount": "1200",
	})
	want := "Tenant: Ada, Rent: 1200, Missing: {{unknown_key}}"
	if got != want {
		t.Fatalf("filled = %q, want %q", got, want)
	}
}

func TestGenerateFillsAndPolishes(t *testing.T) {
	path := writeTemplate(t, "Lease for {{tenant_name}} at {{address}}, rent {{rent_amount}}, starting {{start_date}}.")

	repo := NewMemoryRepo()
	err := repo.Upsert(context.Background(), Contract{
		ID:         "c1",
		UserID:     "u1",
		TenantName: "Ada Lovelace",
		RentAmount: "1500",
		StartDate:  "2026-09-01",
		Address:    "1 Main St",
	})
	if err != nil {
		t.Fatalf("seed contract: %v", err)
	}

	client := &stubLLM{out: "POLISHED"}
	svc := NewService(repo, client, path)

	got, err := svc.Generate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "POLISHED" {
		t.Fatalf("output = %q", got)
	}
	if client.gotSystem != "You are a legal assistant. Polish the provided contract but do not alter the values." {
		t.Fatalf("system prompt = %q", client.gotSystem)
	}
	if client.gotTemp != 0.3 {
		t.Fatalf("temperature = %v", client.gotTemp)
	}
	for _, want := range []string{"Ada Lovelace", "1 Main St", "1500", "2026-09-01"} {
		if !strings.Contains(client.gotUser, want) {
			t.Fatalf("user prompt missing %q: %q", want, client.gotUser)
		}
	}
}

func TestGenerateRequiresSavedValues(t *testing.T) {
	path := writeTemplate(t, "Lease for {{tenant_name}}.")
	svc := NewService(NewMemoryRepo(), &stubLLM{out: "x"}, path)

	_, err := svc.Generate(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGenerateSurfacesLLMFailure(t *testing.T) {
	path := writeTemplate(t, "Lease for {{tenant_name}}.")
	repo := NewMemoryRepo()
	repo.Upsert(context.Background(), Contract{ID: "c1", UserID: "u1", TenantName: "Ada"})

	svc := NewService(repo, &stubLLM{err: errors.New("provider down")}, path)
	if _, err := svc.Generate(context.Background(), "u1"); err == nil {
		t.Fatal("expected LLM failure to surface")
	}
}
