package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AndyisCodingMate/housesync-product/internal/llm"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", "", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestCompleteSendsMessagesAndTemperature(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  polished text  "}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	out, err := client.Complete(context.Background(), llm.CompleteRequest{
		System:      "be terse",
		User:        "hello",
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "polished text" {
		t.Fatalf("output = %q", out)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "hello" {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if got.Temperature == nil || *got.Temperature != 0.3 {
		t.Fatalf("temperature = %v", got.Temperature)
	}
}

func TestCompleteSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client, err := NewClient("bad", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Complete(context.Background(), llm.CompleteRequest{User: "hi"}); err == nil {
		t.Fatal("expected provider error")
	}
}
