package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for contract text generation.
type Client interface {
	Complete(ctx context.Context, req CompleteRequest) (string, error)
}

// CompleteRequest captures a single chat completion call.
type CompleteRequest struct {
	System      string
	User        string
	Temperature float32
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req CompleteRequest) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
