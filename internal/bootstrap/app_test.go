package bootstrap

import (
	"testing"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/config"
)

func TestLLMBaseURLSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "explicit url wins", cfg: config.Config{LLMProvider: "deepseek", LLMBaseURL: "https://llm.internal/v1"}, want: "https://llm.internal/v1"},
		{name: "deepseek default", cfg: config.Config{LLMProvider: "deepseek"}, want: "https://api.deepseek.com/v1"},
		{name: "openai falls through to client default", cfg: config.Config{LLMProvider: "openai"}, want: ""},
		{name: "unset provider", cfg: config.Config{}, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := llmBaseURL(tt.cfg); got != tt.want {
				t.Fatalf("llmBaseURL = %q, want %q", got, tt.want)
			}
		})
	}
}
