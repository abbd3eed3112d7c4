package contracts

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/AndyisCodingMate/housesync-product/internal/llm"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

const (
	polishSystemPrompt = "You are a legal assistant. Polish the provided contract but do not alter the values."
	polishTemperature  = 0.3
)

// Service fills the contract template from a user's stored values and
// asks the LLM to polish the result.
type Service struct {
	Repo Repo
	LLM  llm.Client

	templatePath string
}

// NewService constructs a contracts service reading the template from
// templatePath on each generation.
func NewService(repo Repo, client llm.Client, templatePath string) *Service {
	return &Service{Repo: repo, LLM: client, templatePath: templatePath}
}

// SaveValues stores the contract values for a user.
func (s *Service) SaveValues(ctx context.Context, contract Contract) error {
	contract.TenantName = strings.TrimSpace(contract.TenantName)
	contract.Address = strings.TrimSpace(contract.Address)
	return s.Repo.Upsert(ctx, contract)
}

// Values returns the stored contract values for a user.
func (s *Service) Values(ctx context.Context, userID string) (Contract, error) {
	return s.Repo.GetByUser(ctx, userID)
}

// Generate produces the polished contract text for a user.
func (s *Service) Generate(ctx context.Context, userID string) (string, error) {
	template, err := os.ReadFile(s.templatePath)
	if err != nil {
		return "", fmt.Errorf("read contract template: %w", err)
	}

	contract, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	filled := FillTemplate(string(template), contract.TemplateValues())

	polished, err := s.LLM.Complete(ctx, llm.CompleteRequest{
		System:      polishSystemPrompt,
		User:        "Here is a draft contract:\n\n" + filled,
		Temperature: polishTemperature,
	})
	if err != nil {
		telemetry.Error("contracts.generate.llm_failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		return "", err
	}
	return polished, nil
}
