package services

import (
	"context"
	"fmt"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
)

// DisabledLLMService stands in when no provider is configured. Dialogue
// requests fail and the engine falls back to the canned reply, so the
// deterministic commands keep working without an API key.
type DisabledLLMService struct {
	reason string
}

func NewDisabledLLMService(reason string) *DisabledLLMService {
	return &DisabledLLMService{reason: reason}
}

func (d *DisabledLLMService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

func (d *DisabledLLMService) GenerateResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	return nil, fmt.Errorf("llm service disabled: %s", d.reason)
}
