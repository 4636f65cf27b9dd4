package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
)

func TestNewAnthropicService(t *testing.T) {
	apiKey := "test-api-key"
	modelName := "claude-3-5-haiku-latest"
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAnthropicService(apiKey, modelName, log)

	if service.apiKey != apiKey {
		t.Errorf("Expected API key %s, got %s", apiKey, service.apiKey)
	}

	if service.modelName != modelName {
		t.Errorf("Expected model name %s, got %s", modelName, service.modelName)
	}

	if service.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
}

func TestAnthropicService_InitModel(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", "claude-3-5-haiku-latest", log)

	err := service.InitModel(context.Background(), "other-model")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if service.modelName != "other-model" {
		t.Errorf("Expected model name to update, got %s", service.modelName)
	}
}

func TestAnthropicService_SplitChatMessages(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAnthropicService("test-key", "claude-3-5-haiku-latest", log)

	tests := []struct {
		name                   string
		messages               []chat.ChatMessage
		expectedSystem         string
		expectedNonSystemCount int
	}{
		{
			name: "single system message",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "You are an NPC."},
				{Role: chat.ChatRoleUser, Content: "Did you take it?"},
			},
			expectedSystem:         "You are an NPC.",
			expectedNonSystemCount: 1,
		},
		{
			name: "multiple system messages",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "You are an NPC."},
				{Role: chat.ChatRoleUser, Content: "Hello"},
				{Role: chat.ChatRoleSystem, Content: "Be brief."},
			},
			expectedSystem:         "You are an NPC.\n\nBe brief.",
			expectedNonSystemCount: 1,
		},
		{
			name: "no system messages",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleUser, Content: "Hello"},
				{Role: chat.ChatRoleAgent, Content: "Hi there."},
			},
			expectedSystem:         "",
			expectedNonSystemCount: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			system, rest := service.splitChatMessages(tc.messages)
			if system != tc.expectedSystem {
				t.Errorf("Expected system prompt %q, got %q", tc.expectedSystem, system)
			}
			if len(rest) != tc.expectedNonSystemCount {
				t.Errorf("Expected %d non-system messages, got %d", tc.expectedNonSystemCount, len(rest))
			}
		})
	}
}

func TestDisabledLLMService(t *testing.T) {
	service := NewDisabledLLMService("no API key configured")

	if err := service.InitModel(context.Background(), "any"); err != nil {
		t.Errorf("Expected InitModel to succeed, got %v", err)
	}

	resp, err := service.GenerateResponse(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "hello"},
	})
	if err == nil {
		t.Fatal("Expected disabled service to error")
	}
	if resp != nil {
		t.Errorf("Expected nil response, got %+v", resp)
	}
}

func TestMockLLMAPI(t *testing.T) {
	mock := NewMockLLMAPI()

	resp, err := mock.GenerateResponse(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "Did you take it?"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reply, err := chat.ParseNPCReply(resp.Message)
	if err != nil {
		t.Fatalf("Expected default mock message to parse as a character reply: %v", err)
	}
	if reply.Reply == "" {
		t.Error("Expected non-empty reply text")
	}

	mock.SetGenerateResponseError(errors.New("boom"))
	if _, err := mock.GenerateResponse(context.Background(), nil); err == nil {
		t.Error("Expected injected error")
	}

	_, calls := mock.GetCalls()
	if len(calls) != 2 {
		t.Errorf("Expected 2 tracked calls, got %d", len(calls))
	}

	mock.Reset()
	_, calls = mock.GetCalls()
	if len(calls) != 0 {
		t.Errorf("Expected tracking cleared, got %d calls", len(calls))
	}
}
