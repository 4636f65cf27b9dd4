package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
)

const (
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiTemperature = 0.7
)

// GeminiService implements LLMService using the Google Generative AI SDK.
// The model is configured for JSON output so character replies arrive as
// a parseable structure rather than prose.
type GeminiService struct {
	apiKey    string
	modelName string
	logger    *slog.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(apiKey string, modelName string, logger *slog.Logger) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		logger:    logger,
	}
}

// InitModel creates the client and configures the generative model.
func (g *GeminiService) InitModel(ctx context.Context, modelName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if modelName != "" {
		g.modelName = modelName
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(g.modelName)
	temperature := float32(DefaultGeminiTemperature)
	model.Temperature = &temperature
	model.ResponseMIMEType = "application/json"

	g.client = client
	g.model = model
	g.logger.Debug("Gemini model initialized", "model", g.modelName)
	return nil
}

// GenerateResponse sends the conversation to Gemini and returns the raw
// text of the first candidate.
func (g *GeminiService) GenerateResponse(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	g.mu.Lock()
	model := g.model
	g.mu.Unlock()

	if model == nil {
		return nil, fmt.Errorf("gemini model not initialized")
	}

	resp, err := model.GenerateContent(ctx, genai.Text(flattenMessages(messages)))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type from gemini")
	}

	return &chat.ChatResponse{
		Message: string(text),
	}, nil
}

// Close releases the underlying client connection.
func (g *GeminiService) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// flattenMessages joins the role-tagged conversation into a single text
// prompt. The system instruction leads, followed by the dialogue turns.
func flattenMessages(messages []chat.ChatMessage) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch msg.Role {
		case chat.ChatRoleSystem:
			sb.WriteString(msg.Content)
		case chat.ChatRoleUser:
			sb.WriteString(msg.Content)
		default:
			sb.WriteString("Previous reply: ")
			sb.WriteString(msg.Content)
		}
	}
	return sb.String()
}
