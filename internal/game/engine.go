// Package game is the action pipeline: deterministic commands are
// resolved against the world directly, everything conversational is
// routed through the knowledge-bounded dialogue path.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/vanyalambert/New-Harry-Potter/internal/services"
	"github.com/vanyalambert/New-Harry-Potter/pkg/cache"
	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
	"github.com/vanyalambert/New-Harry-Potter/pkg/eval"
	"github.com/vanyalambert/New-Harry-Potter/pkg/state"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

// DefaultLLMTimeout bounds one generation request. The engine falls back
// to the canned reply when the generator does not answer in time.
const DefaultLLMTimeout = 30 * time.Second

// Engine processes player actions against a single world. The cache and
// metrics services are shared across all sessions; the session itself is
// exclusively owned by the caller for the duration of a call.
type Engine struct {
	world      *world.World
	llm        services.LLMService
	cache      *cache.ResponseCache
	metrics    *eval.Metrics
	policy     eval.ValidationPolicy
	logger     *slog.Logger
	llmTimeout time.Duration
}

func NewEngine(w *world.World, llm services.LLMService, responseCache *cache.ResponseCache, metrics *eval.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		world:      w,
		llm:        llm,
		cache:      responseCache,
		metrics:    metrics,
		policy:     eval.DefaultPolicy(),
		logger:     logger,
		llmTimeout: DefaultLLMTimeout,
	}
}

// SetLLMTimeout overrides the generation timeout.
func (e *Engine) SetLLMTimeout(d time.Duration) {
	e.llmTimeout = d
}

// World returns the engine's immutable world truth.
func (e *Engine) World() *world.World {
	return e.world
}

// HandleAction runs one player action through the pipeline. The player's
// text and every reply message are appended to the session timeline; the
// reply messages are also returned for the response body.
func (e *Engine) HandleAction(ctx context.Context, s *state.Session, playerText string) []chat.Message {
	s.AddMessage(s.PlayerName, playerText, chat.AvatarPlayer)

	if reply, ok := e.handleDeterministic(s, playerText); ok {
		return reply
	}

	if isDialogueCommand(playerText) {
		return e.handleDialogue(ctx, s, playerText)
	}

	return []chat.Message{e.narrate(s,
		"I don't understand that command. Try: 'go to [location]', 'inspect [object]', or 'talk to [NPC]'.")}
}

// narrate appends a narrator message to the timeline and returns it.
func (e *Engine) narrate(s *state.Session, text string) chat.Message {
	s.AddMessage(chat.SpeakerNarrator, text, chat.AvatarNarrator)
	return chat.Message{
		Speaker: chat.SpeakerNarrator,
		Text:    text,
		Avatar:  chat.AvatarNarrator,
	}
}
