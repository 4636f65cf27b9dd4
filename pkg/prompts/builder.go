package prompts

import (
	"fmt"
	"strings"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
	"github.com/vanyalambert/New-Harry-Potter/pkg/state"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

// Builder assembles the knowledge-bounded chat messages for one dialogue
// request using a fluent interface. The output is deterministic for a
// given session state, which is what makes response caching sound.
type Builder struct {
	world        *world.World
	session      *state.Session
	characterKey string
	playerText   string
	historyLimit int
}

// New creates a prompt builder with default settings.
func New() *Builder {
	return &Builder{
		historyLimit: state.PromptHistoryLimit,
	}
}

// WithWorld sets the immutable world truth.
func (b *Builder) WithWorld(w *world.World) *Builder {
	b.world = w
	return b
}

// WithSession sets the player's session.
func (b *Builder) WithSession(s *state.Session) *Builder {
	b.session = s
	return b
}

// WithCharacter sets the addressed character by key.
func (b *Builder) WithCharacter(key string) *Builder {
	b.characterKey = key
	return b
}

// WithPlayerText sets the verbatim player utterance.
func (b *Builder) WithPlayerText(text string) *Builder {
	b.playerText = text
	return b
}

// WithHistoryLimit sets the conversational history window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build constructs the message array: a system instruction pinning the
// closed world and reply schema, and a user message carrying identity,
// knowledge constraints, revelation policy, game state, recent
// conversation, and the player's question.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.world == nil {
		return nil, fmt.Errorf("world is required")
	}
	if b.session == nil {
		return nil, fmt.Errorf("session is required")
	}
	character := b.world.CharacterByKey(b.characterKey)
	if character == nil {
		return nil, fmt.Errorf("unknown character %q", b.characterKey)
	}
	if b.playerText == "" {
		return nil, fmt.Errorf("player text is required")
	}

	knowledge := b.world.Knowledge[b.characterKey]
	evidenceCount := b.world.EvidenceAgainst(b.characterKey, b.session.Evidence)

	var sb strings.Builder

	sb.WriteString("--- YOUR CHARACTER IDENTITY ---\n")
	fmt.Fprintf(&sb, "You are: %s\n", character.Display)
	fmt.Fprintf(&sb, "Personality: %s\n\n", character.Persona)

	sb.WriteString("--- YOUR KNOWLEDGE CONSTRAINTS ---\n")
	sb.WriteString(KnowledgeConstraints(knowledge))
	sb.WriteString("\n\n")

	sb.WriteString("--- REVELATION POLICY (when to reveal information) ---\n")
	sb.WriteString(RevelationPolicy(b.world, b.characterKey, evidenceCount))
	sb.WriteString("\n\n")

	sb.WriteString("--- CURRENT GAME STATE ---\n")
	fmt.Fprintf(&sb, "Player location: %s\n", b.locationDisplay())
	sb.WriteString("Evidence the player has:\n")
	if len(b.session.Evidence) == 0 {
		sb.WriteString("- None\n")
	} else {
		for _, e := range b.session.Evidence {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}
	fmt.Fprintf(&sb, "\nEvidence pointing to you: %d pieces\n\n", evidenceCount)

	sb.WriteString("--- RECENT CONVERSATION ---\n")
	for _, msg := range b.session.RecentHistory(b.historyLimit) {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Speaker, msg.Text)
	}
	sb.WriteString("\n")

	sb.WriteString("--- PLAYER'S QUESTION ---\n")
	sb.WriteString(b.playerText)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "--- RESPOND AS %s ---\n", character.Display)
	sb.WriteString("Consider your personality, your knowledge, and the pressure from the evidence.\n")
	sb.WriteString("Output valid JSON only.")

	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: BaseInstruction(b.world)},
		{Role: chat.ChatRoleUser, Content: sb.String()},
	}, nil
}

func (b *Builder) locationDisplay() string {
	if loc := b.world.LocationByKey(b.session.Location); loc != nil {
		return loc.Display
	}
	return b.session.Location
}
