package chat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToneNeutral is the default tone when the generator omits one.
const ToneNeutral = "neutral"

// ToneConfused is the tone of the fixed fallback reply.
const ToneConfused = "confused"

// NPCReply is the structured shape every character reply must take.
// The generator is instructed to emit exactly this JSON object.
type NPCReply struct {
	Reply    string   `json:"npc_reply"`
	Mentions []string `json:"mentions"`
	Tone     string   `json:"tone"`
	Thinking string   `json:"thinking,omitempty"` // internal justification, never shown to the player
}

// ParseNPCReply parses the generator's raw output into an NPCReply.
// Missing optional fields get explicit defaults (empty mentions, neutral
// tone). A missing reply or unparseable payload is a generator failure.
func ParseNPCReply(raw string) (*NPCReply, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var reply NPCReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, fmt.Errorf("invalid structured reply: %w", err)
	}

	if reply.Reply == "" {
		return nil, fmt.Errorf("structured reply is missing npc_reply")
	}
	if reply.Mentions == nil {
		reply.Mentions = []string{}
	}
	if reply.Tone == "" {
		reply.Tone = ToneNeutral
	}

	return &reply, nil
}
