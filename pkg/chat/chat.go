package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	ChatRoleUser   = "user"      // the player
	ChatRoleAgent  = "assistant" // an NPC
	ChatRoleSystem = "system"    // instructions to the generator
)

// ChatMessage is a single message sent to the text-generation service.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the raw reply from the text-generation service.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}

// Message is one entry in a session's player-visible timeline.
type Message struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Avatar  string `json:"avatar_type"`
}

const (
	SpeakerNarrator = "Narrator"
	AvatarNarrator  = "brown"
	AvatarPlayer    = "blue"
)

// ActionRequest is a player action submitted to the API.
type ActionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Text      string    `json:"text"`
}

func (r *ActionRequest) Validate() error {
	if r.SessionID == uuid.Nil {
		return fmt.Errorf("session_id is required")
	}
	if r.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// StateView is the player-facing projection of a session.
type StateView struct {
	Location        string         `json:"location"` // display name
	CluesFound      int            `json:"clues_found"`
	Timeline        []Message      `json:"timeline"`
	Evidence        []string       `json:"evidence"`
	EvidenceAgainst map[string]int `json:"evidence_against,omitempty"`
}

// ActionResponse is returned for every processed player action.
type ActionResponse struct {
	SessionID uuid.UUID  `json:"session_id"`
	Reply     []Message  `json:"reply"`
	State     *StateView `json:"state,omitempty"`
}
