package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

// PromptHistoryLimit is how many recent timeline entries are shown to the
// generator as conversational history.
const PromptHistoryLimit = 5

// Session is the mutable state of one player's investigation. It is
// exclusively owned by the session store; mutation is serialized per
// session by the caller.
type Session struct {
	ID              uuid.UUID      `json:"id"`
	PlayerName      string         `json:"player_name"`
	Location        string         `json:"location"` // key into the world's location set
	CluesFound      int            `json:"clues_found"`
	Timeline        []chat.Message `json:"timeline"` // append-only
	Evidence        []string       `json:"evidence"` // deduplicated clue descriptions
	EvidenceAgainst map[string]int `json:"evidence_against"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at,omitempty"`
}

// NewSession creates a fresh session at the world's opening location,
// with the opening narration already on the timeline.
func NewSession(w *world.World) *Session {
	s := &Session{
		ID:              uuid.New(),
		PlayerName:      "You",
		Location:        w.OpeningLocation,
		Timeline:        make([]chat.Message, 0),
		Evidence:        make([]string, 0),
		EvidenceAgainst: make(map[string]int),
		CreatedAt:       time.Now(),
	}

	for _, suspect := range w.Suspects() {
		s.EvidenceAgainst[suspect] = 0
	}

	if w.OpeningMessage != "" {
		speaker := chat.SpeakerNarrator
		avatar := chat.AvatarNarrator
		if c := w.CharacterByKey(w.GuideKey()); c != nil {
			speaker = c.Display
			avatar = c.Avatar
		}
		s.AddMessage(speaker, w.OpeningMessage, avatar)
	}

	return s
}

// AddMessage appends an entry to the timeline.
func (s *Session) AddMessage(speaker, text, avatar string) {
	s.Timeline = append(s.Timeline, chat.Message{
		Speaker: speaker,
		Text:    text,
		Avatar:  avatar,
	})
}

// HasEvidence reports whether the clue description was already collected.
func (s *Session) HasEvidence(description string) bool {
	for _, e := range s.Evidence {
		if e == description {
			return true
		}
	}
	return false
}

// RecordEvidence adds a clue description to the collected evidence.
// Returns false without side effects if it was already known, so
// re-discovery is idempotent. CluesFound counts unique items only.
func (s *Session) RecordEvidence(description string) bool {
	if s.HasEvidence(description) {
		return false
	}
	s.Evidence = append(s.Evidence, description)
	s.CluesFound++
	return true
}

// RecentHistory returns up to n of the most recent timeline entries.
func (s *Session) RecentHistory(n int) []chat.Message {
	if len(s.Timeline) <= n {
		return s.Timeline
	}
	return s.Timeline[len(s.Timeline)-n:]
}

// StateView projects the session into its player-facing shape.
func (s *Session) StateView(w *world.World) *chat.StateView {
	locationDisplay := s.Location
	if loc := w.LocationByKey(s.Location); loc != nil {
		locationDisplay = loc.Display
	}

	against := make(map[string]int, len(s.EvidenceAgainst))
	for k, v := range s.EvidenceAgainst {
		against[k] = v
	}

	return &chat.StateView{
		Location:        locationDisplay,
		CluesFound:      s.CluesFound,
		Timeline:        s.Timeline,
		Evidence:        s.Evidence,
		EvidenceAgainst: against,
	}
}
