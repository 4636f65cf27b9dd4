package game

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
	"github.com/vanyalambert/New-Harry-Potter/pkg/state"
)

// handleDeterministic resolves movement and inspection commands without
// touching the text generator. Returns false when the text is neither.
func (e *Engine) handleDeterministic(s *state.Session, playerText string) ([]chat.Message, bool) {
	action := strings.ToLower(strings.TrimSpace(playerText))

	if target, ok := strings.CutPrefix(action, "go to "); ok {
		return e.handleTravel(s, strings.TrimSpace(target)), true
	}
	if item, ok := strings.CutPrefix(action, "inspect "); ok {
		return e.handleInspect(s, strings.TrimSpace(item)), true
	}
	if item, ok := strings.CutPrefix(action, "examine "); ok {
		return e.handleInspect(s, strings.TrimSpace(item)), true
	}
	return nil, false
}

func (e *Engine) handleTravel(s *state.Session, target string) []chat.Message {
	loc := e.world.MatchLocation(target)
	if loc == nil {
		return []chat.Message{e.narrate(s,
			fmt.Sprintf("Can't find '%s'. Try: %s", target, strings.Join(e.locationHints(), ", ")))}
	}

	if s.Location == loc.Key {
		return []chat.Message{e.narrate(s, fmt.Sprintf("You are already in %s.", loc.Display))}
	}

	s.Location = loc.Key
	e.logger.Debug("Player traveled", "session_id", s.ID, "location", loc.Key)
	return []chat.Message{
		e.narrate(s, fmt.Sprintf("You travel to %s.", loc.Display)),
		e.narrate(s, loc.Description),
	}
}

func (e *Engine) handleInspect(s *state.Session, item string) []chat.Message {
	itemNorm := normalizeClueTerm(item)

	for _, clue := range e.world.CluesAt(s.Location) {
		clueKey := normalizeClueTerm(clue.Key)
		if !strings.Contains(itemNorm, clueKey) && !strings.Contains(clueKey, itemNorm) {
			continue
		}

		if !s.RecordEvidence(clue.Description) {
			return []chat.Message{e.narrate(s, "You've already examined this thoroughly.")}
		}

		for _, suspect := range clue.PointsTo {
			s.EvidenceAgainst[suspect]++
		}
		e.logger.Debug("Evidence collected",
			"session_id", s.ID, "clue", clue.Key, "clues_found", s.CluesFound)

		if clue.SolvesCase {
			return []chat.Message{e.narrate(s,
				fmt.Sprintf("CASE SOLVED! You found %s! %s", clue.Description, clue.Reveals))}
		}
		return []chat.Message{e.narrate(s,
			fmt.Sprintf("New evidence: %s. %s", clue.Description, clue.Reveals))}
	}

	return []chat.Message{e.narrate(s,
		fmt.Sprintf("You inspect the %s but find nothing unusual.", item))}
}

// normalizeClueTerm folds underscores into spaces so "torn page" matches
// the clue key "torn_page".
func normalizeClueTerm(term string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(term)), "_", " ")
}

// locationHints title-cases the location keys for the travel hint.
func (e *Engine) locationHints() []string {
	caser := cases.Title(language.English)
	keys := e.world.LocationKeys()
	hints := make([]string, len(keys))
	for i, key := range keys {
		hints[i] = caser.String(key)
	}
	return hints
}
