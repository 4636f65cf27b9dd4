package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanyalambert/New-Harry-Potter/pkg/cache"
	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
	"github.com/vanyalambert/New-Harry-Potter/pkg/eval"
	"github.com/vanyalambert/New-Harry-Potter/pkg/prompts"
	"github.com/vanyalambert/New-Harry-Potter/pkg/state"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

// FallbackReply is substituted when the generator fails or returns a
// malformed payload. It is never cached, so a later retry can succeed.
const FallbackReply = "I... I need a moment to gather my thoughts."

var dialogueTriggers = []string{"talk to ", "speak with ", "speak to ", "ask "}

func isDialogueCommand(playerText string) bool {
	lower := strings.ToLower(playerText)
	for _, trigger := range dialogueTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// handleDialogue drives the reply pipeline for an addressed character:
// cache lookup, generation on miss, validation, metrics, timeline update
// and evidence merge from disclosed mentions.
func (e *Engine) handleDialogue(ctx context.Context, s *state.Session, playerText string) []chat.Message {
	character := e.world.MatchCharacter(playerText)
	if character == nil {
		return []chat.Message{e.narrate(s,
			fmt.Sprintf("I don't see that person here. Try talking to: %s.",
				strings.Join(e.world.CharacterDisplays(), ", ")))}
	}

	evidenceCount := s.EvidenceAgainst[character.Key]

	reply, cached := e.cache.Get(character.Key, playerText, evidenceCount)
	if cached {
		e.logger.Debug("Response cache hit",
			"character", character.Key, "evidence_count", evidenceCount)
	} else {
		reply = e.generateReply(ctx, s, character, playerText, evidenceCount)
	}

	// Cached replies are validated and recorded too, so the evaluation
	// covers every interaction the player actually saw.
	result := eval.Validate(e.world, character.Key, reply.Text, evidenceCount, e.policy)
	e.metrics.Record(character.Key, playerText, evidenceCount, result)
	if result.Flagged() {
		e.logger.Warn("Character reply flagged",
			"character", character.Key,
			"fabricated_location", result.FabricatedLocation,
			"fabricated_character", result.FabricatedCharacter,
			"premature_revelation", result.PrematureRevelation,
			"knowledge_violation", result.KnowledgeViolation)
	}

	s.AddMessage(character.Display, reply.Text, character.Avatar)

	// Disclosed mentions become evidence like inspected clues, but carry
	// no suspect attribution.
	for _, mention := range reply.Mentions {
		s.RecordEvidence(mention)
	}

	return []chat.Message{{
		Speaker: character.Display,
		Text:    reply.Text,
		Avatar:  character.Avatar,
	}}
}

func (e *Engine) generateReply(ctx context.Context, s *state.Session, character *world.Character, playerText string, evidenceCount int) cache.Reply {
	messages, err := prompts.New().
		WithWorld(e.world).
		WithSession(s).
		WithCharacter(character.Key).
		WithPlayerText(playerText).
		Build()
	if err != nil {
		e.logger.Error("Failed to build dialogue prompt",
			"character", character.Key, "error", err)
		return fallbackReply()
	}

	genCtx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	defer cancel()

	resp, err := e.llm.GenerateResponse(genCtx, messages)
	if err != nil {
		e.logger.Error("Generation failed", "character", character.Key, "error", err)
		return fallbackReply()
	}

	parsed, err := chat.ParseNPCReply(resp.Message)
	if err != nil {
		e.logger.Error("Malformed reply from generator",
			"character", character.Key, "error", err)
		return fallbackReply()
	}

	reply := cache.Reply{
		Text:     parsed.Reply,
		Mentions: parsed.Mentions,
		Tone:     parsed.Tone,
	}
	e.cache.Set(character.Key, playerText, evidenceCount, reply)
	return reply
}

func fallbackReply() cache.Reply {
	return cache.Reply{
		Text:     FallbackReply,
		Mentions: []string{},
		Tone:     chat.ToneConfused,
	}
}
