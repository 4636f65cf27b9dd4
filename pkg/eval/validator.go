// Package eval checks character replies against the hidden truth and
// accumulates the results into consistency, quality and progression
// scores. Validation is advisory: a flag depresses scores but never
// blocks a reply from reaching the player.
package eval

import (
	"strings"

	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

// ValidationPolicy holds the keyword heuristics the validator applies.
// These are policy data with intentionally modest precision and recall,
// not security logic; tune them per world, don't harden them.
type ValidationPolicy struct {
	// PlaceKeywords are generic place types whose presence, without any
	// canonical location name alongside, suggests an invented location.
	PlaceKeywords []string

	// PersonKeywords are generic person references whose presence,
	// without any canonical character name alongside, suggests an
	// invented character.
	PersonKeywords []string

	// PrematurePairs are term pairs that together give the hiding place
	// away. Flagged only for the culprit below the confession threshold.
	PrematurePairs [][2]string

	// AccusationTerms and CertaintyTerms combine with the culprit's name
	// to detect a character asserting guilt they cannot know.
	AccusationTerms []string
	CertaintyTerms  []string
}

// DefaultPolicy returns the keyword sets for the compass mystery.
func DefaultPolicy() ValidationPolicy {
	return ValidationPolicy{
		PlaceKeywords:  []string{"room", "chamber", "dungeon", "tower", "passage"},
		PersonKeywords: []string{"professor", "student"},
		PrematurePairs: [][2]string{
			{"fountain", "compass"},
			{"courtyard", "hidden"},
		},
		AccusationTerms: []string{"took", "stole"},
		CertaintyTerms:  []string{"guilty", "thief"},
	}
}

const (
	maxScore       = 5
	penalizedScore = 2
)

// Result is the outcome of validating one reply.
type Result struct {
	FabricatedLocation  bool `json:"fabricated_location"`
	FabricatedCharacter bool `json:"fabricated_character"`
	PrematureRevelation bool `json:"premature_revelation"`
	KnowledgeViolation  bool `json:"knowledge_violation"`
	Coherence           int  `json:"coherence_score"` // 1-5
	Relevance           int  `json:"relevance_score"` // 1-5
}

// Flagged reports whether any heuristic fired.
func (r Result) Flagged() bool {
	return r.FabricatedLocation || r.FabricatedCharacter ||
		r.PrematureRevelation || r.KnowledgeViolation
}

// Validate is a pure function of the speaking character, the reply text
// and the evidence count against that character.
func Validate(w *world.World, characterKey, reply string, evidenceCount int, policy ValidationPolicy) Result {
	result := Result{
		Coherence: maxScore,
		Relevance: maxScore,
	}

	replyLower := strings.ToLower(reply)

	if fabricatedLocation(w, replyLower, policy) {
		result.FabricatedLocation = true
		result.Coherence = penalizedScore
	}

	if fabricatedCharacter(w, replyLower, policy) {
		result.FabricatedCharacter = true
		result.Coherence = penalizedScore
	}

	knowledge := w.Knowledge[characterKey]

	if knowledge.Archetype == world.ArchetypeCulprit &&
		evidenceCount < w.ConfessThreshold(characterKey) &&
		revealsHidingPlace(replyLower, policy) {
		result.PrematureRevelation = true
		result.Relevance = penalizedScore
	}

	if !knowledge.KnowsEverything() && assertsCulpritGuilt(w, characterKey, replyLower, policy) {
		result.KnowledgeViolation = true
		result.Coherence = penalizedScore
	}

	return result
}

func fabricatedLocation(w *world.World, replyLower string, policy ValidationPolicy) bool {
	for _, keyword := range policy.PlaceKeywords {
		if !strings.Contains(replyLower, keyword) {
			continue
		}
		if !containsAny(replyLower, lowerAll(w.LocationDisplays())) {
			return true
		}
	}
	return false
}

func fabricatedCharacter(w *world.World, replyLower string, policy ValidationPolicy) bool {
	for _, keyword := range policy.PersonKeywords {
		if !strings.Contains(replyLower, keyword) {
			continue
		}
		if !containsAny(replyLower, lowerAll(w.CharacterDisplays())) {
			return true
		}
	}
	return false
}

func revealsHidingPlace(replyLower string, policy ValidationPolicy) bool {
	for _, pair := range policy.PrematurePairs {
		if strings.Contains(replyLower, pair[0]) && strings.Contains(replyLower, pair[1]) {
			return true
		}
	}
	return false
}

// assertsCulpritGuilt fires when a character without full knowledge names
// the culprit together with an accusation and a certainty term. Suspicion
// is allowed; certainty is not.
func assertsCulpritGuilt(w *world.World, characterKey, replyLower string, policy ValidationPolicy) bool {
	culpritKey := w.CulpritKey()
	if culpritKey == "" || characterKey == culpritKey {
		return false
	}

	culprit := w.CharacterByKey(culpritKey)
	if culprit == nil || !containsAny(replyLower, culprit.Aliases) {
		return false
	}

	return containsAny(replyLower, policy.AccusationTerms) &&
		containsAny(replyLower, policy.CertaintyTerms)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}
