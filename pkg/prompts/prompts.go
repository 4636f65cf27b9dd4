package prompts

import (
	"fmt"
	"strings"

	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

const (
	// MaxReplySentences caps character replies; enforced by instruction,
	// checked heuristically by the validator's scoring defaults.
	MaxReplySentences = 3

	// MaxReplyChars is the approximate character budget per reply.
	MaxReplyChars = 400

	// NervousTierMin is the evidence count at which the culprit shifts
	// from flat denial to nervous partial admissions.
	NervousTierMin = 2
)

// BaseInstruction is the system prompt shared by every dialogue request.
// It pins the generator to the closed sets of locations and characters
// and to the structured reply shape.
func BaseInstruction(w *world.World) string {
	var sb strings.Builder
	sb.WriteString("You are an NPC in a magical-school mystery game.\n\n")
	sb.WriteString("CRITICAL RULES:\n")
	sb.WriteString("1. Stay strictly in character\n")
	fmt.Fprintf(&sb, "2. Maximum %d sentences per response (about %d characters)\n", MaxReplySentences, MaxReplyChars)
	fmt.Fprintf(&sb, "3. Only mention locations that exist: %s\n", strings.Join(w.LocationDisplays(), ", "))
	fmt.Fprintf(&sb, "4. Only mention characters that exist: %s\n", strings.Join(w.CharacterDisplays(), ", "))
	sb.WriteString("5. Follow your knowledge constraints exactly\n\n")
	sb.WriteString("Output ONLY valid JSON with these keys:\n")
	sb.WriteString(`- "npc_reply": your dialogue (no speaker name)` + "\n")
	sb.WriteString(`- "mentions": list of new clues or suspects you reveal` + "\n")
	sb.WriteString(`- "tone": one word (nervous/calm/defensive/helpful/arrogant/fearful)` + "\n")
	sb.WriteString(`- "thinking": brief reasoning for your response (never shown to the player)`)
	return sb.String()
}

// KnowledgeConstraints renders the knowledge boundary block for a character.
func KnowledgeConstraints(k world.Knowledge) string {
	if k.KnowsEverything() {
		threshold := k.ConfessThreshold
		if threshold <= 0 {
			threshold = world.DefaultConfessThreshold
		}
		var sb strings.Builder
		sb.WriteString("You are the CULPRIT. You know everything about the crime.\n")
		fmt.Fprintf(&sb, "- You MUST LIE about: %s\n", strings.Join(k.WillLieAbout, ", "))
		fmt.Fprintf(&sb, "- You only confess when the player has %d or more pieces of evidence against you\n", threshold)
		sb.WriteString("- Until then, act defensive and deflect blame")
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString("You know limited information:\n")
	fmt.Fprintf(&sb, "- You know: %s\n", strings.Join(k.Knows, ", "))
	fmt.Fprintf(&sb, "- You may reveal these clues if asked: %s\n", strings.Join(k.WillReveal, ", "))
	sb.WriteString("- You do NOT know who the culprit is. Never name or guess a culprit.")
	return sb.String()
}

// RevelationPolicy renders the disclosure-gating block. The culprit's
// policy is tiered by the evidence count against them; witness and guide
// archetypes have fixed policies.
func RevelationPolicy(w *world.World, charKey string, evidenceCount int) string {
	k := w.Knowledge[charKey]

	switch k.Archetype {
	case world.ArchetypeCulprit:
		return culpritPolicy(w, k, evidenceCount)

	case world.ArchetypeWitness:
		var sb strings.Builder
		sb.WriteString("You are helpful but shy.\n")
		fmt.Fprintf(&sb, "- If the player asks about something you witnessed, reveal it: %s\n", strings.Join(k.WillReveal, ", "))
		sb.WriteString("- Mention anything suspicious you noticed, but only when asked directly\n")
		sb.WriteString("- Do not volunteer information unprompted")
		return sb.String()

	default: // guide
		return "You guide with wisdom.\n" +
			"- Ask probing questions\n" +
			"- Hint at examining evidence more closely\n" +
			"- Suggest places worth a second look\n" +
			"- Never directly accuse anyone"
	}
}

func culpritPolicy(w *world.World, k world.Knowledge, evidenceCount int) string {
	threshold := k.ConfessThreshold
	if threshold <= 0 {
		threshold = world.DefaultConfessThreshold
	}

	switch {
	case evidenceCount >= threshold:
		var sb strings.Builder
		fmt.Fprintf(&sb, "CRITICAL: the player has %d pieces of evidence against you.\n", evidenceCount)
		sb.WriteString("- Show FEAR and PANIC\n")
		sb.WriteString("- Admit your guilt plainly and explain why you did it\n")
		if hiding := w.HidingPlace(); hiding != "" {
			fmt.Fprintf(&sb, "- Reveal the hiding place: %s\n", hiding)
		}
		sb.WriteString("- Be remorseful")
		return sb.String()

	case evidenceCount >= NervousTierMin:
		var sb strings.Builder
		fmt.Fprintf(&sb, "WARNING: the player has %d pieces of evidence.\n", evidenceCount)
		sb.WriteString("- Show NERVOUSNESS\n")
		sb.WriteString("- Admit small peripheral details but keep denying the theft\n")
		sb.WriteString("- Do NOT reveal where the artifact is hidden")
		return sb.String()

	default:
		return "Stay CONFIDENT and DEFENSIVE.\n" +
			"- Deny everything\n" +
			"- Deflect blame to others\n" +
			"- Act offended by accusations"
	}
}
