package eval

import (
	"testing"

	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

func TestValidate(t *testing.T) {
	w := world.Hogwarts()
	policy := DefaultPolicy()

	tests := []struct {
		name          string
		characterKey  string
		reply         string
		evidenceCount int
		want          Result
	}{
		{
			name:          "clean reply",
			characterKey:  "evelyn",
			reply:         "I saw someone near the Library last night.",
			evidenceCount: 0,
			want:          Result{Coherence: 5, Relevance: 5},
		},
		{
			name:          "fabricated location",
			characterKey:  "evelyn",
			reply:         "Check the secret chamber beneath the school.",
			evidenceCount: 0,
			want:          Result{FabricatedLocation: true, Coherence: 2, Relevance: 5},
		},
		{
			name:          "place keyword with canonical location is fine",
			characterKey:  "evelyn",
			reply:         "There is no hidden passage, only the Library.",
			evidenceCount: 0,
			want:          Result{Coherence: 5, Relevance: 5},
		},
		{
			name:          "fabricated character",
			characterKey:  "draco",
			reply:         "Ask the transfiguration professor, not me.",
			evidenceCount: 0,
			want:          Result{FabricatedCharacter: true, Coherence: 2, Relevance: 5},
		},
		{
			name:          "person keyword with canonical name is fine",
			characterKey:  "draco",
			reply:         "Go bother Professor Dumbledore instead.",
			evidenceCount: 0,
			want:          Result{Coherence: 5, Relevance: 5},
		},
		{
			name:          "premature revelation below threshold",
			characterKey:  "draco",
			reply:         "Fine, the compass is by the fountain.",
			evidenceCount: 1,
			want:          Result{PrematureRevelation: true, Coherence: 5, Relevance: 2},
		},
		{
			name:          "same reveal at threshold is a proper confession",
			characterKey:  "draco",
			reply:         "Fine, the compass is by the fountain.",
			evidenceCount: 3,
			want:          Result{Coherence: 5, Relevance: 5},
		},
		{
			name:          "hiding place pair from a witness is not premature",
			characterKey:  "evelyn",
			reply:         "Something about the courtyard felt hidden from me.",
			evidenceCount: 0,
			want:          Result{Coherence: 5, Relevance: 5},
		},
		{
			name:          "knowledge violation by limited character",
			characterKey:  "evelyn",
			reply:         "Draco stole it, he is guilty!",
			evidenceCount: 0,
			want:          Result{KnowledgeViolation: true, Coherence: 2, Relevance: 5},
		},
		{
			name:          "suspicion without certainty is allowed",
			characterKey:  "evelyn",
			reply:         "I wonder if Draco took something, but I cannot be sure.",
			evidenceCount: 0,
			want:          Result{Coherence: 5, Relevance: 5},
		},
		{
			name:          "culprit naming themselves is not a violation",
			characterKey:  "draco",
			reply:         "Yes, I am Draco and I took it. I am guilty.",
			evidenceCount: 3,
			want:          Result{Coherence: 5, Relevance: 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(w, tc.characterKey, tc.reply, tc.evidenceCount, policy)
			if got != tc.want {
				t.Errorf("Validate() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResult_Flagged(t *testing.T) {
	clean := Result{Coherence: 5, Relevance: 5}
	if clean.Flagged() {
		t.Error("Expected clean result not to be flagged")
	}

	flagged := Result{PrematureRevelation: true, Coherence: 5, Relevance: 2}
	if !flagged.Flagged() {
		t.Error("Expected result with premature revelation to be flagged")
	}
}
