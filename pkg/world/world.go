package world

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// KnowsAll is the sentinel fact tag marking a character who knows
// everything about the crime (the culprit).
const KnowsAll = "ALL"

// Character archetypes drive the revelation policy for dialogue.
const (
	ArchetypeCulprit = "culprit"
	ArchetypeWitness = "witness"
	ArchetypeGuide   = "guide"
)

// Crime holds the fixed facts of the case. It is never serialized
// to the player-facing surface.
type Crime struct {
	What  string `json:"what"`
	When  string `json:"when"`
	Where string `json:"where"`
	Who   string `json:"who"`
	How   string `json:"how"`
	Why   string `json:"why"`
}

// Clue is a discoverable fact registered at a location.
type Clue struct {
	Key         string   `json:"key"`
	Description string   `json:"description"`
	Reveals     string   `json:"reveals"`
	PointsTo    []string `json:"points_to,omitempty"` // suspect character keys
	SolvesCase  bool     `json:"solves_case,omitempty"`
}

// Location is a place the player can travel to.
type Location struct {
	Key         string `json:"key"`
	Display     string `json:"display"`
	Description string `json:"description"`
}

// Character is a non-player character the player can address.
type Character struct {
	Key     string   `json:"key"`
	Display string   `json:"display"`
	Avatar  string   `json:"avatar"`
	Persona string   `json:"persona"`
	Aliases []string `json:"aliases"`
}

// Knowledge describes what a character knows and is willing to disclose.
type Knowledge struct {
	Archetype        string   `json:"archetype"`
	Knows            []string `json:"knows,omitempty"`
	WillReveal       []string `json:"will_reveal,omitempty"`
	WillLieAbout     []string `json:"will_lie_about,omitempty"`
	ConfessThreshold int      `json:"confess_threshold,omitempty"`
	Personality      string   `json:"personality,omitempty"`
}

// KnowsEverything reports whether the knowledge record carries the
// full-knowledge sentinel.
func (k Knowledge) KnowsEverything() bool {
	for _, fact := range k.Knows {
		if fact == KnowsAll {
			return true
		}
	}
	return false
}

// World is the static ground truth for a mystery. Immutable after load;
// shared read-only by all sessions.
//
// Locations, Characters and the clue lists are ordered slices so that
// substring matching has a fixed, reproducible tie-break order.
type World struct {
	Crime           Crime                `json:"crime"`
	Locations       []Location           `json:"locations"`
	Characters      []Character          `json:"characters"`
	Clues           map[string][]Clue    `json:"clues"`     // location key -> clues
	Knowledge       map[string]Knowledge `json:"knowledge"` // character key -> knowledge
	OpeningLocation string               `json:"opening_location"`
	OpeningMessage  string               `json:"opening_message"`
}

// LocationByKey returns the location with the given key, or nil.
func (w *World) LocationByKey(key string) *Location {
	for i := range w.Locations {
		if w.Locations[i].Key == key {
			return &w.Locations[i]
		}
	}
	return nil
}

// CharacterByKey returns the character with the given key, or nil.
func (w *World) CharacterByKey(key string) *Character {
	for i := range w.Characters {
		if w.Characters[i].Key == key {
			return &w.Characters[i]
		}
	}
	return nil
}

// CluesAt returns the ordered clue list registered at a location.
func (w *World) CluesAt(locationKey string) []Clue {
	return w.Clues[locationKey]
}

// CulpritKey returns the key of the character whose knowledge record
// carries the full-knowledge sentinel, or "" if the world has none.
func (w *World) CulpritKey() string {
	for _, c := range w.Characters {
		if w.Knowledge[c.Key].KnowsEverything() {
			return c.Key
		}
	}
	return ""
}

// GuideKey returns the key of the first guide-archetype character, or "".
// The guide delivers the opening narration.
func (w *World) GuideKey() string {
	for _, c := range w.Characters {
		if w.Knowledge[c.Key].Archetype == ArchetypeGuide {
			return c.Key
		}
	}
	return ""
}

// Suspects returns the character keys implicated by at least one clue,
// in location and clue declaration order, deduplicated.
func (w *World) Suspects() []string {
	seen := make(map[string]bool)
	var suspects []string
	for _, loc := range w.Locations {
		for _, clue := range w.Clues[loc.Key] {
			for _, s := range clue.PointsTo {
				if !seen[s] {
					seen[s] = true
					suspects = append(suspects, s)
				}
			}
		}
	}
	return suspects
}

// EvidenceAgainst counts how many of the collected evidence descriptions
// implicate the given suspect. Iteration follows declaration order so the
// count is reproducible.
func (w *World) EvidenceAgainst(suspect string, evidence []string) int {
	collected := make(map[string]bool, len(evidence))
	for _, e := range evidence {
		collected[e] = true
	}

	count := 0
	for _, loc := range w.Locations {
		for _, clue := range w.Clues[loc.Key] {
			if !collected[clue.Description] {
				continue
			}
			for _, s := range clue.PointsTo {
				if s == suspect {
					count++
					break
				}
			}
		}
	}
	return count
}

// DefaultConfessThreshold applies when a culprit's knowledge record
// omits an explicit threshold.
const DefaultConfessThreshold = 3

// ConfessThreshold returns the evidence count at which the character
// confesses, falling back to the default.
func (w *World) ConfessThreshold(characterKey string) int {
	if t := w.Knowledge[characterKey].ConfessThreshold; t > 0 {
		return t
	}
	return DefaultConfessThreshold
}

// SolvingLocation returns the location holding the case-solving clue, or nil.
func (w *World) SolvingLocation() *Location {
	for _, loc := range w.Locations {
		for _, clue := range w.Clues[loc.Key] {
			if clue.SolvesCase {
				return w.LocationByKey(loc.Key)
			}
		}
	}
	return nil
}

// Validate checks referential integrity of the world data.
func (w *World) Validate() error {
	if len(w.Locations) == 0 {
		return fmt.Errorf("world has no locations")
	}
	if w.LocationByKey(w.OpeningLocation) == nil {
		return fmt.Errorf("opening location %q is not a known location", w.OpeningLocation)
	}
	for locKey := range w.Clues {
		if w.LocationByKey(locKey) == nil {
			return fmt.Errorf("clues registered at unknown location %q", locKey)
		}
		for _, clue := range w.Clues[locKey] {
			if clue.Key == "" || clue.Description == "" {
				return fmt.Errorf("clue at %q is missing key or description", locKey)
			}
			for _, s := range clue.PointsTo {
				if w.CharacterByKey(s) == nil {
					return fmt.Errorf("clue %q points to unknown character %q", clue.Key, s)
				}
			}
		}
	}
	for charKey := range w.Knowledge {
		if w.CharacterByKey(charKey) == nil {
			return fmt.Errorf("knowledge record for unknown character %q", charKey)
		}
	}
	for _, c := range w.Characters {
		if _, ok := w.Knowledge[c.Key]; !ok {
			return fmt.Errorf("character %q has no knowledge record", c.Key)
		}
		if len(c.Aliases) == 0 {
			return fmt.Errorf("character %q has no aliases", c.Key)
		}
	}
	if w.CulpritKey() == "" {
		return fmt.Errorf("world has no culprit (no knowledge record with %q)", KnowsAll)
	}
	return nil
}

// LoadFile reads a world definition from a JSON file and validates it.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world file: %w", err)
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world in %s: %w", path, err)
	}
	return &w, nil
}

// LocationKeys returns the ordered list of location keys, for hint messages.
func (w *World) LocationKeys() []string {
	keys := make([]string, 0, len(w.Locations))
	for _, loc := range w.Locations {
		keys = append(keys, loc.Key)
	}
	return keys
}

// LocationDisplays returns the ordered location display names.
func (w *World) LocationDisplays() []string {
	names := make([]string, 0, len(w.Locations))
	for _, loc := range w.Locations {
		names = append(names, loc.Display)
	}
	return names
}

// HidingPlace describes where the case-solving clue sits, for the
// confession-tier prompt. Empty if the world has no solving clue.
func (w *World) HidingPlace() string {
	for _, loc := range w.Locations {
		for _, clue := range w.Clues[loc.Key] {
			if clue.SolvesCase {
				return clue.Description + ", in " + loc.Display
			}
		}
	}
	return ""
}

// CharacterDisplays returns the ordered display names, for hint messages.
func (w *World) CharacterDisplays() []string {
	names := make([]string, 0, len(w.Characters))
	for _, c := range w.Characters {
		names = append(names, c.Display)
	}
	return names
}

// MatchLocation finds the first location, in declaration order, whose key
// contains or is contained by the target phrase. Deliberately simple
// substring matching, not NLP.
func (w *World) MatchLocation(target string) *Location {
	target = strings.ToLower(strings.TrimSpace(target))
	for i := range w.Locations {
		key := w.Locations[i].Key
		if strings.Contains(target, key) || strings.Contains(key, target) {
			return &w.Locations[i]
		}
	}
	return nil
}

// MatchCharacter finds the first character, in declaration order, one of
// whose aliases appears in the utterance.
func (w *World) MatchCharacter(utterance string) *Character {
	text := strings.ToLower(utterance)
	for i := range w.Characters {
		for _, alias := range w.Characters[i].Aliases {
			if strings.Contains(text, alias) {
				return &w.Characters[i]
			}
		}
	}
	return nil
}
