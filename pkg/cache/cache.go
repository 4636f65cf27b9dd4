// Package cache holds the shared response cache that guarantees a
// character gives the same answer to the same question at the same
// evidence level. This is the consistency contract the orchestrator
// exists to uphold.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
)

// Reply is the cached payload for one dialogue answer.
type Reply struct {
	Text     string   `json:"npc_reply"`
	Mentions []string `json:"mentions"`
	Tone     string   `json:"tone"`
}

// Stats reports cache performance counters.
type Stats struct {
	Hits    int     `json:"cache_hits"`
	Misses  int     `json:"cache_misses"`
	HitRate float64 `json:"hit_rate"`
	Entries int     `json:"cached_entries"`
}

// ResponseCache maps (character, normalized question, evidence count) to
// the canonical reply for that key. Shared by all sessions; guarded by a
// RWMutex so resets are atomic with respect to concurrent lookups.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]Reply
	hits    int
	misses  int
}

// New creates an empty response cache.
func New() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]Reply),
	}
}

// key normalizes the question and folds the evidence count in, so answers
// may change as the player collects evidence but never for the same state.
func key(characterKey, question string, evidenceCount int) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:evidence_%d", characterKey, normalized, evidenceCount)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached reply for the key, if any.
func (c *ResponseCache) Get(characterKey, question string, evidenceCount int) (Reply, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, ok := c.entries[key(characterKey, question, evidenceCount)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return reply, ok
}

// Set stores the canonical reply for the key.
func (c *ResponseCache) Set(characterKey, question string, evidenceCount int, reply Reply) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(characterKey, question, evidenceCount)] = reply
}

// Reset clears all entries and counters in one critical section.
func (c *ResponseCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Reply)
	c.hits = 0
	c.misses = 0
}

// Stats returns a snapshot of the cache counters.
func (c *ResponseCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: rate,
		Entries: len(c.entries),
	}
}
