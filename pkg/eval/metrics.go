package eval

import (
	"math"
	"sync"
	"time"

	"github.com/vanyalambert/New-Harry-Potter/pkg/cache"
)

// Pass thresholds for the three evaluation dimensions and the weighted
// overall score.
const (
	ConsistencyThreshold = 0.90
	QualityThreshold     = 0.75
	ProgressionThreshold = 0.80
	OverallThreshold     = 0.80

	consistencyWeight = 0.4
	qualityWeight     = 0.3
	progressionWeight = 0.3
)

// record is one validated interaction.
type record struct {
	characterKey  string
	question      string
	evidenceCount int
	result        Result
}

// Metrics accumulates validation results across all sessions. Shared
// service; guarded by a mutex. Reset starts a fresh evaluation run.
type Metrics struct {
	mu      sync.Mutex
	records []record
}

// NewMetrics creates an empty aggregator.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds one validated interaction to the running evaluation.
func (m *Metrics) Record(characterKey, question string, evidenceCount int, result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record{
		characterKey:  characterKey,
		question:      question,
		evidenceCount: evidenceCount,
		result:        result,
	})
}

// Reset discards all recorded interactions.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}

// Count returns the number of recorded interactions.
func (m *Metrics) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Metric is a scored dimension with its pass threshold.
type Metric struct {
	Score         float64 `json:"score"`
	PassThreshold float64 `json:"pass_threshold"`
	Passed        bool    `json:"passed"`
}

// ConsistencySection reports how often replies stayed inside the world.
type ConsistencySection struct {
	Test         string `json:"test"`
	Measurements struct {
		TotalResponses       int `json:"total_responses"`
		FabricatedLocations  int `json:"fabricated_locations"`
		FabricatedCharacters int `json:"fabricated_characters"`
		KnowledgeViolations  int `json:"knowledge_violations"`
	} `json:"measurements"`
	Metric Metric `json:"metric"`
}

// QualitySection reports averaged coherence and relevance scores.
type QualitySection struct {
	Test         string `json:"test"`
	Measurements struct {
		AvgCoherence float64 `json:"avg_coherence"`
		AvgRelevance float64 `json:"avg_relevance"`
	} `json:"measurements"`
	Metric Metric `json:"metric"`
}

// ProgressionSection reports how well disclosure gating held.
type ProgressionSection struct {
	Test         string `json:"test"`
	Measurements struct {
		TotalResponses       int `json:"total_responses"`
		PrematureRevelations int `json:"premature_revelations"`
	} `json:"measurements"`
	Metric Metric `json:"metric"`
}

// Report is the full evaluation snapshot.
type Report struct {
	Timestamp         string             `json:"timestamp"`
	TotalInteractions int                `json:"total_interactions"`
	StoryConsistency  ConsistencySection `json:"story_consistency"`
	ResponseQuality   QualitySection     `json:"response_quality"`
	MysteryProgress   ProgressionSection `json:"mystery_progression"`
	Overall           Metric             `json:"overall"`
	CachePerformance  cache.Stats        `json:"cache_performance"`
}

// Report computes the evaluation snapshot. With no recorded interactions
// every score is 1.0, so a fresh run reads as passing rather than failing.
func (m *Metrics) Report(cacheStats cache.Stats) Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := len(m.records)

	var (
		fabricatedLocations  int
		fabricatedCharacters int
		knowledgeViolations  int
		prematureRevelations int
		coherenceSum         int
		relevanceSum         int
	)
	for _, rec := range m.records {
		if rec.result.FabricatedLocation {
			fabricatedLocations++
		}
		if rec.result.FabricatedCharacter {
			fabricatedCharacters++
		}
		if rec.result.KnowledgeViolation {
			knowledgeViolations++
		}
		if rec.result.PrematureRevelation {
			prematureRevelations++
		}
		coherenceSum += rec.result.Coherence
		relevanceSum += rec.result.Relevance
	}

	consistency := 1.0
	quality := 1.0
	progression := 1.0
	avgCoherence := 0.0
	avgRelevance := 0.0
	if total > 0 {
		// One interaction can fire several error flags at once, so the
		// error count may exceed the response count. Floor at zero.
		errors := fabricatedLocations + fabricatedCharacters + knowledgeViolations
		consistency = math.Max(0, 1.0-float64(errors)/float64(total))
		avgCoherence = float64(coherenceSum) / float64(total)
		avgRelevance = float64(relevanceSum) / float64(total)
		quality = (avgCoherence + avgRelevance) / 10.0
		progression = math.Max(0, 1.0-float64(prematureRevelations)/float64(total))
	}

	overall := consistency*consistencyWeight + quality*qualityWeight + progression*progressionWeight

	report := Report{
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		TotalInteractions: total,
		Overall:           metric(overall, OverallThreshold),
		CachePerformance:  cacheStats,
	}

	report.StoryConsistency.Test = "Do characters stay within the established world?"
	report.StoryConsistency.Measurements.TotalResponses = total
	report.StoryConsistency.Measurements.FabricatedLocations = fabricatedLocations
	report.StoryConsistency.Measurements.FabricatedCharacters = fabricatedCharacters
	report.StoryConsistency.Measurements.KnowledgeViolations = knowledgeViolations
	report.StoryConsistency.Metric = metric(consistency, ConsistencyThreshold)

	report.ResponseQuality.Test = "Are replies coherent and relevant?"
	report.ResponseQuality.Measurements.AvgCoherence = round3(avgCoherence)
	report.ResponseQuality.Measurements.AvgRelevance = round3(avgRelevance)
	report.ResponseQuality.Metric = metric(quality, QualityThreshold)

	report.MysteryProgress.Test = "Is the solution gated behind sufficient evidence?"
	report.MysteryProgress.Measurements.TotalResponses = total
	report.MysteryProgress.Measurements.PrematureRevelations = prematureRevelations
	report.MysteryProgress.Metric = metric(progression, ProgressionThreshold)

	return report
}

func metric(score, threshold float64) Metric {
	score = round3(score)
	return Metric{
		Score:         score,
		PassThreshold: threshold,
		Passed:        score >= threshold,
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
