package eval

import (
	"testing"

	"github.com/vanyalambert/New-Harry-Potter/pkg/cache"
)

func cleanResult() Result {
	return Result{Coherence: 5, Relevance: 5}
}

func TestMetrics_EmptyReportPasses(t *testing.T) {
	m := NewMetrics()
	report := m.Report(cache.Stats{})

	if report.TotalInteractions != 0 {
		t.Errorf("Expected 0 interactions, got %d", report.TotalInteractions)
	}
	if !report.StoryConsistency.Metric.Passed {
		t.Error("Expected consistency to pass on an empty run")
	}
	if !report.ResponseQuality.Metric.Passed {
		t.Error("Expected quality to pass on an empty run")
	}
	if !report.MysteryProgress.Metric.Passed {
		t.Error("Expected progression to pass on an empty run")
	}
	if report.Overall.Score != 1.0 || !report.Overall.Passed {
		t.Errorf("Expected overall 1.0 passing, got %+v", report.Overall)
	}
}

func TestMetrics_AllCleanScoresPerfect(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 10; i++ {
		m.Record("draco", "did you steal it?", 0, cleanResult())
	}

	report := m.Report(cache.Stats{})
	if report.TotalInteractions != 10 {
		t.Errorf("Expected 10 interactions, got %d", report.TotalInteractions)
	}
	if report.StoryConsistency.Metric.Score != 1.0 {
		t.Errorf("Expected consistency 1.0, got %f", report.StoryConsistency.Metric.Score)
	}
	if report.ResponseQuality.Metric.Score != 1.0 {
		t.Errorf("Expected quality 1.0, got %f", report.ResponseQuality.Metric.Score)
	}
	if report.ResponseQuality.Measurements.AvgCoherence != 5.0 {
		t.Errorf("Expected avg coherence 5.0, got %f", report.ResponseQuality.Measurements.AvgCoherence)
	}
	if report.Overall.Score != 1.0 {
		t.Errorf("Expected overall 1.0, got %f", report.Overall.Score)
	}
}

func TestMetrics_ConsistencyFailsUnderErrorRate(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 8; i++ {
		m.Record("evelyn", "what did you see?", 0, cleanResult())
	}
	m.Record("evelyn", "who lives in the tower?", 0,
		Result{FabricatedLocation: true, Coherence: 2, Relevance: 5})
	m.Record("evelyn", "which professor was there?", 0,
		Result{FabricatedCharacter: true, Coherence: 2, Relevance: 5})

	report := m.Report(cache.Stats{})

	// 2 errors in 10 responses: consistency 0.8, below the 0.90 threshold.
	if report.StoryConsistency.Metric.Score != 0.8 {
		t.Errorf("Expected consistency 0.8, got %f", report.StoryConsistency.Metric.Score)
	}
	if report.StoryConsistency.Metric.Passed {
		t.Error("Expected consistency to fail")
	}
	if report.StoryConsistency.Measurements.FabricatedLocations != 1 {
		t.Errorf("Expected 1 fabricated location, got %d",
			report.StoryConsistency.Measurements.FabricatedLocations)
	}
}

func TestMetrics_ConsistencyFloorsAtZero(t *testing.T) {
	m := NewMetrics()
	// A single reply can fabricate a location, fabricate a character and
	// break its knowledge bounds all at once, putting the error count
	// above the response count.
	m.Record("evelyn", "who took it?", 0, Result{
		FabricatedLocation:  true,
		FabricatedCharacter: true,
		KnowledgeViolation:  true,
		Coherence:           2,
		Relevance:           5,
	})

	report := m.Report(cache.Stats{})

	if report.StoryConsistency.Metric.Score != 0.0 {
		t.Errorf("Expected consistency floored at 0, got %f", report.StoryConsistency.Metric.Score)
	}
	if report.StoryConsistency.Metric.Passed {
		t.Error("Expected consistency to fail")
	}
	// overall = 0.4*0 + 0.3*0.7 + 0.3*1.0 = 0.51, never negative.
	if report.Overall.Score != 0.51 {
		t.Errorf("Expected overall 0.51, got %f", report.Overall.Score)
	}
}

func TestMetrics_ProgressionCountsPrematureRevelations(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 4; i++ {
		m.Record("draco", "where is it?", 0, cleanResult())
	}
	m.Record("draco", "where is it?", 1,
		Result{PrematureRevelation: true, Coherence: 5, Relevance: 2})

	report := m.Report(cache.Stats{})

	if report.MysteryProgress.Measurements.PrematureRevelations != 1 {
		t.Errorf("Expected 1 premature revelation, got %d",
			report.MysteryProgress.Measurements.PrematureRevelations)
	}
	// 1 in 5: progression 0.8, exactly at the threshold.
	if report.MysteryProgress.Metric.Score != 0.8 {
		t.Errorf("Expected progression 0.8, got %f", report.MysteryProgress.Metric.Score)
	}
	if !report.MysteryProgress.Metric.Passed {
		t.Error("Expected progression at threshold to pass")
	}
}

func TestMetrics_OverallIsWeightedAverage(t *testing.T) {
	m := NewMetrics()
	m.Record("draco", "q", 0, cleanResult())
	m.Record("draco", "q", 1,
		Result{PrematureRevelation: true, Coherence: 5, Relevance: 2})

	report := m.Report(cache.Stats{})

	// consistency 1.0, quality (5 + 3.5)/10 = 0.85, progression 0.5.
	// overall = 0.4*1.0 + 0.3*0.85 + 0.3*0.5 = 0.805.
	if report.Overall.Score != 0.805 {
		t.Errorf("Expected overall 0.805, got %f", report.Overall.Score)
	}
	if !report.Overall.Passed {
		t.Error("Expected overall 0.805 to pass the 0.80 threshold")
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.Record("draco", "q", 0, cleanResult())
	m.Reset()

	if m.Count() != 0 {
		t.Errorf("Expected 0 records after reset, got %d", m.Count())
	}
	report := m.Report(cache.Stats{})
	if report.TotalInteractions != 0 {
		t.Errorf("Expected empty report after reset, got %d interactions", report.TotalInteractions)
	}
}

func TestMetrics_ReportIncludesCacheStats(t *testing.T) {
	m := NewMetrics()
	stats := cache.Stats{Hits: 3, Misses: 1, HitRate: 0.75, Entries: 1}

	report := m.Report(stats)
	if report.CachePerformance != stats {
		t.Errorf("Expected cache stats %+v, got %+v", stats, report.CachePerformance)
	}
}
