package gdocs

import (
	"testing"
	"time"
)

func TestCallStatsSnapshotPercentiles(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record("documents.get", 100)
	stats.Record("documents.get", 200)
	stats.Record("documents.batchUpdate", 300)
	stats.Record("documents.batchUpdate", 400)
	stats.Record("documents.get", 500)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.ByOp["documents.get"] != 3 || snap.ByOp["documents.batchUpdate"] != 2 {
		t.Fatalf("unexpected per-op counts %v", snap.ByOp)
	}
}

func TestCallStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewCallStats(10 * time.Millisecond)
	stats.Record("documents.get", 100)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record("documents.get", 200)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestCallStatsRetries(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.RecordRetry()
	stats.RecordRetry()

	snap := stats.Snapshot()
	if snap.Retries != 2 {
		t.Fatalf("expected retries=2, got %d", snap.Retries)
	}
}

func TestCallStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record("documents.get", -10)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
