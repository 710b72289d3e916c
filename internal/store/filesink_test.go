package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pepo-gtm/pepo/internal/agent/core"
)

func sampleRecord(id string, createdAt time.Time) RunRecord {
	return RunRecord{
		ID:        id,
		Goal:      "lead_list",
		Summary:   "Found 12 fintech accounts with verified contacts",
		Cost:      0.42,
		Duration:  90 * time.Second,
		Result:    json.RawMessage(`{"run_id":"` + id + `"}`),
		CreatedAt: createdAt,
	}
}

func TestFileArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	fa := NewFileArchive(t.TempDir())

	if _, err := fa.GetRun(ctx, "missing"); err != ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}

	rec := sampleRecord("run-1", time.Now())
	if err := fa.SaveRun(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := fa.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Goal != rec.Goal || got.Cost != rec.Cost || got.Duration != rec.Duration {
		t.Fatalf("record did not round-trip: %+v", got)
	}
}

func TestFileArchiveListOrdering(t *testing.T) {
	ctx := context.Background()
	fa := NewFileArchive(t.TempDir())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := fa.SaveRun(ctx, sampleRecord(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	runs, err := fa.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Fatalf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestFileArchiveListEmpty(t *testing.T) {
	fa := NewFileArchive(t.TempDir())
	runs, err := fa.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list on empty dir: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}

func TestRecordFromResult(t *testing.T) {
	res := &core.WorkflowResult{
		RunID:     "run-9",
		Goal:      core.GoalLeadList,
		Summary:   "done",
		Cost:      1.5,
		Duration:  time.Minute,
		CreatedAt: time.Now(),
	}
	rec, err := RecordFromResult(res)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if rec.ID != "run-9" || rec.Goal != string(core.GoalLeadList) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	var decoded core.WorkflowResult
	if err := json.Unmarshal(rec.Result, &decoded); err != nil {
		t.Fatalf("result payload should be the full result JSON: %v", err)
	}
	if decoded.RunID != "run-9" {
		t.Fatalf("payload mismatch: %+v", decoded)
	}
}
