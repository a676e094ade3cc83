package audit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/msto63/mPC/internal/deploy"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events := []*Event{
		{RunID: "run-1", Phase: "detect", Message: "checking current installation"},
		{RunID: "run-1", Phase: "download", Message: "downloading installer package"},
		{RunID: "run-2", Phase: "detect", Message: "checking current installation"},
	}
	for _, ev := range events {
		if err := store.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := store.Query(ctx, Filter{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(got))
	}
	for _, ev := range got {
		if ev.RunID != "run-1" {
			t.Errorf("RunID = %v, want run-1", ev.RunID)
		}
		if ev.ID == "" {
			t.Error("event ID was not assigned")
		}
		if ev.Timestamp.IsZero() {
			t.Error("event timestamp was not assigned")
		}
	}
}

func TestQueryByPhase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Record(ctx, &Event{RunID: "run-1", Phase: "detect", Message: "m"})
	store.Record(ctx, &Event{RunID: "run-1", Phase: "provision", Message: "m", Error: "timeout"})

	got, err := store.Query(ctx, Filter{Phase: "provision"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(got))
	}
	if got[0].Error != "timeout" {
		t.Errorf("Error = %v, want timeout", got[0].Error)
	}
}

func TestQueryLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		store.Record(ctx, &Event{RunID: "run-1", Phase: "detect", Message: "m"})
	}

	got, err := store.Query(ctx, Filter{Limit: 3})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len(events) = %d, want 3", len(got))
	}
}

func TestRunIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	store.Record(ctx, &Event{RunID: "run-old", Phase: "detect", Message: "m", Timestamp: now.Add(-time.Hour)})
	store.Record(ctx, &Event{RunID: "run-new", Phase: "detect", Message: "m", Timestamp: now})

	ids, err := store.RunIDs(ctx, 10)
	if err != nil {
		t.Fatalf("RunIDs() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}
	if ids[0] != "run-new" {
		t.Errorf("ids[0] = %v, want run-new", ids[0])
	}
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Record(ctx, &Event{RunID: "r", Phase: "detect", Message: "old", Timestamp: time.Now().Add(-48 * time.Hour)})
	store.Record(ctx, &Event{RunID: "r", Phase: "detect", Message: "fresh"})

	pruned, err := store.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	got, _ := store.Query(ctx, Filter{})
	if len(got) != 1 {
		t.Errorf("remaining = %d, want 1", len(got))
	}
}

func TestDeployRecorder(t *testing.T) {
	store := newTestStore(t)
	recorder := &DeployRecorder{Store: store}

	event := deploy.ProgressEvent{
		RunID:     "run-1",
		State:     deploy.StateProvision,
		Message:   "no queue appeared",
		Err:       errors.New("deploy: provision did not complete within 10m0s"),
		Timestamp: time.Now(),
	}
	if err := recorder.Record(event); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := store.Query(context.Background(), Filter{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(got))
	}
	if got[0].Phase != "provision" {
		t.Errorf("Phase = %v, want provision", got[0].Phase)
	}
	if got[0].Error == "" {
		t.Error("Error was not recorded")
	}
}
