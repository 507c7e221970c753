package inmemory

import (
	"testing"

	"nationsim/internal/domain/nation"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(nation.ActionHarvest)
	r.RecordSuccess(nation.ActionAttack)
	r.RecordRejected(nation.ActionAttack)
	r.RecordFailure()

	s := r.Snapshot()
	if s.ActionTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.ActionTotal)
	}
	if s.ActionSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.ActionSuccess)
	}
	if s.ActionRejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.ActionRejected)
	}
	if s.ActionFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.ActionFailure)
	}
	if s.ByActionType[string(nation.ActionHarvest)] != 1 {
		t.Fatalf("expected harvest count 1")
	}
	if s.ByActionType[string(nation.ActionAttack)] != 2 {
		t.Fatalf("expected attack count 2")
	}

	snapshotCopy := r.Snapshot()
	snapshotCopy.ByActionType["harvest"] = 99
	if r.Snapshot().ByActionType["harvest"] != 1 {
		t.Fatalf("snapshot must copy the counter map")
	}
}
