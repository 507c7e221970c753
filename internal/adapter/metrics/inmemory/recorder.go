package inmemory

import (
	"sync"

	"nationsim/internal/domain/nation"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionFailure  uint64            `json:"action_failure"`
	ByActionType   map[string]uint64 `json:"by_action_type"`
}

// Recorder counts action outcomes in process memory. Rejected means the
// action ran but a rule refused it; failure means the dispatch itself broke.
type Recorder struct {
	mu       sync.Mutex
	success  uint64
	rejected uint64
	failure  uint64
	byAction map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(t nation.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byAction[string(t)]++
}

func (r *Recorder) RecordRejected(t nation.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byAction[string(t)]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.failure,
		ByActionType:   make(map[string]uint64, len(r.byAction)),
	}
	for k, v := range r.byAction {
		out.ByActionType[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
