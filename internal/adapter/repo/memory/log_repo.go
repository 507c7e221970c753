package memory

import (
	"context"

	"nationsim/internal/domain/nation"
)

type ActionLogRepo struct {
	store *Store
}

func NewActionLogRepo(store *Store) ActionLogRepo {
	return ActionLogRepo{store: store}
}

func (r ActionLogRepo) Append(ctx context.Context, a nation.Action) error {
	r.store.actions = append(r.store.actions, a)
	if overflow := len(r.store.actions) - nation.ActionLogCapacity; overflow > 0 {
		r.store.actions = append([]nation.Action{}, r.store.actions[overflow:]...)
	}
	return nil
}

// ListRecent returns up to limit actions, newest first.
func (r ActionLogRepo) ListRecent(ctx context.Context, limit int) ([]nation.Action, error) {
	defer r.store.rlock(ctx)()
	return newestFirst(r.store.actions, func(nation.Action) bool { return true }, limit), nil
}

// ListByNation returns up to limit of the nation's actions, newest first,
// never reaching past the per-nation history window.
func (r ActionLogRepo) ListByNation(ctx context.Context, nationID string, limit int) ([]nation.Action, error) {
	defer r.store.rlock(ctx)()
	if limit <= 0 || limit > nation.ActionLogNationHistory {
		limit = nation.ActionLogNationHistory
	}
	return newestFirst(r.store.actions, func(a nation.Action) bool { return a.NationID == nationID }, limit), nil
}

func newestFirst(actions []nation.Action, keep func(nation.Action) bool, limit int) []nation.Action {
	if limit <= 0 {
		limit = len(actions)
	}
	out := []nation.Action{}
	for i := len(actions) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(actions[i]) {
			out = append(out, actions[i])
		}
	}
	return out
}

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, events ...nation.WorldEvent) error {
	r.store.events = append(r.store.events, events...)
	if overflow := len(r.store.events) - nation.EventFeedCapacity; overflow > 0 {
		r.store.events = append([]nation.WorldEvent{}, r.store.events[overflow:]...)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (r EventRepo) ListRecent(ctx context.Context, limit int) ([]nation.WorldEvent, error) {
	defer r.store.rlock(ctx)()
	events := r.store.events
	if limit <= 0 || limit > len(events) {
		limit = len(events)
	}
	out := make([]nation.WorldEvent, 0, limit)
	for i := len(events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, events[i])
	}
	return out, nil
}
