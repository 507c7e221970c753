package memory

import (
	"context"

	"nationsim/internal/domain/world"
)

type ClockRepo struct {
	store *Store
}

func NewClockRepo(store *Store) ClockRepo {
	return ClockRepo{store: store}
}

func (r ClockRepo) Get(ctx context.Context) (world.Clock, error) {
	defer r.store.rlock(ctx)()
	return r.store.clock, nil
}

func (r ClockRepo) Save(ctx context.Context, c world.Clock) error {
	r.store.clock = c
	return nil
}
