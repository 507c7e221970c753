package memory

import (
	"context"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

type TreatyRepo struct {
	store *Store
}

func NewTreatyRepo(store *Store) TreatyRepo {
	return TreatyRepo{store: store}
}

func (r TreatyRepo) Get(ctx context.Context, id string) (nation.Treaty, error) {
	defer r.store.rlock(ctx)()
	t, ok := r.store.treaties[id]
	if !ok {
		return nation.Treaty{}, ports.ErrNotFound
	}
	return copyTreaty(t), nil
}

func (r TreatyRepo) List(ctx context.Context) ([]nation.Treaty, error) {
	return r.filter(ctx, func(nation.Treaty) bool { return true })
}

func (r TreatyRepo) ListByStatus(ctx context.Context, status nation.TreatyStatus) ([]nation.Treaty, error) {
	return r.filter(ctx, func(t nation.Treaty) bool { return t.Status == status })
}

func (r TreatyRepo) ListInvolving(ctx context.Context, nationID string) ([]nation.Treaty, error) {
	return r.filter(ctx, func(t nation.Treaty) bool { return t.Involves(nationID) })
}

func (r TreatyRepo) ListPendingFor(ctx context.Context, targetNationID string) ([]nation.Treaty, error) {
	return r.filter(ctx, func(t nation.Treaty) bool {
		return t.Status == nation.TreatyProposed && t.Target == targetNationID
	})
}

func (r TreatyRepo) filter(ctx context.Context, keep func(nation.Treaty) bool) ([]nation.Treaty, error) {
	defer r.store.rlock(ctx)()
	out := []nation.Treaty{}
	for _, id := range r.store.treatyOrder {
		if t := r.store.treaties[id]; keep(t) {
			out = append(out, copyTreaty(t))
		}
	}
	return out, nil
}

func (r TreatyRepo) Save(ctx context.Context, t nation.Treaty) error {
	if _, exists := r.store.treaties[t.ID]; !exists {
		r.store.treatyOrder = append(r.store.treatyOrder, t.ID)
	}
	r.store.treaties[t.ID] = copyTreaty(t)
	return nil
}

type WarRepo struct {
	store *Store
}

func NewWarRepo(store *Store) WarRepo {
	return WarRepo{store: store}
}

func (r WarRepo) List(ctx context.Context) ([]nation.War, error) {
	defer r.store.rlock(ctx)()
	return append([]nation.War{}, r.store.wars...), nil
}

func (r WarRepo) ListActive(ctx context.Context) ([]nation.War, error) {
	defer r.store.rlock(ctx)()
	out := []nation.War{}
	for _, w := range r.store.wars {
		if w.Status == nation.WarDeclared || w.Status == nation.WarActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r WarRepo) Save(ctx context.Context, w nation.War) error {
	for i := range r.store.wars {
		if r.store.wars[i].ID == w.ID {
			r.store.wars[i] = w
			return nil
		}
	}
	r.store.wars = append(r.store.wars, w)
	return nil
}
