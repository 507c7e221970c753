package memory

import (
	"context"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

type NationRepo struct {
	store *Store
}

func NewNationRepo(store *Store) NationRepo {
	return NationRepo{store: store}
}

func (r NationRepo) Get(ctx context.Context, id string) (nation.Nation, error) {
	defer r.store.rlock(ctx)()
	n, ok := r.store.nations[id]
	if !ok {
		return nation.Nation{}, ports.ErrNotFound
	}
	return copyNation(n), nil
}

func (r NationRepo) List(ctx context.Context) ([]nation.Nation, error) {
	defer r.store.rlock(ctx)()
	out := make([]nation.Nation, 0, len(r.store.nationOrder))
	for _, id := range r.store.nationOrder {
		out = append(out, copyNation(r.store.nations[id]))
	}
	return out, nil
}

func (r NationRepo) ListActive(ctx context.Context) ([]nation.Nation, error) {
	defer r.store.rlock(ctx)()
	out := []nation.Nation{}
	for _, id := range r.store.nationOrder {
		if n := r.store.nations[id]; n.Status == nation.StatusActive {
			out = append(out, copyNation(n))
		}
	}
	return out, nil
}

func (r NationRepo) Save(ctx context.Context, n nation.Nation) error {
	if _, exists := r.store.nations[n.ID]; !exists {
		r.store.nationOrder = append(r.store.nationOrder, n.ID)
	}
	r.store.nations[n.ID] = copyNation(n)
	return nil
}

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(ctx context.Context, rec ports.NationCredentialRecord) error {
	k := hashKeyString(rec.KeyHash)
	if _, exists := r.store.credentials[k]; exists {
		return ports.ErrConflict
	}
	r.store.credentials[k] = rec
	return nil
}

func (r CredentialRepo) GetByKeyHash(ctx context.Context, keyHash []byte) (ports.NationCredentialRecord, error) {
	defer r.store.rlock(ctx)()
	rec, ok := r.store.credentials[hashKeyString(keyHash)]
	if !ok {
		return ports.NationCredentialRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r CredentialRepo) GetByNationID(ctx context.Context, nationID string) (ports.NationCredentialRecord, error) {
	defer r.store.rlock(ctx)()
	for _, rec := range r.store.credentials {
		if rec.NationID == nationID {
			return rec, nil
		}
	}
	return ports.NationCredentialRecord{}, ports.ErrNotFound
}
