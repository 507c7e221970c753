package memory

import (
	"context"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/world"
)

type RegionRepo struct {
	store *Store
}

func NewRegionRepo(store *Store) RegionRepo {
	return RegionRepo{store: store}
}

func (r RegionRepo) Get(ctx context.Context, id string) (world.Region, error) {
	defer r.store.rlock(ctx)()
	region, ok := r.store.regions[id]
	if !ok {
		return world.Region{}, ports.ErrNotFound
	}
	return copyRegion(region), nil
}

func (r RegionRepo) List(ctx context.Context) ([]world.Region, error) {
	defer r.store.rlock(ctx)()
	out := make([]world.Region, 0, len(r.store.regionOrder))
	for _, id := range r.store.regionOrder {
		out = append(out, copyRegion(r.store.regions[id]))
	}
	return out, nil
}

func (r RegionRepo) ListUnclaimed(ctx context.Context) ([]world.Region, error) {
	defer r.store.rlock(ctx)()
	out := []world.Region{}
	for _, id := range r.store.regionOrder {
		if region := r.store.regions[id]; region.Unclaimed() {
			out = append(out, copyRegion(region))
		}
	}
	return out, nil
}

func (r RegionRepo) ListOwnedBy(ctx context.Context, nationID string) ([]world.Region, error) {
	defer r.store.rlock(ctx)()
	out := []world.Region{}
	for _, id := range r.store.regionOrder {
		if region := r.store.regions[id]; region.OwnerNation == nationID {
			out = append(out, copyRegion(region))
		}
	}
	return out, nil
}

func (r RegionRepo) Save(ctx context.Context, region world.Region) error {
	if _, ok := r.store.regions[region.ID]; !ok {
		return ports.ErrNotFound
	}
	r.store.regions[region.ID] = copyRegion(region)
	return nil
}
