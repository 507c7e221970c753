package observe

import (
	"context"
	"errors"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var ErrInvalidRequest = errors.New("invalid observe request")

// SnapshotUseCase assembles the public world overview served on /api/world.
type SnapshotUseCase struct {
	Regions  ports.RegionRepository
	Nations  ports.NationRepository
	Treaties ports.TreatyRepository
	Wars     ports.WarRepository
	Clock    ports.ClockRepository
}

func (u SnapshotUseCase) Execute(ctx context.Context) (SnapshotResponse, error) {
	if u.Regions == nil || u.Nations == nil || u.Clock == nil {
		return SnapshotResponse{}, ErrInvalidRequest
	}
	clock, err := u.Clock.Get(ctx)
	if err != nil {
		return SnapshotResponse{}, err
	}
	nations, err := u.Nations.List(ctx)
	if err != nil {
		return SnapshotResponse{}, err
	}
	regions, err := u.Regions.List(ctx)
	if err != nil {
		return SnapshotResponse{}, err
	}

	resp := SnapshotResponse{
		Epoch:       clock.Epoch,
		EpochEndsAt: clock.EndsAt(),
	}
	names := map[string]string{}
	for _, n := range nations {
		names[n.ID] = n.Name
		switch n.Status {
		case nation.StatusActive:
			resp.ActiveNations++
		case nation.StatusDefeated:
			resp.DefeatedNations++
		}
	}
	resp.TotalRegions = len(regions)
	resp.Regions = make([]RegionView, 0, len(regions))
	for _, r := range regions {
		if !r.Unclaimed() {
			resp.ClaimedRegions++
		}
		resp.Regions = append(resp.Regions, RegionView{Region: r, OwnerName: names[r.OwnerNation]})
	}

	if u.Treaties != nil {
		active, err := u.Treaties.ListByStatus(ctx, nation.TreatyActive)
		if err != nil {
			return SnapshotResponse{}, err
		}
		resp.ActiveTreaties = len(active)
	}
	if u.Wars != nil {
		wars, err := u.Wars.ListActive(ctx)
		if err != nil {
			return SnapshotResponse{}, err
		}
		resp.ActiveWars = len(wars)
	}
	return resp, nil
}

// RegionsUseCase serves the region listing and detail queries.
type RegionsUseCase struct {
	Regions ports.RegionRepository
	Nations ports.NationRepository
}

func (u RegionsUseCase) List(ctx context.Context, unclaimedOnly bool) ([]RegionView, error) {
	if u.Regions == nil {
		return nil, ErrInvalidRequest
	}
	regions, err := u.Regions.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := u.ownerNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RegionView, 0, len(regions))
	for _, r := range regions {
		if unclaimedOnly && !r.Unclaimed() {
			continue
		}
		out = append(out, RegionView{Region: r, OwnerName: names[r.OwnerNation]})
	}
	return out, nil
}

func (u RegionsUseCase) Get(ctx context.Context, regionID string) (RegionView, error) {
	if u.Regions == nil || regionID == "" {
		return RegionView{}, ErrInvalidRequest
	}
	r, err := u.Regions.Get(ctx, regionID)
	if err != nil {
		return RegionView{}, err
	}
	view := RegionView{Region: r}
	if r.OwnerNation != "" && u.Nations != nil {
		if owner, err := u.Nations.Get(ctx, r.OwnerNation); err == nil {
			view.OwnerName = owner.Name
		}
	}
	return view, nil
}

func (u RegionsUseCase) ownerNames(ctx context.Context) (map[string]string, error) {
	names := map[string]string{}
	if u.Nations == nil {
		return names, nil
	}
	nations, err := u.Nations.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range nations {
		names[n.ID] = n.Name
	}
	return names, nil
}

// EventsUseCase reads the world feed, newest first.
type EventsUseCase struct {
	Events ports.EventRepository
}

func (u EventsUseCase) Execute(ctx context.Context, req EventsRequest) (EventsResponse, error) {
	if u.Events == nil {
		return EventsResponse{}, ErrInvalidRequest
	}
	events, err := u.Events.ListRecent(ctx, req.Limit)
	if err != nil {
		return EventsResponse{}, err
	}
	return EventsResponse{Events: events}, nil
}
