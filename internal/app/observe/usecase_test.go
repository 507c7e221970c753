package observe

import (
	"context"
	"testing"
	"time"

	"nationsim/internal/adapter/repo/memory"
	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

func seedWorld(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(world.NewClock(time.Unix(0, 0).UTC(), 5*time.Minute))
	store.SeedRegions([]world.Region{
		{ID: "r1", Name: "One", OwnerNation: "n1", Terrain: world.TerrainPlains},
		{ID: "r2", Name: "Two", Terrain: world.TerrainForest},
		{ID: "r3", Name: "Three", OwnerNation: "n2", Terrain: world.TerrainDesert},
	})
	nations := memory.NewNationRepo(store)
	_ = nations.Save(context.Background(), nation.Nation{ID: "n1", Name: "Avaria", Status: nation.StatusActive})
	_ = nations.Save(context.Background(), nation.Nation{ID: "n2", Name: "Borland", Status: nation.StatusActive})
	_ = nations.Save(context.Background(), nation.Nation{ID: "n3", Name: "Fallen", Status: nation.StatusDefeated})
	return store
}

func TestSnapshotCounts(t *testing.T) {
	store := seedWorld(t)
	treaties := memory.NewTreatyRepo(store)
	_ = treaties.Save(context.Background(), nation.Treaty{ID: "t1", Proposer: "n1", Target: "n2", Status: nation.TreatyActive})
	_ = treaties.Save(context.Background(), nation.Treaty{ID: "t2", Proposer: "n1", Target: "n2", Status: nation.TreatyExpired})

	uc := SnapshotUseCase{
		Regions:  memory.NewRegionRepo(store),
		Nations:  memory.NewNationRepo(store),
		Treaties: treaties,
		Wars:     memory.NewWarRepo(store),
		Clock:    memory.NewClockRepo(store),
	}
	snap, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.TotalRegions != 3 || snap.ClaimedRegions != 2 {
		t.Fatalf("unexpected region counts: %+v", snap)
	}
	if snap.ActiveNations != 2 || snap.DefeatedNations != 1 {
		t.Fatalf("unexpected nation counts: %+v", snap)
	}
	if snap.ActiveTreaties != 1 || snap.ActiveWars != 0 {
		t.Fatalf("unexpected treaty/war counts: %+v", snap)
	}
	if want := time.Unix(0, 0).UTC().Add(5 * time.Minute); !snap.EpochEndsAt.Equal(want) {
		t.Fatalf("expected epoch end %v, got %v", want, snap.EpochEndsAt)
	}
}

func TestSnapshotEnrichesOwnerNames(t *testing.T) {
	store := seedWorld(t)
	uc := SnapshotUseCase{
		Regions: memory.NewRegionRepo(store),
		Nations: memory.NewNationRepo(store),
		Clock:   memory.NewClockRepo(store),
	}
	snap, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	byID := map[string]RegionView{}
	for _, r := range snap.Regions {
		byID[r.ID] = r
	}
	if byID["r1"].OwnerName != "Avaria" || byID["r2"].OwnerName != "" {
		t.Fatalf("unexpected owner names: %+v", byID)
	}
}

func TestRegionsListUnclaimedOnly(t *testing.T) {
	store := seedWorld(t)
	uc := RegionsUseCase{Regions: memory.NewRegionRepo(store), Nations: memory.NewNationRepo(store)}

	all, err := uc.List(context.Background(), false)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 regions, got %v %v", all, err)
	}
	unclaimed, err := uc.List(context.Background(), true)
	if err != nil || len(unclaimed) != 1 || unclaimed[0].ID != "r2" {
		t.Fatalf("expected only r2 unclaimed, got %v %v", unclaimed, err)
	}
}

func TestRegionDetail(t *testing.T) {
	store := seedWorld(t)
	uc := RegionsUseCase{Regions: memory.NewRegionRepo(store), Nations: memory.NewNationRepo(store)}

	view, err := uc.Get(context.Background(), "r3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.OwnerName != "Borland" {
		t.Fatalf("expected owner name enriched, got %q", view.OwnerName)
	}
	if _, err := uc.Get(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected error for unknown region")
	}
}

func TestEventsNewestFirstWithLimit(t *testing.T) {
	store := seedWorld(t)
	events := memory.NewEventRepo(store)
	_ = events.Append(context.Background(),
		nation.WorldEvent{ID: "e1", Type: nation.EventSystem},
		nation.WorldEvent{ID: "e2", Type: nation.EventEpochEnd},
	)

	uc := EventsUseCase{Events: events}
	resp, err := uc.Execute(context.Background(), EventsRequest{Limit: 1})
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].ID != "e2" {
		t.Fatalf("expected newest event only, got %+v", resp.Events)
	}
}
