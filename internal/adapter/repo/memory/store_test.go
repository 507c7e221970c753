package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

func testStore() *Store {
	return NewStore(world.NewClock(time.Unix(0, 0), 5*time.Minute))
}

func TestRegionRepoCopiesOut(t *testing.T) {
	store := testStore()
	store.SeedRegions([]world.Region{{
		ID: "r1", Name: "One", AdjacentRegions: []string{"r2"},
		Resources: world.Resources{Gold: 50},
	}})
	repo := NewRegionRepo(store)

	got, err := repo.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.AdjacentRegions[0] = "mutated"
	got.Resources.Gold = 0

	again, _ := repo.Get(context.Background(), "r1")
	if again.AdjacentRegions[0] != "r2" || again.Resources.Gold != 50 {
		t.Fatalf("store state leaked through returned copy: %+v", again)
	}
}

func TestRegionRepoSaveUnknownRegion(t *testing.T) {
	repo := NewRegionRepo(testStore())
	ctx := withTx(context.Background())
	if err := repo.Save(ctx, world.Region{ID: "ghost"}); err == nil {
		t.Fatalf("expected error saving a region that was never seeded")
	}
}

func TestActionLogTrimsToCapacity(t *testing.T) {
	store := testStore()
	repo := NewActionLogRepo(store)
	ctx := withTx(context.Background())

	for i := 0; i < nation.ActionLogCapacity+25; i++ {
		_ = repo.Append(ctx, nation.Action{ID: fmt.Sprintf("a%d", i), NationID: "n1"})
	}
	all, _ := repo.ListRecent(ctx, 0)
	if len(all) != nation.ActionLogCapacity {
		t.Fatalf("expected log trimmed to %d, got %d", nation.ActionLogCapacity, len(all))
	}
	if all[0].ID != fmt.Sprintf("a%d", nation.ActionLogCapacity+24) {
		t.Fatalf("expected newest first, got %s", all[0].ID)
	}
}

func TestActionLogPerNationWindow(t *testing.T) {
	store := testStore()
	repo := NewActionLogRepo(store)
	ctx := withTx(context.Background())

	for i := 0; i < 80; i++ {
		_ = repo.Append(ctx, nation.Action{ID: fmt.Sprintf("a%d", i), NationID: "n1"})
	}
	mine, _ := repo.ListByNation(ctx, "n1", 0)
	if len(mine) != nation.ActionLogNationHistory {
		t.Fatalf("expected per-nation window of %d, got %d", nation.ActionLogNationHistory, len(mine))
	}
}

func TestEventRingRetainsNewest(t *testing.T) {
	store := testStore()
	repo := NewEventRepo(store)
	ctx := withTx(context.Background())

	for i := 0; i < nation.EventFeedCapacity+10; i++ {
		_ = repo.Append(ctx, nation.WorldEvent{ID: fmt.Sprintf("e%d", i)})
	}
	events, _ := repo.ListRecent(ctx, 0)
	if len(events) != nation.EventFeedCapacity {
		t.Fatalf("expected ring of %d, got %d", nation.EventFeedCapacity, len(events))
	}
	if events[0].ID != fmt.Sprintf("e%d", nation.EventFeedCapacity+9) {
		t.Fatalf("expected newest first, got %s", events[0].ID)
	}

	limited, _ := repo.ListRecent(ctx, 3)
	if len(limited) != 3 {
		t.Fatalf("expected limit respected, got %d", len(limited))
	}
}

func TestTreatyRepoFilters(t *testing.T) {
	store := testStore()
	repo := NewTreatyRepo(store)
	ctx := withTx(context.Background())

	_ = repo.Save(ctx, nation.Treaty{ID: "t1", Proposer: "a", Target: "b", Status: nation.TreatyProposed})
	_ = repo.Save(ctx, nation.Treaty{ID: "t2", Proposer: "b", Target: "c", Status: nation.TreatyActive})
	_ = repo.Save(ctx, nation.Treaty{ID: "t3", Proposer: "c", Target: "b", Status: nation.TreatyProposed})

	pending, _ := repo.ListPendingFor(ctx, "b")
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending for b, got %d", len(pending))
	}
	involving, _ := repo.ListInvolving(ctx, "c")
	if len(involving) != 2 {
		t.Fatalf("expected 2 involving c, got %d", len(involving))
	}
	active, _ := repo.ListByStatus(ctx, nation.TreatyActive)
	if len(active) != 1 || active[0].ID != "t2" {
		t.Fatalf("unexpected active set: %+v", active)
	}
}

func TestTxManagerSerializesAndTagsContext(t *testing.T) {
	store := testStore()
	tx := NewTxManager(store)

	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		if !inTx(ctx) {
			t.Fatalf("expected tx-tagged context inside RunInTx")
		}
		// Read methods must not try to re-lock while the write lock is held.
		_, err := NewRegionRepo(store).List(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
}
