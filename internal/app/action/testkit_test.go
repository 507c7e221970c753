package action

import (
	"context"
	mrand "math/rand"
	"testing"
	"time"

	"nationsim/internal/adapter/repo/memory"
	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubMetrics struct {
	success  []nation.ActionType
	rejected []nation.ActionType
	failures int
}

func (m *stubMetrics) RecordSuccess(t nation.ActionType)  { m.success = append(m.success, t) }
func (m *stubMetrics) RecordRejected(t nation.ActionType) { m.rejected = append(m.rejected, t) }
func (m *stubMetrics) RecordFailure()                     { m.failures++ }

type fixture struct {
	store   *memory.Store
	uc      UseCase
	metrics *stubMetrics
}

// newFixture builds a three-region corridor: home - frontier - far. Tests
// assign owners per scenario.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(world.NewClock(testNow.Add(-time.Minute), 5*time.Minute))
	store.SeedRegions([]world.Region{
		{
			ID: "home", Name: "Homeland", Terrain: world.TerrainPlains,
			Resources:       world.Resources{Energy: 100, Food: 100, Gold: 100, Minerals: 100},
			Population:      500,
			AdjacentRegions: []string{"frontier"},
		},
		{
			ID: "frontier", Name: "Frontier", Terrain: world.TerrainPlains,
			Resources:       world.Resources{Energy: 40, Food: 40, Gold: 40, Minerals: 40},
			Population:      200,
			AdjacentRegions: []string{"home", "far"},
		},
		{
			ID: "far", Name: "Farlands", Terrain: world.TerrainMountains,
			Resources:       world.Resources{Energy: 60, Food: 60, Gold: 60, Minerals: 60},
			Population:      300,
			AdjacentRegions: []string{"frontier"},
		},
	})

	metrics := &stubMetrics{}
	return &fixture{
		store:   store,
		metrics: metrics,
		uc: UseCase{
			TxManager: memory.NewTxManager(store),
			Nations:   memory.NewNationRepo(store),
			Regions:   memory.NewRegionRepo(store),
			Treaties:  memory.NewTreatyRepo(store),
			ActionLog: memory.NewActionLogRepo(store),
			Events:    memory.NewEventRepo(store),
			Clock:     memory.NewClockRepo(store),
			Combat:    nation.CombatService{Rand: mrand.New(mrand.NewSource(7))},
			Metrics:   metrics,
			Now:       func() time.Time { return testNow },
		},
	}
}

func (f *fixture) seedNation(t *testing.T, n nation.Nation) nation.Nation {
	t.Helper()
	if n.Status == "" {
		n.Status = nation.StatusActive
	}
	if err := memory.NewNationRepo(f.store).Save(context.Background(), n); err != nil {
		t.Fatalf("seed nation: %v", err)
	}
	return n
}

func (f *fixture) ownRegion(t *testing.T, regionID, nationID string) {
	t.Helper()
	repo := memory.NewRegionRepo(f.store)
	r, err := repo.Get(context.Background(), regionID)
	if err != nil {
		t.Fatalf("get region: %v", err)
	}
	r.OwnerNation = nationID
	if err := repo.Save(context.Background(), r); err != nil {
		t.Fatalf("save region: %v", err)
	}
}

func (f *fixture) nation(t *testing.T, id string) nation.Nation {
	t.Helper()
	n, err := memory.NewNationRepo(f.store).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get nation %s: %v", id, err)
	}
	return n
}

func (f *fixture) region(t *testing.T, id string) world.Region {
	t.Helper()
	r, err := memory.NewRegionRepo(f.store).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get region %s: %v", id, err)
	}
	return r
}

func (f *fixture) treaty(t *testing.T, id string) nation.Treaty {
	t.Helper()
	tr, err := memory.NewTreatyRepo(f.store).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get treaty %s: %v", id, err)
	}
	return tr
}

func (f *fixture) submit(t *testing.T, req Request) Response {
	t.Helper()
	resp, err := f.uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("execute %s: %v", req.Type, err)
	}
	return resp
}

func (f *fixture) submitOK(t *testing.T, req Request) Response {
	t.Helper()
	resp := f.submit(t, req)
	if resp.Action.Result == nil || !resp.Action.Result.Success {
		t.Fatalf("expected %s to succeed, got %+v", req.Type, resp.Action.Result)
	}
	return resp
}

func (f *fixture) submitRejected(t *testing.T, req Request) Response {
	t.Helper()
	resp := f.submit(t, req)
	if resp.Action.Result == nil || resp.Action.Result.Success {
		t.Fatalf("expected %s to be rejected, got %+v", req.Type, resp.Action.Result)
	}
	return resp
}

// standardPair seeds an attacker on home and a defender on frontier+far.
func (f *fixture) standardPair(t *testing.T) (attacker, defender nation.Nation) {
	attacker = f.seedNation(t, nation.Nation{
		ID: "atk", Name: "Avaria", Regions: []string{"home"}, Capital: "home",
		Treasury: 100, MilitaryPower: 100, DiplomacyScore: 50, TaxRate: 10,
	})
	defender = f.seedNation(t, nation.Nation{
		ID: "def", Name: "Borland", Regions: []string{"frontier", "far"}, Capital: "frontier",
		Treasury: 100, MilitaryPower: 20, DiplomacyScore: 50, TaxRate: 10,
	})
	f.ownRegion(t, "home", "atk")
	f.ownRegion(t, "frontier", "def")
	f.ownRegion(t, "far", "def")
	return attacker, defender
}
