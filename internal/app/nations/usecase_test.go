package nations

import (
	"context"
	"errors"
	mrand "math/rand"
	"strings"
	"testing"
	"time"

	"nationsim/internal/adapter/repo/memory"
	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

func newTestStore(t *testing.T, regions ...world.Region) *memory.Store {
	t.Helper()
	store := memory.NewStore(world.NewClock(time.Unix(0, 0), 5*time.Minute))
	if len(regions) == 0 {
		regions = []world.Region{
			{ID: "r1", Name: "Northreach", Terrain: world.TerrainPlains},
			{ID: "r2", Name: "Eastmarch", Terrain: world.TerrainForest},
		}
	}
	store.SeedRegions(regions)
	return store
}

func registerUC(store *memory.Store) RegisterUseCase {
	return RegisterUseCase{
		Nations:     memory.NewNationRepo(store),
		Regions:     memory.NewRegionRepo(store),
		Credentials: memory.NewCredentialRepo(store),
		Events:      memory.NewEventRepo(store),
		Clock:       memory.NewClockRepo(store),
		TxManager:   memory.NewTxManager(store),
		Rand:        mrand.New(mrand.NewSource(1)),
		Now:         func() time.Time { return time.Unix(1000, 0) },
	}
}

func TestRegisterFoundsNationOnUnclaimedRegion(t *testing.T) {
	store := newTestStore(t)
	resp, err := registerUC(store).Execute(context.Background(), RegisterRequest{Name: "Avaria"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.NationID == "" || resp.Capital == "" {
		t.Fatalf("missing ids in response: %+v", resp)
	}
	if !strings.HasPrefix(resp.APIKey, "nation_") {
		t.Fatalf("unexpected api key shape: %q", resp.APIKey)
	}
	if !strings.HasPrefix(resp.ClaimCode, "world-") {
		t.Fatalf("unexpected claim code shape: %q", resp.ClaimCode)
	}

	ctx := context.Background()
	n, err := memory.NewNationRepo(store).Get(ctx, resp.NationID)
	if err != nil {
		t.Fatalf("get nation: %v", err)
	}
	if n.Status != nation.StatusPendingClaim {
		t.Fatalf("expected pending_claim, got %s", n.Status)
	}
	if n.Treasury != nation.StartingTreasury || n.MilitaryPower != nation.StartingMilitary {
		t.Fatalf("unexpected starting stats: %+v", n)
	}
	if n.Capital != resp.Capital || !n.OwnsRegion(resp.Capital) {
		t.Fatalf("capital not assigned: %+v", n)
	}

	home, _ := memory.NewRegionRepo(store).Get(ctx, resp.Capital)
	if home.OwnerNation != resp.NationID {
		t.Fatalf("region owner not set: %+v", home)
	}

	events, _ := memory.NewEventRepo(store).ListRecent(ctx, 0)
	if len(events) != 1 || events[0].Type != nation.EventNationFounded {
		t.Fatalf("expected one nation_founded event, got %+v", events)
	}
}

func TestRegisterWorldFull(t *testing.T) {
	store := newTestStore(t, world.Region{
		ID: "r1", Name: "Northreach", OwnerNation: "someone", Terrain: world.TerrainPlains,
	})
	_, err := registerUC(store).Execute(context.Background(), RegisterRequest{Name: "Avaria"})
	if !errors.Is(err, ErrWorldFull) {
		t.Fatalf("expected ErrWorldFull, got %v", err)
	}
}

func TestRegisterRejectsBlankName(t *testing.T) {
	store := newTestStore(t)
	_, err := registerUC(store).Execute(context.Background(), RegisterRequest{Name: "   "})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClaimActivatesOnce(t *testing.T) {
	store := newTestStore(t)
	resp, err := registerUC(store).Execute(context.Background(), RegisterRequest{Name: "Avaria"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	claim := ClaimUseCase{
		Nations:     memory.NewNationRepo(store),
		Credentials: memory.NewCredentialRepo(store),
		TxManager:   memory.NewTxManager(store),
	}

	got, err := claim.Execute(context.Background(), ClaimRequest{NationID: resp.NationID, ClaimCode: resp.ClaimCode})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if got.Status != string(nation.StatusActive) {
		t.Fatalf("expected active, got %s", got.Status)
	}

	_, err = claim.Execute(context.Background(), ClaimRequest{NationID: resp.NationID, ClaimCode: resp.ClaimCode})
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed on second claim, got %v", err)
	}
}

func TestClaimWrongCode(t *testing.T) {
	store := newTestStore(t)
	resp, _ := registerUC(store).Execute(context.Background(), RegisterRequest{Name: "Avaria"})

	claim := ClaimUseCase{
		Nations:     memory.NewNationRepo(store),
		Credentials: memory.NewCredentialRepo(store),
		TxManager:   memory.NewTxManager(store),
	}
	_, err := claim.Execute(context.Background(), ClaimRequest{NationID: resp.NationID, ClaimCode: "world-WRONG"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyResolvesAPIKey(t *testing.T) {
	store := newTestStore(t)
	resp, _ := registerUC(store).Execute(context.Background(), RegisterRequest{Name: "Avaria"})

	verify := VerifyUseCase{Credentials: memory.NewCredentialRepo(store)}
	nationID, err := verify.Execute(context.Background(), resp.APIKey)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if nationID != resp.NationID {
		t.Fatalf("expected %s, got %s", resp.NationID, nationID)
	}

	if _, err := verify.Execute(context.Background(), "nation_bogus"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown key, got %v", err)
	}
}

func TestClaimUnknownNation(t *testing.T) {
	store := newTestStore(t)
	claim := ClaimUseCase{
		Nations:     memory.NewNationRepo(store),
		Credentials: memory.NewCredentialRepo(store),
		TxManager:   memory.NewTxManager(store),
	}
	_, err := claim.Execute(context.Background(), ClaimRequest{NationID: "ghost", ClaimCode: "world-0000"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
