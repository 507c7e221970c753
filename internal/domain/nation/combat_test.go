package nation

import (
	"math/rand"
	"testing"

	"nationsim/internal/domain/world"
)

func fixedRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestResolveBonuses(t *testing.T) {
	attacker := Nation{ID: "a", MilitaryPower: 40}
	defender := Nation{ID: "d", MilitaryPower: 30}

	cases := []struct {
		name        string
		terrain     world.Terrain
		wantTerrain int
	}{
		{"mountains", world.TerrainMountains, 20},
		{"forest", world.TerrainForest, 10},
		{"plains", world.TerrainPlains, 0},
		{"desert", world.TerrainDesert, 0},
		{"coastal", world.TerrainCoastal, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := CombatService{Rand: fixedRand(1)}
			region := world.Region{Terrain: tc.terrain, DefenseLevel: 10, Population: 200, OwnerNation: "d"}
			report := svc.Resolve(attacker, region, &defender)
			if report.TerrainBonus != tc.wantTerrain {
				t.Fatalf("terrain bonus = %d, want %d", report.TerrainBonus, tc.wantTerrain)
			}
			if report.AllyBonus != 15 {
				t.Fatalf("ally bonus = %d, want 15", report.AllyBonus)
			}
		})
	}
}

func TestResolveUnclaimedRegionHasNoAllyBonus(t *testing.T) {
	svc := CombatService{Rand: fixedRand(7)}
	region := world.Region{Terrain: world.TerrainPlains, DefenseLevel: 10, Population: 200}

	report := svc.Resolve(Nation{MilitaryPower: 20}, region, nil)
	if report.AllyBonus != 0 {
		t.Fatalf("expected no ally bonus on unclaimed region, got %d", report.AllyBonus)
	}

	// defenseScore = 10 + 200/20 + roll(0..20); attackScore = 20 + roll(0..30)
	if report.DefenseScore < 20 || report.DefenseScore > 40 {
		t.Fatalf("defense score out of range: %f", report.DefenseScore)
	}
	if report.AttackScore < 20 || report.AttackScore > 50 {
		t.Fatalf("attack score out of range: %f", report.AttackScore)
	}
}

func TestResolveDeterministicWithSeededRand(t *testing.T) {
	region := world.Region{Terrain: world.TerrainPlains, DefenseLevel: 10, Population: 200}
	a := CombatService{Rand: fixedRand(42)}.Resolve(Nation{MilitaryPower: 20}, region, nil)
	b := CombatService{Rand: fixedRand(42)}.Resolve(Nation{MilitaryPower: 20}, region, nil)
	if a != b {
		t.Fatalf("same seed should reproduce the battle: %+v vs %+v", a, b)
	}
}

func TestResolveZeroMilitaryDoesNotUnderflow(t *testing.T) {
	svc := CombatService{Rand: fixedRand(3)}
	defender := Nation{MilitaryPower: 0}
	region := world.Region{Terrain: world.TerrainPlains, OwnerNation: defender.ID}

	report := svc.Resolve(Nation{MilitaryPower: 0}, region, &defender)
	if report.AttackScore < 0 || report.DefenseScore < 0 {
		t.Fatalf("scores must not go negative: %+v", report)
	}
	if report.AllyBonus != 0 {
		t.Fatalf("zero military defender should grant no ally bonus, got %d", report.AllyBonus)
	}
}

func TestLossFloorsMilitary(t *testing.T) {
	n := Nation{MilitaryPower: 6}
	n.AddMilitary(-AttackLossMilitary)
	if n.MilitaryPower != 1 {
		t.Fatalf("expected 1, got %d", n.MilitaryPower)
	}
	// Handlers apply the explicit post-loss floor.
	if n.MilitaryPower < MinMilitaryAfterLoss {
		n.MilitaryPower = MinMilitaryAfterLoss
	}
	if n.MilitaryPower != MinMilitaryAfterLoss {
		t.Fatalf("expected floor %d, got %d", MinMilitaryAfterLoss, n.MilitaryPower)
	}
}
