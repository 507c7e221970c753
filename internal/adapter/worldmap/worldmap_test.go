package worldmap

import (
	"testing"

	"nationsim/internal/domain/world"
)

func TestEmbeddedMapLoads(t *testing.T) {
	regions, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(regions) != 20 {
		t.Fatalf("expected 20 regions, got %d", len(regions))
	}
	for _, r := range regions {
		if r.OwnerNation != "" {
			t.Fatalf("region %s must start unclaimed", r.ID)
		}
		if !r.Terrain.Valid() {
			t.Fatalf("region %s has invalid terrain %q", r.ID, r.Terrain)
		}
	}
}

func TestEmbeddedMapAdjacencyIsMutual(t *testing.T) {
	regions, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	byID := map[string]world.Region{}
	for _, r := range regions {
		byID[r.ID] = r
	}
	for _, r := range regions {
		for _, neighbor := range r.AdjacentRegions {
			other, ok := byID[neighbor]
			if !ok {
				t.Fatalf("region %s references unknown neighbor %s", r.ID, neighbor)
			}
			if !other.IsAdjacentTo(r.ID) {
				t.Fatalf("adjacency %s -> %s is not mutual", r.ID, neighbor)
			}
		}
	}
}

func TestParseRejectsBrokenMaps(t *testing.T) {
	cases := map[string]string{
		"empty": "regions: []",
		"unknown terrain": `regions:
  - {id: a, name: A, terrain: swamp, adjacent: [b]}
  - {id: b, name: B, terrain: plains, adjacent: [a]}`,
		"asymmetric adjacency": `regions:
  - {id: a, name: A, terrain: plains, adjacent: [b]}
  - {id: b, name: B, terrain: plains, adjacent: []}`,
		"unknown neighbor": `regions:
  - {id: a, name: A, terrain: plains, adjacent: [ghost]}`,
		"duplicate id": `regions:
  - {id: a, name: A, terrain: plains, adjacent: [a]}
  - {id: a, name: A2, terrain: plains, adjacent: [a]}`,
		"resource out of range": `regions:
  - {id: a, name: A, terrain: plains, resources: {gold: 500}, adjacent: [b]}
  - {id: b, name: B, terrain: plains, adjacent: [a]}`,
	}
	for name, data := range cases {
		if _, err := parse([]byte(data)); err == nil {
			t.Fatalf("case %q: expected an error", name)
		}
	}
}
