package world

import "time"

const (
	MaxResource   = 100
	MaxPopulation = 1000
	MaxDefense    = 100
)

// Resources are the four per-region stocks, each kept in [0, MaxResource].
type Resources struct {
	Energy   int `json:"energy"`
	Food     int `json:"food"`
	Gold     int `json:"gold"`
	Minerals int `json:"minerals"`
}

func (r Resources) clamped() Resources {
	return Resources{
		Energy:   clampInt(r.Energy, 0, MaxResource),
		Food:     clampInt(r.Food, 0, MaxResource),
		Gold:     clampInt(r.Gold, 0, MaxResource),
		Minerals: clampInt(r.Minerals, 0, MaxResource),
	}
}

// Region is one ownable cell of the world map. Regions are created once at
// world init and never destroyed; only ownership and the numeric fields
// mutate, and every mutation clamps back into the documented bounds.
type Region struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	OwnerNation     string     `json:"owner_nation,omitempty"` // empty = unclaimed
	Resources       Resources  `json:"resources"`
	Population      int        `json:"population"`
	DefenseLevel    int        `json:"defense_level"`
	Terrain         Terrain    `json:"terrain"`
	AdjacentRegions []string   `json:"adjacent_regions"`
	LastHarvested   *time.Time `json:"last_harvested,omitempty"`
}

func (r Region) Unclaimed() bool {
	return r.OwnerNation == ""
}

func (r Region) IsAdjacentTo(regionID string) bool {
	for _, id := range r.AdjacentRegions {
		if id == regionID {
			return true
		}
	}
	return false
}

// Deplete removes the given percentage of every resource stock and returns
// the removed amounts. Integer truncation, so small stocks can deplete to a
// removal of zero but never below zero.
func (r *Region) Deplete(percent int) Resources {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	removed := Resources{
		Energy:   r.Resources.Energy * percent / 100,
		Food:     r.Resources.Food * percent / 100,
		Gold:     r.Resources.Gold * percent / 100,
		Minerals: r.Resources.Minerals * percent / 100,
	}
	r.Resources.Energy -= removed.Energy
	r.Resources.Food -= removed.Food
	r.Resources.Gold -= removed.Gold
	r.Resources.Minerals -= removed.Minerals
	r.Resources = r.Resources.clamped()
	return removed
}

// Regenerate adds amount to every resource stock, capped at MaxResource.
func (r *Region) Regenerate(amount int) {
	r.Resources.Energy += amount
	r.Resources.Food += amount
	r.Resources.Gold += amount
	r.Resources.Minerals += amount
	r.Resources = r.Resources.clamped()
}

// GrowPopulation increases population by the given percentage, capped at
// MaxPopulation.
func (r *Region) GrowPopulation(percent int) {
	r.Population += r.Population * percent / 100
	r.Population = clampInt(r.Population, 0, MaxPopulation)
}

// ShrinkPopulation decreases population by the given percentage, floored at 0.
func (r *Region) ShrinkPopulation(percent int) {
	r.Population -= r.Population * percent / 100
	r.Population = clampInt(r.Population, 0, MaxPopulation)
}

// AdjustDefense applies a delta to the defense level, clamped to
// [0, MaxDefense].
func (r *Region) AdjustDefense(delta int) {
	r.DefenseLevel = clampInt(r.DefenseLevel+delta, 0, MaxDefense)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
