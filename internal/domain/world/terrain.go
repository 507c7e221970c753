package world

// Terrain is fixed at region creation and never changes.
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainMountains Terrain = "mountains"
	TerrainCoastal   Terrain = "coastal"
	TerrainDesert    Terrain = "desert"
	TerrainForest    Terrain = "forest"
)

func (t Terrain) Valid() bool {
	switch t {
	case TerrainPlains, TerrainMountains, TerrainCoastal, TerrainDesert, TerrainForest:
		return true
	default:
		return false
	}
}

// DefenseBonus is the flat score terrain adds on the defending side of a
// battle.
func (t Terrain) DefenseBonus() int {
	switch t {
	case TerrainMountains:
		return 20
	case TerrainForest:
		return 10
	default:
		return 0
	}
}
