package nation

import (
	"math/rand"

	"nationsim/internal/domain/world"
)

// BattleReport is the full scored outcome of one attack, kept so events and
// action effects can explain the result.
type BattleReport struct {
	AttackScore  float64 `json:"attack_score"`
	DefenseScore float64 `json:"defense_score"`
	TerrainBonus int     `json:"terrain_bonus"`
	AllyBonus    int     `json:"ally_bonus"`
	AttackerWins bool    `json:"attacker_wins"`
}

// CombatService scores attacks. Rand is injected so battles are
// reproducible in tests; when nil the shared math/rand source is used.
type CombatService struct {
	Rand *rand.Rand
}

// Resolve rolls one battle over region. defender is nil when the region is
// unclaimed. Rolls are drawn fresh on every call.
func (s CombatService) Resolve(attacker Nation, region world.Region, defender *Nation) BattleReport {
	report := BattleReport{
		TerrainBonus: region.Terrain.DefenseBonus(),
	}
	if defender != nil {
		report.AllyBonus = defender.MilitaryPower / 2
	}

	report.AttackScore = float64(attacker.MilitaryPower) + s.roll(AttackRollSpread)
	report.DefenseScore = float64(region.DefenseLevel) +
		float64(region.Population)/20 +
		float64(report.TerrainBonus) +
		float64(report.AllyBonus) +
		s.roll(DefenseRollSpread)
	report.AttackerWins = report.AttackScore > report.DefenseScore
	return report
}

func (s CombatService) roll(spread float64) float64 {
	if s.Rand != nil {
		return s.Rand.Float64() * spread
	}
	return rand.Float64() * spread
}
