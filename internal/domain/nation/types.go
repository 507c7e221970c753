package nation

import "time"

type Status string

const (
	StatusPendingClaim Status = "pending_claim"
	StatusActive       Status = "active"
	StatusDefeated     Status = "defeated"
)

// Nation is a player-controlled polity. A defeated nation keeps its record
// but owns no regions and is excluded from the leaderboard.
type Nation struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	FounderID      string    `json:"founder_id,omitempty"`
	Regions        []string  `json:"regions"`
	Capital        string    `json:"capital"`
	Treasury       int       `json:"treasury"`
	MilitaryPower  int       `json:"military_power"`
	DiplomacyScore int       `json:"diplomacy_score"`
	Reputation     int       `json:"reputation"`
	TaxRate        int       `json:"tax_rate"`
	Policies       []string  `json:"policies,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	LastActive     time.Time `json:"last_active"`
}

func (n Nation) OwnsRegion(regionID string) bool {
	for _, id := range n.Regions {
		if id == regionID {
			return true
		}
	}
	return false
}

// GainRegion appends the region to the nation's territory. The first region
// a nation ever gains becomes its capital.
func (n *Nation) GainRegion(regionID string) {
	if n.OwnsRegion(regionID) {
		return
	}
	n.Regions = append(n.Regions, regionID)
	if n.Capital == "" {
		n.Capital = regionID
	}
}

// LoseRegion removes the region from the nation's territory. Losing the
// capital promotes the first remaining region; losing the last region is
// terminal defeat.
func (n *Nation) LoseRegion(regionID string) {
	kept := n.Regions[:0]
	for _, id := range n.Regions {
		if id != regionID {
			kept = append(kept, id)
		}
	}
	n.Regions = kept
	if n.Capital == regionID {
		if len(n.Regions) > 0 {
			n.Capital = n.Regions[0]
		} else {
			n.Capital = ""
		}
	}
	if len(n.Regions) == 0 {
		n.Status = StatusDefeated
	}
}

// SpendGold deducts cost from the treasury, refusing rather than going
// negative.
func (n *Nation) SpendGold(cost int) bool {
	if cost < 0 || n.Treasury < cost {
		return false
	}
	n.Treasury -= cost
	return true
}

// PenalizeGold deducts up to amount, flooring the treasury at zero.
func (n *Nation) PenalizeGold(amount int) {
	n.Treasury -= amount
	if n.Treasury < 0 {
		n.Treasury = 0
	}
}

// AdjustReputation applies a delta, clamped to [MinReputation, MaxReputation].
func (n *Nation) AdjustReputation(delta int) {
	n.Reputation += delta
	if n.Reputation > MaxReputation {
		n.Reputation = MaxReputation
	}
	if n.Reputation < MinReputation {
		n.Reputation = MinReputation
	}
}

// AdjustDiplomacy applies a delta, clamped to [0, MaxDiplomacy].
func (n *Nation) AdjustDiplomacy(delta int) {
	n.DiplomacyScore += delta
	if n.DiplomacyScore > MaxDiplomacy {
		n.DiplomacyScore = MaxDiplomacy
	}
	if n.DiplomacyScore < 0 {
		n.DiplomacyScore = 0
	}
}

// AddMilitary applies a delta, clamped to [0, MaxMilitary].
func (n *Nation) AddMilitary(delta int) {
	n.MilitaryPower += delta
	if n.MilitaryPower > MaxMilitary {
		n.MilitaryPower = MaxMilitary
	}
	if n.MilitaryPower < 0 {
		n.MilitaryPower = 0
	}
}
