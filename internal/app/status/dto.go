package status

import (
	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

// Profile is the authenticated owner's view of their own nation.
type Profile struct {
	Nation          nation.Nation   `json:"nation"`
	Score           int             `json:"score"`
	Regions         []world.Region  `json:"regions"`
	ActiveTreaties  []nation.Treaty `json:"active_treaties"`
	PendingTreaties []nation.Treaty `json:"pending_treaties"`
}

// PublicNation is the redacted listing entry others can see.
type PublicNation struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Status         nation.Status `json:"status"`
	Regions        int           `json:"regions"`
	Capital        string        `json:"capital"`
	MilitaryPower  int           `json:"military_power"`
	DiplomacyScore int           `json:"diplomacy_score"`
	Reputation     int           `json:"reputation"`
	Score          int           `json:"score"`
}
