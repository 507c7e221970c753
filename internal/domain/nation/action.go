package nation

import "time"

type ActionType string

const (
	// Economic
	ActionHarvest ActionType = "harvest"
	ActionTrade   ActionType = "trade"
	ActionTax     ActionType = "tax"
	// Military
	ActionAttack  ActionType = "attack"
	ActionDefend  ActionType = "defend"
	ActionFortify ActionType = "fortify"
	ActionRecruit ActionType = "recruit"
	// Diplomatic
	ActionProposeTreaty ActionType = "propose_treaty"
	ActionAcceptTreaty  ActionType = "accept_treaty"
	ActionRejectTreaty  ActionType = "reject_treaty"
	ActionBreakTreaty   ActionType = "break_treaty"
	// Governance
	ActionSetTaxRate ActionType = "set_tax_rate"
)

// ActionParams is the typed parameter bag for a submitted action. Which
// fields matter depends on the action type; handlers validate their own.
type ActionParams struct {
	Region       string     `json:"region,omitempty"`
	TargetNation string     `json:"target_nation,omitempty"`
	TreatyID     string     `json:"treaty_id,omitempty"`
	TreatyType   TreatyType `json:"treaty_type,omitempty"`
	Duration     int        `json:"duration,omitempty"`
	Rate         *int       `json:"rate,omitempty"`
	OfferGold    int        `json:"offer_gold,omitempty"`
	RequestGold  int        `json:"request_gold,omitempty"`
}

type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Effects map[string]any `json:"effects,omitempty"`
}

// Action is one processed instruction; immutable once its result is
// attached, held in an append-only trimmed log.
type Action struct {
	ID          string        `json:"id"`
	NationID    string        `json:"nation_id"`
	Type        ActionType    `json:"type"`
	Params      ActionParams  `json:"params"`
	Epoch       int64         `json:"epoch"`
	Result      *ActionResult `json:"result,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
}

type EventType string

const (
	EventNationFounded  EventType = "nation_founded"
	EventWarDeclared    EventType = "war_declared"
	EventBattleResult   EventType = "battle_result"
	EventTreatyProposed EventType = "treaty_proposed"
	EventTreatySigned   EventType = "treaty_signed"
	EventTreatyBroken   EventType = "treaty_broken"
	EventRegionCaptured EventType = "region_captured"
	EventAllianceFormed EventType = "alliance_formed"
	EventEpochEnd       EventType = "epoch_end"
	EventSystem         EventType = "system"
)

// WorldEvent is one feed entry. Names are denormalized at emission time so
// the feed stays readable without lookups.
type WorldEvent struct {
	ID               string         `json:"id"`
	Type             EventType      `json:"type"`
	NationID         string         `json:"nation_id,omitempty"`
	NationName       string         `json:"nation_name,omitempty"`
	TargetNationID   string         `json:"target_nation_id,omitempty"`
	TargetNationName string         `json:"target_nation_name,omitempty"`
	RegionID         string         `json:"region_id,omitempty"`
	RegionName       string         `json:"region_name,omitempty"`
	Message          string         `json:"message"`
	Details          map[string]any `json:"details,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}
