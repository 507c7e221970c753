package nation

import "time"

type TreatyType string

const (
	TreatyNonAggression TreatyType = "non_aggression"
	TreatyTrade         TreatyType = "trade"
	TreatyAlliance      TreatyType = "alliance"
	TreatyVassalage     TreatyType = "vassalage"
)

func (t TreatyType) Valid() bool {
	switch t {
	case TreatyNonAggression, TreatyTrade, TreatyAlliance, TreatyVassalage:
		return true
	default:
		return false
	}
}

type TreatyStatus string

// proposed -> {active, rejected}; active -> {expired, broken}. The three
// end states are terminal: a treaty is never reopened, a new proposal
// between the same pair is a new entity.
const (
	TreatyProposed TreatyStatus = "proposed"
	TreatyActive   TreatyStatus = "active"
	TreatyExpired  TreatyStatus = "expired"
	TreatyBroken   TreatyStatus = "broken"
	TreatyRejected TreatyStatus = "rejected"
)

// TreatyTerms are fixed at proposal time; breaking the treaty later applies
// exactly these penalties no matter how many epochs have elapsed.
type TreatyTerms struct {
	DurationEpochs    int      `json:"duration_epochs"`
	Conditions        []string `json:"conditions,omitempty"`
	GoldPenalty       int      `json:"gold_penalty"`
	ReputationPenalty int      `json:"reputation_penalty"`
}

type Treaty struct {
	ID        string       `json:"id"`
	Type      TreatyType   `json:"type"`
	Proposer  string       `json:"proposer"`
	Target    string       `json:"target"`
	Terms     TreatyTerms  `json:"terms"`
	Status    TreatyStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"` // set on activation only
}

func (t Treaty) Involves(nationID string) bool {
	return t.Proposer == nationID || t.Target == nationID
}

// PenaltySchedule returns the break penalties fixed per treaty type.
func PenaltySchedule(t TreatyType) (gold, reputation int) {
	switch t {
	case TreatyNonAggression:
		return NonAggressionGoldPenalty, NonAggressionRepPenalty
	case TreatyTrade:
		return TradeGoldPenalty, TradeRepPenalty
	case TreatyAlliance:
		return AllianceGoldPenalty, AllianceRepPenalty
	case TreatyVassalage:
		return VassalageGoldPenalty, VassalageRepPenalty
	default:
		return 0, 0
	}
}

type WarStatus string

const (
	WarDeclared WarStatus = "declared"
	WarActive   WarStatus = "active"
	WarResolved WarStatus = "resolved"
)

type WarResult string

const (
	WarAttackerWins WarResult = "attacker_wins"
	WarDefenderWins WarResult = "defender_wins"
	WarStalemate    WarResult = "stalemate"
)

// War is carried in the data model for forward compatibility; no action
// handler populates it yet and battles resolve synchronously inside attack.
type War struct {
	ID             string     `json:"id"`
	Attacker       string     `json:"attacker"`
	Defender       string     `json:"defender"`
	AttackerAllies []string   `json:"attacker_allies,omitempty"`
	DefenderAllies []string   `json:"defender_allies,omitempty"`
	TargetRegion   string     `json:"target_region"`
	Status         WarStatus  `json:"status"`
	Result         WarResult  `json:"result,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}
