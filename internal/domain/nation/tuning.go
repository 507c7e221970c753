package nation

const (
	MinReputation = -100
	MaxReputation = 100
	MaxDiplomacy  = 100
	MaxMilitary   = 100
	MaxTaxRate    = 50

	StartingTreasury   = 100
	StartingMilitary   = 20
	StartingDiplomacy  = 50
	StartingReputation = 0
	StartingTaxRate    = 10

	HarvestPercent = 20

	AttackCost        = 20
	FortifyCost       = 30
	RecruitCost       = 25
	ProposeTreatyCost = 10

	DefendBoost  = 10
	FortifyBoost = 15
	RecruitBoost = 10

	HighTaxThreshold     = 30
	HighTaxPopLossPct    = 5
	EpochRegenAmount     = 5
	EpochPopGrowthPct    = 2
	PopGrowthFoodMinimum = 30

	AttackWinReputation    = 3
	AttackLossReputation   = -2
	DefenderLossReputation = -5
	AttackLossMilitary     = 5
	MinMilitaryAfterLoss   = 5

	AcceptTreatyDiplomacy = 5
	RejectTreatyRepLoss   = 2

	DefaultTreatyDuration = 5
	MinTreatyDuration     = 1
	MaxTreatyDuration     = 50

	NonAggressionGoldPenalty = 100
	NonAggressionRepPenalty  = 30
	TradeGoldPenalty         = 50
	TradeRepPenalty          = 10
	AllianceGoldPenalty      = 200
	AllianceRepPenalty       = 50
	VassalageGoldPenalty     = 150
	VassalageRepPenalty      = 40

	AttackRollSpread  = 30.0
	DefenseRollSpread = 20.0

	EventFeedCapacity      = 500
	ActionLogCapacity      = 100
	ActionLogNationHistory = 50
)
