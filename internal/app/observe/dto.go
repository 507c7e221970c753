package observe

import (
	"time"

	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

// RegionView is a region plus the denormalized owner name for display.
type RegionView struct {
	world.Region
	OwnerName string `json:"owner_name,omitempty"`
}

type SnapshotResponse struct {
	Epoch           int64        `json:"epoch"`
	EpochEndsAt     time.Time    `json:"epoch_ends_at"`
	TotalRegions    int          `json:"total_regions"`
	ClaimedRegions  int          `json:"claimed_regions"`
	ActiveNations   int          `json:"active_nations"`
	DefeatedNations int          `json:"defeated_nations"`
	ActiveTreaties  int          `json:"active_treaties"`
	ActiveWars      int          `json:"active_wars"`
	Regions         []RegionView `json:"regions"`
}

type EventsRequest struct {
	Limit int
}

type EventsResponse struct {
	Events []nation.WorldEvent `json:"events"`
}
