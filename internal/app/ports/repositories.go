package ports

import (
	"context"
	"time"

	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

type RegionRepository interface {
	Get(ctx context.Context, id string) (world.Region, error)
	List(ctx context.Context) ([]world.Region, error)
	ListUnclaimed(ctx context.Context) ([]world.Region, error)
	ListOwnedBy(ctx context.Context, nationID string) ([]world.Region, error)
	Save(ctx context.Context, region world.Region) error
}

type NationRepository interface {
	Get(ctx context.Context, id string) (nation.Nation, error)
	List(ctx context.Context) ([]nation.Nation, error)
	ListActive(ctx context.Context) ([]nation.Nation, error)
	Save(ctx context.Context, n nation.Nation) error
}

// NationCredentialRecord links a hashed API key to a nation. Keys are
// looked up by hash, never stored in the clear.
type NationCredentialRecord struct {
	NationID  string
	KeyHash   []byte
	ClaimCode string
	CreatedAt time.Time
}

type NationCredentialRepository interface {
	Create(ctx context.Context, rec NationCredentialRecord) error
	GetByKeyHash(ctx context.Context, keyHash []byte) (NationCredentialRecord, error)
	GetByNationID(ctx context.Context, nationID string) (NationCredentialRecord, error)
}

type TreatyRepository interface {
	Get(ctx context.Context, id string) (nation.Treaty, error)
	List(ctx context.Context) ([]nation.Treaty, error)
	ListByStatus(ctx context.Context, status nation.TreatyStatus) ([]nation.Treaty, error)
	ListInvolving(ctx context.Context, nationID string) ([]nation.Treaty, error)
	ListPendingFor(ctx context.Context, targetNationID string) ([]nation.Treaty, error)
	Save(ctx context.Context, t nation.Treaty) error
}

type WarRepository interface {
	List(ctx context.Context) ([]nation.War, error)
	ListActive(ctx context.Context) ([]nation.War, error)
	Save(ctx context.Context, w nation.War) error
}

type ActionLogRepository interface {
	Append(ctx context.Context, a nation.Action) error
	ListRecent(ctx context.Context, limit int) ([]nation.Action, error)
	ListByNation(ctx context.Context, nationID string, limit int) ([]nation.Action, error)
}

type EventRepository interface {
	Append(ctx context.Context, events ...nation.WorldEvent) error
	ListRecent(ctx context.Context, limit int) ([]nation.WorldEvent, error)
}

type ClockRepository interface {
	Get(ctx context.Context) (world.Clock, error)
	Save(ctx context.Context, c world.Clock) error
}
