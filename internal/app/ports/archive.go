package ports

import (
	"context"

	"nationsim/internal/domain/nation"
)

// ArchiveSink mirrors processed actions and emitted events to durable
// storage for offline analysis. It is write-only: the engine never reads it
// back, so core state stays in memory.
type ArchiveSink interface {
	ArchiveAction(ctx context.Context, a nation.Action) error
	ArchiveEvents(ctx context.Context, events []nation.WorldEvent) error
}
