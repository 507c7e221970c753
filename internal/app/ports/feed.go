package ports

import "nationsim/internal/domain/nation"

// EventPublisher pushes world events to live subscribers. Publish must not
// block the caller; implementations own their own buffering.
type EventPublisher interface {
	Publish(evt nation.WorldEvent)
}
