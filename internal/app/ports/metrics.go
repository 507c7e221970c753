package ports

import "nationsim/internal/domain/nation"

type ActionMetrics interface {
	RecordSuccess(t nation.ActionType)
	RecordRejected(t nation.ActionType)
	RecordFailure()
}
