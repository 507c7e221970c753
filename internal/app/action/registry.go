package action

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nationsim/internal/domain/nation"
)

// execution is the mutable working set one handler operates on inside the
// dispatch transaction. Actor mutations are saved centrally by the
// dispatcher; handlers save every other entity they touch.
type execution struct {
	Actor  *nation.Nation
	Action *nation.Action
	Now    time.Time
	Epoch  int64
	Events []nation.WorldEvent
}

// emit queues a world event, stamping id and timestamp. Queued events are
// persisted only when the handler's result is a success.
func (ex *execution) emit(evt nation.WorldEvent) {
	evt.ID = uuid.NewString()
	evt.Timestamp = ex.Now
	if evt.Details == nil {
		evt.Details = map[string]any{}
	}
	evt.Details["epoch"] = ex.Epoch
	ex.Events = append(ex.Events, evt)
}

type handlerFunc func(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error)

func actionRegistry() map[nation.ActionType]handlerFunc {
	return map[nation.ActionType]handlerFunc{
		nation.ActionHarvest:       handleHarvest,
		nation.ActionTrade:         handleTrade,
		nation.ActionTax:           handleTax,
		nation.ActionAttack:        handleAttack,
		nation.ActionDefend:        handleDefend,
		nation.ActionFortify:       handleFortify,
		nation.ActionRecruit:       handleRecruit,
		nation.ActionProposeTreaty: handleProposeTreaty,
		nation.ActionAcceptTreaty:  handleAcceptTreaty,
		nation.ActionRejectTreaty:  handleRejectTreaty,
		nation.ActionBreakTreaty:   handleBreakTreaty,
		nation.ActionSetTaxRate:    handleSetTaxRate,
	}
}

func fail(format string, args ...any) nation.ActionResult {
	return nation.ActionResult{Success: false, Message: fmt.Sprintf(format, args...)}
}

func ok(effects map[string]any, format string, args ...any) nation.ActionResult {
	return nation.ActionResult{Success: true, Message: fmt.Sprintf(format, args...), Effects: effects}
}
