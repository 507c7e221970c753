package action

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var (
	ErrInvalidRequest   = errors.New("invalid action request")
	ErrNationNotActive  = errors.New("nation is not active")
	ErrUnknownActionLog = errors.New("action log unavailable")
)

// UseCase dispatches one submitted action. All reads and writes of a single
// dispatch happen inside one transaction; feed publishing, archiving and
// metrics happen after commit and never fail the action.
type UseCase struct {
	TxManager ports.TxManager
	Nations   ports.NationRepository
	Regions   ports.RegionRepository
	Treaties  ports.TreatyRepository
	ActionLog ports.ActionLogRepository
	Events    ports.EventRepository
	Clock     ports.ClockRepository
	Combat    nation.CombatService
	Metrics   ports.ActionMetrics
	Publisher ports.EventPublisher
	Archive   ports.ArchiveSink
	Now       func() time.Time
}

// Execute runs one action to completion. Rule violations (not enough gold,
// bad target, blocked by treaty) come back as a recorded unsuccessful
// ActionResult; an error return means nothing was recorded.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.NationID = strings.TrimSpace(req.NationID)
	req.Type = nation.ActionType(strings.TrimSpace(string(req.Type)))
	if req.NationID == "" || req.Type == "" {
		return Response{}, ErrInvalidRequest
	}
	if u.TxManager == nil || u.Nations == nil || u.ActionLog == nil {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := u.Nations.Get(txCtx, req.NationID)
		if err != nil {
			return err
		}
		if actor.Status != nation.StatusActive {
			return ErrNationNotActive
		}

		var epoch int64
		if u.Clock != nil {
			clock, err := u.Clock.Get(txCtx)
			if err != nil {
				return err
			}
			epoch = clock.Epoch
		}

		act := nation.Action{
			ID:        uuid.NewString(),
			NationID:  actor.ID,
			Type:      req.Type,
			Params:    req.Params,
			Epoch:     epoch,
			CreatedAt: now,
		}
		ex := &execution{Actor: &actor, Action: &act, Now: now, Epoch: epoch}

		var result nation.ActionResult
		if handler, known := actionRegistry()[req.Type]; known {
			result, err = handler(txCtx, u, ex)
			if err != nil {
				return err
			}
		} else {
			result = fail("Unknown action type: %s", req.Type)
		}
		if !result.Success {
			ex.Events = nil
		}

		act.Result = &result
		processed := now
		act.ProcessedAt = &processed
		actor.LastActive = now

		if err := u.Nations.Save(txCtx, actor); err != nil {
			return err
		}
		if err := u.ActionLog.Append(txCtx, act); err != nil {
			return err
		}
		if len(ex.Events) > 0 && u.Events != nil {
			if err := u.Events.Append(txCtx, ex.Events...); err != nil {
				return err
			}
		}

		out = Response{Action: act, Events: ex.Events}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		return Response{}, err
	}

	u.afterCommit(ctx, out)
	return out, nil
}

func (u UseCase) afterCommit(ctx context.Context, out Response) {
	if u.Metrics != nil {
		if out.Action.Result != nil && out.Action.Result.Success {
			u.Metrics.RecordSuccess(out.Action.Type)
		} else {
			u.Metrics.RecordRejected(out.Action.Type)
		}
	}
	if u.Publisher != nil {
		for _, evt := range out.Events {
			u.Publisher.Publish(evt)
		}
	}
	if u.Archive != nil {
		if err := u.Archive.ArchiveAction(ctx, out.Action); err != nil {
			log.Printf("action archive failed: %v", err)
		}
		if len(out.Events) > 0 {
			if err := u.Archive.ArchiveEvents(ctx, out.Events); err != nil {
				log.Printf("event archive failed: %v", err)
			}
		}
	}
}

type HistoryRequest struct {
	NationID string
	Limit    int
}

// HistoryUseCase reads back the trimmed action log, newest first.
type HistoryUseCase struct {
	ActionLog ports.ActionLogRepository
}

func (u HistoryUseCase) Execute(ctx context.Context, req HistoryRequest) ([]nation.Action, error) {
	if u.ActionLog == nil {
		return nil, ErrUnknownActionLog
	}
	if req.NationID != "" {
		return u.ActionLog.ListByNation(ctx, req.NationID, req.Limit)
	}
	return u.ActionLog.ListRecent(ctx, req.Limit)
}
