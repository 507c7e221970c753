package epoch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var ErrInvalidRequest = errors.New("invalid tick request")

type TickRequest struct {
	// Force advances the epoch even if the wall-clock window has not
	// elapsed. Used by the manual advance endpoint.
	Force bool
}

type TickResponse struct {
	Advanced        bool  `json:"advanced"`
	Epoch           int64 `json:"epoch"`
	TreatiesExpired int   `json:"treaties_expired"`
	RegionsUpdated  int   `json:"regions_updated"`
}

// TickUseCase advances the world one epoch: resources regenerate, fed
// populations grow, and overdue treaties expire. Ticks before the epoch
// boundary are no-ops unless forced.
type TickUseCase struct {
	TxManager ports.TxManager
	Regions   ports.RegionRepository
	Nations   ports.NationRepository
	Treaties  ports.TreatyRepository
	Events    ports.EventRepository
	Clock     ports.ClockRepository
	Publisher ports.EventPublisher
	Archive   ports.ArchiveSink
	Now       func() time.Time
}

func (u TickUseCase) Execute(ctx context.Context, req TickRequest) (TickResponse, error) {
	if u.TxManager == nil || u.Regions == nil || u.Clock == nil {
		return TickResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	var (
		out    TickResponse
		events []nation.WorldEvent
	)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		clock, err := u.Clock.Get(txCtx)
		if err != nil {
			return err
		}
		if !req.Force && !clock.Ready(now) {
			out = TickResponse{Advanced: false, Epoch: clock.Epoch}
			return nil
		}

		clock = clock.Advanced(now)
		if err := u.Clock.Save(txCtx, clock); err != nil {
			return err
		}

		regions, err := u.Regions.List(txCtx)
		if err != nil {
			return err
		}
		for i := range regions {
			regions[i].Regenerate(nation.EpochRegenAmount)
			if !regions[i].Unclaimed() && regions[i].Resources.Food > nation.PopGrowthFoodMinimum {
				regions[i].GrowPopulation(nation.EpochPopGrowthPct)
			}
			if err := u.Regions.Save(txCtx, regions[i]); err != nil {
				return err
			}
		}

		expired := 0
		if u.Treaties != nil {
			active, err := u.Treaties.ListByStatus(txCtx, nation.TreatyActive)
			if err != nil {
				return err
			}
			for _, t := range active {
				if t.ExpiresAt == nil || t.ExpiresAt.After(now) {
					continue
				}
				t.Status = nation.TreatyExpired
				if err := u.Treaties.Save(txCtx, t); err != nil {
					return err
				}
				expired++
			}
		}

		evt := nation.WorldEvent{
			ID:        uuid.NewString(),
			Type:      nation.EventEpochEnd,
			Message:   fmt.Sprintf("Epoch %d has begun", clock.Epoch),
			Details:   map[string]any{"epoch": clock.Epoch, "treaties_expired": expired},
			Timestamp: now,
		}
		if u.Events != nil {
			if err := u.Events.Append(txCtx, evt); err != nil {
				return err
			}
		}
		events = append(events, evt)

		out = TickResponse{
			Advanced:        true,
			Epoch:           clock.Epoch,
			TreatiesExpired: expired,
			RegionsUpdated:  len(regions),
		}
		return nil
	})
	if err != nil {
		return TickResponse{}, err
	}

	if out.Advanced {
		if u.Publisher != nil {
			for _, evt := range events {
				u.Publisher.Publish(evt)
			}
		}
		if u.Archive != nil && len(events) > 0 {
			if err := u.Archive.ArchiveEvents(ctx, events); err != nil {
				log.Printf("epoch archive failed: %v", err)
			}
		}
	}
	return out, nil
}

// Runner drives ticks on a fixed poll interval until the context is
// cancelled. The poll is deliberately shorter than the epoch so boundaries
// are hit promptly; off-boundary polls are no-ops.
type Runner struct {
	Tick     TickUseCase
	Interval time.Duration
}

func (r Runner) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := r.Tick.Execute(ctx, TickRequest{})
			if err != nil {
				log.Printf("epoch tick failed: %v", err)
				continue
			}
			if resp.Advanced {
				log.Printf("epoch advanced to %d (%d regions, %d treaties expired)", resp.Epoch, resp.RegionsUpdated, resp.TreatiesExpired)
			}
		}
	}
}
