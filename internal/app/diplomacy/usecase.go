package diplomacy

import (
	"context"
	"errors"
	"strings"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var ErrInvalidRequest = errors.New("invalid diplomacy request")

// TreatyView carries denormalized party names alongside the treaty.
type TreatyView struct {
	nation.Treaty
	ProposerName string `json:"proposer_name,omitempty"`
	TargetName   string `json:"target_name,omitempty"`
}

type MineResponse struct {
	Active   []TreatyView `json:"active"`
	Pending  []TreatyView `json:"pending"`
	Proposed []TreatyView `json:"proposed"`
	Ended    []TreatyView `json:"ended"`
}

// TreatiesUseCase serves the public treaty register and the per-nation view.
type TreatiesUseCase struct {
	Treaties ports.TreatyRepository
	Nations  ports.NationRepository
}

// List returns treaties, optionally filtered to one lifecycle status.
func (u TreatiesUseCase) List(ctx context.Context, status string) ([]TreatyView, error) {
	if u.Treaties == nil {
		return nil, ErrInvalidRequest
	}
	status = strings.TrimSpace(status)
	var (
		treaties []nation.Treaty
		err      error
	)
	if status == "" {
		treaties, err = u.Treaties.List(ctx)
	} else {
		treaties, err = u.Treaties.ListByStatus(ctx, nation.TreatyStatus(status))
	}
	if err != nil {
		return nil, err
	}
	return u.enrich(ctx, treaties)
}

// Mine splits the nation's treaties into the buckets a player cares about:
// what binds them now, what awaits their answer, what they proposed, and
// what is over.
func (u TreatiesUseCase) Mine(ctx context.Context, nationID string) (MineResponse, error) {
	nationID = strings.TrimSpace(nationID)
	if u.Treaties == nil || nationID == "" {
		return MineResponse{}, ErrInvalidRequest
	}
	involving, err := u.Treaties.ListInvolving(ctx, nationID)
	if err != nil {
		return MineResponse{}, err
	}
	views, err := u.enrich(ctx, involving)
	if err != nil {
		return MineResponse{}, err
	}

	resp := MineResponse{
		Active:   []TreatyView{},
		Pending:  []TreatyView{},
		Proposed: []TreatyView{},
		Ended:    []TreatyView{},
	}
	for _, v := range views {
		switch {
		case v.Status == nation.TreatyActive:
			resp.Active = append(resp.Active, v)
		case v.Status == nation.TreatyProposed && v.Target == nationID:
			resp.Pending = append(resp.Pending, v)
		case v.Status == nation.TreatyProposed:
			resp.Proposed = append(resp.Proposed, v)
		default:
			resp.Ended = append(resp.Ended, v)
		}
	}
	return resp, nil
}

func (u TreatiesUseCase) enrich(ctx context.Context, treaties []nation.Treaty) ([]TreatyView, error) {
	names := map[string]string{}
	if u.Nations != nil {
		nations, err := u.Nations.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range nations {
			names[n.ID] = n.Name
		}
	}
	out := make([]TreatyView, 0, len(treaties))
	for _, t := range treaties {
		out = append(out, TreatyView{
			Treaty:       t,
			ProposerName: names[t.Proposer],
			TargetName:   names[t.Target],
		})
	}
	return out, nil
}

// WarsUseCase serves the war register. Wars are carried for forward
// compatibility; nothing creates them yet, so these normally return empty.
type WarsUseCase struct {
	Wars ports.WarRepository
}

func (u WarsUseCase) List(ctx context.Context, activeOnly bool) ([]nation.War, error) {
	if u.Wars == nil {
		return nil, ErrInvalidRequest
	}
	if activeOnly {
		return u.Wars.ListActive(ctx)
	}
	return u.Wars.List(ctx)
}
