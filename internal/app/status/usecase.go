package status

import (
	"context"
	"errors"
	"strings"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var ErrInvalidRequest = errors.New("invalid status request")

// ProfileUseCase serves /api/nations/me: everything the owner is entitled to
// see about their own nation, treasury and treaties included.
type ProfileUseCase struct {
	Nations  ports.NationRepository
	Regions  ports.RegionRepository
	Treaties ports.TreatyRepository
}

func (u ProfileUseCase) Execute(ctx context.Context, nationID string) (Profile, error) {
	nationID = strings.TrimSpace(nationID)
	if nationID == "" || u.Nations == nil {
		return Profile{}, ErrInvalidRequest
	}
	n, err := u.Nations.Get(ctx, nationID)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Nation: n, Score: nation.Score(n)}

	if u.Regions != nil {
		regions, err := u.Regions.ListOwnedBy(ctx, nationID)
		if err != nil {
			return Profile{}, err
		}
		p.Regions = regions
	}
	if u.Treaties != nil {
		involving, err := u.Treaties.ListInvolving(ctx, nationID)
		if err != nil {
			return Profile{}, err
		}
		p.ActiveTreaties = []nation.Treaty{}
		for _, t := range involving {
			if t.Status == nation.TreatyActive {
				p.ActiveTreaties = append(p.ActiveTreaties, t)
			}
		}
		pending, err := u.Treaties.ListPendingFor(ctx, nationID)
		if err != nil {
			return Profile{}, err
		}
		p.PendingTreaties = pending
	}
	return p, nil
}

// PublicUseCase serves the unauthenticated nation listing and detail.
type PublicUseCase struct {
	Nations ports.NationRepository
}

func (u PublicUseCase) List(ctx context.Context) ([]PublicNation, error) {
	if u.Nations == nil {
		return nil, ErrInvalidRequest
	}
	nations, err := u.Nations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PublicNation, 0, len(nations))
	for _, n := range nations {
		out = append(out, redact(n))
	}
	return out, nil
}

func (u PublicUseCase) Get(ctx context.Context, nationID string) (PublicNation, error) {
	if u.Nations == nil || strings.TrimSpace(nationID) == "" {
		return PublicNation{}, ErrInvalidRequest
	}
	n, err := u.Nations.Get(ctx, nationID)
	if err != nil {
		return PublicNation{}, err
	}
	return redact(n), nil
}

// redact strips the treasury and tax policy; those are the owner's business.
func redact(n nation.Nation) PublicNation {
	return PublicNation{
		ID:             n.ID,
		Name:           n.Name,
		Status:         n.Status,
		Regions:        len(n.Regions),
		Capital:        n.Capital,
		MilitaryPower:  n.MilitaryPower,
		DiplomacyScore: n.DiplomacyScore,
		Reputation:     n.Reputation,
		Score:          nation.Score(n),
	}
}
