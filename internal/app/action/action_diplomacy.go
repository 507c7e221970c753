package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

// handleProposeTreaty files a new proposal against another active nation.
// Terms, including the break penalties, are fixed here and never renegotiated.
func handleProposeTreaty(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	p := ex.Action.Params
	if p.TargetNation == "" {
		return fail("propose_treaty requires target_nation"), nil
	}
	if p.TargetNation == ex.Actor.ID {
		return fail("Cannot propose a treaty to yourself"), nil
	}
	if !p.TreatyType.Valid() {
		return fail("Unknown treaty type: %s", p.TreatyType), nil
	}

	target, err := u.Nations.Get(ctx, p.TargetNation)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fail("Nation not found: %s", p.TargetNation), nil
		}
		return nation.ActionResult{}, err
	}
	if target.Status != nation.StatusActive {
		return fail("%s is not an active nation", target.Name), nil
	}
	if !ex.Actor.SpendGold(nation.ProposeTreatyCost) {
		return fail("Not enough gold: proposing a treaty costs %d", nation.ProposeTreatyCost), nil
	}

	duration := p.Duration
	if duration == 0 {
		duration = nation.DefaultTreatyDuration
	}
	if duration < nation.MinTreatyDuration {
		duration = nation.MinTreatyDuration
	}
	if duration > nation.MaxTreatyDuration {
		duration = nation.MaxTreatyDuration
	}
	goldPenalty, repPenalty := nation.PenaltySchedule(p.TreatyType)

	t := nation.Treaty{
		ID:       uuid.NewString(),
		Type:     p.TreatyType,
		Proposer: ex.Actor.ID,
		Target:   target.ID,
		Terms: nation.TreatyTerms{
			DurationEpochs:    duration,
			GoldPenalty:       goldPenalty,
			ReputationPenalty: repPenalty,
		},
		Status:    nation.TreatyProposed,
		CreatedAt: ex.Now,
	}
	if err := u.Treaties.Save(ctx, t); err != nil {
		return nation.ActionResult{}, err
	}

	ex.emit(nation.WorldEvent{
		Type:             nation.EventTreatyProposed,
		NationID:         ex.Actor.ID,
		NationName:       ex.Actor.Name,
		TargetNationID:   target.ID,
		TargetNationName: target.Name,
		Message:          fmt.Sprintf("%s proposed a %s treaty to %s", ex.Actor.Name, t.Type, target.Name),
		Details:          map[string]any{"treaty_id": t.ID, "duration_epochs": duration},
	})

	return ok(map[string]any{
		"treaty_id":       t.ID,
		"treaty_type":     t.Type,
		"duration_epochs": duration,
		"gold_spent":      nation.ProposeTreatyCost,
	}, "Proposed a %s treaty to %s", t.Type, target.Name), nil
}

// handleAcceptTreaty activates a proposal addressed to the actor. Expiry is
// scheduled in wall time from the agreed epoch count.
func handleAcceptTreaty(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	t, res, err := loadTreatyFor(ctx, u, ex, nation.TreatyProposed)
	if err != nil || !res.Success {
		return res, err
	}
	if t.Target != ex.Actor.ID {
		return fail("Only the treaty's target may accept it"), nil
	}

	proposer, err := u.Nations.Get(ctx, t.Proposer)
	if err != nil {
		return nation.ActionResult{}, err
	}

	clock, err := u.Clock.Get(ctx)
	if err != nil {
		return nation.ActionResult{}, err
	}
	expires := ex.Now.Add(time.Duration(t.Terms.DurationEpochs) * clock.EpochDuration)
	t.Status = nation.TreatyActive
	t.ExpiresAt = &expires
	if err := u.Treaties.Save(ctx, t); err != nil {
		return nation.ActionResult{}, err
	}

	ex.Actor.AdjustDiplomacy(nation.AcceptTreatyDiplomacy)
	proposer.AdjustDiplomacy(nation.AcceptTreatyDiplomacy)
	if err := u.Nations.Save(ctx, proposer); err != nil {
		return nation.ActionResult{}, err
	}

	evtType := nation.EventTreatySigned
	if t.Type == nation.TreatyAlliance {
		evtType = nation.EventAllianceFormed
	}
	ex.emit(nation.WorldEvent{
		Type:             evtType,
		NationID:         proposer.ID,
		NationName:       proposer.Name,
		TargetNationID:   ex.Actor.ID,
		TargetNationName: ex.Actor.Name,
		Message:          fmt.Sprintf("%s and %s signed a %s treaty", proposer.Name, ex.Actor.Name, t.Type),
		Details:          map[string]any{"treaty_id": t.ID, "expires_at": expires},
	})

	return ok(map[string]any{
		"treaty_id":  t.ID,
		"expires_at": expires,
	}, "Accepted the %s treaty with %s", t.Type, proposer.Name), nil
}

// handleRejectTreaty declines a proposal addressed to the actor, at a small
// reputation cost for the snub.
func handleRejectTreaty(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	t, res, err := loadTreatyFor(ctx, u, ex, nation.TreatyProposed)
	if err != nil || !res.Success {
		return res, err
	}
	if t.Target != ex.Actor.ID {
		return fail("Only the treaty's target may reject it"), nil
	}

	t.Status = nation.TreatyRejected
	if err := u.Treaties.Save(ctx, t); err != nil {
		return nation.ActionResult{}, err
	}
	ex.Actor.AdjustReputation(-nation.RejectTreatyRepLoss)

	return ok(map[string]any{
		"treaty_id":  t.ID,
		"reputation": ex.Actor.Reputation,
	}, "Rejected the %s treaty", t.Type), nil
}

// handleBreakTreaty tears up an active treaty the actor is party to, paying
// the penalties fixed at proposal time.
func handleBreakTreaty(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	t, res, err := loadTreatyFor(ctx, u, ex, nation.TreatyActive)
	if err != nil || !res.Success {
		return res, err
	}
	if !t.Involves(ex.Actor.ID) {
		return fail("You are not a party to this treaty"), nil
	}

	t.Status = nation.TreatyBroken
	if err := u.Treaties.Save(ctx, t); err != nil {
		return nation.ActionResult{}, err
	}
	ex.Actor.PenalizeGold(t.Terms.GoldPenalty)
	ex.Actor.AdjustReputation(-t.Terms.ReputationPenalty)

	otherID := t.Proposer
	if otherID == ex.Actor.ID {
		otherID = t.Target
	}
	otherName := ""
	if other, err := u.Nations.Get(ctx, otherID); err == nil {
		otherName = other.Name
	}
	ex.emit(nation.WorldEvent{
		Type:             nation.EventTreatyBroken,
		NationID:         ex.Actor.ID,
		NationName:       ex.Actor.Name,
		TargetNationID:   otherID,
		TargetNationName: otherName,
		Message:          fmt.Sprintf("%s broke its %s treaty with %s", ex.Actor.Name, t.Type, otherName),
		Details:          map[string]any{"treaty_id": t.ID, "gold_penalty": t.Terms.GoldPenalty, "reputation_penalty": t.Terms.ReputationPenalty},
	})

	return ok(map[string]any{
		"treaty_id":          t.ID,
		"gold_penalty":       t.Terms.GoldPenalty,
		"reputation_penalty": t.Terms.ReputationPenalty,
		"treasury":           ex.Actor.Treasury,
		"reputation":         ex.Actor.Reputation,
	}, "Broke the %s treaty: -%d gold, -%d reputation", t.Type, t.Terms.GoldPenalty, t.Terms.ReputationPenalty), nil
}

// loadTreatyFor fetches the treaty named in the params and checks it is in
// the expected lifecycle state. The returned result is a success marker
// only; callers build their own.
func loadTreatyFor(ctx context.Context, u UseCase, ex *execution, want nation.TreatyStatus) (nation.Treaty, nation.ActionResult, error) {
	id := ex.Action.Params.TreatyID
	if id == "" {
		return nation.Treaty{}, fail("This action requires treaty_id"), nil
	}
	t, err := u.Treaties.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nation.Treaty{}, fail("Treaty not found: %s", id), nil
		}
		return nation.Treaty{}, nation.ActionResult{}, err
	}
	if t.Status != want {
		return nation.Treaty{}, fail("Treaty is %s, not %s", t.Status, want), nil
	}
	return t, nation.ActionResult{Success: true}, nil
}
