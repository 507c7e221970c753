package action

import (
	"context"
	"errors"
	"fmt"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

// handleAttack resolves one battle for a region synchronously. The gold cost
// is paid once the preconditions pass and is not refunded on a loss.
// Adjacency constrains claimed targets only; unclaimed land can be taken
// from anywhere.
func handleAttack(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	regionID := ex.Action.Params.Region
	if regionID == "" {
		return fail("attack requires a region"), nil
	}
	region, err := u.Regions.Get(ctx, regionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fail("Region not found: %s", regionID), nil
		}
		return nation.ActionResult{}, err
	}
	if region.OwnerNation == ex.Actor.ID {
		return fail("You already control %s", region.Name), nil
	}
	if region.OwnerNation != "" && !ownsAdjacentRegion(ex.Actor, region) {
		return fail("%s is not adjacent to your territory", region.Name), nil
	}

	var defender *nation.Nation
	if region.OwnerNation != "" {
		d, err := u.Nations.Get(ctx, region.OwnerNation)
		if err != nil {
			return nation.ActionResult{}, err
		}
		defender = &d

		blocked, treatyType, err := attackBlockedByTreaty(ctx, u, ex.Actor.ID, defender.ID)
		if err != nil {
			return nation.ActionResult{}, err
		}
		if blocked {
			return fail("A %s treaty with %s forbids this attack", treatyType, defender.Name), nil
		}
	}

	if !ex.Actor.SpendGold(nation.AttackCost) {
		return fail("Not enough gold: attacking costs %d", nation.AttackCost), nil
	}

	report := u.Combat.Resolve(*ex.Actor, region, defender)
	effects := map[string]any{
		"region":     region.ID,
		"battle":     report,
		"gold_spent": nation.AttackCost,
	}

	defenderName := ""
	if defender != nil {
		defenderName = defender.Name
	}
	ex.emit(nation.WorldEvent{
		Type:             nation.EventBattleResult,
		NationID:         ex.Actor.ID,
		NationName:       ex.Actor.Name,
		TargetNationID:   region.OwnerNation,
		TargetNationName: defenderName,
		RegionID:         region.ID,
		RegionName:       region.Name,
		Message:          battleMessage(ex.Actor.Name, region.Name, report),
		Details:          map[string]any{"battle": report},
	})

	if !report.AttackerWins {
		ex.Actor.MilitaryPower -= nation.AttackLossMilitary
		if ex.Actor.MilitaryPower < nation.MinMilitaryAfterLoss {
			ex.Actor.MilitaryPower = nation.MinMilitaryAfterLoss
		}
		ex.Actor.AdjustReputation(nation.AttackLossReputation)
		effects["military_power"] = ex.Actor.MilitaryPower
		return ok(effects, "The assault on %s was repelled", region.Name), nil
	}

	region.OwnerNation = ex.Actor.ID
	if err := u.Regions.Save(ctx, region); err != nil {
		return nation.ActionResult{}, err
	}
	ex.Actor.GainRegion(region.ID)
	ex.Actor.AdjustReputation(nation.AttackWinReputation)

	if defender != nil {
		defender.LoseRegion(region.ID)
		defender.AdjustReputation(nation.DefenderLossReputation)
		if err := u.Nations.Save(ctx, *defender); err != nil {
			return nation.ActionResult{}, err
		}
		if defender.Status == nation.StatusDefeated {
			ex.emit(nation.WorldEvent{
				Type:       nation.EventSystem,
				NationID:   defender.ID,
				NationName: defender.Name,
				Message:    fmt.Sprintf("%s has fallen: its last region was taken", defender.Name),
			})
		}
	}

	defenderID := ""
	if defender != nil {
		defenderID = defender.ID
	}
	ex.emit(nation.WorldEvent{
		Type:             nation.EventRegionCaptured,
		NationID:         ex.Actor.ID,
		NationName:       ex.Actor.Name,
		TargetNationID:   defenderID,
		TargetNationName: defenderName,
		RegionID:         region.ID,
		RegionName:       region.Name,
		Message:          fmt.Sprintf("%s captured %s", ex.Actor.Name, region.Name),
	})

	effects["captured"] = region.ID
	return ok(effects, "Victory! %s now controls %s", ex.Actor.Name, region.Name), nil
}

// handleDefend raises a controlled region's defense level for free.
func handleDefend(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	return boostDefense(ctx, u, ex, 0, nation.DefendBoost, "Reinforced the defenses of %s")
}

// handleFortify is the paid, stronger counterpart of defend.
func handleFortify(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	return boostDefense(ctx, u, ex, nation.FortifyCost, nation.FortifyBoost, "Fortified %s")
}

func boostDefense(ctx context.Context, u UseCase, ex *execution, cost, boost int, msgFormat string) (nation.ActionResult, error) {
	regionID := ex.Action.Params.Region
	if regionID == "" {
		regionID = ex.Actor.Capital
	}
	region, err := u.Regions.Get(ctx, regionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fail("Region not found: %s", regionID), nil
		}
		return nation.ActionResult{}, err
	}
	if region.OwnerNation != ex.Actor.ID {
		return fail("You do not control %s", region.Name), nil
	}
	if cost > 0 && !ex.Actor.SpendGold(cost) {
		return fail("Not enough gold: this costs %d", cost), nil
	}

	region.AdjustDefense(boost)
	if err := u.Regions.Save(ctx, region); err != nil {
		return nation.ActionResult{}, err
	}

	return ok(map[string]any{
		"region":        region.ID,
		"defense_level": region.DefenseLevel,
		"gold_spent":    cost,
	}, msgFormat+" (defense %d)", region.Name, region.DefenseLevel), nil
}

// handleRecruit converts gold into military power. The cost is charged even
// at the cap; the gain simply clamps.
func handleRecruit(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	if !ex.Actor.SpendGold(nation.RecruitCost) {
		return fail("Not enough gold: recruiting costs %d", nation.RecruitCost), nil
	}
	ex.Actor.AddMilitary(nation.RecruitBoost)

	return ok(map[string]any{
		"military_power": ex.Actor.MilitaryPower,
		"gold_spent":     nation.RecruitCost,
	}, "Recruited troops: military power is now %d", ex.Actor.MilitaryPower), nil
}

func attackBlockedByTreaty(ctx context.Context, u UseCase, attackerID, defenderID string) (bool, nation.TreatyType, error) {
	if u.Treaties == nil {
		return false, "", nil
	}
	treaties, err := u.Treaties.ListInvolving(ctx, attackerID)
	if err != nil {
		return false, "", err
	}
	for _, t := range treaties {
		if t.Status != nation.TreatyActive || !t.Involves(defenderID) {
			continue
		}
		if t.Type == nation.TreatyNonAggression || t.Type == nation.TreatyAlliance {
			return true, t.Type, nil
		}
	}
	return false, "", nil
}

func battleMessage(attacker, region string, report nation.BattleReport) string {
	if report.AttackerWins {
		return fmt.Sprintf("%s won the battle for %s (%.1f vs %.1f)", attacker, region, report.AttackScore, report.DefenseScore)
	}
	return fmt.Sprintf("%s lost the battle for %s (%.1f vs %.1f)", attacker, region, report.AttackScore, report.DefenseScore)
}
