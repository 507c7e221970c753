package action

import (
	"context"
	"errors"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
	"nationsim/internal/domain/world"
)

// handleHarvest extracts a fixed share of a controlled region's stocks into
// the treasury. Only the gold share is coined; the other stocks are simply
// consumed.
func handleHarvest(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
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

	removed := region.Deplete(nation.HarvestPercent)
	harvested := ex.Now
	region.LastHarvested = &harvested
	if err := u.Regions.Save(ctx, region); err != nil {
		return nation.ActionResult{}, err
	}
	ex.Actor.Treasury += removed.Gold

	return ok(map[string]any{
		"region":    region.ID,
		"harvested": removed,
		"treasury":  ex.Actor.Treasury,
	}, "Harvested %s: +%d gold to the treasury", region.Name, removed.Gold), nil
}

// handleTrade is an immediate bilateral gold swap. Both sides must be able
// to cover their leg; total gold is conserved.
func handleTrade(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	p := ex.Action.Params
	if p.TargetNation == "" {
		return fail("trade requires target_nation"), nil
	}
	if p.TargetNation == ex.Actor.ID {
		return fail("Cannot trade with yourself"), nil
	}
	if p.OfferGold < 0 || p.RequestGold < 0 || (p.OfferGold == 0 && p.RequestGold == 0) {
		return fail("trade requires a positive offer_gold or request_gold"), nil
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
	if ex.Actor.Treasury < p.OfferGold {
		return fail("Not enough gold to offer %d", p.OfferGold), nil
	}
	if target.Treasury < p.RequestGold {
		return fail("%s cannot cover the requested %d gold", target.Name, p.RequestGold), nil
	}

	ex.Actor.Treasury += p.RequestGold - p.OfferGold
	target.Treasury += p.OfferGold - p.RequestGold
	if err := u.Nations.Save(ctx, target); err != nil {
		return nation.ActionResult{}, err
	}

	return ok(map[string]any{
		"offered":   p.OfferGold,
		"received":  p.RequestGold,
		"treasury":  ex.Actor.Treasury,
		"with":      target.ID,
		"with_name": target.Name,
	}, "Traded with %s: gave %d gold, received %d", target.Name, p.OfferGold, p.RequestGold), nil
}

// handleTax collects population-proportional gold across all owned regions.
// Rates above the threshold drive emigration in every taxed region.
func handleTax(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	regions, err := u.Regions.ListOwnedBy(ctx, ex.Actor.ID)
	if err != nil {
		return nation.ActionResult{}, err
	}
	if len(regions) == 0 {
		return fail("You control no regions to tax"), nil
	}

	rate := ex.Actor.TaxRate
	collected := 0
	unrest := rate > nation.HighTaxThreshold
	for i := range regions {
		collected += regions[i].Population * rate / 100
		if unrest {
			regions[i].ShrinkPopulation(nation.HighTaxPopLossPct)
			if err := u.Regions.Save(ctx, regions[i]); err != nil {
				return nation.ActionResult{}, err
			}
		}
	}
	ex.Actor.Treasury += collected

	effects := map[string]any{
		"collected": collected,
		"rate":      rate,
		"regions":   len(regions),
		"treasury":  ex.Actor.Treasury,
	}
	if unrest {
		effects["population_loss_pct"] = nation.HighTaxPopLossPct
		return ok(effects, "Collected %d gold at %d%%; the harsh rate drove people away", collected, rate), nil
	}
	return ok(effects, "Collected %d gold in taxes at %d%%", collected, rate), nil
}

func ownsAdjacentRegion(actor *nation.Nation, target world.Region) bool {
	for _, id := range target.AdjacentRegions {
		if actor.OwnsRegion(id) {
			return true
		}
	}
	return false
}
