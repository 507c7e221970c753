package action

import (
	"context"

	"nationsim/internal/domain/nation"
)

// handleSetTaxRate changes the flat national tax rate. The rate only takes
// effect when a tax action is next run.
func handleSetTaxRate(ctx context.Context, u UseCase, ex *execution) (nation.ActionResult, error) {
	rate := ex.Action.Params.Rate
	if rate == nil {
		return fail("set_tax_rate requires rate"), nil
	}
	if *rate < 0 || *rate > nation.MaxTaxRate {
		return fail("Tax rate must be between 0 and %d", nation.MaxTaxRate), nil
	}
	ex.Actor.TaxRate = *rate
	return ok(map[string]any{"tax_rate": *rate}, "Tax rate set to %d%%", *rate), nil
}
