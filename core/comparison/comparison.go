// Package comparison projects a cost breakdown onto every provider profile
// in the catalog and picks the best value.
package comparison

import (
	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

// Compare prices b on every provider. Providers are listed by name; the
// best value is the lowest total, ties going to the first name.
func Compare(b types.CostBreakdown, cat *catalog.Catalog) types.Comparison {
	baseline := b.Total()
	out := types.Comparison{
		Baseline:  types.NewMoney(baseline),
		Providers: make([]types.ProviderCost, 0, cat.Len()),
	}

	var best decimal.Decimal
	for i, p := range cat.Providers() {
		total := ProviderTotal(b, p)
		out.Providers = append(out.Providers, types.ProviderCost{
			Provider:   p.Name,
			Category:   p.Category,
			Cost:       types.NewMoney(total),
			Multiplier: types.NewMoney(ratio(total, baseline)),
		})
		// providers arrive sorted, so strict less keeps the first name on ties
		if i == 0 || total.LessThan(best) {
			best = total
			out.BestValue = p.Name
		}
	}
	return out
}

// ProviderTotal is the sum of each category scaled by the provider's
// multiplier, rounded to cents.
func ProviderTotal(b types.CostBreakdown, p *catalog.Provider) decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items() {
		total = total.Add(it.Amount.Mul(p.Multiplier(it.Category)))
	}
	return total.Round(types.MoneyPlaces)
}

func ratio(total, baseline decimal.Decimal) decimal.Decimal {
	if baseline.IsZero() {
		return decimal.NewFromInt(1)
	}
	return total.DivRound(baseline, types.MoneyPlaces)
}
