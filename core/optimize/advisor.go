// Package optimize - Rule-based savings advisor
// Rules are independent predicate and suggestion pairs evaluated in
// declaration order. Output order is declaration order, never by saving.
package optimize

import (
	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

// Input is what every rule sees
type Input struct {
	Canonical *types.Canonical
	Workload  sizing.Workload
	Breakdown types.CostBreakdown
}

// Rule is one optimization check. Suggest is only called when Applies
// returns true.
type Rule struct {
	ID string

	// Category is the line item the saving draws from. Estimated savings
	// are clamped to it.
	Category types.Category

	Applies func(Input) bool
	Suggest func(Input) types.Suggestion
}

// Advisor evaluates an ordered rule list
type Advisor struct {
	rules []Rule
}

// New creates an advisor over rules, kept in the given order
func New(rules []Rule) *Advisor {
	return &Advisor{rules: append([]Rule(nil), rules...)}
}

// Default creates an advisor over the standard rules
func Default() *Advisor {
	return New(Rules)
}

// Analyze returns the triggered suggestions in rule order and the total
// potential saving, which never exceeds the monthly total.
func (a *Advisor) Analyze(in Input) ([]types.Suggestion, types.Money) {
	suggestions := make([]types.Suggestion, 0, len(a.rules))
	total := decimal.Zero

	for _, r := range a.rules {
		if !r.Applies(in) {
			continue
		}
		s := r.Suggest(in)
		s.ID = r.ID
		saving := clamp(s.EstimatedMonthlySaving.Decimal, in.Breakdown.Amount(r.Category))
		s.EstimatedMonthlySaving = types.NewMoney(saving)

		suggestions = append(suggestions, s)
		total = total.Add(s.EstimatedMonthlySaving.Decimal)
	}

	if total.GreaterThan(in.Breakdown.Total()) {
		total = in.Breakdown.Total()
	}
	return suggestions, types.NewMoney(total)
}

func clamp(v, ceiling decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(ceiling) {
		return ceiling
	}
	return v
}
