// Package cost - Category calculators and the cost model engine
// Every calculator is a pure function of the canonical record and its
// derived workload. The engine sums them into an ordered breakdown.
package cost

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

// Calculator prices one category
type Calculator func(c *types.Canonical, w sizing.Workload) decimal.Decimal

// Calculators maps every category to its calculator
var Calculators = map[types.Category]Calculator{
	types.CategoryCompute:     Compute,
	types.CategoryDatabase:    Database,
	types.CategoryCDN:         CDN,
	types.CategoryMessaging:   Messaging,
	types.CategorySecurity:    Security,
	types.CategoryMonitoring:  Monitoring,
	types.CategoryCICD:        CICD,
	types.CategoryMultiRegion: MultiRegion,
}

// Engine runs the category calculators
type Engine struct {
	calculators map[types.Category]Calculator
}

// NewEngine creates an engine with the standard calculators
func NewEngine() *Engine {
	return &Engine{calculators: Calculators}
}

// NewEngineWith creates an engine with replacement calculators. Categories
// missing from overrides use the standard calculator.
func NewEngineWith(overrides map[types.Category]Calculator) *Engine {
	calcs := make(map[types.Category]Calculator, len(Calculators))
	for k, v := range Calculators {
		calcs[k] = v
	}
	for k, v := range overrides {
		calcs[k] = v
	}
	return &Engine{calculators: calcs}
}

// Calculate prices c. A negative category is a defect and is reported as an
// InternalComputationError.
func (e *Engine) Calculate(c *types.Canonical) (types.CostBreakdown, error) {
	return e.CalculateWorkload(c, sizing.Derive(c))
}

// CalculateWorkload prices c against an already derived workload
func (e *Engine) CalculateWorkload(c *types.Canonical, w sizing.Workload) (types.CostBreakdown, error) {
	amounts := make(map[types.Category]decimal.Decimal, len(types.Categories))
	for _, cat := range types.Categories {
		calc, ok := e.calculators[cat]
		if !ok {
			return types.CostBreakdown{}, errors.Internal(string(cat), fmt.Errorf("no calculator registered"))
		}
		amt := calc(c, w)
		if amt.IsNegative() {
			return types.CostBreakdown{}, errors.Internal(string(cat), fmt.Errorf("negative amount %s", amt.StringFixed(types.MoneyPlaces)))
		}
		amounts[cat] = amt
	}
	return types.NewCostBreakdown(amounts), nil
}
