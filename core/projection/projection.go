// Package projection compounds a monthly cost over a fixed horizon.
package projection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/types"
)

// HorizonYears is the number of projected years
const HorizonYears = 3

var monthsPerYear = decimal.NewFromInt(12)

// Project returns year n's annual cost as 12 × monthly × (1+growth)^n for
// n = 0..HorizonYears-1, rounded to cents.
func Project(monthly decimal.Decimal, growth float64) []types.YearProjection {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(growth))
	annual := monthly.Mul(monthsPerYear)

	out := make([]types.YearProjection, 0, HorizonYears)
	compound := decimal.NewFromInt(1)
	for n := 0; n < HorizonYears; n++ {
		out = append(out, types.YearProjection{
			Year: fmt.Sprintf("Year %d", n+1),
			Cost: types.NewMoney(annual.Mul(compound)),
		})
		compound = compound.Mul(factor)
	}
	return out
}
