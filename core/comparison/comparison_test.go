package comparison

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

func uniform(name string, m float64) catalog.Provider {
	mult := make(map[types.Category]decimal.Decimal)
	for _, c := range types.Categories {
		mult[c] = decimal.NewFromFloat(m)
	}
	return catalog.Provider{Name: name, Category: "Test", Multipliers: mult}
}

func breakdown(compute, database float64) types.CostBreakdown {
	return types.NewCostBreakdown(map[types.Category]decimal.Decimal{
		types.CategoryCompute:  decimal.NewFromFloat(compute),
		types.CategoryDatabase: decimal.NewFromFloat(database),
	})
}

func TestCompareAgainstDefaultCatalog(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	cmp := Compare(breakdown(200, 300), cat)
	require.Len(t, cmp.Providers, catalog.ExpectedProviders)
	assert.Equal(t, "500.00", cmp.Baseline.StringFixed(2))

	aws := cmp.Providers[0]
	assert.Equal(t, "AWS", aws.Provider)
	assert.Equal(t, "500.00", aws.Cost.StringFixed(2))
	assert.Equal(t, "1.00", aws.Multiplier.StringFixed(2))

	cheapest := cmp.Providers[0]
	for _, p := range cmp.Providers {
		if p.Cost.LessThan(cheapest.Cost.Decimal) {
			cheapest = p
		}
	}
	assert.Equal(t, cheapest.Provider, cmp.BestValue)
}

func TestBestValueTieBreaksByName(t *testing.T) {
	cat := catalog.NewCatalog()
	cat.Register(uniform("Zeta", 0.5))
	cat.Register(uniform("Alpha", 0.5))
	cat.Register(uniform("Mid", 0.9))

	cmp := Compare(breakdown(100, 0), cat)
	assert.Equal(t, "Alpha", cmp.BestValue)
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, []string{
		cmp.Providers[0].Provider, cmp.Providers[1].Provider, cmp.Providers[2].Provider,
	})
	assert.Equal(t, "0.50", cmp.Providers[0].Multiplier.StringFixed(2))
}

func TestZeroBaselineMultiplier(t *testing.T) {
	cat := catalog.NewCatalog()
	cat.Register(uniform("Only", 2))

	cmp := Compare(types.NewCostBreakdown(nil), cat)
	require.Len(t, cmp.Providers, 1)
	assert.True(t, cmp.Providers[0].Cost.IsZero())
	assert.Equal(t, "1.00", cmp.Providers[0].Multiplier.StringFixed(2))
}

func TestProviderTotalPerCategory(t *testing.T) {
	p := uniform("Mixed", 1)
	p.Multipliers[types.CategoryDatabase] = decimal.NewFromFloat(0.5)

	got := ProviderTotal(breakdown(100, 100), &p)
	assert.Equal(t, "150.00", got.StringFixed(2))
}
