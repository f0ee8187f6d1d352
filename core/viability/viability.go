// Package viability derives business metrics from the monthly cost and the
// traffic profile. A metric whose denominator is zero is reported as not
// applicable instead of being computed.
package viability

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/types"
)

// Metric keys, in output order
const (
	KeyMonthlyRevenue = "monthly_revenue"
	KeyMonthlyProfit  = "monthly_profit"
	KeyCostToRevenue  = "cost_to_revenue_ratio"
	KeyRunwayMonths   = "runway_months"
	KeyBreakevenDAU   = "breakeven_dau"
	KeyCostPerUser    = "cost_per_user"
)

var hundred = decimal.NewFromInt(100)

// Analyze returns the business metrics for a monthly cost
func Analyze(monthly decimal.Decimal, t types.Traffic, currency types.Currency) []types.Metric {
	dau := decimal.NewFromInt(t.DailyActiveUsers)
	perUser := decimal.NewFromFloat(t.RevenuePerUserMonthly)
	funding := decimal.NewFromFloat(t.FundingAvailable)
	revenue := perUser.Mul(dau)

	money := func(v decimal.Decimal) string {
		return fmt.Sprintf("%s %s", currency, v.StringFixed(types.MoneyPlaces))
	}

	metrics := []types.Metric{
		applicable(KeyMonthlyRevenue, "Monthly revenue", revenue, money),
		applicable(KeyMonthlyProfit, "Monthly profit", revenue.Sub(monthly), money),
	}

	if revenue.IsPositive() {
		metrics = append(metrics, applicable(KeyCostToRevenue, "Infrastructure cost to revenue", monthly.Div(revenue), percent))
	} else {
		metrics = append(metrics, notApplicable(KeyCostToRevenue, "Infrastructure cost to revenue"))
	}

	if funding.IsPositive() && monthly.IsPositive() {
		metrics = append(metrics, applicable(KeyRunwayMonths, "Runway", funding.Div(monthly), months))
	} else {
		metrics = append(metrics, notApplicable(KeyRunwayMonths, "Runway"))
	}

	if perUser.IsPositive() {
		users := monthly.Div(perUser).Ceil()
		metrics = append(metrics, applicable(KeyBreakevenDAU, "Breakeven daily active users", users, count))
	} else {
		metrics = append(metrics, notApplicable(KeyBreakevenDAU, "Breakeven daily active users"))
	}

	if dau.IsPositive() {
		metrics = append(metrics, applicable(KeyCostPerUser, "Cost per daily active user", monthly.Div(dau), money))
	} else {
		metrics = append(metrics, notApplicable(KeyCostPerUser, "Cost per daily active user"))
	}

	return metrics
}

// applicable rounds the value to cents; display sees the unrounded value.
func applicable(key, label string, v decimal.Decimal, display func(decimal.Decimal) string) types.Metric {
	m := types.NewMoney(v)
	return types.Metric{
		Key:        key,
		Label:      label,
		Value:      &m,
		Display:    display(v),
		Applicable: true,
	}
}

func notApplicable(key, label string) types.Metric {
	return types.Metric{Key: key, Label: label, Display: types.NotApplicable}
}

// percent shows a ratio as a percentage
func percent(v decimal.Decimal) string {
	return v.Mul(hundred).StringFixed(types.MoneyPlaces) + "%"
}

func months(v decimal.Decimal) string {
	return v.StringFixed(1) + " months"
}

func count(v decimal.Decimal) string {
	return v.StringFixed(0)
}
