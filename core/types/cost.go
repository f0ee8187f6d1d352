package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every monetary value is rounded to
const MoneyPlaces = 2

// Category is one cost dimension contributing to the total
type Category string

const (
	CategoryCompute     Category = "compute"
	CategoryDatabase    Category = "database"
	CategoryCDN         Category = "cdn"
	CategoryMessaging   Category = "messaging"
	CategorySecurity    Category = "security"
	CategoryMonitoring  Category = "monitoring"
	CategoryCICD        Category = "cicd"
	CategoryMultiRegion Category = "multi_region"
)

// Categories is the fixed order of line items in every breakdown
var Categories = []Category{
	CategoryCompute,
	CategoryDatabase,
	CategoryCDN,
	CategoryMessaging,
	CategorySecurity,
	CategoryMonitoring,
	CategoryCICD,
	CategoryMultiRegion,
}

// Money is a monetary amount that serializes as a JSON number with two
// decimal places.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(MoneyPlaces)}
}

// MarshalJSON emits an unquoted fixed-point number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(MoneyPlaces)), nil
}

// UnmarshalJSON accepts both numbers and quoted numbers
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// LineItem is one category's monthly cost
type LineItem struct {
	Category Category
	Amount   decimal.Decimal
}

// CostBreakdown is an ordered, immutable set of category costs. Total is the
// sum of the rounded line items.
type CostBreakdown struct {
	items []LineItem
	total decimal.Decimal
}

// NewCostBreakdown rounds each amount to cents and orders them by Categories.
// Missing categories are zero; unknown categories are ignored.
func NewCostBreakdown(amounts map[Category]decimal.Decimal) CostBreakdown {
	b := CostBreakdown{items: make([]LineItem, 0, len(Categories))}
	for _, c := range Categories {
		amt := amounts[c].Round(MoneyPlaces)
		b.items = append(b.items, LineItem{Category: c, Amount: amt})
		b.total = b.total.Add(amt)
	}
	return b
}

// Items returns a copy of the line items in breakdown order
func (b CostBreakdown) Items() []LineItem {
	return append([]LineItem(nil), b.items...)
}

// Amount returns the cost of one category
func (b CostBreakdown) Amount(c Category) decimal.Decimal {
	for _, it := range b.items {
		if it.Category == c {
			return it.Amount
		}
	}
	return decimal.Zero
}

// Total returns the monthly total
func (b CostBreakdown) Total() decimal.Decimal {
	return b.total
}

// MarshalJSON writes the categories in breakdown order followed by "total"
func (b CostBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, it := range b.items {
		fmt.Fprintf(&buf, "%q:%s,", string(it.Category), it.Amount.StringFixed(MoneyPlaces))
	}
	fmt.Fprintf(&buf, "%q:%s}", "total", b.total.StringFixed(MoneyPlaces))
	return buf.Bytes(), nil
}

// UnmarshalJSON rebuilds a breakdown from its JSON form. The total is
// recomputed from the items.
func (b *CostBreakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amounts := make(map[Category]decimal.Decimal, len(raw))
	for k, v := range raw {
		amounts[Category(k)] = v
	}
	*b = NewCostBreakdown(amounts)
	return nil
}
