package types

// EstimateResponse is the complete estimate. It holds nothing that varies
// between two computations of the same Canonical record, so its encoding is
// byte-identical across recomputation.
type EstimateResponse struct {
	Architecture Architecture  `json:"architecture"`
	Currency     Currency      `json:"currency"`
	MonthlyCost  CostBreakdown `json:"monthly_cost"`
	AnnualCost   Money         `json:"annual_cost"`

	Infrastructure []Requirement `json:"infrastructure"`

	OptimizationSuggestions []Suggestion `json:"optimization_suggestions"`
	TotalPotentialSavings   Money        `json:"total_potential_savings"`

	MultiCloudComparison Comparison `json:"multi_cloud_comparison"`

	ScalingProjection []YearProjection `json:"scaling_projection"`

	BusinessMetrics []Metric `json:"business_metrics"`
}

// Requirement is one line of derived infrastructure sizing
type Requirement struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Suggestion is an optimization opportunity
type Suggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Saving is a human-readable savings range, e.g. "20-30%"
	Saving                 string `json:"saving"`
	EstimatedMonthlySaving Money  `json:"estimated_monthly_saving"`
}

// ProviderCost is one provider's projected total
type ProviderCost struct {
	Provider   string `json:"provider"`
	Category   string `json:"category"`
	Cost       Money  `json:"cost"`
	Multiplier Money  `json:"multiplier"`
}

// Comparison is the multi-provider projection of a breakdown
type Comparison struct {
	Baseline  Money          `json:"baseline"`
	BestValue string         `json:"best_value"`
	Providers []ProviderCost `json:"providers"`
}

// YearProjection is the annualized cost for one year of the horizon
type YearProjection struct {
	Year string `json:"year"`
	Cost Money  `json:"cost"`
}

// NotApplicable is the display value of a metric without a defined value
const NotApplicable = "N/A"

// Metric is a labelled business figure. Value is nil when the metric is not
// applicable, e.g. a ratio whose denominator is zero.
type Metric struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Value      *Money `json:"value"`
	Display    string `json:"display"`
	Applicable bool   `json:"applicable"`
}

// Metric looks up a business metric by key
func (r *EstimateResponse) Metric(key string) (Metric, bool) {
	for _, m := range r.BusinessMetrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}
