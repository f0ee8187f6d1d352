// Package engine provides the estimation engine.
// The HTTP handler and the CLI are thin wrappers around it.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/comparison"
	"github.com/ankitbhatnagartech/archcost/core/cost"
	"github.com/ankitbhatnagartech/archcost/core/determinism"
	"github.com/ankitbhatnagartech/archcost/core/normalize"
	"github.com/ankitbhatnagartech/archcost/core/optimize"
	"github.com/ankitbhatnagartech/archcost/core/projection"
	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/core/viability"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

var annualMonths = decimal.NewFromInt(12)

// Engine composes the cost model, comparator, advisor, projector and
// viability analyzer. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	costs   *cost.Engine
	advisor *optimize.Advisor
	logger  *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithCostEngine replaces the cost model
func WithCostEngine(c *cost.Engine) Option {
	return func(e *Engine) { e.costs = c }
}

// WithAdvisor replaces the optimization advisor
func WithAdvisor(a *optimize.Advisor) Option {
	return func(e *Engine) { e.advisor = a }
}

// New creates an engine over a provider catalog
func New(cat *catalog.Catalog, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		catalog: cat,
		costs:   cost.NewEngine(),
		advisor: optimize.Default(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the provider catalog the engine compares against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Prepared is a normalized request and its fingerprint
type Prepared struct {
	Canonical   *types.Canonical
	Fingerprint determinism.Fingerprint
}

// Prepare normalizes req and fingerprints it. No cost is computed.
func (e *Engine) Prepare(req *types.EstimateRequest) (*Prepared, error) {
	c, err := normalize.Normalize(req)
	if err != nil {
		return nil, err
	}
	return &Prepared{Canonical: c, Fingerprint: determinism.FingerprintOf(c)}, nil
}

// Estimate computes the full response for a canonical record. A panic in
// any stage is reported as an InternalComputationError.
func (e *Engine) Estimate(c *types.Canonical) (resp *types.EstimateResponse, err error) {
	stage := "sizing"
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("estimation panicked",
				zap.String("stage", stage),
				zap.Any("panic", r),
			)
			resp = nil
			err = errors.Internal(stage, fmt.Errorf("panic: %v", r))
		}
	}()

	w := sizing.Derive(c)

	stage = "cost"
	breakdown, err := e.costs.CalculateWorkload(c, w)
	if err != nil {
		return nil, err
	}
	total := breakdown.Total()

	stage = "optimize"
	suggestions, potential := e.advisor.Analyze(optimize.Input{Canonical: c, Workload: w, Breakdown: breakdown})

	stage = "comparison"
	cmp := comparison.Compare(breakdown, e.catalog)

	stage = "projection"
	years := projection.Project(total, c.Traffic.GrowthRateYoY)

	stage = "viability"
	metrics := viability.Analyze(total, c.Traffic, c.Currency)

	resp = &types.EstimateResponse{
		Architecture:            c.Architecture,
		Currency:                c.Currency,
		MonthlyCost:             breakdown,
		AnnualCost:              types.NewMoney(total.Mul(annualMonths)),
		Infrastructure:          sizing.Requirements(w, c),
		OptimizationSuggestions: suggestions,
		TotalPotentialSavings:   potential,
		MultiCloudComparison:    cmp,
		ScalingProjection:       years,
		BusinessMetrics:         metrics,
	}

	e.logger.Debug("estimate computed",
		zap.String("architecture", string(c.Architecture)),
		zap.String("total", total.StringFixed(types.MoneyPlaces)),
		zap.Int("suggestions", len(suggestions)),
		zap.String("best_value", cmp.BestValue),
	)
	return resp, nil
}

// Run prepares and estimates req in one call
func (e *Engine) Run(req *types.EstimateRequest) (*Prepared, *types.EstimateResponse, error) {
	p, err := e.Prepare(req)
	if err != nil {
		return nil, nil, err
	}
	resp, err := e.Estimate(p.Canonical)
	if err != nil {
		return p, nil, err
	}
	return p, resp, nil
}
