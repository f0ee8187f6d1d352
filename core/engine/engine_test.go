package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/cost"
	"github.com/ankitbhatnagartech/archcost/core/normalize"
	"github.com/ankitbhatnagartech/archcost/core/optimize"
	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/core/viability"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

const scenarioOne = `{
  "architecture": "monolith",
  "traffic": {"daily_active_users": 50000},
  "database": {"type": "rds", "read_replicas": 1, "backup_enabled": true, "multi_az": true,
               "cache_type": "redis", "cache_size_gb": 2},
  "cdn": {"enabled": true, "data_transfer_gb": 500, "edge_functions": true},
  "security": {"waf_enabled": true, "compliance": ["SOC2"]}
}`

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return New(cat, zap.NewNop(), opts...)
}

func request(t *testing.T, body string) *types.EstimateRequest {
	t.Helper()
	req, err := normalize.DecodeRequest(strings.NewReader(body))
	require.NoError(t, err)
	return req
}

func TestRunScenarioOne(t *testing.T) {
	e := newEngine(t)
	p, resp, err := e.Run(request(t, scenarioOne))
	require.NoError(t, err)

	assert.Len(t, string(p.Fingerprint), 64)
	assert.Equal(t, types.ArchitectureMonolith, resp.Architecture)
	assert.Equal(t, types.CurrencyUSD, resp.Currency)
	assert.True(t, resp.MonthlyCost.Total().IsPositive())
	assert.True(t, resp.AnnualCost.Equal(resp.MonthlyCost.Total().Mul(decimal.NewFromInt(12))))
	assert.Len(t, resp.MultiCloudComparison.Providers, catalog.ExpectedProviders)
	assert.Len(t, resp.ScalingProjection, 3)
	assert.Len(t, resp.Infrastructure, 9)
	assert.True(t, resp.ScalingProjection[0].Cost.Equal(resp.AnnualCost.Decimal))
}

func TestEstimateIsDeterministic(t *testing.T) {
	e := newEngine(t)
	p1, r1, err := e.Run(request(t, scenarioOne))
	require.NoError(t, err)
	p2, r2, err := newEngine(t).Run(request(t, scenarioOne))
	require.NoError(t, err)

	assert.Equal(t, p1.Fingerprint, p2.Fingerprint)

	b1, err := json.Marshal(r1)
	require.NoError(t, err)
	b2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestScenarioTwoArchitectureOnly(t *testing.T) {
	e := newEngine(t)
	mono, monoResp, err := e.Run(request(t, `{"architecture":"monolith","traffic":{"daily_active_users":20000}}`))
	require.NoError(t, err)
	micro, microResp, err := e.Run(request(t, `{"architecture":"microservices","traffic":{"daily_active_users":20000}}`))
	require.NoError(t, err)

	assert.NotEqual(t, mono.Fingerprint, micro.Fingerprint)
	assert.False(t, monoResp.MonthlyCost.Total().Equal(microResp.MonthlyCost.Total()))
}

func TestScenarioThreeNoFundingNoRevenue(t *testing.T) {
	_, resp, err := newEngine(t).Run(request(t, `{"architecture":"serverless",
		"traffic":{"daily_active_users":1000,"funding_available":0,"revenue_per_user_monthly":0}}`))
	require.NoError(t, err)

	for _, key := range []string{viability.KeyRunwayMonths, viability.KeyCostToRevenue} {
		m, ok := resp.Metric(key)
		require.True(t, ok, key)
		assert.False(t, m.Applicable, key)
		assert.Nil(t, m.Value, key)
		assert.Equal(t, types.NotApplicable, m.Display, key)
	}
}

func TestNestedBlocksShareFingerprint(t *testing.T) {
	e := newEngine(t)
	top, err := e.Prepare(request(t, `{"architecture":"hybrid","traffic":{"daily_active_users":10},
		"messaging":{"enabled":true,"messages_per_day":1000}}`))
	require.NoError(t, err)
	nested, err := e.Prepare(request(t, `{"architecture":"hybrid","traffic":{"daily_active_users":10,
		"messaging":{"enabled":true,"messages_per_day":1000}}}`))
	require.NoError(t, err)

	assert.Equal(t, top.Fingerprint, nested.Fingerprint)
}

func TestValidationFailsBeforeComputation(t *testing.T) {
	calls := 0
	spy := cost.NewEngineWith(map[types.Category]cost.Calculator{
		types.CategoryCompute: func(c *types.Canonical, w sizing.Workload) decimal.Decimal {
			calls++
			return cost.Compute(c, w)
		},
	})

	_, _, err := newEngine(t, WithCostEngine(spy)).Run(request(t, `{"architecture":"mainframe","traffic":{"daily_active_users":1}}`))
	require.Error(t, err)
	assert.Equal(t, 400, errors.HTTPStatus(err))
	assert.Zero(t, calls)
}

func TestPanicBecomesInternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	cat, err := catalog.Default()
	require.NoError(t, err)

	boom := cost.NewEngineWith(map[types.Category]cost.Calculator{
		types.CategorySecurity: func(*types.Canonical, sizing.Workload) decimal.Decimal { panic("rate table corrupted") },
	})
	e := New(cat, zap.New(core), WithCostEngine(boom))

	p, err := e.Prepare(request(t, scenarioOne))
	require.NoError(t, err)

	resp, err := e.Estimate(p.Canonical)
	assert.Nil(t, resp)

	var ierr *errors.InternalComputationError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "cost", ierr.Stage)
	assert.Equal(t, 500, errors.HTTPStatus(err))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "estimation panicked", logs.All()[0].Message)
}

func TestCustomAdvisor(t *testing.T) {
	only := optimize.New([]optimize.Rule{{
		ID:       "always",
		Category: types.CategoryCompute,
		Applies:  func(optimize.Input) bool { return true },
		Suggest: func(in optimize.Input) types.Suggestion {
			return types.Suggestion{
				Title:                  "Always",
				EstimatedMonthlySaving: types.NewMoney(in.Breakdown.Amount(types.CategoryCompute).Mul(decimal.NewFromInt(2))),
			}
		},
	}})

	_, resp, err := newEngine(t, WithAdvisor(only)).Run(request(t, scenarioOne))
	require.NoError(t, err)

	require.Len(t, resp.OptimizationSuggestions, 1)
	s := resp.OptimizationSuggestions[0]
	assert.Equal(t, "always", s.ID)
	// capped at the category it draws from
	assert.True(t, s.EstimatedMonthlySaving.Equal(resp.MonthlyCost.Amount(types.CategoryCompute)))
}

func TestAdvisorPanicReportsStage(t *testing.T) {
	broken := optimize.New([]optimize.Rule{{
		ID:       "broken",
		Category: types.CategoryDatabase,
		Applies:  func(optimize.Input) bool { panic("nil threshold") },
	}})

	_, _, err := newEngine(t, WithAdvisor(broken)).Run(request(t, scenarioOne))

	var ierr *errors.InternalComputationError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "optimize", ierr.Stage)
}
