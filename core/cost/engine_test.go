package cost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

// scenarioOne is a monolith with 50k DAU, RDS with one replica, backups,
// multi-AZ, 2 GB Redis, CDN with edge functions and WAF with SOC2.
func scenarioOne() *types.Canonical {
	return &types.Canonical{
		Architecture: types.ArchitectureMonolith,
		Currency:     types.CurrencyUSD,
		Traffic: types.Traffic{
			DailyActiveUsers:      50_000,
			MonthlyActiveUsers:    150_000,
			APIRequestsPerUser:    50,
			StoragePerUserMB:      10,
			PeakTrafficMultiplier: 1.5,
			GrowthRateYoY:         0.1,
		},
		Database: types.Database{
			Engine:        types.DatabaseRDS,
			ReadReplicas:  1,
			BackupEnabled: true,
			MultiAZ:       true,
			Cache:         types.Some(types.CacheLayer{Engine: types.CacheRedis, SizeGB: 2}),
		},
		CDN:         types.CDN{Enabled: true, Provider: types.CDNCloudFront, DataTransferGB: 500, EdgeFunctions: true},
		Messaging:   types.Messaging{Type: types.MessagingSQS, RetentionDays: 7},
		Security:    types.Security{WAFEnabled: true, Compliance: []types.ComplianceStandard{types.ComplianceSOC2}},
		Monitoring:  types.Monitoring{Provider: types.MonitoringCloudWatch, LogRetentionDays: 7},
		CICD:        types.CICD{Provider: types.CICDGitHubActions, BuildsPerMonth: 100},
		MultiRegion: types.MultiRegion{Regions: 1, ReplicationType: types.ReplicationActivePassive, RTOMinutes: 60, RPOMinutes: 60},
	}
}

func TestScenarioOneCacheAndCDNAddCost(t *testing.T) {
	e := NewEngine()

	full, err := e.Calculate(scenarioOne())
	require.NoError(t, err)
	assert.True(t, full.Total().IsPositive())

	c := scenarioOne()
	c.CDN.Enabled = false
	c.Database.Cache = types.None[types.CacheLayer]()
	lean, err := e.Calculate(c)
	require.NoError(t, err)

	assert.True(t, full.Total().GreaterThan(lean.Total()), "full=%s lean=%s", full.Total(), lean.Total())
	assert.True(t, lean.Amount(types.CategoryCDN).IsZero())
}

func TestScenarioTwoArchitectureChangesTotal(t *testing.T) {
	e := NewEngine()

	mono, err := e.Calculate(scenarioOne())
	require.NoError(t, err)
	micro, err := e.Calculate(scenarioOne().WithArchitecture(types.ArchitectureMicroservices))
	require.NoError(t, err)

	assert.False(t, mono.Total().Equal(micro.Total()))
	assert.True(t, micro.Amount(types.CategoryCompute).GreaterThan(mono.Amount(types.CategoryCompute)))
}

func TestComputeMonotonicInDAU(t *testing.T) {
	for _, arch := range types.Architectures {
		t.Run(string(arch), func(t *testing.T) {
			prev := decimal.Zero
			for _, dau := range []int64{0, 1, 100, 5_000, 50_000, 500_000, 5_000_000, 50_000_000} {
				c := scenarioOne().WithArchitecture(arch)
				c.Traffic.DailyActiveUsers = dau
				got := Compute(c, sizing.Derive(c))
				assert.True(t, got.GreaterThanOrEqual(prev), "dau=%d got=%s prev=%s", dau, got, prev)
				prev = got
			}
		})
	}
}

func TestDisabledBlocksPriceToZero(t *testing.T) {
	c := scenarioOne()
	c.CDN = types.CDN{Enabled: false, Provider: types.CDNAkamai, DataTransferGB: 10_000, VideoStreaming: true}
	c.Messaging = types.Messaging{Enabled: false, Type: types.MessagingKafka, MessagesPerDay: 1_000_000, DLQEnabled: true}
	c.MultiRegion = types.MultiRegion{Enabled: true, Regions: 1, ReplicationType: types.ReplicationActiveActive}
	w := sizing.Derive(c)

	assert.True(t, CDN(c, w).IsZero())
	assert.True(t, Messaging(c, w).IsZero())
	assert.True(t, MultiRegion(c, w).IsZero())
}

func TestSecurityFixedFees(t *testing.T) {
	c := scenarioOne()
	c.Security = types.Security{
		WAFEnabled:      true,
		VPNEnabled:      true,
		DDoSProtection:  true,
		SSLCertificates: 2,
		Compliance:      []types.ComplianceStandard{types.ComplianceHIPAA, types.ComplianceSOC2},
		SecretsManager:  true,
	}
	// 25 + 36.5 + 200 + 2*5 + 750 + 500 + 15
	assert.Equal(t, "1536.50", Security(c, sizing.Workload{}).StringFixed(2))
}

func TestDatabaseSurcharges(t *testing.T) {
	base := scenarioOne()
	base.Database = types.Database{Engine: types.DatabaseRDS}
	w := sizing.Derive(base)
	plain := Database(base, w)

	for name, mutate := range map[string]func(db *types.Database){
		"replica": func(db *types.Database) { db.ReadReplicas = 2 },
		"backup":  func(db *types.Database) { db.BackupEnabled = true },
		"multiaz": func(db *types.Database) { db.MultiAZ = true },
		"cache":   func(db *types.Database) { db.Cache = types.Some(types.CacheLayer{Engine: types.CacheMemcached, SizeGB: 1}) },
	} {
		t.Run(name, func(t *testing.T) {
			db := base.Database
			mutate(&db)
			c := base.WithDatabase(db)
			assert.True(t, Database(c, w).GreaterThan(plain))
		})
	}
}

func TestMultiRegionReplicationAndRecovery(t *testing.T) {
	c := scenarioOne()
	c.MultiRegion = types.MultiRegion{
		Enabled: true, Regions: 3, ReplicationType: types.ReplicationActivePassive,
		CrossRegionTransferGB: 100, RTOMinutes: 60, RPOMinutes: 60,
	}
	w := sizing.Derive(c)
	passive := MultiRegion(c, w)
	require.True(t, passive.IsPositive())

	active := c.MultiRegion
	active.ReplicationType = types.ReplicationActiveActive
	assert.True(t, MultiRegion(c.WithMultiRegion(active), w).GreaterThan(passive))

	tight := c.MultiRegion
	tight.RTOMinutes, tight.RPOMinutes = 5, 1
	assert.True(t, MultiRegion(c.WithMultiRegion(tight), w).GreaterThan(passive))
}

func TestUrgency(t *testing.T) {
	assert.Equal(t, "3.00", Urgency(0, 0).StringFixed(2))
	assert.Equal(t, "2.00", Urgency(30, 30).StringFixed(2))
	assert.True(t, Urgency(10_000, 10_000).LessThan(decimal.NewFromFloat(1.01)))
}

func TestMonitoringScalesWithRetention(t *testing.T) {
	c := scenarioOne()
	w := sizing.Derive(c)
	short := Monitoring(c, w)

	m := c.Monitoring
	m.LogRetentionDays = 365
	assert.True(t, Monitoring(c.WithMonitoring(m), w).GreaterThan(short))
}

func TestBreakdownOrderAndRounding(t *testing.T) {
	b, err := NewEngine().Calculate(scenarioOne())
	require.NoError(t, err)

	items := b.Items()
	require.Len(t, items, len(types.Categories))
	sum := decimal.Zero
	for i, it := range items {
		assert.Equal(t, types.Categories[i], it.Category)
		assert.True(t, it.Amount.Equal(it.Amount.Round(2)))
		sum = sum.Add(it.Amount)
	}
	assert.True(t, sum.Equal(b.Total()))
}

func TestNegativeAmountIsInternalError(t *testing.T) {
	e := NewEngineWith(map[types.Category]Calculator{
		types.CategoryCDN: func(*types.Canonical, sizing.Workload) decimal.Decimal { return decimal.NewFromInt(-1) },
	})
	_, err := e.Calculate(scenarioOne())
	require.Error(t, err)

	var ierr *errors.InternalComputationError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "cdn", ierr.Stage)
	assert.Equal(t, 500, errors.HTTPStatus(err))
}

func TestCalculateDeterministic(t *testing.T) {
	a, err := NewEngine().Calculate(scenarioOne())
	require.NoError(t, err)
	b, err := NewEngine().Calculate(scenarioOne())
	require.NoError(t, err)

	ja, _ := a.MarshalJSON()
	jb, _ := b.MarshalJSON()
	assert.Equal(t, string(ja), string(jb))
}
