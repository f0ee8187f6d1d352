package optimize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/cost"
	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

// Thresholds used by the standard rules
const (
	CachingRequestThreshold   = 10_000_000
	CDNRequestThreshold       = 1_000_000
	ReplicaReadRPSThreshold   = 100
	MicroservicesDAUThreshold = 10_000
	ReservedComputeThreshold  = 200
	LogRetentionTarget        = 30
	SpikyPeakThreshold        = 3
)

var (
	cachingShare  = decimal.NewFromFloat(0.25)
	cdnShare      = decimal.NewFromFloat(0.15)
	reservedShare = decimal.NewFromFloat(0.30)
)

// Rules is the standard rule list in declaration order
var Rules = []Rule{
	{
		ID:       "add_caching_layer",
		Category: types.CategoryDatabase,
		Applies: func(in Input) bool {
			return !in.Canonical.Database.Cache.Present() && in.Workload.MonthlyRequests > CachingRequestThreshold
		},
		Suggest: func(in Input) types.Suggestion {
			return types.Suggestion{
				Title:                  "Add a caching layer",
				Description:            fmt.Sprintf("%.0fM requests a month reach the database directly. A Redis cache absorbs repeated reads.", in.Workload.MonthlyRequests/1e6),
				Saving:                 "20-30%",
				EstimatedMonthlySaving: share(in, types.CategoryDatabase, cachingShare),
			}
		},
	},
	{
		ID:       "trim_read_replicas",
		Category: types.CategoryDatabase,
		Applies: func(in Input) bool {
			n := in.Canonical.Database.ReadReplicas
			return n > 0 && in.Workload.PeakRPS/float64(n) < ReplicaReadRPSThreshold
		},
		Suggest: func(in Input) types.Suggestion {
			db := in.Canonical.Database
			fewer := db
			fewer.ReadReplicas--
			saving := recalc(in, cost.Database, in.Canonical.WithDatabase(fewer))
			return types.Suggestion{
				Title:                  "Reduce read replicas",
				Description:            fmt.Sprintf("Peak traffic of %.1f RPS does not need %d read replica(s). Removing one keeps headroom.", in.Workload.PeakRPS, db.ReadReplicas),
				Saving:                 "one replica",
				EstimatedMonthlySaving: types.NewMoney(saving),
			}
		},
	},
	{
		ID:       "enable_cdn",
		Category: types.CategoryCompute,
		Applies: func(in Input) bool {
			return !in.Canonical.CDN.Enabled && in.Workload.MonthlyRequests > CDNRequestThreshold
		},
		Suggest: func(in Input) types.Suggestion {
			return types.Suggestion{
				Title:                  "Serve static content from a CDN",
				Description:            "Offloading static assets to edge caches reduces origin load and egress.",
				Saving:                 "10-20%",
				EstimatedMonthlySaving: share(in, types.CategoryCompute, cdnShare),
			}
		},
	},
	{
		ID:       "consolidate_microservices",
		Category: types.CategoryCompute,
		Applies: func(in Input) bool {
			c := in.Canonical
			return c.Architecture == types.ArchitectureMicroservices && c.Traffic.DailyActiveUsers < MicroservicesDAUThreshold
		},
		Suggest: func(in Input) types.Suggestion {
			saving := recalc(in, cost.Compute, in.Canonical.WithArchitecture(types.ArchitectureMonolith))
			return types.Suggestion{
				Title:                  "Consolidate microservices",
				Description:            fmt.Sprintf("At %d daily users the service mesh and per-service floor cost more than they return. A modular monolith is cheaper.", in.Canonical.Traffic.DailyActiveUsers),
				Saving:                 "30-50%",
				EstimatedMonthlySaving: types.NewMoney(saving),
			}
		},
	},
	{
		ID:       "reserved_capacity",
		Category: types.CategoryCompute,
		Applies: func(in Input) bool {
			return in.Canonical.Architecture != types.ArchitectureServerless &&
				in.Breakdown.Amount(types.CategoryCompute).GreaterThan(decimal.NewFromInt(ReservedComputeThreshold))
		},
		Suggest: func(in Input) types.Suggestion {
			return types.Suggestion{
				Title:                  "Commit to reserved capacity",
				Description:            "Steady baseline compute qualifies for one-year reserved or committed-use pricing.",
				Saving:                 "25-35%",
				EstimatedMonthlySaving: share(in, types.CategoryCompute, reservedShare),
			}
		},
	},
	{
		ID:       "shorten_log_retention",
		Category: types.CategoryMonitoring,
		Applies: func(in Input) bool {
			return in.Canonical.Monitoring.LogRetentionDays > LogRetentionTarget
		},
		Suggest: func(in Input) types.Suggestion {
			m := in.Canonical.Monitoring
			shorter := m
			shorter.LogRetentionDays = LogRetentionTarget
			saving := recalc(in, cost.Monitoring, in.Canonical.WithMonitoring(shorter))
			return types.Suggestion{
				Title:                  "Shorten log retention",
				Description:            fmt.Sprintf("Logs are kept %d days. Keep %d days hot and archive the rest to object storage.", m.LogRetentionDays, LogRetentionTarget),
				Saving:                 "retention storage",
				EstimatedMonthlySaving: types.NewMoney(saving),
			}
		},
	},
	{
		ID:       "downgrade_active_active",
		Category: types.CategoryMultiRegion,
		Applies: func(in Input) bool {
			m := in.Canonical.MultiRegion
			return m.Enabled && m.Regions > 1 && m.ReplicationType == types.ReplicationActiveActive
		},
		Suggest: func(in Input) types.Suggestion {
			passive := in.Canonical.MultiRegion
			passive.ReplicationType = types.ReplicationActivePassive
			saving := recalc(in, cost.MultiRegion, in.Canonical.WithMultiRegion(passive))
			return types.Suggestion{
				Title:                  "Use active-passive replication",
				Description:            "Active-active doubles the regional footprint. A warm standby meets most recovery targets.",
				Saving:                 "~50% of replication",
				EstimatedMonthlySaving: types.NewMoney(saving),
			}
		},
	},
	{
		ID:       "spiky_monolith_to_serverless",
		Category: types.CategoryCompute,
		Applies: func(in Input) bool {
			c := in.Canonical
			return c.Architecture == types.ArchitectureMonolith && c.Traffic.PeakTrafficMultiplier >= SpikyPeakThreshold
		},
		Suggest: func(in Input) types.Suggestion {
			saving := recalc(in, cost.Compute, in.Canonical.WithArchitecture(types.ArchitectureServerless))
			return types.Suggestion{
				Title:                  "Move spiky workloads to serverless",
				Description:            fmt.Sprintf("A %.1fx peak forces the monolith to provision for bursts. Functions scale to zero between them.", in.Canonical.Traffic.PeakTrafficMultiplier),
				Saving:                 "variable",
				EstimatedMonthlySaving: types.NewMoney(saving),
			}
		},
	},
}

func share(in Input, c types.Category, fraction decimal.Decimal) types.Money {
	return types.NewMoney(in.Breakdown.Amount(c).Mul(fraction))
}

// recalc is the drop in calc's output from the current record to alt
func recalc(in Input, calc cost.Calculator, alt *types.Canonical) decimal.Decimal {
	current := calc(in.Canonical, in.Workload)
	next := calc(alt, sizing.Derive(alt))
	return current.Sub(next)
}
