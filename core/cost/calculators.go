package cost

import (
	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

var (
	one     = decimal.NewFromInt(1)
	million = decimal.NewFromInt(1_000_000)
)

// Compute prices application hosting: instances, platform services and a
// per-request fee. Non-decreasing in daily active users.
func Compute(c *types.Canonical, w sizing.Workload) decimal.Decimal {
	r := computeTable[c.Architecture]
	instances := r.InstanceMonthly.Mul(decimal.NewFromInt(int64(w.Instances)))
	requests := d(w.MonthlyRequests).Div(million).Mul(r.PerMillionRequests)
	return instances.Add(r.PlatformMonthly).Add(requests)
}

// Database prices the primary, its replicas and standby, backups and the
// optional cache layer.
func Database(c *types.Canonical, w sizing.Workload) decimal.Decimal {
	db := c.Database
	r := databaseTable[db.Engine]
	storage := d(w.StorageGB)

	node := r.InstanceMonthly.Mul(one.Add(storage.Div(storageScaleGB))).
		Add(storage.Mul(r.StoragePerGB))

	total := node.Mul(decimal.NewFromInt(int64(1 + db.ReadReplicas)))
	if db.MultiAZ {
		total = total.Add(node)
	}
	if db.BackupEnabled {
		total = total.Add(decimal.Max(backupMinimum, storage.Mul(backupPerGB)))
	}
	if layer, ok := db.Cache.Get(); ok {
		total = total.Add(cacheNodeMonthly).Add(d(layer.SizeGB).Mul(cachePerGB[layer.Engine]))
	}
	return total
}

// CDN prices edge delivery. Zero when disabled.
func CDN(c *types.Canonical, w sizing.Workload) decimal.Decimal {
	cdn := c.CDN
	if !cdn.Enabled {
		return decimal.Zero
	}
	transfer := d(cdn.DataTransferGB)
	total := transfer.Mul(cdnPerGB[cdn.Provider])
	if cdn.EdgeFunctions {
		total = total.Add(d(w.MonthlyRequests).Div(million).Mul(edgePerMillion))
	}
	if cdn.VideoStreaming {
		total = total.Add(transfer.Mul(videoPerGB)).Add(videoPackaging)
	}
	return total
}

// Messaging prices queue volume and retained messages. Zero when disabled.
func Messaging(c *types.Canonical, w sizing.Workload) decimal.Decimal {
	m := c.Messaging
	if !m.Enabled {
		return decimal.Zero
	}
	r := messagingTable[m.Type]
	volume := d(w.MessagesPerMonth).Div(million).Mul(r.PerMillion)
	total := volume.Add(d(w.RetainedQueueGB).Mul(queuePerGBMonth)).Add(r.FixedMonthly)
	if m.DLQEnabled {
		total = total.Add(volume.Mul(dlqShare)).Add(dlqMonthly)
	}
	return total
}

// Security sums fixed fees for each enabled control and compliance programme
func Security(c *types.Canonical, _ sizing.Workload) decimal.Decimal {
	s := c.Security
	total := certificateEach.Mul(decimal.NewFromInt(int64(s.SSLCertificates)))
	if s.WAFEnabled {
		total = total.Add(wafMonthly)
	}
	if s.VPNEnabled {
		total = total.Add(vpnMonthly)
	}
	if s.DDoSProtection {
		total = total.Add(ddosMonthly)
	}
	for _, std := range s.Compliance {
		total = total.Add(complianceMonthly[std])
	}
	if s.SecretsManager {
		total = total.Add(secretsMonthly)
	}
	return total
}

// Monitoring prices the provider tier, log ingestion and retention, and
// the optional APM, tracing and alerting add-ons.
func Monitoring(c *types.Canonical, w sizing.Workload) decimal.Decimal {
	m := c.Monitoring
	r := monitoringTable[m.Provider]
	logs := d(w.LogGBPerMonth)

	retained := logs.Mul(decimal.NewFromInt(int64(m.LogRetentionDays))).Div(decimal.NewFromInt(sizing.DaysPerMonth))
	total := r.BaseMonthly.Add(logs.Mul(r.IngestPerGB)).Add(retained.Mul(logStoragePerGBMonth))

	if m.APMEnabled {
		hosts := w.Instances
		if hosts < 1 {
			hosts = 1
		}
		total = total.Add(apmPerHost.Mul(decimal.NewFromInt(int64(hosts))))
	}
	if m.DistributedTracing {
		total = total.Add(d(w.MonthlyRequests).Div(million).Mul(tracingPerMillion))
	}
	return total.Add(alertChannelMonthly.Mul(decimal.NewFromInt(int64(m.AlertChannels))))
}

// CICD prices build minutes, artifacts, and registry and scanning add-ons
func CICD(c *types.Canonical, _ sizing.Workload) decimal.Decimal {
	b := c.CICD
	r := cicdTable[b.Provider]
	builds := decimal.NewFromInt(int64(b.BuildsPerMonth))
	artifacts := d(b.ArtifactStorageGB)

	total := builds.Mul(minutesPerBuild).Mul(r.PerMinute).
		Add(r.FixedMonthly).
		Add(artifacts.Mul(artifactPerGB))
	if b.ContainerRegistry {
		total = total.Add(registryMonthly).Add(artifacts.Mul(registryPerGB))
	}
	if b.SecurityScanning {
		total = total.Add(scanningMonthly).Add(builds.Mul(scanningPerBuild))
	}
	return total
}

// MultiRegion prices the extra regions. Zero when disabled or single
// region. Active-active doubles the surcharge and tighter recovery targets
// raise it.
func MultiRegion(c *types.Canonical, _ sizing.Workload) decimal.Decimal {
	m := c.MultiRegion
	if !m.Enabled || m.Regions <= 1 {
		return decimal.Zero
	}
	extra := decimal.NewFromInt(int64(m.Regions - 1))
	base := extra.Mul(regionFootprint).Add(d(m.CrossRegionTransferGB).Mul(crossRegionPerGB))

	factor := activePassiveFactor
	if m.ReplicationType == types.ReplicationActiveActive {
		factor = activeActiveFactor
	}
	return base.Mul(factor).Mul(Urgency(m.RTOMinutes, m.RPOMinutes))
}

// Urgency is 1 + 30/(rto+30) + 30/(rpo+30). It falls toward 1 as the
// recovery targets loosen and reaches 3 at zero minutes.
func Urgency(rtoMinutes, rpoMinutes int) decimal.Decimal {
	term := func(minutes int) decimal.Decimal {
		return recoveryReferenceMin.DivRound(decimal.NewFromInt(int64(minutes)).Add(recoveryReferenceMin), 8)
	}
	return one.Add(term(rtoMinutes)).Add(term(rpoMinutes))
}
