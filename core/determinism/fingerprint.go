package determinism

import (
	"strings"

	"github.com/ankitbhatnagartech/archcost/core/types"
)

// SchemaVersion tags the canonical serialization. Bump it whenever the cost
// model changes meaning so old fingerprints stop matching.
const SchemaVersion = "archcost/v1"

// Fingerprint is the hex SHA-256 of a canonical record's serialization
type Fingerprint string

// ETag returns the strong entity-tag form of the fingerprint
func (f Fingerprint) ETag() string {
	return `"` + string(f) + `"`
}

// Short returns an abbreviated fingerprint for logs
func (f Fingerprint) Short() string {
	if len(f) <= 12 {
		return string(f)
	}
	return string(f[:12])
}

// ParseETag strips the weak prefix and quotes from an entity-tag. It returns
// false for values that are not entity-tags.
func ParseETag(tag string) (Fingerprint, bool) {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "W/")
	if len(tag) < 2 || tag[0] != '"' || tag[len(tag)-1] != '"' {
		return "", false
	}
	return Fingerprint(tag[1 : len(tag)-1]), true
}

// FingerprintOf hashes the canonical serialization of c
func FingerprintOf(c *types.Canonical) Fingerprint {
	return Fingerprint(ComputeHash(CanonicalBytes(c)).Hex())
}

// CanonicalBytes serializes c field by field in declaration order. Every
// field of types.Canonical must be written here.
func CanonicalBytes(c *types.Canonical) []byte {
	w := NewWriter(SchemaVersion)

	w.String("architecture", string(c.Architecture))
	w.String("currency", string(c.Currency))

	w.Section("traffic", func() {
		t := c.Traffic
		w.Int("daily_active_users", t.DailyActiveUsers)
		w.Int("monthly_active_users", t.MonthlyActiveUsers)
		w.Float("api_requests_per_user", t.APIRequestsPerUser)
		w.Float("storage_per_user_mb", t.StoragePerUserMB)
		w.Float("peak_traffic_multiplier", t.PeakTrafficMultiplier)
		w.Float("growth_rate_yoy", t.GrowthRateYoY)
		w.Float("revenue_per_user_monthly", t.RevenuePerUserMonthly)
		w.Float("funding_available", t.FundingAvailable)
	})

	w.Section("database", func() {
		d := c.Database
		w.String("type", string(d.Engine))
		w.Int("read_replicas", int64(d.ReadReplicas))
		w.Bool("backup_enabled", d.BackupEnabled)
		w.Bool("multi_az", d.MultiAZ)
		layer, ok := d.Cache.Get()
		w.Bool("cache.present", ok)
		if ok {
			w.String("cache.type", string(layer.Engine))
			w.Float("cache.size_gb", layer.SizeGB)
		}
	})

	w.Section("cdn", func() {
		d := c.CDN
		w.Bool("enabled", d.Enabled)
		w.String("provider", string(d.Provider))
		w.Float("data_transfer_gb", d.DataTransferGB)
		w.Bool("edge_functions", d.EdgeFunctions)
		w.Bool("video_streaming", d.VideoStreaming)
	})

	w.Section("messaging", func() {
		m := c.Messaging
		w.Bool("enabled", m.Enabled)
		w.String("type", string(m.Type))
		w.Int("messages_per_day", m.MessagesPerDay)
		w.Int("retention_days", int64(m.RetentionDays))
		w.Bool("dlq_enabled", m.DLQEnabled)
	})

	w.Section("security", func() {
		s := c.Security
		w.Bool("waf_enabled", s.WAFEnabled)
		w.Bool("vpn_enabled", s.VPNEnabled)
		w.Bool("ddos_protection", s.DDoSProtection)
		w.Int("ssl_certificates", int64(s.SSLCertificates))
		w.Strings("compliance", types.EnumStrings(s.Compliance))
		w.Bool("secrets_manager", s.SecretsManager)
	})

	w.Section("monitoring", func() {
		m := c.Monitoring
		w.String("provider", string(m.Provider))
		w.Int("log_retention_days", int64(m.LogRetentionDays))
		w.Bool("apm_enabled", m.APMEnabled)
		w.Bool("distributed_tracing", m.DistributedTracing)
		w.Int("alert_channels", int64(m.AlertChannels))
	})

	w.Section("cicd", func() {
		b := c.CICD
		w.String("provider", string(b.Provider))
		w.Int("builds_per_month", int64(b.BuildsPerMonth))
		w.Bool("container_registry", b.ContainerRegistry)
		w.Bool("security_scanning", b.SecurityScanning)
		w.Float("artifact_storage_gb", b.ArtifactStorageGB)
	})

	w.Section("multi_region", func() {
		m := c.MultiRegion
		w.Bool("enabled", m.Enabled)
		w.Int("regions", int64(m.Regions))
		w.String("replication_type", string(m.ReplicationType))
		w.Float("cross_region_transfer_gb", m.CrossRegionTransferGB)
		w.Int("rto_minutes", int64(m.RTOMinutes))
		w.Int("rpo_minutes", int64(m.RPOMinutes))
	})

	return w.Bytes()
}
