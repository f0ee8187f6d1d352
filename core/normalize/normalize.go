// Package normalize turns a raw estimate request into a canonical record.
// Every optional field receives its documented default, every float is
// rounded, and every problem is reported before any cost is computed.
package normalize

import (
	"math"
	"sort"

	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

// FloatPlaces is the precision applied to every float in the canonical record
const FloatPlaces = 4

// Traffic defaults
const (
	DefaultMAUFactor             = 3
	DefaultAPIRequestsPerUser    = 50.0
	DefaultStoragePerUserMB      = 10.0
	DefaultPeakTrafficMultiplier = 1.5
	DefaultGrowthRateYoY         = 0.1
)

// Infrastructure defaults
const (
	DefaultCacheSizeGB      = 1.0
	DefaultRetentionDays    = 7
	DefaultLogRetentionDays = 7
	DefaultBuildsPerMonth   = 100
	DefaultRecoveryMinutes  = 60
	DefaultEnabledRegions   = 2

	MaxReadReplicas    = 15
	MaxRetentionDays   = 365
	MaxLogRetention    = 3650
	MaxRegions         = 20
	DefaultCurrency    = types.CurrencyUSD
	defaultCDNProvider = types.CDNCloudFront
)

// Upper bounds. Products of bounded inputs stay far below float64 and int
// limits through sizing and pricing.
const (
	MaxDailyActiveUsers   int64 = 10_000_000_000
	MaxMonthlyActiveUsers int64 = 100_000_000_000
	MaxMessagesPerDay     int64 = 10_000_000_000_000

	MaxPerUserRate    = 1e6
	MaxPeakMultiplier = 1e3
	MaxGrowthRate     = 100.0
	MaxFunding        = 1e15
	MaxGB             = 1e9
)

// Normalize validates req and returns its canonical form. On failure the
// error is an *errors.ValidationError listing every problem found.
func Normalize(req *types.EstimateRequest) (*types.Canonical, error) {
	n := &normalizer{verr: &errors.ValidationError{}}
	if req == nil {
		n.verr.Add("body", "request body is required")
		return nil, n.verr
	}

	c := &types.Canonical{
		Architecture: n.architecture(req.Architecture),
		Currency:     n.currency(req.Currency),
		Traffic:      n.traffic(req.Traffic),
	}

	var nested types.TrafficInput
	if req.Traffic != nil {
		nested = *req.Traffic
	}
	c.Database = n.database(pick(req.Database, nested.Database))
	c.CDN = n.cdn(pick(req.CDN, nested.CDN))
	c.Messaging = n.messaging(pick(req.Messaging, nested.Messaging))
	c.Security = n.security(pick(req.Security, nested.Security))
	c.Monitoring = n.monitoring(pick(req.Monitoring, nested.Monitoring))
	c.CICD = n.cicd(pick(req.CICD, nested.CICD))
	c.MultiRegion = n.multiRegion(pick(req.MultiRegion, nested.MultiRegion))

	if n.verr.HasProblems() {
		return nil, n.verr
	}
	return c, nil
}

// pick prefers the top-level block over the legacy block nested in traffic.
func pick[T any](top, nested *T) *T {
	if top != nil {
		return top
	}
	if nested != nil {
		return nested
	}
	return new(T)
}

type normalizer struct {
	verr *errors.ValidationError
}

func (n *normalizer) architecture(raw *string) types.Architecture {
	if raw == nil || *raw == "" {
		n.verr.Add("architecture", "is required")
		return ""
	}
	return enum(n, "architecture", *raw, types.Architectures, "")
}

func (n *normalizer) currency(raw *string) types.Currency {
	if raw == nil || *raw == "" {
		return DefaultCurrency
	}
	return enum(n, "currency", *raw, types.Currencies, DefaultCurrency)
}

func (n *normalizer) traffic(in *types.TrafficInput) types.Traffic {
	if in == nil {
		n.verr.Add("traffic", "is required")
		return types.Traffic{}
	}

	var t types.Traffic
	if in.DailyActiveUsers == nil {
		n.verr.Add("traffic.daily_active_users", "is required")
	} else {
		t.DailyActiveUsers = n.count("traffic.daily_active_users", *in.DailyActiveUsers, MaxDailyActiveUsers)
	}

	t.MonthlyActiveUsers = t.DailyActiveUsers * DefaultMAUFactor
	if in.MonthlyActiveUsers != nil {
		before := len(n.verr.Problems)
		t.MonthlyActiveUsers = n.count("traffic.monthly_active_users", *in.MonthlyActiveUsers, MaxMonthlyActiveUsers)
		if len(n.verr.Problems) == before && t.MonthlyActiveUsers < t.DailyActiveUsers {
			n.verr.Add("traffic.monthly_active_users", "must be at least daily_active_users")
		}
	}

	t.APIRequestsPerUser = n.bounded("traffic.api_requests_per_user", in.APIRequestsPerUser, DefaultAPIRequestsPerUser, MaxPerUserRate)
	t.StoragePerUserMB = n.bounded("traffic.storage_per_user_mb", in.StoragePerUserMB, DefaultStoragePerUserMB, MaxPerUserRate)
	t.GrowthRateYoY = n.bounded("traffic.growth_rate_yoy", in.GrowthRateYoY, DefaultGrowthRateYoY, MaxGrowthRate)
	t.RevenuePerUserMonthly = n.bounded("traffic.revenue_per_user_monthly", in.RevenuePerUserMonthly, 0, MaxPerUserRate)
	t.FundingAvailable = n.bounded("traffic.funding_available", in.FundingAvailable, 0, MaxFunding)

	t.PeakTrafficMultiplier = n.float("traffic.peak_traffic_multiplier", in.PeakTrafficMultiplier, DefaultPeakTrafficMultiplier)
	switch {
	case t.PeakTrafficMultiplier < 1:
		n.verr.Add("traffic.peak_traffic_multiplier", "must be at least 1")
	case t.PeakTrafficMultiplier > MaxPeakMultiplier:
		n.verr.Addf("traffic.peak_traffic_multiplier", "must be at most %g", MaxPeakMultiplier)
	}
	return t
}

func (n *normalizer) database(in *types.DatabaseInput) types.Database {
	d := types.Database{
		Engine:        enumPtr(n, "database.type", in.Type, types.DatabaseEngines, types.DatabaseRDS),
		ReadReplicas:  n.intRange("database.read_replicas", in.ReadReplicas, 0, 0, MaxReadReplicas),
		BackupEnabled: boolOr(in.BackupEnabled, false),
		MultiAZ:       boolOr(in.MultiAZ, false),
	}

	// A null or empty cache_type means no cache layer; the size is then
	// irrelevant and deliberately dropped so it cannot affect the fingerprint.
	if in.CacheType == nil || *in.CacheType == "" {
		d.Cache = types.None[types.CacheLayer]()
		return d
	}
	engine := enum(n, "database.cache_type", *in.CacheType, types.CacheEngines, "")
	size := n.bounded("database.cache_size_gb", in.CacheSizeGB, DefaultCacheSizeGB, MaxGB)
	if size == 0 {
		size = DefaultCacheSizeGB
	}
	d.Cache = types.Some(types.CacheLayer{Engine: engine, SizeGB: size})
	return d
}

func (n *normalizer) cdn(in *types.CDNInput) types.CDN {
	return types.CDN{
		Enabled:        boolOr(in.Enabled, false),
		Provider:       enumPtr(n, "cdn.provider", in.Provider, types.CDNProviders, defaultCDNProvider),
		DataTransferGB: n.bounded("cdn.data_transfer_gb", in.DataTransferGB, 0, MaxGB),
		EdgeFunctions:  boolOr(in.EdgeFunctions, false),
		VideoStreaming: boolOr(in.VideoStreaming, false),
	}
}

func (n *normalizer) messaging(in *types.MessagingInput) types.Messaging {
	m := types.Messaging{
		Enabled:       boolOr(in.Enabled, false),
		Type:          enumPtr(n, "messaging.type", in.Type, types.MessagingTypes, types.MessagingSQS),
		RetentionDays: n.intRange("messaging.retention_days", in.RetentionDays, DefaultRetentionDays, 1, MaxRetentionDays),
		DLQEnabled:    boolOr(in.DLQEnabled, false),
	}
	if in.MessagesPerDay != nil {
		m.MessagesPerDay = n.count("messaging.messages_per_day", *in.MessagesPerDay, MaxMessagesPerDay)
	}
	return m
}

func (n *normalizer) security(in *types.SecurityInput) types.Security {
	s := types.Security{
		WAFEnabled:      boolOr(in.WAFEnabled, false),
		VPNEnabled:      boolOr(in.VPNEnabled, false),
		DDoSProtection:  boolOr(in.DDoSProtection, false),
		SSLCertificates: n.intRange("security.ssl_certificates", in.SSLCertificates, 0, 0, math.MaxInt32),
		SecretsManager:  boolOr(in.SecretsManager, false),
		Compliance:      []types.ComplianceStandard{},
	}

	seen := make(map[types.ComplianceStandard]bool)
	for _, raw := range in.Compliance {
		std := enum(n, "security.compliance", raw, types.ComplianceStandards, "")
		if std == "" || seen[std] {
			continue
		}
		seen[std] = true
		s.Compliance = append(s.Compliance, std)
	}
	sort.Slice(s.Compliance, func(i, j int) bool { return s.Compliance[i] < s.Compliance[j] })
	return s
}

func (n *normalizer) monitoring(in *types.MonitoringInput) types.Monitoring {
	return types.Monitoring{
		Provider:           enumPtr(n, "monitoring.provider", in.Provider, types.MonitoringProviders, types.MonitoringCloudWatch),
		LogRetentionDays:   n.intRange("monitoring.log_retention_days", in.LogRetentionDays, DefaultLogRetentionDays, 1, MaxLogRetention),
		APMEnabled:         boolOr(in.APMEnabled, false),
		DistributedTracing: boolOr(in.DistributedTracing, false),
		AlertChannels:      n.intRange("monitoring.alert_channels", in.AlertChannels, 0, 0, math.MaxInt32),
	}
}

func (n *normalizer) cicd(in *types.CICDInput) types.CICD {
	return types.CICD{
		Provider:          enumPtr(n, "cicd.provider", in.Provider, types.CICDProviders, types.CICDGitHubActions),
		BuildsPerMonth:    n.intRange("cicd.builds_per_month", in.BuildsPerMonth, DefaultBuildsPerMonth, 0, math.MaxInt32),
		ContainerRegistry: boolOr(in.ContainerRegistry, false),
		SecurityScanning:  boolOr(in.SecurityScanning, false),
		ArtifactStorageGB: n.bounded("cicd.artifact_storage_gb", in.ArtifactStorageGB, 0, MaxGB),
	}
}

func (n *normalizer) multiRegion(in *types.MultiRegionInput) types.MultiRegion {
	m := types.MultiRegion{
		Enabled:               boolOr(in.Enabled, false),
		ReplicationType:       enumPtr(n, "multi_region.replication_type", in.ReplicationType, types.ReplicationTypes, types.ReplicationActivePassive),
		CrossRegionTransferGB: n.bounded("multi_region.cross_region_transfer_gb", in.CrossRegionTransferGB, 0, MaxGB),
		RTOMinutes:            n.intRange("multi_region.rto_minutes", in.RTOMinutes, DefaultRecoveryMinutes, 0, math.MaxInt32),
		RPOMinutes:            n.intRange("multi_region.rpo_minutes", in.RPOMinutes, DefaultRecoveryMinutes, 0, math.MaxInt32),
	}
	regionsDefault := 1
	if m.Enabled {
		regionsDefault = DefaultEnabledRegions
	}
	m.Regions = n.intRange("multi_region.regions", in.Regions, regionsDefault, 1, MaxRegions)
	return m
}

func (n *normalizer) count(field string, v, limit int64) int64 {
	switch {
	case v < 0:
		n.verr.Add(field, "must not be negative")
		return 0
	case v > limit:
		n.verr.Addf(field, "must be at most %d", limit)
		return 0
	}
	return v
}

func (n *normalizer) float(field string, v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		n.verr.Add(field, "must be a finite number")
		return def
	}
	// rounding scales the value, so a finite input can still overflow
	r := Round(*v)
	if math.IsInf(r, 0) {
		n.verr.Add(field, "is out of range")
		return def
	}
	return r
}

// bounded accepts a finite float in [0, limit]
func (n *normalizer) bounded(field string, v *float64, def, limit float64) float64 {
	f := n.float(field, v, def)
	switch {
	case f < 0:
		n.verr.Add(field, "must not be negative")
		return 0
	case f > limit:
		n.verr.Addf(field, "must be at most %g", limit)
		return 0
	}
	return f
}

func (n *normalizer) intRange(field string, v *int, def, lo, hi int) int {
	if v == nil {
		return def
	}
	if *v < lo || *v > hi {
		if lo == 0 && *v < 0 {
			n.verr.Add(field, "must not be negative")
		} else {
			n.verr.Addf(field, "must be between %d and %d", lo, hi)
		}
		return def
	}
	return *v
}

func enum[T ~string](n *normalizer, field, raw string, allowed []T, def T) T {
	v, ok := types.ParseEnum(raw, allowed)
	if !ok {
		n.verr.AddVariant(&errors.UnknownVariantError{
			Field:   field,
			Value:   raw,
			Allowed: types.EnumStrings(allowed),
		})
		return def
	}
	return v
}

func enumPtr[T ~string](n *normalizer, field string, raw *string, allowed []T, def T) T {
	if raw == nil || *raw == "" {
		return def
	}
	return enum(n, field, *raw, allowed, def)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Round rounds f to FloatPlaces so representation jitter in the input cannot
// change the fingerprint.
func Round(f float64) float64 {
	p := math.Pow(10, FloatPlaces)
	r := math.Round(f*p) / p
	if r == 0 {
		return 0 // normalizes -0
	}
	return r
}
