package types

// Optional holds a value that may be absent. The zero Optional is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held
func (o Optional[T]) Present() bool {
	return o.ok
}

// Canonical is a fully defaulted, validated estimate request. Every field is
// populated and every float is rounded, so two requests that mean the same
// thing produce the same Canonical. It is never mutated after normalization.
type Canonical struct {
	Architecture Architecture
	Currency     Currency
	Traffic      Traffic
	Database     Database
	CDN          CDN
	Messaging    Messaging
	Security     Security
	Monitoring   Monitoring
	CICD         CICD
	MultiRegion  MultiRegion
}

// Traffic is the normalized traffic profile
type Traffic struct {
	DailyActiveUsers      int64
	MonthlyActiveUsers    int64
	APIRequestsPerUser    float64
	StoragePerUserMB      float64
	PeakTrafficMultiplier float64
	GrowthRateYoY         float64
	RevenuePerUserMonthly float64
	FundingAvailable      float64
}

// CacheLayer is an in-memory cache in front of the database
type CacheLayer struct {
	Engine CacheEngine
	SizeGB float64
}

// Database is the normalized datastore configuration
type Database struct {
	Engine        DatabaseEngine
	ReadReplicas  int
	BackupEnabled bool
	MultiAZ       bool
	Cache         Optional[CacheLayer]
}

// CDN is the normalized content delivery configuration
type CDN struct {
	Enabled        bool
	Provider       CDNProvider
	DataTransferGB float64
	EdgeFunctions  bool
	VideoStreaming bool
}

// Messaging is the normalized messaging configuration
type Messaging struct {
	Enabled        bool
	Type           MessagingType
	MessagesPerDay int64
	RetentionDays  int
	DLQEnabled     bool
}

// Security is the normalized security configuration. Compliance is sorted
// and deduplicated.
type Security struct {
	WAFEnabled      bool
	VPNEnabled      bool
	DDoSProtection  bool
	SSLCertificates int
	Compliance      []ComplianceStandard
	SecretsManager  bool
}

// Monitoring is the normalized observability configuration
type Monitoring struct {
	Provider           MonitoringProvider
	LogRetentionDays   int
	APMEnabled         bool
	DistributedTracing bool
	AlertChannels      int
}

// CICD is the normalized build configuration
type CICD struct {
	Provider          CICDProvider
	BuildsPerMonth    int
	ContainerRegistry bool
	SecurityScanning  bool
	ArtifactStorageGB float64
}

// MultiRegion is the normalized replication configuration
type MultiRegion struct {
	Enabled               bool
	Regions               int
	ReplicationType       ReplicationType
	CrossRegionTransferGB float64
	RTOMinutes            int
	RPOMinutes            int
}

// WithArchitecture returns a copy of c with a different architecture. The
// advisor uses it to price alternatives without touching the original.
func (c *Canonical) WithArchitecture(a Architecture) *Canonical {
	cp := c.clone()
	cp.Architecture = a
	return cp
}

// WithMultiRegion returns a copy of c with a different replication setup
func (c *Canonical) WithMultiRegion(m MultiRegion) *Canonical {
	cp := c.clone()
	cp.MultiRegion = m
	return cp
}

// WithDatabase returns a copy of c with a different database setup
func (c *Canonical) WithDatabase(d Database) *Canonical {
	cp := c.clone()
	cp.Database = d
	return cp
}

// WithMonitoring returns a copy of c with a different monitoring setup
func (c *Canonical) WithMonitoring(m Monitoring) *Canonical {
	cp := c.clone()
	cp.Monitoring = m
	return cp
}

func (c *Canonical) clone() *Canonical {
	cp := *c
	cp.Security.Compliance = append([]ComplianceStandard(nil), c.Security.Compliance...)
	return &cp
}
