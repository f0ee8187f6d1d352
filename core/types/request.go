package types

// EstimateRequest is the raw estimate document as received. Optional fields
// are pointers so an absent field can be told apart from an explicit zero.
type EstimateRequest struct {
	Architecture *string       `json:"architecture"`
	Currency     *string       `json:"currency,omitempty"`
	Traffic      *TrafficInput `json:"traffic"`

	Database    *DatabaseInput    `json:"database,omitempty"`
	CDN         *CDNInput         `json:"cdn,omitempty"`
	Messaging   *MessagingInput   `json:"messaging,omitempty"`
	Security    *SecurityInput    `json:"security,omitempty"`
	Monitoring  *MonitoringInput  `json:"monitoring,omitempty"`
	CICD        *CICDInput        `json:"cicd,omitempty"`
	MultiRegion *MultiRegionInput `json:"multi_region,omitempty"`
}

// TrafficInput describes the workload's users and their behaviour.
//
// Older clients nest the seven infrastructure blocks inside traffic; those
// fields are honoured when the matching top-level block is absent.
type TrafficInput struct {
	DailyActiveUsers      *int64   `json:"daily_active_users"`
	MonthlyActiveUsers    *int64   `json:"monthly_active_users,omitempty"`
	APIRequestsPerUser    *float64 `json:"api_requests_per_user,omitempty"`
	StoragePerUserMB      *float64 `json:"storage_per_user_mb,omitempty"`
	PeakTrafficMultiplier *float64 `json:"peak_traffic_multiplier,omitempty"`
	GrowthRateYoY         *float64 `json:"growth_rate_yoy,omitempty"`
	RevenuePerUserMonthly *float64 `json:"revenue_per_user_monthly,omitempty"`
	FundingAvailable      *float64 `json:"funding_available,omitempty"`

	Database    *DatabaseInput    `json:"database,omitempty"`
	CDN         *CDNInput         `json:"cdn,omitempty"`
	Messaging   *MessagingInput   `json:"messaging,omitempty"`
	Security    *SecurityInput    `json:"security,omitempty"`
	Monitoring  *MonitoringInput  `json:"monitoring,omitempty"`
	CICD        *CICDInput        `json:"cicd,omitempty"`
	MultiRegion *MultiRegionInput `json:"multi_region,omitempty"`
}

// DatabaseInput configures the primary datastore and optional cache layer
type DatabaseInput struct {
	Type          *string  `json:"type,omitempty"`
	ReadReplicas  *int     `json:"read_replicas,omitempty"`
	BackupEnabled *bool    `json:"backup_enabled,omitempty"`
	MultiAZ       *bool    `json:"multi_az,omitempty"`
	CacheType     *string  `json:"cache_type,omitempty"`
	CacheSizeGB   *float64 `json:"cache_size_gb,omitempty"`
}

// CDNInput configures content delivery
type CDNInput struct {
	Enabled        *bool    `json:"enabled,omitempty"`
	Provider       *string  `json:"provider,omitempty"`
	DataTransferGB *float64 `json:"data_transfer_gb,omitempty"`
	EdgeFunctions  *bool    `json:"edge_functions,omitempty"`
	VideoStreaming *bool    `json:"video_streaming,omitempty"`
}

// MessagingInput configures queues and streams
type MessagingInput struct {
	Enabled        *bool   `json:"enabled,omitempty"`
	Type           *string `json:"type,omitempty"`
	MessagesPerDay *int64  `json:"messages_per_day,omitempty"`
	RetentionDays  *int    `json:"retention_days,omitempty"`
	DLQEnabled     *bool   `json:"dlq_enabled,omitempty"`
}

// SecurityInput configures perimeter and compliance features
type SecurityInput struct {
	WAFEnabled      *bool    `json:"waf_enabled,omitempty"`
	VPNEnabled      *bool    `json:"vpn_enabled,omitempty"`
	DDoSProtection  *bool    `json:"ddos_protection,omitempty"`
	SSLCertificates *int     `json:"ssl_certificates,omitempty"`
	Compliance      []string `json:"compliance,omitempty"`
	SecretsManager  *bool    `json:"secrets_manager,omitempty"`
}

// MonitoringInput configures observability
type MonitoringInput struct {
	Provider           *string `json:"provider,omitempty"`
	LogRetentionDays   *int    `json:"log_retention_days,omitempty"`
	APMEnabled         *bool   `json:"apm_enabled,omitempty"`
	DistributedTracing *bool   `json:"distributed_tracing,omitempty"`
	AlertChannels      *int    `json:"alert_channels,omitempty"`
}

// CICDInput configures build and delivery
type CICDInput struct {
	Provider          *string  `json:"provider,omitempty"`
	BuildsPerMonth    *int     `json:"builds_per_month,omitempty"`
	ContainerRegistry *bool    `json:"container_registry,omitempty"`
	SecurityScanning  *bool    `json:"security_scanning,omitempty"`
	ArtifactStorageGB *float64 `json:"artifact_storage_gb,omitempty"`
}

// MultiRegionInput configures cross-region replication
type MultiRegionInput struct {
	Enabled               *bool    `json:"enabled,omitempty"`
	Regions               *int     `json:"regions,omitempty"`
	ReplicationType       *string  `json:"replication_type,omitempty"`
	CrossRegionTransferGB *float64 `json:"cross_region_transfer_gb,omitempty"`
	RTOMinutes            *int     `json:"rto_minutes,omitempty"`
	RPOMinutes            *int     `json:"rpo_minutes,omitempty"`
}
