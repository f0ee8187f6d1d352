package cost

import (
	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/types"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// computeRates prices an architecture's instances and platform services
type computeRates struct {
	InstanceMonthly    decimal.Decimal
	PlatformMonthly    decimal.Decimal // load balancer, gateway, mesh
	PerMillionRequests decimal.Decimal
}

var computeTable = map[types.Architecture]computeRates{
	types.ArchitectureMonolith:      {InstanceMonthly: d(70.08), PlatformMonthly: d(18), PerMillionRequests: d(0.20)},
	types.ArchitectureMicroservices: {InstanceMonthly: d(70.08), PlatformMonthly: d(91), PerMillionRequests: d(0.35)},
	types.ArchitectureServerless:    {InstanceMonthly: d(0), PlatformMonthly: d(0), PerMillionRequests: d(4.20)},
	types.ArchitectureHybrid:        {InstanceMonthly: d(70.08), PlatformMonthly: d(45), PerMillionRequests: d(1.50)},
}

type databaseRates struct {
	InstanceMonthly decimal.Decimal
	StoragePerGB    decimal.Decimal
}

var databaseTable = map[types.DatabaseEngine]databaseRates{
	types.DatabaseRDS:        {InstanceMonthly: d(100), StoragePerGB: d(0.115)},
	types.DatabaseAurora:     {InstanceMonthly: d(140), StoragePerGB: d(0.10)},
	types.DatabasePostgreSQL: {InstanceMonthly: d(90), StoragePerGB: d(0.115)},
	types.DatabaseMySQL:      {InstanceMonthly: d(85), StoragePerGB: d(0.115)},
	types.DatabaseMongoDB:    {InstanceMonthly: d(120), StoragePerGB: d(0.25)},
	types.DatabaseDynamoDB:   {InstanceMonthly: d(25), StoragePerGB: d(0.25)},
}

var (
	// storageScaleGB is the storage at which the instance class doubles
	storageScaleGB   = d(500)
	backupPerGB      = d(0.095)
	backupMinimum    = d(5)
	cacheNodeMonthly = d(12)
)

var cachePerGB = map[types.CacheEngine]decimal.Decimal{
	types.CacheRedis:     d(22),
	types.CacheMemcached: d(19),
}

var cdnPerGB = map[types.CDNProvider]decimal.Decimal{
	types.CDNCloudFront: d(0.085),
	types.CDNCloudflare: d(0.05),
	types.CDNAkamai:     d(0.10),
	types.CDNFastly:     d(0.12),
	types.CDNAzure:      d(0.081),
	types.CDNGoogle:     d(0.08),
}

var (
	edgePerMillion  = d(0.60)
	videoPerGB      = d(0.03)
	videoPackaging  = d(25)
	queuePerGBMonth = d(0.10)
	dlqShare        = d(0.10)
	dlqMonthly      = d(1)
)

type messagingRates struct {
	PerMillion   decimal.Decimal
	FixedMonthly decimal.Decimal
}

var messagingTable = map[types.MessagingType]messagingRates{
	types.MessagingSQS:      {PerMillion: d(0.40), FixedMonthly: d(0)},
	types.MessagingSNS:      {PerMillion: d(0.50), FixedMonthly: d(0)},
	types.MessagingKafka:    {PerMillion: d(0.10), FixedMonthly: d(150)},
	types.MessagingRabbitMQ: {PerMillion: d(0.15), FixedMonthly: d(60)},
	types.MessagingKinesis:  {PerMillion: d(0.28), FixedMonthly: d(11)},
	types.MessagingPubSub:   {PerMillion: d(0.40), FixedMonthly: d(0)},
}

var (
	wafMonthly        = d(25)
	vpnMonthly        = d(36.5)
	ddosMonthly       = d(200)
	certificateEach   = d(5)
	secretsMonthly    = d(15)
	complianceMonthly = map[types.ComplianceStandard]decimal.Decimal{
		types.ComplianceSOC2:     d(500),
		types.ComplianceHIPAA:    d(750),
		types.CompliancePCIDSS:   d(1000),
		types.ComplianceGDPR:     d(300),
		types.ComplianceISO27001: d(600),
	}
)

type monitoringRates struct {
	BaseMonthly decimal.Decimal
	IngestPerGB decimal.Decimal
}

var monitoringTable = map[types.MonitoringProvider]monitoringRates{
	types.MonitoringCloudWatch: {BaseMonthly: d(5), IngestPerGB: d(0.50)},
	types.MonitoringDatadog:    {BaseMonthly: d(31), IngestPerGB: d(0.10)},
	types.MonitoringNewRelic:   {BaseMonthly: d(25), IngestPerGB: d(0.30)},
	types.MonitoringPrometheus: {BaseMonthly: d(40), IngestPerGB: d(0.05)},
	types.MonitoringGrafana:    {BaseMonthly: d(19), IngestPerGB: d(0.50)},
}

var (
	logStoragePerGBMonth = d(0.03)
	apmPerHost           = d(35)
	tracingPerMillion    = d(1.70)
	alertChannelMonthly  = d(2)
)

type cicdRates struct {
	PerMinute    decimal.Decimal
	FixedMonthly decimal.Decimal
}

var cicdTable = map[types.CICDProvider]cicdRates{
	types.CICDGitHubActions: {PerMinute: d(0.008)},
	types.CICDGitLabCI:      {PerMinute: d(0.010)},
	types.CICDJenkins:       {PerMinute: d(0.004), FixedMonthly: d(50)},
	types.CICDCircleCI:      {PerMinute: d(0.006)},
	types.CICDAzureDevOps:   {PerMinute: d(0.008)},
}

var (
	minutesPerBuild      = d(10)
	artifactPerGB        = d(0.25)
	registryMonthly      = d(5)
	registryPerGB        = d(0.10)
	scanningMonthly      = d(20)
	scanningPerBuild     = d(0.02)
	regionFootprint      = d(150)
	crossRegionPerGB     = d(0.02)
	activeActiveFactor   = d(2)
	activePassiveFactor  = d(1)
	recoveryReferenceMin = d(30)
)
