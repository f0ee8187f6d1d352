// Package types - Request, canonical record, and response types for the estimator
package types

import (
	"strings"
)

// Architecture is the application architecture variant
type Architecture string

const (
	ArchitectureMonolith      Architecture = "monolith"
	ArchitectureMicroservices Architecture = "microservices"
	ArchitectureServerless    Architecture = "serverless"
	ArchitectureHybrid        Architecture = "hybrid"
)

// Architectures lists every supported architecture variant
var Architectures = []Architecture{
	ArchitectureMonolith,
	ArchitectureMicroservices,
	ArchitectureServerless,
	ArchitectureHybrid,
}

// Currency represents a currency code. The estimator never converts between
// currencies; the code is carried through to the response.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencySGD Currency = "SGD"
	CurrencyCNY Currency = "CNY"
	CurrencyBRL Currency = "BRL"
	CurrencyCHF Currency = "CHF"
	CurrencyAED Currency = "AED"
)

// Currencies lists every accepted currency code
var Currencies = []Currency{
	CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR, CurrencyJPY, CurrencyCAD,
	CurrencyAUD, CurrencySGD, CurrencyCNY, CurrencyBRL, CurrencyCHF, CurrencyAED,
}

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// DatabaseEngine is the primary datastore offering
type DatabaseEngine string

const (
	DatabaseRDS        DatabaseEngine = "rds"
	DatabaseAurora     DatabaseEngine = "aurora"
	DatabasePostgreSQL DatabaseEngine = "postgresql"
	DatabaseMySQL      DatabaseEngine = "mysql"
	DatabaseMongoDB    DatabaseEngine = "mongodb"
	DatabaseDynamoDB   DatabaseEngine = "dynamodb"
)

// DatabaseEngines lists every supported database type
var DatabaseEngines = []DatabaseEngine{
	DatabaseRDS, DatabaseAurora, DatabasePostgreSQL, DatabaseMySQL, DatabaseMongoDB, DatabaseDynamoDB,
}

// CacheEngine is the in-memory cache offering
type CacheEngine string

const (
	CacheRedis     CacheEngine = "redis"
	CacheMemcached CacheEngine = "memcached"
)

// CacheEngines lists every supported cache type
var CacheEngines = []CacheEngine{CacheRedis, CacheMemcached}

// CDNProvider is the content delivery network
type CDNProvider string

const (
	CDNCloudFront CDNProvider = "cloudfront"
	CDNCloudflare CDNProvider = "cloudflare"
	CDNAkamai     CDNProvider = "akamai"
	CDNFastly     CDNProvider = "fastly"
	CDNAzure      CDNProvider = "azure_cdn"
	CDNGoogle     CDNProvider = "google_cdn"
)

// CDNProviders lists every supported CDN
var CDNProviders = []CDNProvider{CDNCloudFront, CDNCloudflare, CDNAkamai, CDNFastly, CDNAzure, CDNGoogle}

// MessagingType is the queue or stream offering
type MessagingType string

const (
	MessagingSQS      MessagingType = "sqs"
	MessagingSNS      MessagingType = "sns"
	MessagingKafka    MessagingType = "kafka"
	MessagingRabbitMQ MessagingType = "rabbitmq"
	MessagingKinesis  MessagingType = "kinesis"
	MessagingPubSub   MessagingType = "pubsub"
)

// MessagingTypes lists every supported messaging type
var MessagingTypes = []MessagingType{
	MessagingSQS, MessagingSNS, MessagingKafka, MessagingRabbitMQ, MessagingKinesis, MessagingPubSub,
}

// ComplianceStandard is a compliance programme that adds tooling and audit cost
type ComplianceStandard string

const (
	ComplianceSOC2     ComplianceStandard = "SOC2"
	ComplianceHIPAA    ComplianceStandard = "HIPAA"
	CompliancePCIDSS   ComplianceStandard = "PCI-DSS"
	ComplianceGDPR     ComplianceStandard = "GDPR"
	ComplianceISO27001 ComplianceStandard = "ISO27001"
)

// ComplianceStandards lists every supported compliance standard
var ComplianceStandards = []ComplianceStandard{
	ComplianceSOC2, ComplianceHIPAA, CompliancePCIDSS, ComplianceGDPR, ComplianceISO27001,
}

// MonitoringProvider is the observability vendor
type MonitoringProvider string

const (
	MonitoringCloudWatch MonitoringProvider = "cloudwatch"
	MonitoringDatadog    MonitoringProvider = "datadog"
	MonitoringNewRelic   MonitoringProvider = "newrelic"
	MonitoringPrometheus MonitoringProvider = "prometheus"
	MonitoringGrafana    MonitoringProvider = "grafana"
)

// MonitoringProviders lists every supported monitoring provider
var MonitoringProviders = []MonitoringProvider{
	MonitoringCloudWatch, MonitoringDatadog, MonitoringNewRelic, MonitoringPrometheus, MonitoringGrafana,
}

// CICDProvider is the build service
type CICDProvider string

const (
	CICDGitHubActions CICDProvider = "github_actions"
	CICDGitLabCI      CICDProvider = "gitlab_ci"
	CICDJenkins       CICDProvider = "jenkins"
	CICDCircleCI      CICDProvider = "circleci"
	CICDAzureDevOps   CICDProvider = "azure_devops"
)

// CICDProviders lists every supported CI/CD provider
var CICDProviders = []CICDProvider{CICDGitHubActions, CICDGitLabCI, CICDJenkins, CICDCircleCI, CICDAzureDevOps}

// ReplicationType is the multi-region topology
type ReplicationType string

const (
	ReplicationActivePassive ReplicationType = "active_passive"
	ReplicationActiveActive  ReplicationType = "active_active"
)

// ReplicationTypes lists every supported replication type
var ReplicationTypes = []ReplicationType{ReplicationActivePassive, ReplicationActiveActive}

// ParseEnum matches raw against allowed after trimming and case folding.
// Hyphens and spaces are treated as underscores so "active-active" and
// "GitHub Actions" resolve.
func ParseEnum[T ~string](raw string, allowed []T) (T, bool) {
	key := foldEnum(raw)
	for _, a := range allowed {
		if foldEnum(string(a)) == key {
			return a, true
		}
	}
	var zero T
	return zero, false
}

// EnumStrings converts an enumeration list to plain strings
func EnumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func foldEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
