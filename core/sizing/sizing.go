// Package sizing - Workload derivation from a canonical record
// Sizing turns traffic into the volumes every calculator prices: requests,
// throughput, storage, instance counts and log volume.
package sizing

import (
	"fmt"
	"math"

	"github.com/ankitbhatnagartech/archcost/core/types"
)

const (
	// DaysPerMonth is the billing month used for all volume derivations
	DaysPerMonth = 30

	secondsPerMonth = DaysPerMonth * 24 * 60 * 60

	// LogKBPerRequest is the log volume emitted per API request
	LogKBPerRequest = 1.0

	// MessageKB is the assumed average message size
	MessageKB = 1.0
)

// Profile describes how an architecture turns throughput into instances
type Profile struct {
	// RequestOverhead multiplies effective load (service hops, sidecars)
	RequestOverhead float64

	// MinInstances is the always-on floor; zero means no instances at all
	MinInstances int

	// InstanceRPS is the sustained throughput of one instance
	InstanceRPS float64

	// PeakProvisioning is the share of the peak above average that must be
	// provisioned. 1.0 is fully inelastic, 0 scales perfectly.
	PeakProvisioning float64
}

// Profiles holds the sizing profile of every architecture
var Profiles = map[types.Architecture]Profile{
	types.ArchitectureMonolith:      {RequestOverhead: 1.0, MinInstances: 2, InstanceRPS: 400, PeakProvisioning: 1.0},
	types.ArchitectureMicroservices: {RequestOverhead: 1.35, MinInstances: 3, InstanceRPS: 300, PeakProvisioning: 0.4},
	types.ArchitectureServerless:    {RequestOverhead: 1.0, MinInstances: 0, InstanceRPS: 0, PeakProvisioning: 0},
	types.ArchitectureHybrid:        {RequestOverhead: 1.15, MinInstances: 2, InstanceRPS: 350, PeakProvisioning: 0.7},
}

// ProfileFor returns the profile of a, falling back to monolith
func ProfileFor(a types.Architecture) Profile {
	if p, ok := Profiles[a]; ok {
		return p
	}
	return Profiles[types.ArchitectureMonolith]
}

// Workload is the derived resource demand of a canonical record
type Workload struct {
	MonthlyRequests float64
	AverageRPS      float64
	PeakRPS         float64

	// StorageGB is the user data held by the primary database
	StorageGB float64

	// Instances is the application instance count; zero for serverless
	Instances int

	LogGBPerMonth    float64
	MessagesPerMonth float64
	RetainedQueueGB  float64
}

// Derive computes the workload of c. It is pure.
func Derive(c *types.Canonical) Workload {
	t := c.Traffic
	w := Workload{
		MonthlyRequests: float64(t.DailyActiveUsers) * t.APIRequestsPerUser * DaysPerMonth,
		StorageGB:       float64(t.MonthlyActiveUsers) * t.StoragePerUserMB / 1024,
	}
	w.AverageRPS = w.MonthlyRequests / secondsPerMonth
	w.PeakRPS = w.AverageRPS * t.PeakTrafficMultiplier
	w.Instances = instances(ProfileFor(c.Architecture), w.AverageRPS, t.PeakTrafficMultiplier)
	w.LogGBPerMonth = w.MonthlyRequests * LogKBPerRequest / (1024 * 1024)

	if c.Messaging.Enabled {
		w.MessagesPerMonth = float64(c.Messaging.MessagesPerDay) * DaysPerMonth
		w.RetainedQueueGB = float64(c.Messaging.MessagesPerDay) * float64(c.Messaging.RetentionDays) * MessageKB / (1024 * 1024)
	}
	return w
}

// instances is non-decreasing in avgRPS for every profile.
func instances(p Profile, avgRPS, peak float64) int {
	if p.InstanceRPS <= 0 {
		return p.MinInstances
	}
	load := avgRPS * p.RequestOverhead * (1 + (peak-1)*p.PeakProvisioning)
	n := int(math.Ceil(load / p.InstanceRPS))
	if n < p.MinInstances {
		n = p.MinInstances
	}
	return n
}

// Requirements lists the infrastructure notes shown with an estimate
func Requirements(w Workload, c *types.Canonical) []types.Requirement {
	reqs := []types.Requirement{
		{Key: "app_servers", Label: "Application servers", Value: appServers(w, c)},
		{Key: "peak_rps", Label: "Peak requests per second", Value: fmt.Sprintf("%.1f", w.PeakRPS)},
		{Key: "monthly_requests", Label: "Monthly API requests", Value: humanCount(w.MonthlyRequests)},
		{Key: "database", Label: "Database", Value: database(c.Database)},
		{Key: "storage", Label: "Database storage", Value: fmt.Sprintf("%.1f GB", w.StorageGB)},
		{Key: "cache", Label: "Cache layer", Value: cache(c.Database)},
		{Key: "cdn_bandwidth", Label: "CDN bandwidth", Value: cdn(c.CDN)},
		{Key: "messaging_throughput", Label: "Messaging throughput", Value: messaging(w, c.Messaging)},
		{Key: "regions", Label: "Regions", Value: regions(c.MultiRegion)},
	}
	return reqs
}

func appServers(w Workload, c *types.Canonical) string {
	if w.Instances == 0 {
		return fmt.Sprintf("on-demand functions (%s)", c.Architecture)
	}
	return fmt.Sprintf("%d x %s instances", w.Instances, c.Architecture)
}

func database(d types.Database) string {
	s := fmt.Sprintf("%s primary", d.Engine)
	if d.ReadReplicas > 0 {
		s += fmt.Sprintf(" + %d read replica(s)", d.ReadReplicas)
	}
	if d.MultiAZ {
		s += ", multi-AZ"
	}
	if d.BackupEnabled {
		s += ", backups"
	}
	return s
}

func cache(d types.Database) string {
	layer, ok := d.Cache.Get()
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%s %.1f GB", layer.Engine, layer.SizeGB)
}

func cdn(c types.CDN) string {
	if !c.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%.0f GB/month via %s", c.DataTransferGB, c.Provider)
}

func messaging(w Workload, m types.Messaging) string {
	if !m.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%s messages/month via %s", humanCount(w.MessagesPerMonth), m.Type)
}

func regions(m types.MultiRegion) string {
	if !m.Enabled || m.Regions <= 1 {
		return "single region"
	}
	return fmt.Sprintf("%d regions (%s)", m.Regions, m.ReplicationType)
}

func humanCount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
