package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitbhatnagartech/archcost/core/cost"
	"github.com/ankitbhatnagartech/archcost/core/sizing"
	"github.com/ankitbhatnagartech/archcost/core/types"
)

func input(t *testing.T, c *types.Canonical) Input {
	t.Helper()
	w := sizing.Derive(c)
	b, err := cost.NewEngine().CalculateWorkload(c, w)
	require.NoError(t, err)
	return Input{Canonical: c, Workload: w, Breakdown: b}
}

func record() *types.Canonical {
	return &types.Canonical{
		Architecture: types.ArchitectureMonolith,
		Currency:     types.CurrencyUSD,
		Traffic: types.Traffic{
			DailyActiveUsers:      500_000,
			MonthlyActiveUsers:    1_500_000,
			APIRequestsPerUser:    50,
			StoragePerUserMB:      10,
			PeakTrafficMultiplier: 3,
		},
		Database:   types.Database{Engine: types.DatabaseRDS, ReadReplicas: 10},
		CDN:        types.CDN{Provider: types.CDNCloudFront},
		Messaging:  types.Messaging{Type: types.MessagingSQS, RetentionDays: 7},
		Monitoring: types.Monitoring{Provider: types.MonitoringDatadog, LogRetentionDays: 90},
		CICD:       types.CICD{Provider: types.CICDGitHubActions, BuildsPerMonth: 100},
		MultiRegion: types.MultiRegion{
			Enabled: true, Regions: 3, ReplicationType: types.ReplicationActiveActive,
			CrossRegionTransferGB: 100, RTOMinutes: 60, RPOMinutes: 60,
		},
	}
}

func ids(s []types.Suggestion) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].ID
	}
	return out
}

func TestSuggestionsFollowDeclarationOrder(t *testing.T) {
	in := input(t, record())
	suggestions, total := Default().Analyze(in)

	assert.Equal(t, []string{
		"add_caching_layer",
		"trim_read_replicas",
		"enable_cdn",
		"reserved_capacity",
		"shorten_log_retention",
		"downgrade_active_active",
		"spiky_monolith_to_serverless",
	}, ids(suggestions))

	sum := total.Decimal
	assert.True(t, sum.IsPositive())
	assert.True(t, sum.LessThanOrEqual(in.Breakdown.Total()))
}

func TestSavingsAreBounded(t *testing.T) {
	in := input(t, record())
	suggestions, _ := Default().Analyze(in)

	byID := make(map[string]Rule)
	for _, r := range Rules {
		byID[r.ID] = r
	}
	for _, s := range suggestions {
		saving := s.EstimatedMonthlySaving.Decimal
		assert.False(t, saving.IsNegative(), s.ID)
		assert.True(t, saving.LessThanOrEqual(in.Breakdown.Amount(byID[s.ID].Category)), s.ID)
	}

	// a serverless rewrite of this monolith costs more, so the saving clamps to zero
	last := suggestions[len(suggestions)-1]
	require.Equal(t, "spiky_monolith_to_serverless", last.ID)
	assert.True(t, last.EstimatedMonthlySaving.IsZero())
}

func TestCustomRuleOrderIsPreserved(t *testing.T) {
	reversed := make([]Rule, len(Rules))
	for i, r := range Rules {
		reversed[len(Rules)-1-i] = r
	}

	forward, _ := Default().Analyze(input(t, record()))
	backward, _ := New(reversed).Analyze(input(t, record()))

	want := ids(forward)
	for i, j := 0, len(want)-1; i < j; i, j = i+1, j-1 {
		want[i], want[j] = want[j], want[i]
	}
	assert.Equal(t, want, ids(backward))
}

func TestConsolidateMicroservices(t *testing.T) {
	c := record().WithArchitecture(types.ArchitectureMicroservices)
	c.Traffic.DailyActiveUsers = 2_000
	c.Traffic.MonthlyActiveUsers = 6_000
	c.Traffic.PeakTrafficMultiplier = 1.5

	in := input(t, c)
	suggestions, _ := Default().Analyze(in)

	var found *types.Suggestion
	for i := range suggestions {
		if suggestions[i].ID == "consolidate_microservices" {
			found = &suggestions[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.EstimatedMonthlySaving.IsPositive())
	assert.NotContains(t, ids(suggestions), "spiky_monolith_to_serverless")
}

func TestQuietWorkloadHasNoSuggestions(t *testing.T) {
	c := record()
	c.Traffic.DailyActiveUsers = 100
	c.Traffic.MonthlyActiveUsers = 300
	c.Traffic.PeakTrafficMultiplier = 1.5
	c.Database.ReadReplicas = 0
	c.Monitoring.LogRetentionDays = 7
	c.MultiRegion = types.MultiRegion{Regions: 1, ReplicationType: types.ReplicationActivePassive}

	suggestions, total := Default().Analyze(input(t, c))
	assert.Empty(t, suggestions)
	assert.NotNil(t, suggestions)
	assert.True(t, total.IsZero())
}
