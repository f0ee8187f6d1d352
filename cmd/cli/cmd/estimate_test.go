package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/engine"
	"github.com/ankitbhatnagartech/archcost/internal/config"
)

const jsonRequest = `{
  "architecture": "microservices",
  "traffic": {"daily_active_users": 20000, "revenue_per_user_monthly": 0.5},
  "security": {"waf_enabled": true, "compliance": ["SOC2", "GDPR"]}
}`

const yamlRequest = `
architecture: microservices
traffic:
  daily_active_users: 20000
  revenue_per_user_monthly: 0.5
security:
  waf_enabled: true
  compliance: [SOC2, GDPR]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRequestYAMLMatchesJSON(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	eng := engine.New(cat, zap.NewNop())

	fromJSON, err := readRequest(writeFile(t, "req.json", jsonRequest), nil)
	require.NoError(t, err)
	fromYAML, err := readRequest(writeFile(t, "req.yml", yamlRequest), nil)
	require.NoError(t, err)
	fromStdin, err := readRequest("-", strings.NewReader(jsonRequest))
	require.NoError(t, err)

	a, err := eng.Prepare(fromJSON)
	require.NoError(t, err)
	b, err := eng.Prepare(fromYAML)
	require.NoError(t, err)
	c, err := eng.Prepare(fromStdin)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.Fingerprint, c.Fingerprint)
}

func TestReadRequestErrors(t *testing.T) {
	_, err := readRequest(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = readRequest(writeFile(t, "bad.yaml", "architecture: [unterminated"), nil)
	assert.Error(t, err)

	_, err = readRequest(writeFile(t, "bad.json", "{"), nil)
	assert.Error(t, err)
}

func TestDescribeError(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	eng := engine.New(cat, zap.NewNop())

	req, err := readRequest(writeFile(t, "req.json", `{"architecture":"mainframe","traffic":{"daily_active_users":-5}}`), nil)
	require.NoError(t, err)
	_, _, err = eng.Run(req)
	require.Error(t, err)

	msg := describeError(err).Error()
	assert.Contains(t, msg, "architecture:")
	assert.Contains(t, msg, "traffic.daily_active_users:")
}

func TestPrintTable(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	eng := engine.New(cat, zap.NewNop())

	req, err := readRequest(writeFile(t, "req.json", jsonRequest), nil)
	require.NoError(t, err)
	prepared, resp, err := eng.Run(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	printTable(&buf, prepared.Fingerprint, resp)
	out := buf.String()

	assert.Contains(t, out, "ARCHCOST ESTIMATE (microservices)")
	assert.Contains(t, out, prepared.Fingerprint.Short())
	assert.Contains(t, out, "TOTAL MONTHLY ESTIMATE")
	assert.Contains(t, out, "Year 3")
	assert.Contains(t, out, "Best value provider: "+resp.MultiCloudComparison.BestValue)
}

func TestPrintProviders(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	printProviders(&buf, cat)
	out := buf.String()

	assert.Contains(t, out, "AWS")
	assert.Contains(t, out, "multi_region")
	assert.Contains(t, out, "17 providers")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestBuildServer(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
	}{
		{"cache enabled", true},
		{"cache disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			c.Cache.Enabled = tt.enabled

			srv, closeFn, err := buildServer(c, zap.NewNop())
			require.NoError(t, err)
			defer closeFn()

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var health map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
			assert.Equal(t, tt.enabled, health["cache_enabled"])
			assert.Equal(t, Version, health["version"])
		})
	}
}

func TestBuildServerBadCatalog(t *testing.T) {
	c := config.Default()
	c.Catalog.Path = writeFile(t, "providers.hcl", `provider "Only" {`)

	_, _, err := buildServer(c, zap.NewNop())
	assert.Error(t, err)
}

func TestExecuteEstimate(t *testing.T) {
	path := writeFile(t, "req.json", jsonRequest)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"estimate", "--format", "json", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "microservices", resp["architecture"])
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	assert.Equal(t, "archcost version "+Version+"\n", buf.String())
}
