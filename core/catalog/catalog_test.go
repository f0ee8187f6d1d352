package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Equal(t, ExpectedProviders, c.Len())

	names := make([]string, 0, c.Len())
	for _, p := range c.Providers() {
		names = append(names, p.Name)
		for _, cat := range types.Categories {
			assert.True(t, p.Multiplier(cat).IsPositive(), "%s/%s", p.Name, cat)
		}
	}
	assert.IsIncreasing(t, names)
	assert.ElementsMatch(t, []string{
		"AWS", "Azure", "Google Cloud", "Oracle Cloud", "IBM Cloud", "Alibaba Cloud",
		"DigitalOcean", "Linode", "Vultr", "Hetzner", "OVHcloud", "Scaleway",
		"Heroku", "Vercel", "Netlify", "Render", "Railway",
	}, names)

	aws, ok := c.Get("AWS")
	require.True(t, ok)
	assert.Equal(t, "Hyperscaler", aws.Category)
	assert.Equal(t, "1", aws.Multiplier(types.CategoryCompute).String())

	assert.Equal(t, 5, c.Stats()["PaaS"])
}

func TestParseRejectsDuplicates(t *testing.T) {
	src := strings.Repeat(`provider "AWS" {
  category = "Hyperscaler"
  compute = 1
  database = 1
  cdn = 1
  messaging = 1
  security = 1
  monitoring = 1
  cicd = 1
  multi_region = 1
}
`, 2)
	_, err := Parse("dup.hcl", []byte(src))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeCatalog))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseRejectsWrongCount(t *testing.T) {
	src := `provider "Solo" {
  category = "Test"
  compute = 1
  database = 1
  cdn = 1
  messaging = 1
  security = 1
  monitoring = 1
  cicd = 1
  multi_region = 1
}
`
	_, err := Parse("solo.hcl", []byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 17 providers")
}

func TestParseRejectsSyntaxErrors(t *testing.T) {
	_, err := Parse("broken.hcl", []byte(`provider "AWS" {`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeCatalog))
}

func TestValidateMultipliers(t *testing.T) {
	p := &Provider{Name: "Zero", Category: "Test", Multipliers: map[types.Category]decimal.Decimal{}}
	assert.Error(t, validateMultipliers(p))
}

func TestLoadOverrideFile(t *testing.T) {
	src := strings.Replace(string(defaultProviders), `provider "Railway" {
  category     = "PaaS"
  compute      = 1.00`, `provider "Railway" {
  category     = "PaaS"
  compute      = 0.10`, 1)
	require.NotEqual(t, string(defaultProviders), src)

	path := filepath.Join(t.TempDir(), "custom.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	railway, ok := c.Get("Railway")
	require.True(t, ok)
	assert.Equal(t, "0.1", railway.Multiplier(types.CategoryCompute).String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ExpectedProviders, def.Len())
}
