// Package catalog - Provider cost profiles
// The catalog is static reference data: loaded once at startup, validated,
// and read-only for the life of the process.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
)

//go:embed providers.hcl
var defaultProviders []byte

// DefaultFilename is the name reported for the embedded catalog
const DefaultFilename = "providers.hcl"

// Provider is one provider's cost profile
type Provider struct {
	Name     string
	Category string

	// Multipliers scale each baseline category cost
	Multipliers map[types.Category]decimal.Decimal
}

// Multiplier returns the provider's multiplier for a category
func (p *Provider) Multiplier(c types.Category) decimal.Decimal {
	if m, ok := p.Multipliers[c]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// Catalog is the set of provider profiles, ordered by name
type Catalog struct {
	providers []*Provider
	byName    map[string]*Provider
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		byName: make(map[string]*Provider),
	}
}

// Register adds a provider. A later registration with the same name
// replaces the earlier one.
func (c *Catalog) Register(p Provider) {
	if existing, ok := c.byName[p.Name]; ok {
		*existing = p
		return
	}
	entry := &p
	c.byName[p.Name] = entry
	c.providers = append(c.providers, entry)
	sort.Slice(c.providers, func(i, j int) bool { return c.providers[i].Name < c.providers[j].Name })
}

// Get returns a provider by name
func (c *Catalog) Get(name string) (*Provider, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Providers returns the providers ordered by name
func (c *Catalog) Providers() []*Provider {
	return append([]*Provider(nil), c.providers...)
}

// Len returns the number of providers
func (c *Catalog) Len() int {
	return len(c.providers)
}

// Stats returns the provider count per category label
func (c *Catalog) Stats() map[string]int {
	stats := make(map[string]int)
	for _, p := range c.providers {
		stats[p.Category]++
	}
	return stats
}

// providerBlock mirrors one provider block in the HCL file
type providerBlock struct {
	Name        string  `hcl:"name,label"`
	Category    string  `hcl:"category"`
	Compute     float64 `hcl:"compute"`
	Database    float64 `hcl:"database"`
	CDN         float64 `hcl:"cdn"`
	Messaging   float64 `hcl:"messaging"`
	Security    float64 `hcl:"security"`
	Monitoring  float64 `hcl:"monitoring"`
	CICD        float64 `hcl:"cicd"`
	MultiRegion float64 `hcl:"multi_region"`
}

type catalogFile struct {
	Providers []providerBlock `hcl:"provider,block"`
}

// Parse decodes and validates a catalog from HCL source
func Parse(filename string, src []byte) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Catalog(fmt.Sprintf("failed to parse %s", filename), diagError(diags))
	}

	var doc catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Catalog(fmt.Sprintf("failed to decode %s", filename), diagError(diags))
	}

	c := NewCatalog()
	seen := make(map[string]bool)
	for _, b := range doc.Providers {
		if seen[b.Name] {
			return nil, errors.Catalog(fmt.Sprintf("duplicate provider %q in %s", b.Name, filename), nil)
		}
		seen[b.Name] = true
		c.Register(b.toProvider())
	}

	if errs := c.Validate(DefaultValidationRules()); len(errs) > 0 {
		return nil, errors.Catalog(fmt.Sprintf("invalid catalog %s", filename), joinErrors(errs))
	}
	return c, nil
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(DefaultFilename, defaultProviders)
}

// Load reads a catalog file. An empty path loads the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Catalog(fmt.Sprintf("failed to read %s", path), err)
	}
	return Parse(path, src)
}

func (b providerBlock) toProvider() Provider {
	return Provider{
		Name:     b.Name,
		Category: b.Category,
		Multipliers: map[types.Category]decimal.Decimal{
			types.CategoryCompute:     decimal.NewFromFloat(b.Compute),
			types.CategoryDatabase:    decimal.NewFromFloat(b.Database),
			types.CategoryCDN:         decimal.NewFromFloat(b.CDN),
			types.CategoryMessaging:   decimal.NewFromFloat(b.Messaging),
			types.CategorySecurity:    decimal.NewFromFloat(b.Security),
			types.CategoryMonitoring:  decimal.NewFromFloat(b.Monitoring),
			types.CategoryCICD:        decimal.NewFromFloat(b.CICD),
			types.CategoryMultiRegion: decimal.NewFromFloat(b.MultiRegion),
		},
	}
}

func diagError(diags hcl.Diagnostics) error {
	var errs []error
	for _, diag := range diags {
		if diag.Severity == hcl.DiagError {
			errs = append(errs, diag)
		}
	}
	return joinErrors(errs)
}
