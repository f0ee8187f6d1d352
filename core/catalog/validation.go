// Package catalog - Catalog validation
// Ensures provider data is complete before any comparison uses it.
package catalog

import (
	stderrors "errors"
	"fmt"

	"github.com/ankitbhatnagartech/archcost/core/types"
)

// ExpectedProviders is the number of provider profiles a catalog must hold
const ExpectedProviders = 17

// ValidationRule is a provider validation rule
type ValidationRule func(*Provider) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateName,
		validateCategory,
		validateMultipliers,
	}
}

// Validate checks every provider against rules and the catalog size
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error

	if c.Len() != ExpectedProviders {
		errs = append(errs, fmt.Errorf("expected %d providers, found %d", ExpectedProviders, c.Len()))
	}

	for _, p := range c.providers {
		for _, rule := range rules {
			if err := rule(p); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			}
		}
	}

	return errs
}

func validateName(p *Provider) error {
	if p.Name == "" {
		return fmt.Errorf("provider name is empty")
	}
	return nil
}

func validateCategory(p *Provider) error {
	if p.Category == "" {
		return fmt.Errorf("category label is empty")
	}
	return nil
}

// validateMultipliers requires a positive multiplier for every category
func validateMultipliers(p *Provider) error {
	for _, cat := range types.Categories {
		m, ok := p.Multipliers[cat]
		if !ok {
			return fmt.Errorf("missing %s multiplier", cat)
		}
		if !m.IsPositive() {
			return fmt.Errorf("%s multiplier must be positive, got %s", cat, m)
		}
	}
	return nil
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
