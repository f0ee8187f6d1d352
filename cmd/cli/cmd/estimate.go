// Package cmd - estimate command
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/determinism"
	"github.com/ankitbhatnagartech/archcost/core/engine"
	"github.com/ankitbhatnagartech/archcost/core/normalize"
	"github.com/ankitbhatnagartech/archcost/core/types"
	"github.com/ankitbhatnagartech/archcost/internal/errors"
	"github.com/ankitbhatnagartech/archcost/internal/logging"
)

var outputFormat string

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <file>",
	Short: "Estimate costs for an architecture description",
	Long: `Read an estimate request and print the estimate.

The file may be JSON or YAML (.yaml, .yml); "-" reads JSON from stdin.
The request has the same shape as the POST /estimate body.

Examples:
  archcost estimate request.json
  archcost estimate --format table request.yaml
  cat request.json | archcost estimate -`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, table)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if outputFormat != "json" && outputFormat != "table" {
		return fmt.Errorf("unknown format %q (want json or table)", outputFormat)
	}

	req, err := readRequest(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	eng := engine.New(cat, logging.Named("engine"))
	prepared, resp, err := eng.Run(req)
	if err != nil {
		return describeError(err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "table" {
		printTable(out, prepared.Fingerprint, resp)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// readRequest decodes a request file. YAML is converted to JSON first so
// both formats share one decoder and one set of field names.
func readRequest(path string, stdin io.Reader) (*types.EstimateRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.TypeInput, "request file is not valid YAML", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, errors.Wrap(errors.TypeInput, "request file cannot be represented as JSON", err)
		}
	}

	return normalize.DecodeRequest(bytes.NewReader(data))
}

// describeError flattens validation problems into one readable error
func describeError(err error) error {
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	lines := make([]string, 0, len(verr.Problems))
	for _, p := range verr.Problems {
		lines = append(lines, fmt.Sprintf("  %s: %s", p.Field, p.Message))
	}
	return fmt.Errorf("invalid request (%s):\n%s", verr.Code(), strings.Join(lines, "\n"))
}

const tableWidth = 73

func printTable(w io.Writer, fp determinism.Fingerprint, resp *types.EstimateResponse) {
	rule := func(l, r string) {
		fmt.Fprintln(w, l+strings.Repeat("─", tableWidth)+r)
	}
	row := func(label, value string) {
		fmt.Fprintf(w, "│ %-50s %20s │\n", truncate(label, 50), truncate(value, 20))
	}
	money := func(m types.Money) string {
		return fmt.Sprintf("%s %s", resp.Currency, m.StringFixed(types.MoneyPlaces))
	}

	rule("┌", "┐")
	row(fmt.Sprintf("ARCHCOST ESTIMATE (%s)", resp.Architecture), fp.Short())
	rule("├", "┤")
	for _, it := range resp.MonthlyCost.Items() {
		row(string(it.Category), money(types.NewMoney(it.Amount)))
	}
	rule("├", "┤")
	row("TOTAL MONTHLY ESTIMATE", money(types.NewMoney(resp.MonthlyCost.Total())))
	row("TOTAL ANNUAL ESTIMATE", money(resp.AnnualCost))

	if len(resp.OptimizationSuggestions) > 0 {
		rule("├", "┤")
		for _, s := range resp.OptimizationSuggestions {
			row(s.Title, money(s.EstimatedMonthlySaving))
		}
		row("POTENTIAL MONTHLY SAVINGS", money(resp.TotalPotentialSavings))
	}

	rule("├", "┤")
	for _, y := range resp.ScalingProjection {
		row(y.Year, money(y.Cost))
	}

	rule("├", "┤")
	for _, m := range resp.BusinessMetrics {
		row(m.Label, m.Display)
	}
	rule("└", "┘")

	fmt.Fprintf(w, "\nBest value provider: %s\n", resp.MultiCloudComparison.BestValue)
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
