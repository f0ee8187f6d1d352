// Package cmd provides the CLI commands for archcost.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ankitbhatnagartech/archcost/internal/config"
	"github.com/ankitbhatnagartech/archcost/internal/logging"
)

// Version is stamped at build time with -ldflags "-X .../cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool

	// cfg is loaded once before any subcommand runs
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "archcost",
	Short: "Estimate monthly cloud cost for an application architecture",
	Long: `archcost turns a description of an application architecture and its
traffic into a deterministic monthly cost breakdown, optimization
suggestions, a multi-provider comparison and business metrics.

Examples:
  archcost serve
  archcost estimate request.json
  archcost estimate --format table request.yaml
  archcost providers`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON); defaults plus environment when omitted")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}
	if err := logging.Initialize(loaded.Logging); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	cfg = loaded
	return nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "archcost version %s\n", Version)
}
