// Package cmd implements the tcore CLI's command tree: flag parsing,
// configuration bootstrap, and the exit-code mapping every command
// returns through.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glitchwizard/tcore/internal/config"
	"github.com/glitchwizard/tcore/internal/output"
)

var (
	// Global flags.
	configFlag   string
	verboseFlag  bool
	cacheDirFlag string
	noCacheFlag  bool

	// resolvedConfig is loaded during PersistentPreRunE.
	resolvedConfig *config.Config
)

// NewRootCmd creates the root command for the tcore CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tcore",
		Short:         "Transformation core CLI",
		Long:          `tcore drives a single asset through its transformation pipeline: caching, dev-dependency accounting, and invalidation tracking, the way an asset bundler's transformer worker would.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: TCORE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "Cache directory (env: TCORE_CACHE_DIR)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Disable the transformation cache")

	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewTransformCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging before any
// subcommand runs.
func initializeGlobals(cmd *cobra.Command) error {
	var cacheDisabled *bool
	if cmd.Flags().Changed("no-cache") {
		cacheDisabled = &noCacheFlag
	}

	loaded, err := config.Load(config.LoaderOptions{
		ConfigFlag:        configFlag,
		CacheDirFlag:      cacheDirFlag,
		CacheDisabledFlag: cacheDisabled,
		Verbose:           verboseFlag,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	resolvedConfig = loaded

	output.SetupLogging(output.LogConfig{Verbose: verboseFlag})

	return nil
}

// GetConfig returns the resolved CLI configuration.
func GetConfig() *config.Config {
	return resolvedConfig
}
