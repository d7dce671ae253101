package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/logger"
)

// options are the global flags shared by every subcommand
type options struct {
	output  string
	verbose bool
}

// logger returns a console logger in verbose mode and a silent one otherwise
func (o *options) logger() core.Logger {
	if o.verbose {
		return logger.NewZapLoggerWithLevel(false, core.LogLevelDebug)
	}
	return logger.NewNoopLogger()
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vendsync",
		Short: "Vending machine telemetry sync and price derivation",
		Long: `vendsync pulls vend transactions from the telemetry provider into the
transaction store and derives customer prices from operator pricing policies.

Configuration is read from configs/<VS_ENV>.yaml with VS_ environment overrides.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(opts.output)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", formatJSON, "Output format: json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(newSyncCmd(opts))
	rootCmd.AddCommand(newPriceCmd(opts))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
