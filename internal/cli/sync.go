package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/vending-sync/internal/app"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/config"
)

func newSyncCmd(opts *options) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize telemetry transactions",
	}

	var migrate bool
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one sync over every eligible machine",
		Long: `Fetches the trailing window of transactions for every approved machine
with an external id and stores the ones not seen before.

The command exits with an error when any machine failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runSync(ctx, cmd, opts, migrate)
		},
	}
	runCmd.Flags().BoolVar(&migrate, "migrate", false, "Apply database migrations before syncing")

	syncCmd.AddCommand(runCmd)
	return syncCmd
}

func runSync(ctx context.Context, cmd *cobra.Command, opts *options, migrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(ctx, cfg, opts.logger())
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	if migrate {
		if err := application.Database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	runCtx := ctx
	if cfg.Sync.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = application.TimeProvider.WithTimeout(ctx, cfg.Sync.RunTimeout)
		defer cancel()
	}

	report, err := application.Sync.RunSync(runCtx)
	if err != nil {
		return fmt.Errorf("sync run failed: %w", err)
	}

	if err := printResult(cmd.OutOrStdout(), opts.output, dto.SyncRunResponse{
		Success: report.FailedMachines == 0,
		Report:  report,
	}); err != nil {
		return err
	}

	if report.FailedMachines > 0 {
		return fmt.Errorf("%d of %d machines failed to sync", report.FailedMachines, report.TotalMachines)
	}
	return nil
}
