package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/asset-divider/internal/api"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port      int
	ReportDir string
}

func newServeCommand(global *GlobalFlags) *cobra.Command {
	var flags ServeFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve produced reports and the run ledger over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, "api")
			if err != nil {
				return err
			}
			if err := a.openStorage(); err != nil {
				return err
			}
			defer a.close()

			apiCfg := api.Config{
				Port:           a.cfg.Server.Port,
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				ReportDir:      a.cfg.Output.Dir,
			}
			if flags.Port > 0 {
				apiCfg.Port = flags.Port
			}
			if flags.ReportDir != "" {
				apiCfg.ReportDir = flags.ReportDir
			}

			return RunServe(cmd.Context(), api.NewServer(apiCfg, a.repository(), a.logger), a.logger)
		},
	}

	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().StringVar(&flags.ReportDir, "reports", "", "Report directory to serve (defaults to output.dir)")
	return cmd
}

// RunServe runs the server until ctx is cancelled or SIGINT/SIGTERM arrives.
func RunServe(ctx context.Context, server *api.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		return err
	}
	logger.Info("server stopped")
	return <-errCh
}
