package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/eshaffer321/asset-divider/internal/adapters/sources"
	"github.com/eshaffer321/asset-divider/internal/application/distribute"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
	"github.com/eshaffer321/asset-divider/internal/domain/pricing"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/config"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/logging"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/storage"
)

// app wires configuration into the pipeline components
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *storage.Storage
}

func newApp(g *GlobalFlags, system string) (*app, error) {
	cfg, err := loadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loggingCfg := cfg.Observability.Logging
	if g.Verbose {
		loggingCfg.Level = "debug"
	}
	if g.LogFormat != "" {
		loggingCfg.Format = g.LogFormat
	}

	return &app{
		cfg:    cfg,
		logger: logging.NewLoggerWithSystem(loggingCfg, system),
	}, nil
}

// loadConfig reads path when it exists; a missing file falls back to the
// environment but a malformed one is an error
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.LoadOrEnv_WithPath(path), nil
		}
		return nil, err
	}
	return config.Load(path)
}

// openStorage opens the run ledger when one is configured
func (a *app) openStorage() error {
	if a.cfg.Storage.DatabasePath == "" {
		return nil
	}
	store, err := storage.NewStorage(a.cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	a.store = store
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// repository returns the ledger as an interface, nil when disabled
func (a *app) repository() storage.Repository {
	if a.store == nil {
		return nil
	}
	return a.store
}

func (a *app) pricer() (*pricing.Pricer, error) {
	table, err := pricing.LoadTable(a.cfg.Pricing.TablePath)
	if err != nil {
		return nil, err
	}
	return pricing.NewPricer(table), nil
}

func (a *app) orchestrator(ctx context.Context) (*distribute.Orchestrator, error) {
	pricer, err := a.pricer()
	if err != nil {
		return nil, err
	}

	registry, err := sources.NewRegistryFromConfig(ctx, a.cfg, a.logger.With("component", "sources"))
	if err != nil {
		return nil, err
	}

	return distribute.NewOrchestrator(
		registry,
		pricer,
		depreciation.NewModel(a.cfg.Depreciation),
		a.cfg.Allocation,
		a.repository(),
		a.logger,
	), nil
}
