package cli

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/asset-divider/internal/application/distribute"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/config"
)

// GlobalFlags are shared by every command
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	LogFormat  string
}

func (g *GlobalFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&g.ConfigPath, "config", "c", "config.yaml", "Path to config file (falls back to environment variables)")
	cmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&g.LogFormat, "log-format", "", "Log format: text or json (overrides config)")
}

// RunFlags are the flags of the run command
type RunFlags struct {
	OutputDir string
	Formats   []string
	DryRun    bool
	Title     string
}

func (f *RunFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.OutputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringSliceVarP(&f.Formats, "format", "f", nil, "Report formats: html, json, xlsx (overrides config)")
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false, "Compute the distribution without writing reports")
	cmd.Flags().StringVar(&f.Title, "title", "", "Report title (overrides config)")
}

// ToOptions merges flags over the configured output settings
func (f RunFlags) ToOptions(cfg *config.Config) distribute.Options {
	opts := distribute.Options{
		DryRun:    f.DryRun,
		OutputDir: cfg.Output.Dir,
		Formats:   cfg.Output.Formats,
		Title:     cfg.Output.Title,
		Currency:  cfg.Output.Currency,
	}
	if f.OutputDir != "" {
		opts.OutputDir = f.OutputDir
	}
	if len(f.Formats) > 0 {
		opts.Formats = f.Formats
	}
	if f.Title != "" {
		opts.Title = f.Title
	}
	return opts
}
