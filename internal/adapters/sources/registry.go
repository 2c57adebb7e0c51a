package sources

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// maxParallelLoads bounds concurrent workbook reads
const maxParallelLoads = 4

// Registry manages all registered sources. Order of registration is the
// order in which assets are merged.
type Registry struct {
	sources []Source
	byName  map[string]Source
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewRegistry creates a new source registry
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		byName: make(map[string]Source),
		logger: logger,
	}
}

// Register adds a source to the registry
func (r *Registry) Register(source Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := source.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("source %s already registered", name)
	}

	r.byName[name] = source
	r.sources = append(r.sources, source)
	r.logger.Debug("registered source",
		slog.String("source", name),
		slog.String("kind", string(source.Kind())),
	)
	return nil
}

// Get returns a source by name
func (r *Registry) Get(name string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("source %s not found", name)
	}
	return source, nil
}

// List returns registered source names in registration order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	return names
}

// Len is the number of registered sources
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// Load is the merged content of every source
type Load struct {
	Results []*LoadResult
	Assets  []*asset.Asset
	Skipped []SkippedRow
}

// LoadAll reads every source concurrently and merges the results in
// registration order. Each asset's Sequence is its position in the merged
// list, so the outcome does not depend on which source finished first.
// The first structural error cancels the remaining loads.
func (r *Registry) LoadAll(ctx context.Context) (*Load, error) {
	r.mu.RLock()
	sources := append([]Source(nil), r.sources...)
	r.mu.RUnlock()

	results := make([]*LoadResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			res, err := src.Load(gctx)
			if err != nil {
				return fmt.Errorf("load %s: %w", src.Name(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	load := &Load{Results: results}
	for _, res := range results {
		for _, skipped := range res.Skipped {
			r.logger.Warn("skipped row",
				slog.String("source", skipped.Source),
				slog.Int("row", skipped.Row),
				slog.String("reason", skipped.Reason),
			)
		}
		r.logger.Info("loaded source",
			slog.String("source", res.Source),
			slog.Int("assets", len(res.Assets)),
			slog.Int("skipped", len(res.Skipped)),
		)
		for _, a := range res.Assets {
			a.Sequence = len(load.Assets)
			load.Assets = append(load.Assets, a)
		}
		load.Skipped = append(load.Skipped, res.Skipped...)
	}
	return load, nil
}
