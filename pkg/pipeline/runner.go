package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/constellation/pkg/cache"
	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/io"
	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/links"
	"github.com/matzehuels/constellation/pkg/observability"
	"github.com/matzehuels/constellation/pkg/roster"
)

// Runner encapsulates pipeline execution with document caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads and normalizes the roster at path.
func (r *Runner) Load(ctx context.Context, path string) ([]roster.Entity, error) {
	start := time.Now()
	entities, err := io.LoadRoster(path)
	observability.Pipeline().OnLoad(ctx, path, len(entities), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded roster", "path", path, "students", len(entities), "duration", time.Since(start))
	return entities, nil
}

// Run lays out entities and, when opts.Active is set, selects its links.
func (r *Runner) Run(ctx context.Context, entities []roster.Entity, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Entities: entities,
		Mode:     opts.ResolveMode(),
		Filter:   opts.Filter(),
		Links:    []links.Link{},
		Stats:    Stats{Students: len(entities)},
	}

	if opts.Active != "" {
		result.Active = roster.Find(entities, opts.Active)
		if result.Active == nil {
			return nil, errors.New(errors.ErrCodeNotFound, "student %q not in roster", opts.Active)
		}
	}

	// Stage 1: Layout
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Layout = r.Layout(ctx, entities, opts)
	result.Stats.Nodes = len(result.Layout.Nodes)

	// Stage 2: Select
	if result.Active != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		observability.Pipeline().OnSelectStart(ctx, string(result.Mode), opts.TopN)
		result.Links = opts.Selector().Select(result.Active, result.Layout.Nodes, result.Mode, opts.TopN)
		result.Stats.SelectTime = time.Since(start)
		result.Stats.Links = len(result.Links)
		observability.Pipeline().OnSelectComplete(ctx, string(result.Mode), len(result.Links), result.Stats.SelectTime)

		r.Logger.Debug("selected links",
			"active", result.Active.ID,
			"mode", result.Mode,
			"links", len(result.Links),
			"duration", result.Stats.SelectTime)
	}

	result.Options = opts
	return result, nil
}

// Layout positions entities with opts. Options must already be defaulted.
func (r *Runner) Layout(ctx context.Context, entities []roster.Entity, opts Options) layout.Result {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Kind, len(entities))
	res := layout.Compute(entities, opts.Width, opts.Height, opts.LayoutOptions()...)
	d := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, string(res.Kind), len(res.Nodes), d)

	r.Logger.Debug("computed layout",
		"kind", res.Kind,
		"nodes", len(res.Nodes),
		"groups", len(res.Groups),
		"duration", d)
	return res
}

// Execute loads path and runs the pipeline on it.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	entities, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, entities, opts)
}

// RenderDocument runs the pipeline and encodes the document in format,
// serving it from the cache when an identical view was encoded before.
// The boolean reports a cache hit.
func (r *Runner) RenderDocument(ctx context.Context, entities []roster.Entity, opts Options, format string) ([]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	key, err := r.documentKey(entities, opts, format)
	if err != nil {
		return nil, false, err
	}
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			r.Logger.Debug("document cache hit", "format", format)
			return data, true, nil
		}
	}

	res, err := r.Run(ctx, entities, opts)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := graph.WriteDocument(&buf, res.Document(), format); err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLDocument); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	}
	return buf.Bytes(), false, nil
}

func (r *Runner) documentKey(entities []roster.Entity, opts Options, format string) (string, error) {
	rosterHash, err := cache.HashValue(entities)
	if err != nil {
		return "", err
	}
	weights, err := cache.HashValue(opts.Table)
	if err != nil {
		return "", err
	}
	deref := func(p *float64, fallback float64) float64 {
		if p == nil {
			return fallback
		}
		return *p
	}
	return r.Keyer.DocumentKey(rosterHash, cache.DocumentKeyOpts{
		Kind:       opts.Kind,
		Width:      opts.Width,
		Height:     opts.Height,
		Rotation:   opts.Rotation,
		Group:      opts.Group,
		Centered:   opts.Centered,
		Margin:     deref(opts.Margin, layout.DefaultMargin),
		InnerScale: deref(opts.InnerScale, layout.DefaultInnerScale),
		InnerSpin:  deref(opts.InnerSpin, layout.DefaultInnerSpin),
		Jitter:     opts.Jitter,
		Seed:       opts.Seed,
		Active:     opts.Active,
		Mode:       opts.Mode,
		TopN:       opts.Limits.Clamp(opts.TopN),
		Weights:    weights,
		Format:     format,
	}), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
