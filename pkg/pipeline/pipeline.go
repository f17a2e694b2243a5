// Package pipeline chains roster loading, layout and link selection.
//
// This package implements the load → layout → select pipeline used by the
// CLI commands and the explore TUI. By centralizing option defaults and
// validation here, every entry point resolves a view the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a roster file and normalize it (pkg/io, pkg/roster)
//  2. Layout: position the students (pkg/layout)
//  3. Select: rank links from the active student, if any (pkg/links)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	entities, err := runner.Load(ctx, "class.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Run(ctx, entities, pipeline.Options{
//	    Kind:   "clusters",
//	    Active: "s1",
//	    Mode:   "band",
//	    TopN:   5,
//	})
//	doc := result.Document()
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/links"
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and TUI
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultTopN is the default number of links drawn for a selection.
	DefaultTopN = 5

	// DefaultGroup is the default group filter.
	DefaultGroup = "all"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization so views can be recorded.
type Options struct {
	// Layout options
	Kind       string   `json:"kind,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	Rotation   float64  `json:"rotation,omitempty"`
	Group      string   `json:"group,omitempty"` // "all", a year, or "none"
	Centered   bool     `json:"centered,omitempty"`
	Margin     *float64 `json:"margin,omitempty"`
	InnerScale *float64 `json:"inner_scale,omitempty"`
	InnerSpin  *float64 `json:"inner_spin,omitempty"`
	Jitter     float64  `json:"jitter,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`

	// Link options
	Active string       `json:"active,omitempty"`
	Mode   string       `json:"mode,omitempty"`
	TopN   int          `json:"top_n,omitempty"`
	Limits links.Limits `json:"limits"`

	// Runtime options (not serialized)
	Table   similarity.Table `json:"-"`
	Logger  *log.Logger      `json:"-"`
	Refresh bool             `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Entities is the full roster the run started from.
	Entities []roster.Entity

	// Layout holds the visible positioned students.
	Layout layout.Result

	// Active is the selected student, or nil.
	Active *roster.Entity

	// Links are ranked from Active; empty when nothing is selected.
	Links []links.Link

	// Mode is the scoring mode actually used.
	Mode similarity.Mode

	// Filter is the parsed group filter.
	Filter layout.Filter

	// Options are the resolved options.
	Options Options

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Students   int
	Nodes      int
	Links      int
	LayoutTime time.Duration
	SelectTime time.Duration
}

// Document converts the result into its serialization form.
func (r *Result) Document() graph.Document {
	return graph.FromResult(r.Layout, r.Links, graph.Meta{
		Width:    r.Options.Width,
		Height:   r.Options.Height,
		Mode:     string(r.Mode),
		Rotation: r.Options.Rotation,
		Filter:   r.Filter,
		Active:   r.Options.Active,
	})
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults applies layout and link defaults.
func (o *Options) SetDefaults() {
	o.SetLayoutDefaults()
	o.SetLinkDefaults()
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Kind == "" {
		o.Kind = string(layout.DefaultKind)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Group == "" {
		o.Group = DefaultGroup
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetLinkDefaults sets default values for link selection.
func (o *Options) SetLinkDefaults() {
	if o.Mode == "" {
		o.Mode = string(similarity.DefaultMode)
	}
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.Limits == (links.Limits{}) {
		o.Limits = links.Desktop
	}
	if o.Table == nil {
		o.Table = similarity.DefaultTable
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the layout fields. An unknown mode is not an error here;
// [Options.ResolveMode] falls back to the default mode instead.
func (o *Options) Validate() error {
	if _, err := layout.ParseKind(o.Kind); err != nil {
		return err
	}
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateRotation(o.Rotation); err != nil {
		return err
	}
	if o.Margin != nil {
		if err := errors.ValidateMargin(*o.Margin); err != nil {
			return err
		}
	}
	if _, err := layout.ParseFilter(o.Group); err != nil {
		return err
	}
	if o.Jitter < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "jitter must not be negative, got %v", o.Jitter)
	}
	return nil
}

// ResolveMode parses Mode, logging a warning and using the default mode
// when it is unknown.
func (o *Options) ResolveMode() similarity.Mode {
	m, err := similarity.ParseMode(o.Mode)
	if err != nil && o.Logger != nil {
		o.Logger.Warn("unknown mode, using default", "mode", o.Mode, "default", m)
	}
	return m
}

// Filter returns the parsed group filter, or All if it does not parse.
func (o *Options) Filter() layout.Filter {
	f, _ := layout.ParseFilter(o.Group)
	return f
}

// LayoutOptions converts the layout fields into layout options.
func (o *Options) LayoutOptions() []layout.Option {
	kind, _ := layout.ParseKind(o.Kind)
	opts := []layout.Option{
		layout.WithKind(kind),
		layout.WithRotation(o.Rotation),
		layout.WithFilter(o.Filter()),
	}
	if o.Centered {
		opts = append(opts, layout.WithCentered())
	}
	if o.Margin != nil {
		opts = append(opts, layout.WithMargin(*o.Margin))
	}
	if o.InnerScale != nil {
		opts = append(opts, layout.WithInnerScale(*o.InnerScale))
	}
	if o.InnerSpin != nil {
		opts = append(opts, layout.WithInnerSpin(*o.InnerSpin))
	}
	if o.Jitter > 0 || o.Seed != 0 {
		jitter := o.Jitter
		if jitter == 0 && kind == layout.KindConstellation {
			jitter = layout.DefaultJitter
		}
		opts = append(opts, layout.WithJitter(jitter, o.Seed))
	}
	return opts
}

// Selector returns the link selector for these options.
func (o *Options) Selector() links.Selector {
	return links.Selector{Table: o.Table, Limits: o.Limits}
}
