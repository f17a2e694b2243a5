package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/constellation/pkg/pipeline"
)

// viewFlags are the layout and link flags shared by layout, links and explore.
// Flags left unset fall back to the config file, then to pipeline defaults.
type viewFlags struct {
	kind     string
	width    float64
	height   float64
	rotation float64
	group    string
	centered bool
	jitter   float64
	seed     uint64
	mode     string
	top      int
}

func (f *viewFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.kind, "kind", "k", "", "layout kind: ring, clusters (default), constellation")
	fs.Float64Var(&f.width, "width", 0, "viewport width (default 800)")
	fs.Float64Var(&f.height, "height", 0, "viewport height (default 600)")
	fs.Float64Var(&f.rotation, "rotation", 0, "rotation in radians")
	fs.StringVarP(&f.group, "group", "g", "", `group filter: "all", a year, or "none"`)
	fs.BoolVar(&f.centered, "centered", false, "center a single visible group in the viewport")
	fs.Float64Var(&f.jitter, "jitter", 0, "max node displacement in pixels")
	fs.Uint64Var(&f.seed, "seed", 0, "jitter seed")
	fs.StringVarP(&f.mode, "mode", "m", "", "scoring mode: ideal (default), band, instruments, influences")
	fs.IntVarP(&f.top, "top", "n", 0, "number of links to draw (default 5)")
}

// options merges the config file and any flags the user set.
func (c *CLI) options(cmd *cobra.Command, f *viewFlags) (pipeline.Options, error) {
	cfg := c.Config
	table, err := cfg.Table()
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Kind:       cfg.Layout.Kind,
		Width:      cfg.Layout.Width,
		Height:     cfg.Layout.Height,
		Centered:   cfg.Layout.Centered,
		Margin:     cfg.Layout.Margin,
		InnerScale: cfg.Layout.InnerScale,
		InnerSpin:  cfg.Layout.InnerSpin,
		Jitter:     cfg.Layout.Jitter,
		Seed:       cfg.Layout.Seed,
		Mode:       cfg.Links.Mode,
		TopN:       cfg.Links.TopN,
		Limits:     cfg.Limits(),
		Table:      table,
		Logger:     c.Logger,
	}

	changed := cmd.Flags().Changed
	if changed("kind") {
		opts.Kind = f.kind
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("rotation") {
		opts.Rotation = f.rotation
	}
	if changed("group") {
		opts.Group = f.group
	}
	if changed("centered") {
		opts.Centered = f.centered
	}
	if changed("jitter") {
		opts.Jitter = f.jitter
	}
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("mode") {
		opts.Mode = f.mode
	}
	if changed("top") {
		opts.TopN = f.top
	}

	opts.SetDefaults()
	return opts, nil
}
