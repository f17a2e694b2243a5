// Package config loads the constellation config file.
//
// The file lives at $XDG_CONFIG_HOME/constellation/config.toml (falling back
// to ~/.config/constellation/config.toml) and is optional:
//
//	[layout]
//	kind = "constellation"
//	width = 1200
//	height = 800
//	jitter = 8
//	seed = 7
//
//	[links]
//	mode = "band"
//	top_n = 6
//	max_top_n = 8
//
//	[weights.instruments]
//	instruments = 6
//
// Weight rows are merged field by field onto the built-in table, and the
// result must satisfy the table's ordering constraints.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/links"
	"github.com/matzehuels/constellation/pkg/similarity"
)

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "constellation"
	// File is the config file name.
	File = "config.toml"
)

// Config is the decoded config file. Zero values mean "not set".
type Config struct {
	Layout  Layout                    `toml:"layout"`
	Links   Links                     `toml:"links"`
	Weights map[string]WeightOverride `toml:"weights"`
}

// Layout holds viewport and layout defaults.
type Layout struct {
	Kind       string   `toml:"kind"`
	Width      float64  `toml:"width"`
	Height     float64  `toml:"height"`
	Margin     *float64 `toml:"margin"`
	InnerScale *float64 `toml:"inner_scale"`
	InnerSpin  *float64 `toml:"inner_spin"`
	Jitter     float64  `toml:"jitter"`
	Seed       uint64   `toml:"seed"`
	Centered   bool     `toml:"centered"`
}

// Links holds link selection defaults.
type Links struct {
	Mode    string `toml:"mode"`
	TopN    int    `toml:"top_n"`
	MinTopN int    `toml:"min_top_n"`
	MaxTopN int    `toml:"max_top_n"`
}

// WeightOverride replaces selected fields of one mode's weights.
type WeightOverride struct {
	Instruments *float64 `toml:"instruments"`
	Genres      *float64 `toml:"genres"`
	Artists     *float64 `toml:"artists"`
	Roles       *float64 `toml:"roles"`
	Geek        *float64 `toml:"geek"`
	Collab      *float64 `toml:"collab"`
}

// Path returns the default config file path, or "" if no home directory
// can be determined.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

// Load reads and validates the config at path, or at [Path] when path is
// empty. A missing file yields an empty config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return &Config{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses and validates a config from r.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every set value.
func (c *Config) Validate() error {
	if _, err := layout.ParseKind(c.Layout.Kind); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.kind")
	}
	if c.Layout.Width != 0 || c.Layout.Height != 0 {
		if err := errors.ValidateViewport(c.Layout.Width, c.Layout.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.width/height")
		}
	}
	if m := c.Layout.Margin; m != nil {
		if err := errors.ValidateMargin(*m); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.margin")
		}
	}
	if s := c.Layout.InnerScale; s != nil && (*s < 0 || *s > 1) {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.inner_scale must be in [0, 1], got %v", *s)
	}
	if c.Layout.Jitter < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.jitter must not be negative")
	}
	if _, err := similarity.ParseMode(c.Links.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "links.mode")
	}
	if c.Links.TopN < 0 || c.Links.MinTopN < 0 || c.Links.MaxTopN < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "links: top_n limits must not be negative")
	}
	if c.Links.MinTopN > 0 && c.Links.MinTopN < links.Desktop.Min {
		return errors.New(errors.ErrCodeInvalidConfig, "links: min_top_n must be at least %d, got %d", links.Desktop.Min, c.Links.MinTopN)
	}
	if c.Links.MinTopN > 0 && c.Links.MaxTopN > 0 && c.Links.MinTopN > c.Links.MaxTopN {
		return errors.New(errors.ErrCodeInvalidConfig, "links: min_top_n %d exceeds max_top_n %d", c.Links.MinTopN, c.Links.MaxTopN)
	}
	_, err := c.Table()
	return err
}

// Table returns the built-in weight table with the overrides applied.
func (c *Config) Table() (similarity.Table, error) {
	if len(c.Weights) == 0 {
		return similarity.DefaultTable, nil
	}
	rows := similarity.Table{}
	for name, o := range c.Weights {
		m := similarity.Mode(name)
		if !m.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "weights.%s: unknown mode", name)
		}
		rows[m] = o.apply(similarity.DefaultTable.Weights(m))
	}
	t := similarity.DefaultTable.Merge(rows)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Limits returns the link limits, starting from [links.Desktop]. The
// minimum never drops below links.Desktop.Min, and the maximum never below
// the minimum.
func (c *Config) Limits() links.Limits {
	l := links.Desktop
	if c.Links.MinTopN > 0 {
		l.Min = max(c.Links.MinTopN, links.Desktop.Min)
	}
	if c.Links.MaxTopN > 0 {
		l.Max = max(c.Links.MaxTopN, l.Min)
	}
	return l
}

func (o WeightOverride) apply(w similarity.Weights) similarity.Weights {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&w.Instruments, o.Instruments)
	set(&w.Genres, o.Genres)
	set(&w.Artists, o.Artists)
	set(&w.Roles, o.Roles)
	set(&w.Geek, o.Geek)
	set(&w.Collab, o.Collab)
	return w
}
