package layout

import "math"

// Defaults for layout options.
const (
	DefaultMargin     = 40.0
	DefaultInnerScale = 0.3
	DefaultInnerSpin  = 0.35
	// DefaultJitter is the jitter amplitude used by KindConstellation
	// when none is set.
	DefaultJitter = 12.0
)

// StartAngle places item 0 of every ring at the top.
const StartAngle = -math.Pi / 2

type config struct {
	kind       Kind
	rotation   float64
	filter     Filter
	margin     float64
	innerScale float64
	innerSpin  float64
	centered   bool
	jitter     float64
	jitterSet  bool
	seed       uint64
}

// Option configures [Compute].
type Option func(*config)

// WithKind selects the layout algorithm.
func WithKind(k Kind) Option {
	return func(c *config) { c.kind = k }
}

// WithRotation turns the layout by r radians.
func WithRotation(r float64) Option {
	return func(c *config) { c.rotation = r }
}

// WithFilter restricts output to the groups f matches.
func WithFilter(f Filter) Option {
	return func(c *config) { c.filter = f }
}

// WithMargin sets the inset kept free on every side of the viewport.
func WithMargin(m float64) Option {
	return func(c *config) { c.margin = m }
}

// WithInnerScale sets the inner ring radius as a fraction of the usable radius.
func WithInnerScale(s float64) Option {
	return func(c *config) { c.innerScale = s }
}

// WithInnerSpin sets the fraction of the rotation applied to inner rings.
func WithInnerSpin(s float64) Option {
	return func(c *config) { c.innerSpin = s }
}

// WithCentered moves a single filtered group to the viewport center.
func WithCentered() Option {
	return func(c *config) { c.centered = true }
}

// WithJitter offsets each node by up to amplitude pixels in a direction
// derived from its ID and seed.
func WithJitter(amplitude float64, seed uint64) Option {
	return func(c *config) {
		c.jitter = amplitude
		c.jitterSet = true
		c.seed = seed
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		kind:       DefaultKind,
		margin:     DefaultMargin,
		innerScale: DefaultInnerScale,
		innerSpin:  DefaultInnerSpin,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.kind.Valid() {
		c.kind = DefaultKind
	}
	if c.kind == KindConstellation && !c.jitterSet {
		c.jitter = DefaultJitter
	}
	c.rotation = finiteOr(c.rotation, 0)
	c.margin = math.Max(finiteOr(c.margin, DefaultMargin), 0)
	c.innerScale = clampUnit(finiteOr(c.innerScale, DefaultInnerScale))
	c.innerSpin = finiteOr(c.innerSpin, DefaultInnerSpin)
	c.jitter = math.Max(finiteOr(c.jitter, 0), 0)
	return c
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
