package similarity

import (
	"math"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

// Weights is one mode's multiplier per attribute overlap, plus the bonus
// added when both students want to collaborate.
type Weights struct {
	Instruments float64 `json:"instruments" toml:"instruments" yaml:"instruments"`
	Genres      float64 `json:"genres" toml:"genres" yaml:"genres"`
	Artists     float64 `json:"artists" toml:"artists" yaml:"artists"`
	Roles       float64 `json:"roles" toml:"roles" yaml:"roles"`
	Geek        float64 `json:"geek" toml:"geek" yaml:"geek"`
	Collab      float64 `json:"collab" toml:"collab" yaml:"collab"`
}

// For returns the weight of attribute a.
func (w Weights) For(a roster.Attribute) float64 {
	switch a {
	case roster.Instruments:
		return w.Instruments
	case roster.Genres:
		return w.Genres
	case roster.Artists:
		return w.Artists
	case roster.Roles:
		return w.Roles
	case roster.Geek:
		return w.Geek
	default:
		return 0
	}
}

// Table maps each mode to its weights.
type Table map[Mode]Weights

// DefaultTable is the built-in weight table.
var DefaultTable = Table{
	ModeInstruments: {Instruments: 5, Genres: 1, Artists: 1, Roles: 1},
	ModeInfluences:  {Instruments: 1, Genres: 3, Artists: 4, Roles: 1},
	ModeBand:        {Instruments: 3, Genres: 2, Artists: 2, Roles: 3, Geek: 1, Collab: 1},
	ModeIdeal:       {Instruments: 2, Genres: 2, Artists: 2, Roles: 2, Geek: 1},
}

// Weights returns the row for mode. Unknown modes resolve to [DefaultMode];
// modes missing from t fall back to [DefaultTable].
func (t Table) Weights(mode Mode) Weights {
	mode = mode.OrDefault()
	if w, ok := t[mode]; ok {
		return w
	}
	return DefaultTable[mode]
}

// Merge returns a copy of t with the rows of override replacing its own.
func (t Table) Merge(override Table) Table {
	out := make(Table, len(t)+len(override))
	for m, w := range t {
		out[m] = w
	}
	for m, w := range override {
		out[m] = w
	}
	return out
}

// Validate checks the ordering constraints every table must satisfy:
//   - every weight is finite and not negative
//   - instruments outweighs every other attribute in the instruments mode
//   - artists and genres each outweigh instruments, roles and geek in the
//     influences mode
//   - no attribute has zero weight in the band and ideal blends
func (t Table) Validate() error {
	for _, m := range Modes {
		w := t.Weights(m)
		for _, a := range roster.Attributes {
			if !finite(w.For(a)) {
				return errors.New(errors.ErrCodeInvalidConfig, "%s: %s weight must be finite", m, a)
			}
			if w.For(a) < 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "%s: %s weight is negative", m, a)
			}
		}
		if !finite(w.Collab) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: collab weight must be finite", m)
		}
		if w.Collab < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: collab weight is negative", m)
		}
	}

	inst := t.Weights(ModeInstruments)
	if inst.Instruments <= max(inst.Genres, inst.Artists, inst.Roles, inst.Geek) {
		return errors.New(errors.ErrCodeInvalidConfig, "instruments: instrument weight must be the highest")
	}

	infl := t.Weights(ModeInfluences)
	if min(infl.Artists, infl.Genres) <= max(infl.Instruments, infl.Roles, infl.Geek) {
		return errors.New(errors.ErrCodeInvalidConfig, "influences: artist and genre weights must dominate")
	}

	for _, m := range []Mode{ModeBand, ModeIdeal} {
		w := t.Weights(m)
		for _, a := range roster.Attributes {
			if w.For(a) == 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "%s: %s weight must not be zero", m, a)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
