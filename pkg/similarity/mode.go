// Package similarity scores how well two students match under a named
// weighting policy.
//
// A score is a weighted sum of per-attribute overlap counts: for each tag
// attribute the number of distinct tokens both students carry. Each [Mode]
// selects a [Weights] row from a [Table]. Scores are non-negative,
// commutative, and zero for a student compared with itself.
package similarity

import (
	"strings"

	"github.com/matzehuels/constellation/pkg/errors"
)

// Mode names a weighting policy.
type Mode string

// Scoring modes.
const (
	// ModeInstruments favors shared instruments.
	ModeInstruments Mode = "instruments"
	// ModeInfluences favors shared artists and genres.
	ModeInfluences Mode = "influences"
	// ModeBand blends every attribute for forming a band, with extra weight on
	// instruments and roles and a bonus when both want to collaborate.
	ModeBand Mode = "band"
	// ModeIdeal is the holistic blend and the default.
	ModeIdeal Mode = "ideal"
)

// DefaultMode is applied when no mode or an unknown mode is given.
const DefaultMode = ModeIdeal

// Modes lists every mode in display order.
var Modes = []Mode{ModeIdeal, ModeBand, ModeInstruments, ModeInfluences}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeInstruments, ModeInfluences, ModeBand, ModeIdeal:
		return true
	default:
		return false
	}
}

// OrDefault returns m if it is valid and [DefaultMode] otherwise.
func (m Mode) OrDefault() Mode {
	if m.Valid() {
		return m
	}
	return DefaultMode
}

// Next returns the mode after m in [Modes], wrapping around.
func (m Mode) Next() Mode {
	for i, candidate := range Modes {
		if candidate == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// ParseMode resolves a user-supplied mode name, ignoring case and
// surrounding space. An empty name yields [DefaultMode] with no error. An
// unknown name also yields [DefaultMode], together with an INVALID_MODE
// error the caller may report before carrying on.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMode, nil
	}
	m := Mode(s)
	if !m.Valid() {
		return DefaultMode, errors.New(errors.ErrCodeInvalidMode,
			"unknown mode %q (must be one of: ideal, band, instruments, influences)", s)
	}
	return m, nil
}
