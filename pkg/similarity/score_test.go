package similarity

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

func student(id string, instruments, genres, artists, roles, geek []string) *roster.Entity {
	return &roster.Entity{
		ID:          id,
		Name:        id,
		Instruments: instruments,
		Genres:      genres,
		Artists:     artists,
		Roles:       roles,
		Geek:        geek,
	}
}

func TestScore(t *testing.T) {
	guitarDrums := student("a", []string{"guitar", "drums"}, nil, nil, nil, nil)
	drumsGuitar := student("b", []string{"drums", "guitar", "bass"}, nil, nil, nil, nil)
	fan := student("c", nil, []string{"jazz", "funk"}, []string{"prince"}, []string{"vocals"}, []string{"chess"})
	fan2 := student("d", []string{"guitar"}, []string{"funk"}, []string{"prince"}, []string{"vocals"}, []string{"chess"})

	tests := []struct {
		name string
		a, b *roster.Entity
		mode Mode
		want float64
	}{
		{"TwoInstrumentsInstrumentMode", guitarDrums, drumsGuitar, ModeInstruments, 10},
		{"TwoInstrumentsInfluenceMode", guitarDrums, drumsGuitar, ModeInfluences, 2},
		{"TwoInstrumentsIdeal", guitarDrums, drumsGuitar, ModeIdeal, 4},
		{"InfluencesMode", fan, fan2, ModeInfluences, 3 + 4 + 1},
		{"BandMode", fan, fan2, ModeBand, 2 + 2 + 3 + 1},
		{"NoOverlap", guitarDrums, fan, ModeIdeal, 0},
		{"Self", guitarDrums, guitarDrums, ModeIdeal, 0},
		{"NilLeft", nil, guitarDrums, ModeIdeal, 0},
		{"NilRight", guitarDrums, nil, ModeIdeal, 0},
		{"UnknownModeUsesIdeal", guitarDrums, drumsGuitar, Mode("vibes"), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a, tt.b, tt.mode); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreInstrumentsBeatsInfluences(t *testing.T) {
	a := student("a", []string{"piano", "cello"}, nil, nil, nil, nil)
	b := student("b", []string{"cello", "piano"}, nil, nil, nil, nil)
	if Score(a, b, ModeInstruments) <= Score(a, b, ModeInfluences) {
		t.Errorf("instruments score %v should exceed influences score %v",
			Score(a, b, ModeInstruments), Score(a, b, ModeInfluences))
	}
}

func TestScoreSameIDDifferentValues(t *testing.T) {
	a := student("same", []string{"guitar"}, nil, nil, nil, nil)
	b := student("same", []string{"guitar"}, nil, nil, nil, nil)
	if got := Score(a, b, ModeInstruments); got != 0 {
		t.Errorf("Score() = %v for entities sharing an id, want 0", got)
	}
}

func TestCollabBonus(t *testing.T) {
	a := student("a", []string{"bass"}, nil, nil, nil, nil)
	b := student("b", []string{"bass"}, nil, nil, nil, nil)
	a.Collab, b.Collab = "yes", "Yes"

	if got := Score(a, b, ModeBand); got != 3+1 {
		t.Errorf("band Score() = %v, want 4", got)
	}
	if got := Score(a, b, ModeIdeal); got != 2 {
		t.Errorf("ideal Score() = %v, want 2 (no bonus)", got)
	}

	b.Collab = "maybe"
	if got := Score(a, b, ModeBand); got != 3 {
		t.Errorf("band Score() with one-sided interest = %v, want 3", got)
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"Empty", nil, nil, 0},
		{"OneEmpty", []string{"a"}, nil, 0},
		{"Distinct", []string{"a", "b"}, []string{"c"}, 0},
		{"DuplicatesCountOnce", []string{"a", "a", "b"}, []string{"a", "a"}, 1},
		{"CaseInsensitive", []string{"Guitar"}, []string{"guitar"}, 1},
		{"Several", []string{"a", "b", "c"}, []string{"c", "b", "z"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlap() = %d, want %d", got, tt.want)
			}
			if got := Overlap(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlap() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBreakdown(t *testing.T) {
	a := student("a", []string{"guitar", "drums"}, []string{"funk"}, nil, nil, nil)
	b := student("b", []string{"drums", "guitar"}, []string{"funk", "soul"}, nil, nil, nil)
	a.Collab, b.Collab = "yes", "yes"

	parts, bonus := DefaultTable.Breakdown(a, b, ModeBand)
	if len(parts) != 2 {
		t.Fatalf("parts = %+v, want 2 entries", parts)
	}
	if parts[0].Attribute != roster.Instruments || !reflect.DeepEqual(parts[0].Shared, []string{"guitar", "drums"}) {
		t.Errorf("parts[0] = %+v", parts[0])
	}
	if parts[1].Attribute != roster.Genres || parts[1].Points != 2 {
		t.Errorf("parts[1] = %+v", parts[1])
	}
	if bonus != 1 {
		t.Errorf("bonus = %v, want 1", bonus)
	}

	var total float64
	for _, p := range parts {
		total += p.Points
	}
	if total+bonus != DefaultTable.Score(a, b, ModeBand) {
		t.Errorf("breakdown total %v != score %v", total+bonus, DefaultTable.Score(a, b, ModeBand))
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"instruments", ModeInstruments, false},
		{" Influences ", ModeInfluences, false},
		{"BAND", ModeBand, false},
		{"ideal", ModeIdeal, false},
		{"", ModeIdeal, false},
		{"vibes", ModeIdeal, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidMode) {
			t.Errorf("ParseMode(%q) code = %v", tt.in, errors.GetCode(err))
		}
	}
}

func TestModeNext(t *testing.T) {
	m := ModeIdeal
	seen := map[Mode]bool{}
	for range Modes {
		seen[m] = true
		m = m.Next()
	}
	if m != ModeIdeal || len(seen) != len(Modes) {
		t.Errorf("Next() cycle visited %v and ended at %q", seen, m)
	}
	if Mode("bogus").Next() != Modes[0] {
		t.Error("Next() of an unknown mode should restart the cycle")
	}
}

func TestTableValidate(t *testing.T) {
	if err := DefaultTable.Validate(); err != nil {
		t.Fatalf("DefaultTable.Validate() = %v", err)
	}

	tests := []struct {
		name     string
		override Table
	}{
		{"Negative", Table{ModeIdeal: {Instruments: -1, Genres: 1, Artists: 1, Roles: 1, Geek: 1}}},
		{"InstrumentsNotHighest", Table{ModeInstruments: {Instruments: 2, Genres: 2}}},
		{"InfluencesNotDominant", Table{ModeInfluences: {Instruments: 5, Genres: 3, Artists: 4}}},
		{"BlendZero", Table{ModeBand: {Instruments: 1, Genres: 1, Artists: 1, Roles: 1}}},
		{"NegativeCollab", Table{ModeBand: {Instruments: 1, Genres: 1, Artists: 1, Roles: 1, Geek: 1, Collab: -2}}},
		{"NaNGenres", Table{ModeIdeal: {Instruments: 2, Genres: math.NaN(), Artists: 2, Roles: 2, Geek: 1}}},
		{"InfInstruments", Table{ModeInstruments: {Instruments: math.Inf(1), Genres: 1, Artists: 1, Roles: 1}}},
		{"NaNCollab", Table{ModeBand: {Instruments: 3, Genres: 2, Artists: 2, Roles: 3, Geek: 1, Collab: math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultTable.Merge(tt.override).Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestTableFallbacks(t *testing.T) {
	partial := Table{ModeInstruments: {Instruments: 9}}
	if got := partial.Weights(ModeInfluences); got != DefaultTable[ModeInfluences] {
		t.Errorf("missing row = %+v, want default", got)
	}
	if got := partial.Weights(ModeInstruments).Instruments; got != 9 {
		t.Errorf("override row instruments = %v, want 9", got)
	}

	negative := Table{ModeIdeal: {Instruments: -5}}
	a := student("a", []string{"x"}, nil, nil, nil, nil)
	b := student("b", []string{"x"}, nil, nil, nil, nil)
	if got := negative.Score(a, b, ModeIdeal); got != 0 {
		t.Errorf("Score() with negative weight = %v, want 0", got)
	}
}
