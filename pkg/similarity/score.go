package similarity

import (
	"strings"

	"github.com/matzehuels/constellation/pkg/roster"
)

// Score returns the similarity of a and b under mode using [DefaultTable].
func Score(a, b *roster.Entity, mode Mode) float64 {
	return DefaultTable.Score(a, b, mode)
}

// Score returns the weighted overlap of a and b under mode.
//
// It is 0 when either entity is nil or both share an ID. Negative weights
// in an unvalidated table count as 0, so the result is never negative.
// Score(a, b, m) == Score(b, a, m) for every input.
func (t Table) Score(a, b *roster.Entity, mode Mode) float64 {
	if a == nil || b == nil || a.ID == b.ID {
		return 0
	}
	w := t.Weights(mode)

	var total float64
	for _, attr := range roster.Attributes {
		if n := Overlap(a.Tags(attr), b.Tags(attr)); n > 0 {
			total += max(w.For(attr), 0) * float64(n)
		}
	}
	if w.Collab > 0 && a.WantsCollab() && b.WantsCollab() {
		total += w.Collab
	}
	return total
}

// Overlap counts the distinct tokens present in both a and b, ignoring case.
func Overlap(a, b []string) int {
	return len(Shared(a, b))
}

// Shared returns the distinct lowercase tokens present in both a and b, in
// the order they first appear in a.
func Shared(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]bool, len(b))
	for _, tok := range b {
		inB[strings.ToLower(tok)] = true
	}
	var out []string
	seen := make(map[string]bool, len(a))
	for _, tok := range a {
		tok = strings.ToLower(tok)
		if inB[tok] && !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

// Contribution is one attribute's share of a score.
type Contribution struct {
	Attribute roster.Attribute
	Shared    []string
	Points    float64
}

// Breakdown explains a score attribute by attribute. Attributes with no
// shared tokens are omitted; the collab bonus is reported separately.
func (t Table) Breakdown(a, b *roster.Entity, mode Mode) (parts []Contribution, bonus float64) {
	if a == nil || b == nil || a.ID == b.ID {
		return nil, 0
	}
	w := t.Weights(mode)
	for _, attr := range roster.Attributes {
		shared := Shared(a.Tags(attr), b.Tags(attr))
		if len(shared) == 0 {
			continue
		}
		parts = append(parts, Contribution{
			Attribute: attr,
			Shared:    shared,
			Points:    max(w.For(attr), 0) * float64(len(shared)),
		})
	}
	if w.Collab > 0 && a.WantsCollab() && b.WantsCollab() {
		bonus = w.Collab
	}
	return parts, bonus
}
