package links

import (
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

// Candidate is one ranked partner of a student.
type Candidate struct {
	Entity roster.Entity
	Score  float64
	Ratio  float64
}

// Match lists a student's best partners, strongest first.
type Match struct {
	Student  roster.Entity
	Partners []Candidate
}

// Best returns the strongest partner, or nil.
func (m *Match) Best() *Candidate {
	if len(m.Partners) == 0 {
		return nil
	}
	return &m.Partners[0]
}

// Matches ranks partners for every student with [Desktop] limits.
func Matches(entities []roster.Entity, mode similarity.Mode, topN int) []Match {
	return Selector{}.Matches(entities, mode, topN)
}

// Matches returns one entry per student in roster order, each holding up to
// Limits.Clamp(topN) partners ranked exactly as [Selector.Select] ranks them.
// Students with no positive match get an empty partner list.
func (s Selector) Matches(entities []roster.Entity, mode similarity.Mode, topN int) []Match {
	at := func(i int) *roster.Entity { return &entities[i] }
	out := make([]Match, len(entities))
	for i := range entities {
		ranked := s.rank(&entities[i], len(entities), at, mode, topN)
		partners := make([]Candidate, len(ranked))
		for j, c := range ranked {
			partners[j] = Candidate{Entity: entities[c.index], Score: c.score, Ratio: c.ratio}
		}
		out[i] = Match{Student: entities[i], Partners: partners}
	}
	return out
}
