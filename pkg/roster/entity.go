package roster

import "strings"

// Attribute names one of the tag collections compared by the scorer.
type Attribute int

// Tag attributes in scoring order.
const (
	Instruments Attribute = iota
	Genres
	Artists
	Roles
	Geek
)

// Attributes lists every tag attribute.
var Attributes = []Attribute{Instruments, Genres, Artists, Roles, Geek}

var attributeNames = [...]string{
	Instruments: "instruments",
	Genres:      "genres",
	Artists:     "artists",
	Roles:       "roles",
	Geek:        "geek",
}

// String returns the raw field name of the attribute.
func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[a]
}

// Entity is a normalized student record.
type Entity struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Year        *int     `json:"year" yaml:"year"`
	Instruments []string `json:"instruments" yaml:"instruments"`
	Genres      []string `json:"genres" yaml:"genres"`
	Artists     []string `json:"artists" yaml:"artists"`
	Roles       []string `json:"roles" yaml:"roles"`
	Geek        []string `json:"geek" yaml:"geek"`
	Collab      string   `json:"collab" yaml:"collab"`
}

// Tags returns the tag collection for attribute a.
// The returned slice is shared with the entity and must not be modified.
func (e *Entity) Tags(a Attribute) []string {
	switch a {
	case Instruments:
		return e.Instruments
	case Genres:
		return e.Genres
	case Artists:
		return e.Artists
	case Roles:
		return e.Roles
	case Geek:
		return e.Geek
	default:
		return nil
	}
}

// HasYear reports whether the entity carries a year.
func (e *Entity) HasYear() bool { return e.Year != nil }

// YearValue returns the year, or 0 when absent.
func (e *Entity) YearValue() int {
	if e.Year == nil {
		return 0
	}
	return *e.Year
}

// WantsCollab reports whether the collab flag expresses a positive interest.
func (e *Entity) WantsCollab() bool {
	switch strings.ToLower(strings.TrimSpace(e.Collab)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

// DisplayLabel returns the name if set, otherwise the ID.
func (e *Entity) DisplayLabel() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Index maps entity IDs to their position in s.
func Index(s []Entity) map[string]int {
	m := make(map[string]int, len(s))
	for i := range s {
		m[s[i].ID] = i
	}
	return m
}

// Find returns a pointer to the entity with the given id, or nil.
func Find(s []Entity, id string) *Entity {
	for i := range s {
		if s[i].ID == id {
			return &s[i]
		}
	}
	return nil
}
