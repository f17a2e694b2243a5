package roster

import (
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Raw field names, with the aliases accepted for each field. Lookup tries
// the exact key first and then a case-insensitive match.
var (
	keyID          = []string{"id"}
	keyName        = []string{"name"}
	keyYear        = []string{"year", "grade"}
	keyInstruments = []string{"instruments", "instrument"}
	keyGenres      = []string{"genres", "genre"}
	keyArtists     = []string{"artists", "artist"}
	keyRoles       = []string{"roles", "role"}
	keyGeek        = []string{"geek", "hobbies", "interests"}
	keyCollab      = []string{"collab"}
)

var yearRe = regexp.MustCompile(`\d{1,2}`)

// Normalize converts raw into canonical entities, one per record, in input
// order. raw may be any slice or array, such as []any from a JSON decoder
// or []map[string]any built in Go. A raw value that is not a slice yields
// an empty roster; a record that is not a map yields an entity made
// entirely of fallbacks.
//
// IDs are unique across the result: a raw id that repeats an earlier
// entity's id is replaced by the sequence fallback.
func Normalize(raw any) []Entity {
	records := recordsOf(raw)
	if len(records) == 0 {
		return []Entity{}
	}

	f := newFolder()
	out := make([]Entity, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		e := f.record(i, rec)
		e.ID = uniqueID(e.ID, i, seen)
		seen[e.ID] = true
		out[i] = e
	}
	return out
}

// recordsOf returns the elements of raw when it is a slice or array.
func recordsOf(raw any) []any {
	switch t := raw.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, rec := range t {
			out[i] = rec
		}
		return out
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out
}

// NormalizeRecord normalizes a single record that sits at position index in
// its roster. It does not enforce id uniqueness; use [Normalize] for that.
func NormalizeRecord(index int, rec any) Entity {
	return newFolder().record(index, rec)
}

// ParseYear extracts the first run of one or two digits from v.
// It returns nil when there is no such run or the run is zero.
func ParseYear(v any) *int {
	m := yearRe.FindString(stringify(v))
	if m == "" {
		return nil
	}
	y, err := strconv.Atoi(m)
	if err != nil || y <= 0 {
		return nil
	}
	return &y
}

// folder applies NFKC normalization and Unicode case folding to tag text.
// A cases.Caser is stateful, so each Normalize call owns its folder.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	return f.caser.String(norm.NFKC.String(s))
}

func (f *folder) record(index int, rec any) Entity {
	fields, _ := rec.(map[string]any)

	rawID := clean(stringify(lookup(fields, keyID)))
	id := rawID
	if id == "" {
		id = fallbackID(index)
	}

	name := clean(stringify(lookup(fields, keyName)))
	if name == "" {
		name = rawID
	}
	if name == "" {
		name = fmt.Sprintf("Student %d", index+1)
	}

	return Entity{
		ID:          id,
		Name:        name,
		Year:        ParseYear(lookup(fields, keyYear)),
		Instruments: f.tags(lookup(fields, keyInstruments)),
		Genres:      f.tags(lookup(fields, keyGenres)),
		Artists:     f.tags(lookup(fields, keyArtists)),
		Roles:       f.tags(lookup(fields, keyRoles)),
		Geek:        f.tags(lookup(fields, keyGeek)),
		Collab:      clean(stringify(lookup(fields, keyCollab))),
	}
}

// tags turns a list or a comma-separated scalar into folded, trimmed,
// non-empty, deduplicated tokens. The result is never nil.
func (f *folder) tags(v any) []string {
	var pieces []string
	switch t := v.(type) {
	case nil:
	case []any:
		for _, el := range t {
			pieces = append(pieces, stringify(el))
		}
	case []string:
		pieces = append(pieces, t...)
	default:
		pieces = strings.Split(stringify(t), ",")
	}

	out := make([]string, 0, len(pieces))
	seen := make(map[string]bool, len(pieces))
	for _, p := range pieces {
		tok := strings.TrimSpace(f.fold(p))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

func lookup(fields map[string]any, keys []string) any {
	if fields == nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	names := slices.Sorted(maps.Keys(fields))
	for _, want := range keys {
		for _, k := range names {
			if v := fields[k]; v != nil && strings.EqualFold(strings.TrimSpace(k), want) {
				return v
			}
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func fallbackID(index int) string {
	return "s-" + strconv.Itoa(index)
}

func uniqueID(id string, index int, seen map[string]bool) string {
	if !seen[id] {
		return id
	}
	base := fallbackID(index)
	if !seen[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !seen[candidate] {
			return candidate
		}
	}
}
