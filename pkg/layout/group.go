package layout

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

// GroupKey identifies a year bucket.
type GroupKey int

// NoYear is the bucket for students without a year.
const NoYear GroupKey = 0

// KeyOf returns the group key of e.
func KeyOf(e *roster.Entity) GroupKey {
	return GroupKey(e.YearValue())
}

// String returns the year, or "none" for [NoYear].
func (k GroupKey) String() string {
	if k == NoYear {
		return "none"
	}
	return strconv.Itoa(int(k))
}

// ParseGroupKey parses a year number or "none".
func ParseGroupKey(s string) (GroupKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" || s == "" {
		return NoYear, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return NoYear, errors.New(errors.ErrCodeInvalidGroup, "invalid group %q (want a year number or 'none')", s)
	}
	return GroupKey(n), nil
}

// CompareKeys orders group keys ascending with [NoYear] last.
func CompareKeys(a, b GroupKey) int {
	switch {
	case a == b:
		return 0
	case a == NoYear:
		return 1
	case b == NoYear:
		return -1
	default:
		return cmp.Compare(a, b)
	}
}

// Filter restricts a layout to one group. The zero value shows all groups.
type Filter struct {
	key  GroupKey
	only bool
}

// All returns a filter that shows every group.
func All() Filter { return Filter{} }

// Only returns a filter that shows group k alone.
func Only(k GroupKey) Filter { return Filter{key: k, only: true} }

// IsAll reports whether f shows every group.
func (f Filter) IsAll() bool { return !f.only }

// Key returns the single visible group and whether f restricts to one.
func (f Filter) Key() (GroupKey, bool) { return f.key, f.only }

// Match reports whether group k is visible under f.
func (f Filter) Match(k GroupKey) bool { return !f.only || f.key == k }

// String returns "all" or the visible group key.
func (f Filter) String() string {
	if !f.only {
		return "all"
	}
	return f.key.String()
}

// ParseFilter parses "all" (or "") into [All] and anything else into [Only].
func ParseFilter(s string) (Filter, error) {
	if t := strings.ToLower(strings.TrimSpace(s)); t == "" || t == "all" {
		return All(), nil
	}
	k, err := ParseGroupKey(s)
	if err != nil {
		return All(), err
	}
	return Only(k), nil
}

// Next cycles through All and then each key in keys, in order.
func (f Filter) Next(keys []GroupKey) Filter {
	if len(keys) == 0 {
		return All()
	}
	if !f.only {
		return Only(keys[0])
	}
	for i, k := range keys {
		if k == f.key {
			if i == len(keys)-1 {
				return All()
			}
			return Only(keys[i+1])
		}
	}
	return All()
}
