// Package roster converts loosely-typed student records into canonical
// [Entity] values.
//
// # Overview
//
// Roster files are written by hand and exported from spreadsheets, so a
// field may be missing, a number where a string was expected, or a single
// comma-separated string where a list was expected. [Normalize] accepts all
// of these and never fails: every field has a fallback.
//
//	raw := []any{
//	    map[string]any{"id": "s1", "instruments": "guitar, Guitar, Drums", "year": "Year 7"},
//	}
//	students := roster.Normalize(raw)
//	// students[0].Instruments == []string{"guitar", "drums"}
//	// *students[0].Year == 7
//
// # Fallbacks
//
//   - id: the trimmed raw id, or "s-<index>" when absent or already taken
//   - name: the raw name, then the raw id, then "Student <index+1>"
//   - year: the first run of one or two digits in the raw value, or nil
//   - tag fields: empty slices, never nil
//   - collab: the trimmed raw value, or ""
//
// Tag fields (instruments, genres, artists, roles, geek) are NFKC-normalized,
// case-folded and deduplicated in first-seen order. Names keep their case.
//
// Normalized entities are values; callers should treat them as immutable.
package roster
