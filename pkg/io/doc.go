// Package io reads roster files and writes normalized rosters.
//
// # Input Format
//
// A roster is a JSON or YAML array of loosely typed records:
//
//	[
//	  {"id": "s1", "name": "Ada", "year": "Year 7", "instruments": "guitar, drums"},
//	  {"name": "Ben", "genres": ["Jazz", "Funk"], "collab": "yes"}
//	]
//
// An object whose "students" or "roster" key holds the array is unwrapped.
// Any other top-level value is passed through and normalizes to an empty
// roster. Field handling is documented in [roster.Normalize].
//
// # Import
//
// Use [ImportFile] to read a file, choosing the format from its extension,
// or [ReadDataset] to read raw records from any io.Reader:
//
//	raw, err := io.ImportFile("class.yaml")
//	entities := roster.Normalize(raw)
//
// [LoadRoster] does both steps.
//
// # Export
//
// [WriteRoster] and [ExportRoster] write normalized entities back out in
// either format, so a cleaned roster can be re-imported unchanged.
//
// [roster.Normalize]: github.com/matzehuels/constellation/pkg/roster.Normalize
package io
