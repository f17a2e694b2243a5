package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

// WriteRoster encodes entities to w. The output can be re-imported with
// [ReadDataset] and normalizes back to the same entities.
func WriteRoster(w io.Writer, entities []roster.Entity, format Format) error {
	if entities == nil {
		entities = []roster.Entity{}
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entities); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entities); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// ExportRoster writes entities to a file at path in the format its
// extension names.
func ExportRoster(entities []roster.Entity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRoster(f, entities, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
