package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/constellation/pkg/errors"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a validated Document.
func UnmarshalDocument(data []byte) (Document, error) {
	return ReadDocument(bytes.NewReader(data), FormatJSON)
}

// WriteDocument encodes d to w as "json" or "yaml".
func WriteDocument(w io.Writer, d Document, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want json or yaml)", format)
	}
}

// ReadDocument decodes and validates a Document from r.
func ReadDocument(r io.Reader, format string) (Document, error) {
	var d Document
	switch strings.ToLower(format) {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
		}
	case FormatYAML, "yml":
		if err := yaml.NewDecoder(r).Decode(&d); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// WriteDocumentFile writes d to path in the format its extension names.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(f, d, formatFromPath(path))
}

// ReadDocumentFile reads a Document from path.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f, formatFromPath(path))
}

// Validate checks that the document is internally consistent.
func (d *Document) Validate() error {
	if err := errors.ValidateViewport(d.Width, d.Height); err != nil {
		return err
	}
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node without id")
		}
		if ids[n.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, l := range d.Links {
		if !ids[l.To] {
			return errors.New(errors.ErrCodeInvalidInput, "link %s->%s references unknown node", l.From, l.To)
		}
		if l.Ratio < 0 || l.Ratio > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "link %s->%s ratio %v out of range", l.From, l.To, l.Ratio)
		}
	}
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
