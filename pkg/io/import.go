package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

// wrapperKeys are the object keys that may hold the record array.
var wrapperKeys = []string{"students", "roster"}

// ReadDataset decodes raw roster records from r.
//
// JSON numbers decode as float64 and YAML mappings as map[string]any, so the
// result has the shape [roster.Normalize] expects. An empty input yields nil.
// ReadDataset does not close r.
func ReadDataset(r io.Reader, format Format) (any, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
		raw = plain(raw)
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&raw); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	return unwrap(raw), nil
}

// ImportFile reads the roster file at path. The format follows the file
// extension (see [FormatFromPath]).
func ImportFile(path string) (any, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := ReadDataset(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// LoadRoster imports path and normalizes it.
func LoadRoster(path string) ([]roster.Entity, error) {
	raw, err := ImportFile(path)
	if err != nil {
		return nil, err
	}
	return roster.Normalize(raw), nil
}

func unwrap(raw any) any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	for _, k := range wrapperKeys {
		if arr, ok := obj[k].([]any); ok {
			return arr
		}
	}
	return raw
}

// plain converts YAML's map[any]any nodes into map[string]any.
func plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, el := range t {
			t[k] = plain(el)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[fmt.Sprint(k)] = plain(el)
		}
		return out
	case []any:
		for i, el := range t {
			t[i] = plain(el)
		}
		return t
	default:
		return v
	}
}
