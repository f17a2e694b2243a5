package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/roster"
)

const jsonRoster = `[
  {"id": "s1", "name": "Ada", "year": "Year 7", "instruments": "guitar, Guitar, Drums"},
  {"name": "Ben", "genres": ["Jazz", "Funk"], "collab": "yes"}
]`

const yamlRoster = `students:
  - id: s1
    name: Ada
    year: 7
    instruments: [Guitar, drums]
  - name: Ben
    grade: "8B"
    hobbies: chess, Go
`

func TestReadDataset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantLen int
	}{
		{name: "json array", input: jsonRoster, format: FormatJSON, wantLen: 2},
		{name: "yaml wrapped", input: yamlRoster, format: FormatYAML, wantLen: 2},
		{name: "json wrapped roster", input: `{"roster": [{"id": "a"}]}`, format: FormatJSON, wantLen: 1},
		{name: "json object", input: `{"id": "a"}`, format: FormatJSON, wantLen: 0},
		{name: "json scalar", input: `42`, format: FormatJSON, wantLen: 0},
		{name: "empty", input: ``, format: FormatJSON, wantLen: 0},
		{name: "empty yaml", input: ``, format: FormatYAML, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ReadDataset(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			require.Len(t, roster.Normalize(raw), tt.wantLen)
		})
	}
}

func TestReadDatasetYAMLShape(t *testing.T) {
	raw, err := ReadDataset(strings.NewReader(yamlRoster), FormatYAML)
	require.NoError(t, err)

	records, ok := raw.([]any)
	require.True(t, ok)
	_, ok = records[0].(map[string]any)
	require.True(t, ok, "records should be map[string]any, got %T", records[0])

	es := roster.Normalize(raw)
	require.Equal(t, []string{"guitar", "drums"}, es[0].Instruments)
	require.Equal(t, 7, es[0].YearValue())
	require.Equal(t, 8, es[1].YearValue())
	require.Equal(t, []string{"chess", "go"}, es[1].Geek)
}

func TestReadDatasetErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{name: "bad json", input: `[{"id": }`, format: FormatJSON},
		{name: "bad yaml", input: "- a\n b: [", format: FormatYAML},
		{name: "unknown format", input: `[]`, format: Format("xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDataset(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "class.json")
	yamlPath := filepath.Join(dir, "class.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonRoster), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRoster), 0o644))

	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			es, err := LoadRoster(path)
			require.NoError(t, err)
			require.Len(t, es, 2)
			require.Equal(t, "s1", es[0].ID)
			require.Equal(t, "Ben", es[1].Name)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := ImportFile(filepath.Join(dir, "nope.json"))
		require.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
	})

	t.Run("blank path", func(t *testing.T) {
		_, err := ImportFile("  ")
		require.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
	})
}

func TestRoundTrip(t *testing.T) {
	raw, err := ReadDataset(strings.NewReader(jsonRoster), FormatJSON)
	require.NoError(t, err)
	want := roster.Normalize(raw)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteRoster(&buf, want, format))

			back, err := ReadDataset(&buf, format)
			require.NoError(t, err)
			require.Equal(t, want, roster.Normalize(back))
		})
	}
}

func TestExportRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	es := roster.Normalize([]any{map[string]any{"id": "a", "name": "Ada"}})
	require.NoError(t, ExportRoster(es, path))

	back, err := LoadRoster(path)
	require.NoError(t, err)
	require.Equal(t, es, back)
}

func TestExportRosterErrors(t *testing.T) {
	es := roster.Normalize([]any{map[string]any{"id": "a"}})

	missing := filepath.Join(t.TempDir(), "nope", "out.json")
	require.Error(t, ExportRoster(es, missing))

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	require.Error(t, ExportRoster(es, "/dev/full"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"toml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
	require.Equal(t, FormatYAML, FormatFromPath("a/B.YML"))
	require.Equal(t, FormatJSON, FormatFromPath("roster"))
}

func TestExampleRostersAgree(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "rosters")

	fromJSON, err := LoadRoster(filepath.Join(dir, "band-camp.json"))
	require.NoError(t, err)
	fromYAML, err := LoadRoster(filepath.Join(dir, "band-camp.yaml"))
	require.NoError(t, err)

	require.Len(t, fromJSON, 7)
	require.Equal(t, fromJSON, fromYAML)
	require.Equal(t, 8, fromJSON[2].YearValue())
	require.False(t, fromJSON[6].HasYear())
}
