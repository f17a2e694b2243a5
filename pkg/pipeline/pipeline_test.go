package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/constellation/pkg/cache"
	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/layout"
	"github.com/matzehuels/constellation/pkg/observability"
	"github.com/matzehuels/constellation/pkg/roster"
	"github.com/matzehuels/constellation/pkg/similarity"
)

func testRoster() []roster.Entity {
	return roster.Normalize([]any{
		map[string]any{"id": "a", "name": "Ada", "year": "7", "instruments": "guitar, bass", "genres": "jazz"},
		map[string]any{"id": "b", "name": "Ben", "year": "7", "instruments": "guitar", "genres": "jazz"},
		map[string]any{"id": "c", "name": "Cy", "year": "8", "instruments": "bass"},
		map[string]any{"id": "d", "name": "Dee", "year": "8", "artists": "miles davis"},
		map[string]any{"id": "e", "name": "Eve", "genres": "jazz, funk"},
	})
}

func ptr(f float64) *float64 { return &f }

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.Kind != string(layout.DefaultKind) {
		t.Errorf("Kind = %q, want %q", opts.Kind, layout.DefaultKind)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("viewport = %vx%v, want %vx%v", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Group != DefaultGroup {
		t.Errorf("Group = %q, want all", opts.Group)
	}
	if opts.Mode != string(similarity.DefaultMode) {
		t.Errorf("Mode = %q, want %q", opts.Mode, similarity.DefaultMode)
	}
	if opts.TopN != DefaultTopN {
		t.Errorf("TopN = %d, want %d", opts.TopN, DefaultTopN)
	}
	if opts.Logger == nil || opts.Table == nil {
		t.Error("Logger and Table should be set")
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		code   errors.Code
	}{
		{name: "kind", mutate: func(o *Options) { o.Kind = "spiral" }, code: errors.ErrCodeInvalidLayout},
		{name: "width", mutate: func(o *Options) { o.Width = -1 }, code: errors.ErrCodeInvalidLayout},
		{name: "margin", mutate: func(o *Options) { o.Margin = ptr(-3) }, code: errors.ErrCodeInvalidLayout},
		{name: "group", mutate: func(o *Options) { o.Group = "seventh" }, code: errors.ErrCodeInvalidGroup},
		{name: "jitter", mutate: func(o *Options) { o.Jitter = -1 }, code: errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts Options
			opts.SetDefaults()
			tt.mutate(&opts)
			err := opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveMode(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Mode: "vibes", Logger: log.NewWithOptions(&buf, log.Options{})}

	if got := opts.ResolveMode(); got != similarity.DefaultMode {
		t.Errorf("ResolveMode() = %q, want %q", got, similarity.DefaultMode)
	}
	if !strings.Contains(buf.String(), "unknown mode") {
		t.Errorf("expected a warning, got %q", buf.String())
	}

	opts.Mode = "band"
	if got := opts.ResolveMode(); got != similarity.ModeBand {
		t.Errorf("ResolveMode() = %q, want band", got)
	}
}

func TestRun(t *testing.T) {
	r := NewRunner(nil, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	res, err := r.Run(context.Background(), testRoster(), Options{
		Kind:   "clusters",
		Width:  400,
		Height: 400,
		Active: "a",
		Mode:   "band",
		TopN:   3,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Stats.Students != 5 || res.Stats.Nodes != 5 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.Layout.Centers) != 3 {
		t.Errorf("Centers = %d, want 3", len(res.Layout.Centers))
	}
	if res.Active == nil || res.Active.ID != "a" {
		t.Fatalf("Active = %v, want a", res.Active)
	}
	if len(res.Links) != 3 {
		t.Fatalf("Links = %d, want 3", len(res.Links))
	}
	if res.Links[0].To.ID != "b" || res.Links[0].Ratio != 1 {
		t.Errorf("strongest link = %s (%v), want b (1)", res.Links[0].To.ID, res.Links[0].Ratio)
	}

	doc := res.Document()
	if doc.Mode != "band" || doc.Active != "a" || len(doc.Links) != 3 || doc.Width != 400 {
		t.Errorf("Document = %+v", doc)
	}
}

func TestRunFilteredPool(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Run(context.Background(), testRoster(), Options{Group: "8", Active: "a", Mode: "instruments"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Layout.Nodes) != 2 {
		t.Fatalf("visible nodes = %d, want 2", len(res.Layout.Nodes))
	}
	for _, l := range res.Links {
		if l.To.Group != 8 {
			t.Errorf("link to %s outside the visible group", l.To.ID)
		}
	}
	if res.Document().Filter != "8" {
		t.Errorf("Filter = %q, want 8", res.Document().Filter)
	}
}

func TestRunNoActive(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Run(context.Background(), testRoster(), Options{Kind: "ring"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Links == nil || len(res.Links) != 0 {
		t.Errorf("Links = %v, want empty", res.Links)
	}
	if res.Layout.Kind != layout.KindRing {
		t.Errorf("Kind = %q, want ring", res.Layout.Kind)
	}
}

func TestRunErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	_, err := r.Run(context.Background(), testRoster(), Options{Active: "zz"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown active: err = %v, want NOT_FOUND", err)
	}

	_, err = r.Run(context.Background(), testRoster(), Options{Kind: "spiral"})
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("bad kind: err = %v, want INVALID_LAYOUT", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err = r.Run(ctx, testRoster(), Options{}); err != context.Canceled {
		t.Errorf("canceled: err = %v, want context.Canceled", err)
	}
}

func TestRunUnknownModeFallsBack(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Run(context.Background(), testRoster(), Options{Active: "a", Mode: "vibes"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Mode != similarity.DefaultMode {
		t.Errorf("Mode = %q, want %q", res.Mode, similarity.DefaultMode)
	}
}

func TestExecute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class.json")
	data := `[{"id": "a", "name": "Ada", "instruments": "guitar"}, {"id": "b", "name": "Ben", "instruments": "guitar"}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), path, Options{Active: "b", Mode: "instruments"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Links) != 1 || res.Links[0].To.ID != "a" {
		t.Errorf("Links = %+v, want one link to a", res.Links)
	}

	if _, err := r.Execute(context.Background(), filepath.Join(t.TempDir(), "nope.json"), Options{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderDocumentCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Kind: "ring", Active: "a"}

	first, hit, err := r.RenderDocument(ctx, testRoster(), opts, "json")
	if err != nil || hit {
		t.Fatalf("first render: hit %v, err %v", hit, err)
	}
	second, hit, err := r.RenderDocument(ctx, testRoster(), opts, "json")
	if err != nil || !hit {
		t.Fatalf("second render: hit %v, err %v", hit, err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached document differs")
	}

	opts.Rotation = 1
	if _, hit, _ := r.RenderDocument(ctx, testRoster(), opts, "json"); hit {
		t.Error("different rotation should miss")
	}

	opts.Rotation = 0
	opts.Refresh = true
	if _, hit, _ := r.RenderDocument(ctx, testRoster(), opts, "json"); hit {
		t.Error("refresh should bypass the cache")
	}

	yaml, _, err := r.RenderDocument(ctx, testRoster(), Options{}, "yaml")
	if err != nil || !strings.Contains(string(yaml), "kind: clusters") {
		t.Errorf("yaml render = %q, %v", yaml, err)
	}
}

func TestLayoutOptions(t *testing.T) {
	entities := testRoster()
	opts := Options{Kind: "constellation", Seed: 9}
	opts.SetDefaults()

	a := layout.Compute(entities, opts.Width, opts.Height, opts.LayoutOptions()...)
	plain := Options{Kind: "clusters"}
	plain.SetDefaults()
	b := layout.Compute(entities, plain.Width, plain.Height, plain.LayoutOptions()...)

	moved := false
	for _, n := range a.Nodes {
		o := b.Node(n.ID)
		if o.X != n.X || o.Y != n.Y {
			moved = true
		}
	}
	if !moved {
		t.Error("constellation with a seed should jitter positions")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	layouts, selects int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ string, _ int, _ time.Duration) {
	h.layouts++
}

func (h *recordingHooks) OnSelectComplete(_ context.Context, _ string, _ int, _ time.Duration) {
	h.selects++
}

func TestRunFiresHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Run(context.Background(), testRoster(), Options{Active: "a"}); err != nil {
		t.Fatal(err)
	}
	if h.layouts != 1 || h.selects != 1 {
		t.Errorf("hooks fired layout=%d select=%d, want 1 and 1", h.layouts, h.selects)
	}
}
