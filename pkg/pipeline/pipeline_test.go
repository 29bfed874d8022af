package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NCI-Agency/anet-orgchart/pkg/cache"
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/orgchart"
)

const (
	rootUUID = "7e1f6f1c-2f0d-4a3b-9d8e-1c2b3a4d5e6f"
	opsUUID  = "0b8f2d8e-4c1a-4f7e-8a55-2d9c6e1f3a70"
	logUUID  = "a3c9d1e2-5b6f-4a70-8c9d-0e1f2a3b4c5d"
	cellUUID = "5d4c3b2a-1f0e-4d9c-8b7a-6f5e4d3c2b1a"
)

// sampleTree is HQ with two branches, one of which has a child:
//
//	HQ
//	├── OPS
//	│   └── CELL
//	└── LOG
func sampleTree() *org.Tree {
	return &org.Tree{
		Root: org.Organization{UUID: rootUUID, ShortName: "HQ"},
		Descendants: []org.Organization{
			{UUID: opsUUID, ShortName: "OPS", ParentOrg: &org.Ref{UUID: rootUUID},
				AscendantOrgs: []org.Ref{{UUID: rootUUID}}},
			{UUID: logUUID, ShortName: "LOG", ParentOrg: &org.Ref{UUID: rootUUID},
				AscendantOrgs: []org.Ref{{UUID: rootUUID}}},
			{UUID: cellUUID, ShortName: "CELL", ParentOrg: &org.Ref{UUID: opsUUID},
				AscendantOrgs: []org.Ref{{UUID: opsUUID}, {UUID: rootUUID}}},
		},
	}
}

type stubSource struct {
	tree  *org.Tree
	err   error
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, orgUUID string) (*org.Tree, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if orgUUID != "" && orgUUID != s.tree.Root.UUID {
		return nil, errors.New(errors.ErrCodeOrgNotFound, "organization %s not found", orgUUID)
	}
	return s.tree, nil
}

func newFileRunner(t *testing.T, src *stubSource) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(src, c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("container = %vx%v, want %vx%v", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if opts.Renderer != RendererCards {
		t.Errorf("Renderer = %q, want %q", opts.Renderer, RendererCards)
	}
	if opts.FilterMode() != orgchart.FilterAll {
		t.Errorf("FilterMode() = %v, want ALL", opts.FilterMode())
	}
}

func TestOptionsRejectInvalid(t *testing.T) {
	bad := orgchart.DefaultGeometry()
	bad.NodeWidth = 0

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"filter", Options{Filter: "CHIEFS"}, errors.ErrCodeInvalidFilterMode},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"geometry", Options{Geometry: &bad}, errors.ErrCodeInvalidInput},
		{"renderer", Options{Renderer: "inkscape"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestComputeLayoutNoTree(t *testing.T) {
	_, err := ComputeLayout(nil, Options{})
	if !errors.Is(err, errors.ErrCodeNoLayout) {
		t.Errorf("err = %v, want NO_LAYOUT", err)
	}

	_, err = ComputeLayout(&org.Tree{}, Options{})
	if !errors.Is(err, errors.ErrCodeNoLayout) {
		t.Errorf("empty root: err = %v, want NO_LAYOUT", err)
	}
}

func TestComputeLayoutClampsDepth(t *testing.T) {
	tests := []struct {
		requested int
		want      int
		nodes     int
	}{
		{0, 0, 1},
		{1, 1, 3},
		{2, 2, 4},
		{10, 2, 4},
		{-1, 2, 4}, // default 3 clamped to the tree's depth
	}
	for _, tt := range tests {
		l, err := ComputeLayout(sampleTree(), Options{DepthLimit: tt.requested})
		if err != nil {
			t.Fatalf("ComputeLayout(depth=%d) = %v", tt.requested, err)
		}
		if l.DepthLimit != tt.want {
			t.Errorf("depth %d: DepthLimit = %d, want %d", tt.requested, l.DepthLimit, tt.want)
		}
		if len(l.Nodes) != tt.nodes {
			t.Errorf("depth %d: nodes = %d, want %d", tt.requested, len(l.Nodes), tt.nodes)
		}
		if len(l.Edges) != tt.nodes-1 {
			t.Errorf("depth %d: edges = %d, want %d", tt.requested, len(l.Edges), tt.nodes-1)
		}
		if l.MaxDepth != 2 {
			t.Errorf("MaxDepth = %d, want 2", l.MaxDepth)
		}
		if l.RootID != rootUUID {
			t.Errorf("RootID = %q, want %q", l.RootID, rootUUID)
		}
	}
}

func TestComputeLayoutFitsViewport(t *testing.T) {
	l, err := ComputeLayout(sampleTree(), Options{DepthLimit: 2, Width: 4000, Height: 4000})
	require.NoError(t, err)
	require.Equal(t, 1.0, l.Viewport.Zoom, "small charts are never enlarged")

	l, err = ComputeLayout(sampleTree(), Options{DepthLimit: 2, Width: 100, Height: 100})
	require.NoError(t, err)
	require.Less(t, l.Viewport.Zoom, 1.0)
	require.GreaterOrEqual(t, l.Viewport.Zoom, orgchart.DefaultGeometry().MinZoom)
}

func TestRenderFormats(t *testing.T) {
	l, err := ComputeLayout(sampleTree(), Options{DepthLimit: 2})
	require.NoError(t, err)

	out, err := Render(l, Options{Formats: []string{FormatSVG, FormatDOT, FormatJSON}})
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.True(t, bytes.HasPrefix(out[FormatSVG], []byte("<svg")) || bytes.Contains(out[FormatSVG], []byte("<svg")))
	require.Contains(t, string(out[FormatSVG]), "CELL")
	require.True(t, strings.HasPrefix(string(out[FormatDOT]), "digraph"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out[FormatJSON], &decoded))
	require.Equal(t, rootUUID, decoded["rootId"])
}

func TestRenderSVGRenderers(t *testing.T) {
	l, err := ComputeLayout(sampleTree(), Options{DepthLimit: 2})
	require.NoError(t, err)

	cards, err := Render(l, Options{Formats: []string{FormatSVG}})
	require.NoError(t, err)
	require.NotContains(t, string(cards[FormatSVG]), `class="graph"`)

	gv, err := Render(l, Options{Formats: []string{FormatSVG}, Renderer: RendererGraphviz})
	require.NoError(t, err)
	svg := string(gv[FormatSVG])
	require.Contains(t, svg, "<svg")
	require.Contains(t, svg, `class="graph"`)
	require.Contains(t, svg, "CELL")
	// The root element is sized to the drawing rather than Graphviz points.
	require.Contains(t, svg, `viewBox="0 0 `)
}

func TestRenderFromLayoutData(t *testing.T) {
	l, err := ComputeLayout(sampleTree(), Options{DepthLimit: 1})
	require.NoError(t, err)
	data, err := Render(l, Options{Formats: []string{FormatJSON}})
	require.NoError(t, err)

	out, err := RenderFromLayoutData(data[FormatJSON], Options{Formats: []string{FormatSVG}})
	require.NoError(t, err)
	require.Contains(t, string(out[FormatSVG]), "OPS")
	require.NotContains(t, string(out[FormatSVG]), "CELL")
}

func TestRunnerExecute(t *testing.T) {
	src := &stubSource{tree: sampleTree()}
	r := newFileRunner(t, src)

	res, err := r.Execute(context.Background(), Options{
		OrgUUID:    rootUUID,
		DepthLimit: 1,
		Formats:    []string{FormatSVG, FormatJSON},
	})
	require.NoError(t, err)
	require.Equal(t, 4, res.Stats.OrgCount)
	require.Equal(t, 3, res.Stats.NodeCount)
	require.Equal(t, 2, res.Stats.EdgeCount)
	require.False(t, res.CacheInfo.FetchHit)
	require.Contains(t, res.Artifacts, FormatSVG)
	require.Contains(t, res.Artifacts, FormatJSON)
}

func TestRunnerCachesTree(t *testing.T) {
	src := &stubSource{tree: sampleTree()}
	r := newFileRunner(t, src)
	ctx := context.Background()
	opts := Options{OrgUUID: rootUUID}

	_, hit, err := r.FetchWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	require.False(t, hit)

	tree, hit, err := r.FetchWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, 1, src.calls)
	require.Equal(t, "HQ", tree.Root.ShortName)
	require.Len(t, tree.Descendants, 3)

	// refresh bypasses the read but the fresh tree is stored again
	_, hit, err = r.FetchWithCacheInfo(ctx, Options{OrgUUID: rootUUID, Refresh: true})
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 2, src.calls)

	require.NoError(t, r.Invalidate(ctx, rootUUID))
	_, hit, err = r.FetchWithCacheInfo(ctx, opts)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 3, src.calls)
}

func TestRunnerSkipsCacheWithoutUUID(t *testing.T) {
	src := &stubSource{tree: sampleTree()}
	r := newFileRunner(t, src)
	ctx := context.Background()

	for range 2 {
		_, hit, err := r.FetchWithCacheInfo(ctx, Options{})
		require.NoError(t, err)
		require.False(t, hit)
	}
	require.Equal(t, 2, src.calls)
}

func TestRunnerFetchErrors(t *testing.T) {
	ctx := context.Background()

	r := NewRunner(&stubSource{tree: sampleTree()}, nil, nil, nil)
	_, err := r.Fetch(ctx, Options{OrgUUID: "not-a-uuid"})
	require.True(t, errors.Is(err, errors.ErrCodeInvalidUUID), "err = %v", err)

	_, err = r.Fetch(ctx, Options{OrgUUID: opsUUID})
	require.True(t, errors.Is(err, errors.ErrCodeOrgNotFound), "err = %v", err)

	failing := NewRunner(&stubSource{err: errors.New(errors.ErrCodeNetwork, "connection refused")}, nil, nil, nil)
	_, err = failing.Execute(ctx, Options{OrgUUID: rootUUID})
	require.True(t, errors.Is(err, errors.ErrCodeNetwork), "err = %v", err)
	require.Contains(t, err.Error(), "fetch:")

	none := &Runner{Cache: cache.NewNullCache(), Keyer: cache.NewDefaultKeyer()}
	_, err = none.Fetch(ctx, Options{})
	require.True(t, errors.Is(err, errors.ErrCodeInvalidSource), "err = %v", err)
}
