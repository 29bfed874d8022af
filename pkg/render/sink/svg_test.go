package sink

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
)

// A{B,C{D}}
func testLayout() graph.Layout {
	return graph.Layout{
		RootID: "A",
		Nodes: []graph.Node{
			{ID: "A", Label: "HQ & Staff", X: 120, Y: 0, Width: 200, Height: 82, RowHeight: 22,
				People: []graph.Person{{UUID: "p1", Name: "Smith", Rank: "OF-6"}}},
			{ID: "B", Label: "OPS", Code: "J3", X: 0, Y: 162, Width: 200, Height: 60, RowHeight: 22, Depth: 1, People: []graph.Person{}},
			{ID: "C", Label: "LOG", X: 240, Y: 162, Width: 200, Height: 60, RowHeight: 22, Depth: 1, People: []graph.Person{},
				ShowSymbol: true, Symbol: &graph.Symbol{StandardIdentity: "6"}},
			{ID: "D", Label: "<Depot>", X: 280, Y: 242, Width: 200, Height: 60, RowHeight: 22, Depth: 2, People: []graph.Person{}},
		},
		Edges: []graph.Edge{
			{ID: "edge-A-B", Source: "A", Target: "B", SourceHandle: "bottom", TargetHandle: "top", Style: "root"},
			{ID: "edge-A-C", Source: "A", Target: "C", SourceHandle: "bottom", TargetHandle: "top", Style: "root"},
			{ID: "edge-C-D", Source: "C", Target: "D", SourceHandle: "left", TargetHandle: "left", Style: "standard"},
		},
		Viewport: graph.Viewport{X: 10, Y: 20, Zoom: 0.5, CanvasWidth: 800, CanvasHeight: 600},
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(testLayout(), WithTitle("Org & chart"), WithInteraction())

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, svg)
		}
	}
}

func TestRenderSVGContent(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	wants := []string{
		`width="800" height="600"`,
		`<g transform="translate(10.00 20.00) scale(0.5000)">`,
		`id="node-A"`,
		`class="node root"`,
		`HQ &amp; Staff`,
		`&lt;Depot&gt;`,
		`OF-6 Smith`,
		`>J3<`,
		// root edge: bottom centre of A to top centre of B as a cubic curve
		`d="M 220.00 82.00 C 220.00 122.00, 100.00 122.00, 100.00 162.00"`,
		// standard edge: elbow left of both boxes
		`d="M 240.00 186.00 H 228.00 V 266.00 H 280.00"`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<script") {
		t.Error("script emitted without WithInteraction")
	}
}

func TestRenderSVGPersonRows(t *testing.T) {
	svg := string(RenderSVG(testLayout()))
	// one row of 22 at the bottom of an 82 high box: baseline 82 - 22*0.3
	if !strings.Contains(svg, `<text class="person" x="130.00" y="75.40">OF-6 Smith</text>`) {
		t.Errorf("person row misplaced:\n%s", svg)
	}
}

func TestRenderSVGSymbols(t *testing.T) {
	svg := string(RenderSVG(testLayout()))
	if n := strings.Count(svg, `class="app6"`); n != 1 {
		t.Errorf("app6 frames = %d, want 1", n)
	}
	if !strings.Contains(svg, `data-identity="6"`) || !strings.Contains(svg, `fill="#ff8080"`) {
		t.Error("hostile frame not drawn")
	}
}

func TestRenderSVGSkipsDanglingEdges(t *testing.T) {
	l := testLayout()
	l.Edges = append(l.Edges, graph.Edge{ID: "edge-A-Z", Source: "A", Target: "Z", Style: "root"})
	svg := string(RenderSVG(l))
	if strings.Contains(svg, "edge-A-Z") {
		t.Error("edge to missing node rendered")
	}
}

func TestRenderSVGUnfittedLayout(t *testing.T) {
	l := testLayout()
	l.Viewport = graph.Viewport{}
	svg := string(RenderSVG(l))
	if !strings.Contains(svg, `width="480" height="302"`) {
		t.Errorf("unfitted canvas not derived from nodes:\n%s", svg[:120])
	}
	if !strings.Contains(svg, "scale(1.0000)") {
		t.Error("zero zoom should render at scale 1")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(graph.Layout{}))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("unexpected empty render: %s", svg)
	}
}
