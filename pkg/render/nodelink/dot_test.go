package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		RootID: "A",
		Nodes: []graph.Node{
			{ID: "A", Label: "HQ", LongName: "Headquarters", Code: "HQ-1", X: 100, Y: 0, Width: 200, Height: 82,
				People: []graph.Person{{Name: "Smith", Rank: "OF-6"}}},
			{ID: "B", Label: "OPS", X: 0, Y: 162, Width: 200, Height: 60, Depth: 1},
			{ID: "C", Label: "J35", X: 40, Y: 242, Width: 200, Height: 60, Depth: 2},
		},
		Edges: []graph.Edge{
			{ID: "edge-A-B", Source: "A", Target: "B", SourceHandle: "bottom", TargetHandle: "top", Style: "root"},
			{ID: "edge-B-C", Source: "B", Target: "C", SourceHandle: "left", TargetHandle: "left", Style: "standard"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	wants := []string{
		"digraph G {",
		"layout=neato;",
		`"A" [label="HQ\nOF-6 Smith", pos="200,-41!", width=`,
		`"B" [label="OPS", pos="100,-192!"`,
		`"A" -> "B" [id="edge-A-B", tailport=s, headport=n, penwidth=2`,
		`"B" -> "C" [id="edge-B-C", tailport=w, headport=w];`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Detailed: true})
	if !strings.Contains(dot, `label="HQ\nHQ-1\nHeadquarters\nOF-6 Smith"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	if ToDOT(testLayout(), Options{}) != ToDOT(testLayout(), Options{}) {
		t.Error("ToDOT() output differs between runs")
	}
}

func TestFmtLabel(t *testing.T) {
	n := graph.Node{Label: "OPS", LongName: "OPS", People: []graph.Person{{Name: "Jones"}}}
	if got := fmtLabel(n, true); got != "OPS\nJones" {
		t.Errorf("fmtLabel() = %q, want %q", got, "OPS\nJones")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"HQ", `"HQ"`},
		{`J2 "Intel"`, `"J2 \"Intel\""`},
		{`C:\ops`, `"C:\\ops"`},
		{"OPS\nJones", `"OPS\nJones"`},
		{"OPS\r\nJones", `"OPS\nJones"`},
		{"Caf\xe9", "\"Caf\uFFFD\""},
		{"tab\there \u00a0", "\"tab\there \u00a0\""},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDOTInvalidUTF8(t *testing.T) {
	l := testLayout()
	l.Nodes[1].Label = "OPS\xff\x01"

	dot := ToDOT(l, Options{})
	if strings.Contains(dot, `\x`) || strings.Contains(dot, `\u`) {
		t.Errorf("ToDOT() wrote Go escapes:\n%s", dot)
	}
	if !strings.Contains(dot, "label=\"OPS\uFFFD\x01\"") {
		t.Errorf("ToDOT() label not passed through:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(testLayout(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "OPS") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(ToDOT(testLayout(), Options{}))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() output is not a PNG")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(`not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
