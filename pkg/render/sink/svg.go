package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
)

const (
	cornerRadius  = 6.0
	textInset     = 10.0
	labelBaseline = 24.0
	codeBaseline  = 42.0
	elbowOffset   = 12.0
	symbolWidth   = 28.0
	symbolHeight  = 20.0
)

const chartCSS = `
    .node rect.box { fill: #ffffff; stroke: #4a6785; stroke-width: 1.5; }
    .node.root rect.box { stroke-width: 2.5; }
    .node text { font-family: sans-serif; fill: #1c2833; }
    .node .label { font-size: 15px; font-weight: bold; }
    .node .code { font-size: 11px; fill: #5d6d7e; }
    .node .person { font-size: 12px; }
    .edge { fill: none; stroke: #7f8c8d; stroke-width: 1.5; }
    .edge.root { stroke: #4a6785; stroke-width: 2; }
    .app6 { stroke: #000000; stroke-width: 1; }`

const hoverCSS = `
    .node.highlight rect.box { stroke-width: 3.5; }
    .edge.highlight { stroke-width: 3; }`

const hoverJS = `
    function highlight(id) {
      document.querySelectorAll('.edge').forEach(e => e.classList.toggle('highlight', e.dataset.source === id || e.dataset.target === id));
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', n.id === 'node-' + id));
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .edge').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.id.replace('node-', '')));
      el.addEventListener('mouseleave', clearHighlight);
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	title       string
}

// WithInteraction adds hover highlighting of a node and its edges.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws the layout on a canvas of the viewport's size, with the
// chart group translated and scaled by the viewport.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	vp := l.Viewport
	if vp.Zoom <= 0 {
		vp.Zoom = 1
	}
	w, h := canvasSize(l, vp)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	css := chartCSS
	if r.interactive {
		css += hoverCSS
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", css)

	fmt.Fprintf(&buf, `  <g transform="translate(%.2f %.2f) scale(%.4f)">`+"\n", vp.X, vp.Y, vp.Zoom)
	byID := make(map[string]*graph.Node, len(l.Nodes))
	for i := range l.Nodes {
		byID[l.Nodes[i].ID] = &l.Nodes[i]
	}
	for _, e := range l.Edges {
		renderEdge(&buf, byID, e)
	}
	for _, n := range l.Nodes {
		renderNode(&buf, n, n.ID == l.RootID)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasSize falls back to the scaled node extent for layouts that were
// never fitted.
func canvasSize(l graph.Layout, vp graph.Viewport) (float64, float64) {
	if vp.CanvasWidth > 0 && vp.CanvasHeight > 0 {
		return vp.CanvasWidth, vp.CanvasHeight
	}
	var w, h float64
	for _, n := range l.Nodes {
		w = max(w, (n.X+n.Width)*vp.Zoom+vp.X)
		h = max(h, (n.Y+n.Height)*vp.Zoom+vp.Y)
	}
	return max(w, 1), max(h, 1)
}

// =============================================================================
// Nodes
// =============================================================================

func renderNode(buf *bytes.Buffer, n graph.Node, root bool) {
	class := "node"
	if root {
		class += " root"
	}
	fmt.Fprintf(buf, `    <g class="%s" id="node-%s">`+"\n", class, escapeXML(n.ID))
	fmt.Fprintf(buf, `      <rect class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f"/>`+"\n",
		n.X, n.Y, n.Width, n.Height, cornerRadius)
	fmt.Fprintf(buf, `      <text class="label" x="%.2f" y="%.2f">%s</text>`+"\n",
		n.X+textInset, n.Y+labelBaseline, escapeXML(n.Label))
	if n.Code != "" {
		fmt.Fprintf(buf, `      <text class="code" x="%.2f" y="%.2f">%s</text>`+"\n",
			n.X+textInset, n.Y+codeBaseline, escapeXML(n.Code))
	}

	rowsTop := n.Y + n.Height - float64(len(n.People))*n.RowHeight
	for i, p := range n.People {
		baseline := rowsTop + float64(i+1)*n.RowHeight - n.RowHeight*0.3
		fmt.Fprintf(buf, `      <text class="person" x="%.2f" y="%.2f">%s</text>`+"\n",
			n.X+textInset, baseline, escapeXML(p.DisplayName()))
	}

	if n.ShowSymbol {
		renderSymbol(buf, n)
	}
	buf.WriteString("    </g>\n")
}

// APP-6 frame fill colours by standard identity digit.
var identityFill = map[string]string{
	"0": "#ffff80", // pending
	"1": "#ffff80", // unknown
	"2": "#80e0ff", // assumed friend
	"3": "#80e0ff", // friend
	"4": "#aaffaa", // neutral
	"5": "#ff8080", // suspect
	"6": "#ff8080", // hostile
}

// renderSymbol draws a placeholder APP-6 frame in the top right corner.
// Hostile and suspect units get a diamond, everything else a rectangle.
func renderSymbol(buf *bytes.Buffer, n graph.Node) {
	var s graph.Symbol
	if n.Symbol != nil {
		s = *n.Symbol
	}
	fill, ok := identityFill[s.StandardIdentity]
	if !ok {
		fill = identityFill["1"]
	}
	x := n.X + n.Width - textInset - symbolWidth
	y := n.Y + textInset

	fmt.Fprintf(buf, `      <g class="app6" data-context="%s" data-identity="%s" data-symbol-set="%s">`,
		escapeXML(s.Context), escapeXML(s.StandardIdentity), escapeXML(s.SymbolSet))
	switch s.StandardIdentity {
	case "5", "6":
		cx, cy := x+symbolWidth/2, y+symbolHeight/2
		fmt.Fprintf(buf, `<path d="M %.2f %.2f L %.2f %.2f L %.2f %.2f L %.2f %.2f Z" fill="%s"/>`,
			cx, y, x+symbolWidth, cy, cx, y+symbolHeight, x, cy, fill)
	default:
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.0f" height="%.0f" fill="%s"/>`,
			x, y, symbolWidth, symbolHeight, fill)
	}
	buf.WriteString("</g>\n")
}

// =============================================================================
// Edges
// =============================================================================

func renderEdge(buf *bytes.Buffer, nodes map[string]*graph.Node, e graph.Edge) {
	src, dst := nodes[e.Source], nodes[e.Target]
	if src == nil || dst == nil {
		return
	}

	class := "edge"
	if e.IsRoot() {
		class += " root"
	}
	fmt.Fprintf(buf, `    <path class="%s" id="%s" data-source="%s" data-target="%s" d="%s"/>`+"\n",
		class, escapeXML(e.ID), escapeXML(e.Source), escapeXML(e.Target), edgePath(e, src, dst))
}

// edgePath returns a cubic bezier between handle points for root edges and
// an orthogonal elbow otherwise.
func edgePath(e graph.Edge, src, dst *graph.Node) string {
	x1, y1 := handlePoint(src, e.SourceHandle)
	x2, y2 := handlePoint(dst, e.TargetHandle)
	if e.IsRoot() {
		my := (y1 + y2) / 2
		return fmt.Sprintf("M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f", x1, y1, x1, my, x2, my, x2, y2)
	}
	elbow := min(x1, x2) - elbowOffset
	return fmt.Sprintf("M %.2f %.2f H %.2f V %.2f H %.2f", x1, y1, elbow, y2, x2)
}

// handlePoint returns the attachment point on a node side.
func handlePoint(n *graph.Node, handle string) (float64, float64) {
	switch handle {
	case graph.HandleTop:
		return n.X + n.Width/2, n.Y
	case graph.HandleBottom:
		return n.X + n.Width/2, n.Y + n.Height
	default:
		// left handles sit level with the label
		return n.X, n.Y + labelBaseline
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
