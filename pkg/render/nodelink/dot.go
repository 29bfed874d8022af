package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
)

// pointsPerInch converts layout units (treated as points) to the inches
// Graphviz uses for node sizes.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Detailed adds identification codes and the long name to labels.
	Detailed bool
}

// handlePorts maps layout handles to Graphviz compass points.
var handlePorts = map[string]string{
	graph.HandleTop:    "n",
	graph.HandleBottom: "s",
	graph.HandleLeft:   "w",
}

// ToDOT converts a chart layout to Graphviz DOT with every node pinned to
// its computed position. DOT's y axis points up, so y is negated. Positions
// are node centres in points.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, color=\"#4a6785\", fontname=\"Helvetica\", fontsize=12, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#7f8c8d\"];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(fmtAttrs(n, n.ID == l.RootID, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		attrs := []string{"id=" + quote(e.ID)}
		if p, ok := handlePorts[e.SourceHandle]; ok {
			attrs = append(attrs, "tailport="+p)
		}
		if p, ok := handlePorts[e.TargetHandle]; ok {
			attrs = append(attrs, "headport="+p)
		}
		if e.IsRoot() {
			attrs = append(attrs, "penwidth=2", "color=\"#4a6785\"")
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.Source), quote(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node, root bool, opts Options) []string {
	cx := n.X + n.Width/2
	cy := -(n.Y + n.Height/2)
	attrs := []string{
		"label=" + quote(fmtLabel(n, opts.Detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(cy)),
		fmt.Sprintf("width=%s", fmtFloat(n.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", fmtFloat(n.Height/pointsPerInch)),
	}
	if root {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func fmtLabel(n graph.Node, detailed bool) string {
	lines := []string{n.Label}
	if detailed {
		if n.Code != "" {
			lines = append(lines, n.Code)
		}
		if n.LongName != "" && n.LongName != n.Label {
			lines = append(lines, n.LongName)
		}
	}
	for _, p := range n.People {
		lines = append(lines, p.DisplayName())
	}
	return strings.Join(lines, "\n")
}

// dotEscaper escapes a string for a DOT double-quoted ID. Newlines become
// DOT's centred line break; carriage returns are dropped.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", "")

// quote returns s as a DOT double-quoted string. Invalid UTF-8 is replaced
// with U+FFFD and other characters pass through unescaped.
func quote(s string) string {
	return `"` + dotEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD")) + `"`
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT with the neato engine, which keeps pinned positions.
func RenderSVG(dot string) ([]byte, error) {
	data, err := renderDOT(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT to PNG with the neato engine.
func RenderPNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose width and height match the view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
