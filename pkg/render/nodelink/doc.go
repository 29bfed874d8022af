// Package nodelink exports chart layouts through Graphviz.
//
// [ToDOT] writes DOT source with every organization pinned to the position
// the layout engine computed (pos="x,y!"), so Graphviz only routes the
// connectors. Handles become compass ports: root connectors run from the
// south side of the root to the north side of each child, all others
// between west sides.
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot)
//
// Rendering uses the neato engine, the Graphviz layout that honours pinned
// positions. The DOT source is also useful on its own with external
// Graphviz tools (neato -n2 -Tsvg chart.dot).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering without a Graphviz installation.
package nodelink
