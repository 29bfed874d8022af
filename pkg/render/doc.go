// Package render turns computed chart layouts into documents.
//
// # Renderers
//
//   - [sink]: standalone SVG drawn directly from the layout, honouring the
//     fitted viewport (and PDF through conversion)
//   - [nodelink]: Graphviz DOT with pinned node positions, rendered to SVG
//     or PNG with the neato engine
//
// Both take a graph.Layout, so a layout computed once (or read back from a
// JSON file) can be exported to any format.
//
// # Format Conversion
//
// [ToPDF] converts any SVG using the external rsvg-convert tool (from
// librsvg). A missing tool is reported as an UNSUPPORTED error. PNG output
// goes through Graphviz instead and needs no external tool.
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/NCI-Agency/anet-orgchart/pkg/render/sink
// [nodelink]: github.com/NCI-Agency/anet-orgchart/pkg/render/nodelink
package render
