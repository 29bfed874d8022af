// Package sink renders a computed chart layout as a standalone SVG document.
//
// The SVG has the viewport's canvas size. All boxes and connectors are drawn
// in layout units inside one group carrying the viewport transform:
//
//	<g transform="translate(x y) scale(zoom)">
//
// Connectors leaving the root are cubic curves from the bottom of the root
// to the top of each child. All other connectors are orthogonal elbows
// between the left sides of parent and child. Nodes with the symbol flag
// set get a placeholder APP-6 frame coloured by standard identity.
//
//	svg := sink.RenderSVG(layout, sink.WithInteraction())
package sink
