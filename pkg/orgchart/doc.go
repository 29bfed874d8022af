// Package orgchart computes organization-chart layouts.
//
// # Overview
//
// A chart is drawn from an [org.Tree]: the queried root organization and the
// flat list of its descendants. The package turns that tree into positioned
// nodes and edges, recenters the root over its children, and fits the
// result into a viewport:
//
//	engine := orgchart.NewEngine(
//	    orgchart.WithDepthLimit(2),
//	    orgchart.WithSelector(orgchart.NewSelector(orgchart.FilterLeaders, ranks, "en")),
//	)
//	chart, ok := engine.Layout(tree)
//	if !ok {
//	    // no tree loaded yet
//	}
//	vp := orgchart.Fit(chart.Nodes, engine.Geometry(), orgchart.Size{Width: 1280, Height: 800})
//
// # Position Selection
//
// Each organization lists staffed positions. A [Selector] decides which
// people are shown under a node according to a [FilterMode], then orders
// them by role, rank, name, position name and position UUID. Selection runs
// exactly once per node during layout, and the number of selected people
// sets the node's height (see [Geometry.NodeHeightFor]).
//
// # Placement
//
// The root's children are laid out left to right on a common row below the
// root. Every deeper level stacks its children vertically below the parent,
// indented by [Geometry.LevelIndent]. A top-level branch that reached deep
// levels pushes the next branch further right by [Geometry.DepthIndent] per
// level, keeping deep stacks from crowding their neighbour.
//
// Recursion is bounded by the depth limit: nodes deeper than the limit are
// not emitted and neither are their edges. Descendants whose parent is not
// part of the tree are never reached and are left out silently.
//
// # Viewport
//
// [Fit] computes a zoom and translation that center the chart's bounding
// box in a container. Charts are only ever shrunk to fit, so the zoom never
// exceeds 1, and the canvas is never narrower than the container.
//
// # Depth Control
//
// [DepthControl] holds the user-selected depth limit, clamped between 0 and
// the tree's maximum depth.
package orgchart
