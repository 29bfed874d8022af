// Package graph provides serialization for organization trees and chart
// layouts.
//
// This package defines the wire formats used for tree files, API responses,
// caching and the renderers.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Layout]: serialized chart (this package)
//   - pkg/org.Tree: the organization tree a chart is drawn from
//   - pkg/orgchart.Chart: internal chart (positions, selected people)
//
// Use orgchart.Chart.Export to convert a computed chart into a [Layout].
//
// # Tree Files
//
// Tree files hold an [org.Tree] as JSON or YAML. Two shapes are accepted:
//
//	# canonical
//	root: {uuid: ..., shortName: ...}
//	descendants: [...]
//
//	# as returned by the ANET GraphQL API
//	{"data": {"organization": {"uuid": "...", "descendantOrgs": [...]}}}
//
// Trees are always written in the canonical shape:
//
//	tree, _ := graph.ReadTreeFile("tree.yaml")    // File → Tree
//	graph.WriteTreeFile(tree, "tree.json")        // Tree → File
//
// # Layout Serialization
//
//	{
//	  "rootId": "...",
//	  "depthLimit": 3,
//	  "nodes": [{"id": "...", "x": 0, "y": 0, "people": [...]}],
//	  "edges": [{"id": "edge-a-b", "source": "a", "target": "b", ...}],
//	  "viewport": {"x": 0, "y": 0, "zoom": 1, "canvasWidth": 800, ...}
//	}
//
// # Concurrency
//
// All functions are safe for concurrent use; none share state.
package graph
