// Package pkg provides the libraries behind the ANET organization chart.
//
// # Overview
//
// An organization chart starts from one organization in ANET and shows its
// descendants as an indented tree of cards, each card listing the people
// who hold the organization's positions. The pkg directory splits this
// into data, layout, rendering and plumbing:
//
//  1. [org] - Organizations, positions and people as ANET returns them
//  2. [orgchart] - The layout engine (tree building, people filter, depth
//     control, placement, viewport fitting)
//  3. [graph] - Serialized trees and layouts
//  4. [render] - SVG, PDF, PNG and DOT output
//  5. [source] - Where trees come from (ANET, files, MongoDB, PostgreSQL)
//  6. [pipeline] - Orchestration (fetch → layout → render)
//
// # Architecture
//
//	ANET GraphQL / tree file / MongoDB / PostgreSQL
//	         ↓
//	    [source] (fetch the root and its descendants)
//	         ↓
//	    [cache] (trees, keyed by source and root UUID)
//	         ↓
//	    [orgchart] (hierarchy, people filter, placement, fit)
//	         ↓
//	    [graph] layout
//	         ↓
//	    [render] SVG/PDF/PNG/DOT, or the layout itself as JSON
//
// # Quick Start
//
// Fetch an organization from ANET and render it:
//
//	import (
//	    "context"
//
//	    "github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
//	    "github.com/NCI-Agency/anet-orgchart/pkg/source/anet"
//	)
//
//	src, _ := anet.NewClient("https://anet.example.org", anet.WithToken(token))
//	runner := pipeline.NewRunner(src, nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    OrgUUID:    "b2d5f1c4-...",
//	    DepthLimit: 2,
//	    Filter:     "LEADERS",
//	    Formats:    []string{"svg", "pdf"},
//	})
//
// Trees already on disk skip the network:
//
//	tree, _ := graph.ReadTreeFile("hq.json")
//	layout, _ := pipeline.ComputeLayout(tree, pipeline.Options{DepthLimit: -1})
//	svg := sink.RenderSVG(layout)
//
// # Main Packages
//
// ## Layout
//
// [orgchart] - Builds the node hierarchy for a depth limit, selects the
// people shown per node by filter mode, places every node (root on the
// left, descendants indented and stacked below) and fits the result into
// a viewport. The engine is pure: the same tree and options always give
// the same chart.
//
// [graph] - JSON and YAML tree files, plus the canonical layout document
// shared by the CLI, the HTTP server and the renderers.
//
// ## Rendering
//
// [render/sink] - Standalone SVG cards with rounded corners, person rows
// and optional symbols. PDF goes through rsvg-convert.
//
// [render/nodelink] - Graphviz DOT for the same layout, rendered to SVG or
// PNG with go-graphviz.
//
// ## Infrastructure
//
// [cache] - Tree cache with file, Redis and no-op backends.
//
// [config] - Environment and file configuration.
//
// [errors] - Coded errors that map to HTTP statuses and CLI messages.
//
// [observability] - Hooks for fetch, layout, render, cache and HTTP events.
//
// [httputil] - Retry with backoff for the ANET client.
//
// [org]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/org
// [orgchart]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/orgchart
// [graph]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/graph
// [render]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/render/nodelink
// [source]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/cache
// [config]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/config
// [errors]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/NCI-Agency/anet-orgchart/pkg/httputil
package pkg
