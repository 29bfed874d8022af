package pipeline

import (
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/orgchart"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout lays out the tree, centers the root and fits the viewport
// to the options' container size. The requested depth is clamped to the
// tree's maximum depth.
//
// A missing tree is reported as NO_LAYOUT so callers can show a
// placeholder.
func ComputeLayout(tree *org.Tree, opts Options) (graph.Layout, error) {
	chart, geo, err := ComputeChart(tree, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	vp := orgchart.Fit(chart.Nodes, geo, opts.container())
	return chart.Export(geo, vp), nil
}

// ComputeChart runs the layout engine without fitting or exporting, for
// callers that refit interactively.
func ComputeChart(tree *org.Tree, opts Options) (orgchart.Chart, orgchart.Geometry, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return orgchart.Chart{}, orgchart.Geometry{}, err
	}
	if tree == nil || tree.Root.UUID == "" {
		return orgchart.Chart{}, orgchart.Geometry{}, errors.New(errors.ErrCodeNoLayout, "no organization loaded")
	}

	geo := opts.geometry()
	depth := orgchart.NewDepthControl(tree.MaxDepth(), opts.DepthLimit)
	engine := orgchart.NewEngine(
		orgchart.WithGeometry(geo),
		orgchart.WithSelector(orgchart.NewSelector(opts.FilterMode(), opts.Ranks, opts.Locale)),
		orgchart.WithDepthLimit(depth.Limit()),
		orgchart.WithSymbols(opts.Symbols),
	)

	chart, ok := engine.Layout(tree)
	if !ok {
		return orgchart.Chart{}, geo, errors.New(errors.ErrCodeNoLayout, "no organization loaded")
	}
	return chart, geo, nil
}
