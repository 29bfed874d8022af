package orgchart

import (
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

// Export converts a chart and its viewport to the serialization format.
// Node sizes are computed from geo so renderers need no geometry of their
// own.
//
// Use this when you need to serialize the chart for:
//   - JSON file output (via graph.WriteLayoutFile)
//   - API responses
//   - the SVG and Graphviz renderers
func (c Chart) Export(geo Geometry, vp Viewport) graph.Layout {
	out := graph.Layout{
		RootID:      c.RootID,
		DepthLimit:  c.DepthLimit,
		MaxDepth:    c.MaxDepth,
		FilterMode:  c.FilterMode.String(),
		ShowSymbols: c.ShowSymbols,
		Nodes:       make([]graph.Node, len(c.Nodes)),
		Edges:       make([]graph.Edge, len(c.Edges)),
		Viewport: graph.Viewport{
			X:            vp.X,
			Y:            vp.Y,
			Zoom:         vp.Zoom,
			CanvasWidth:  vp.CanvasWidth,
			CanvasHeight: vp.CanvasHeight,
		},
	}

	for i, n := range c.Nodes {
		out.Nodes[i] = exportNode(n, geo)
	}
	for i, e := range c.Edges {
		out.Edges[i] = graph.Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: string(e.SourceHandle),
			TargetHandle: string(e.TargetHandle),
			Style:        string(e.Style),
		}
	}
	return out
}

func exportNode(n Node, geo Geometry) graph.Node {
	gn := graph.Node{
		ID:         n.ID,
		X:          n.X,
		Y:          n.Y,
		Width:      geo.NodeWidth,
		Height:     geo.NodeHeightFor(len(n.Data.People)),
		RowHeight:  geo.PersonRowHeight,
		Depth:      n.Data.Depth,
		ShowSymbol: n.Data.ShowSymbol,
		People:     make([]graph.Person, len(n.Data.People)),
	}
	if o := n.Data.Organization; o != nil {
		gn.Label = o.DisplayName()
		gn.LongName = o.LongName
		gn.Code = o.IdentificationCode
		if o.Symbology != (org.Symbology{}) {
			gn.Symbol = &graph.Symbol{
				Context:          o.Symbology.Context,
				StandardIdentity: o.Symbology.StandardIdentity,
				SymbolSet:        o.Symbology.SymbolSet,
			}
		}
	}
	if gn.Label == "" {
		gn.Label = n.ID
	}
	for i, p := range n.Data.People {
		gn.People[i] = graph.Person{UUID: p.UUID, Name: p.Name, Rank: p.Rank, AvatarUUID: p.AvatarUUID}
	}
	return gn
}
