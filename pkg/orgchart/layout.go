package orgchart

import (
	"fmt"
	"slices"

	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

// =============================================================================
// Chart Types
// =============================================================================

// Handle is the side of a node box an edge attaches to.
type Handle string

// Handle sides.
const (
	HandleTop    Handle = "top"
	HandleBottom Handle = "bottom"
	HandleLeft   Handle = "left"
)

// EdgeStyle tells the renderer how to draw an edge.
type EdgeStyle string

// Edge styles.
const (
	EdgeStyleRoot     EdgeStyle = "root"     // curved connector from the root
	EdgeStyleStandard EdgeStyle = "standard" // orthogonal step connector
)

// Node is a positioned organization. X and Y are the top-left corner.
type Node struct {
	ID   string
	X, Y float64
	Data NodeData
}

// NodeData is what the renderer shows inside a node.
type NodeData struct {
	Organization *org.Organization
	People       []org.Person
	Depth        int
	ShowSymbol   bool
}

// Edge connects a parent node to a child node.
type Edge struct {
	ID           string
	Source       string
	Target       string
	SourceHandle Handle
	TargetHandle Handle
	Style        EdgeStyle
}

// EdgeID returns the identifier of the edge from parent to child.
func EdgeID(parent, child string) string {
	return fmt.Sprintf("edge-%s-%s", parent, child)
}

// Chart is a laid-out organization tree. Nodes are in pre-order, root
// first; each edge precedes the edges of its child's subtree.
type Chart struct {
	RootID      string
	DepthLimit  int
	MaxDepth    int
	FilterMode  FilterMode
	ShowSymbols bool
	Nodes       []Node
	Edges       []Edge
}

// Root returns the root node, or nil for an empty chart.
func (c *Chart) Root() *Node {
	for i := range c.Nodes {
		if c.Nodes[i].ID == c.RootID {
			return &c.Nodes[i]
		}
	}
	return nil
}

// =============================================================================
// Engine
// =============================================================================

// DefaultDepthLimit is the depth limit used when none is given.
const DefaultDepthLimit = 3

// Engine lays out organization trees. An Engine holds a [Selector] and is
// not safe for concurrent use.
type Engine struct {
	geo        Geometry
	selector   *Selector
	depthLimit int
	symbols    bool
}

// Option configures an [Engine].
type Option func(*Engine)

// WithGeometry sets the layout constants.
func WithGeometry(g Geometry) Option {
	return func(e *Engine) { e.geo = g }
}

// WithSelector sets the position selector.
func WithSelector(s *Selector) Option {
	return func(e *Engine) {
		if s != nil {
			e.selector = s
		}
	}
}

// WithDepthLimit sets the deepest level that is laid out. Negative limits
// are treated as 0.
func WithDepthLimit(n int) Option {
	return func(e *Engine) { e.depthLimit = max(n, 0) }
}

// WithSymbols sets the display-symbol flag copied onto every node.
func WithSymbols(on bool) Option {
	return func(e *Engine) { e.symbols = on }
}

// NewEngine returns an engine with default geometry, an ALL selector and
// [DefaultDepthLimit], modified by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		geo:        DefaultGeometry(),
		depthLimit: DefaultDepthLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selector == nil {
		e.selector = NewSelector(DefaultFilterMode, nil, "")
	}
	return e
}

// Geometry returns the engine's layout constants.
func (e *Engine) Geometry() Geometry { return e.geo }

// DepthLimit returns the engine's depth limit.
func (e *Engine) DepthLimit() int { return e.depthLimit }

// Layout places every organization of the tree within the depth limit and
// recenters the root over its children. It reports false when there is no
// tree to lay out.
func (e *Engine) Layout(tree *org.Tree) (Chart, bool) {
	if tree == nil || tree.Root.UUID == "" {
		return Chart{}, false
	}

	idx := tree.Index()
	w := &walker{geo: e.geo, selector: e.selector, index: idx, limit: e.depthLimit, symbols: e.symbols}
	sub, _ := w.place(&tree.Root, 0, 0, 0)

	chart := Chart{
		RootID:      tree.Root.UUID,
		DepthLimit:  e.depthLimit,
		MaxDepth:    idx.MaxDepth(),
		FilterMode:  e.selector.Mode(),
		ShowSymbols: e.symbols,
		Nodes:       sub.nodes,
		Edges:       sub.edges,
	}
	CenterRoot(&chart)
	return chart, true
}

// =============================================================================
// Recursive Placement
// =============================================================================

type subtree struct {
	nodes []Node
	edges []Edge
}

type walker struct {
	geo      Geometry
	selector *Selector
	index    *org.Index
	limit    int
	symbols  bool
}

// place lays out o at (x, y) and its descendants below it. It returns the
// subtree and the deepest depth reached within it.
func (w *walker) place(o *org.Organization, depth int, x, y float64) (subtree, int) {
	if o == nil || depth > w.limit {
		return subtree{}, 0
	}

	people := w.selector.Select(o.Positions)
	s := subtree{nodes: []Node{{
		ID: o.UUID,
		X:  x,
		Y:  y,
		Data: NodeData{
			Organization: o,
			People:       people,
			Depth:        depth,
			ShowSymbol:   w.symbols,
		},
	}}}

	deepest := depth
	if depth == w.limit {
		return s, deepest
	}

	height := w.geo.NodeHeightFor(len(people))
	children := w.index.Children(o.UUID)

	if depth == 0 {
		cx, cy := x, y+height+w.geo.RootSpacing
		prevDeepest := 0
		for i, c := range children {
			if i > 0 {
				cx += w.geo.NodeWidth + w.geo.HorizontalSpacing + float64(prevDeepest)*w.geo.DepthIndent
			}
			child, d := w.place(c, depth+1, cx, cy)
			s.attach(o.UUID, c.UUID, child, true)
			prevDeepest = d
			deepest = max(deepest, d)
		}
		return s, deepest
	}

	cx, cy := x+w.geo.LevelIndent, y+height+w.geo.ChildSpacing
	for _, c := range children {
		child, d := w.place(c, depth+1, cx, cy)
		s.attach(o.UUID, c.UUID, child, false)
		cy += w.extent(child, cy) + w.geo.ChildSpacing
		deepest = max(deepest, d)
	}
	return s, deepest
}

// extent returns the height the subtree occupies below top.
func (w *walker) extent(s subtree, top float64) float64 {
	bottom := top
	for _, n := range s.nodes {
		bottom = max(bottom, n.Y+w.geo.NodeHeightFor(len(n.Data.People)))
	}
	return bottom - top
}

// attach appends the edge to child followed by the child's subtree.
func (s *subtree) attach(parent, child string, sub subtree, fromRoot bool) {
	if len(sub.nodes) == 0 {
		return
	}
	e := Edge{
		ID:           EdgeID(parent, child),
		Source:       parent,
		Target:       child,
		SourceHandle: HandleLeft,
		TargetHandle: HandleLeft,
		Style:        EdgeStyleStandard,
	}
	if fromRoot {
		e.SourceHandle, e.TargetHandle, e.Style = HandleBottom, HandleTop, EdgeStyleRoot
	}
	s.nodes = append(s.nodes, sub.nodes...)
	s.edges = append(s.edges, e)
	s.edges = append(s.edges, sub.edges...)
}

// =============================================================================
// Root Centering
// =============================================================================

// CenterRoot moves the root node horizontally to the median X of the
// depth-1 nodes. With an even count the two middle values are averaged.
// Charts without depth-1 nodes are left unchanged.
func CenterRoot(c *Chart) {
	root := c.Root()
	if root == nil {
		return
	}
	var xs []float64
	for _, n := range c.Nodes {
		if n.Data.Depth == 1 {
			xs = append(xs, n.X)
		}
	}
	if len(xs) == 0 {
		return
	}
	root.X = median(xs)
}

func median(xs []float64) float64 {
	s := slices.Clone(xs)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}
