package graph

// =============================================================================
// Constants
// =============================================================================

// Edge styles.
const (
	EdgeStyleRoot     = "root"
	EdgeStyleStandard = "standard"
)

// Handle sides.
const (
	HandleTop    = "top"
	HandleBottom = "bottom"
	HandleLeft   = "left"
)

// Tree file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// Layout - Chart Serialization
// =============================================================================

// Layout is the serialization format for a computed organization chart.
//
// Node coordinates are in layout units. Apply Viewport to map them onto the
// canvas: canvas = layout*zoom + (x, y).
type Layout struct {
	RootID      string `json:"rootId" bson:"rootId"`
	DepthLimit  int    `json:"depthLimit" bson:"depthLimit"`
	MaxDepth    int    `json:"maxDepth" bson:"maxDepth"`
	FilterMode  string `json:"filterMode" bson:"filterMode"`
	ShowSymbols bool   `json:"showSymbols" bson:"showSymbols"`

	Nodes    []Node   `json:"nodes" bson:"nodes"`
	Edges    []Edge   `json:"edges" bson:"edges"`
	Viewport Viewport `json:"viewport" bson:"viewport"`
}

// Node returns the node with the given id.
func (l *Layout) Node(id string) (*Node, bool) {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i], true
		}
	}
	return nil, false
}

// =============================================================================
// Node - Positioned Organization
// =============================================================================

// Node is a positioned organization box.
type Node struct {
	ID         string   `json:"id" bson:"id"`
	Label      string   `json:"label" bson:"label"`
	LongName   string   `json:"longName,omitempty" bson:"longName,omitempty"`
	Code       string   `json:"identificationCode,omitempty" bson:"identificationCode,omitempty"`
	X          float64  `json:"x" bson:"x"`
	Y          float64  `json:"y" bson:"y"`
	Width      float64  `json:"width" bson:"width"`
	Height     float64  `json:"height" bson:"height"`
	RowHeight  float64  `json:"rowHeight" bson:"rowHeight"` // Height of each person row at the bottom of the box
	Depth      int      `json:"depth" bson:"depth"`
	ShowSymbol bool     `json:"showSymbol,omitempty" bson:"showSymbol,omitempty"`
	Symbol     *Symbol  `json:"symbol,omitempty" bson:"symbol,omitempty"`
	People     []Person `json:"people" bson:"people"`
}

// Symbol carries the APP-6 fields of a node for symbol renderers.
type Symbol struct {
	Context          string `json:"context,omitempty" bson:"context,omitempty"`
	StandardIdentity string `json:"standardIdentity,omitempty" bson:"standardIdentity,omitempty"`
	SymbolSet        string `json:"symbolSet,omitempty" bson:"symbolSet,omitempty"`
}

// Person is a person shown inside a node.
type Person struct {
	UUID       string `json:"uuid" bson:"uuid"`
	Name       string `json:"name" bson:"name"`
	Rank       string `json:"rank,omitempty" bson:"rank,omitempty"`
	AvatarUUID string `json:"avatarUuid,omitempty" bson:"avatarUuid,omitempty"`
}

// DisplayName returns "RANK Name", or just the name when there is no rank.
func (p Person) DisplayName() string {
	if p.Rank == "" {
		return p.Name
	}
	return p.Rank + " " + p.Name
}

// =============================================================================
// Edge - Parent to Child Connector
// =============================================================================

// Edge connects a parent node to a child node.
type Edge struct {
	ID           string `json:"id" bson:"id"`
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	SourceHandle string `json:"sourceHandle" bson:"sourceHandle"`
	TargetHandle string `json:"targetHandle" bson:"targetHandle"`
	Style        string `json:"style" bson:"style"`
}

// IsRoot reports whether the edge leaves the root node.
func (e *Edge) IsRoot() bool { return e.Style == EdgeStyleRoot }

// =============================================================================
// Viewport - Canvas Transform
// =============================================================================

// Viewport is the zoom and translation that fit the chart into its canvas.
type Viewport struct {
	X            float64 `json:"x" bson:"x"`
	Y            float64 `json:"y" bson:"y"`
	Zoom         float64 `json:"zoom" bson:"zoom"`
	CanvasWidth  float64 `json:"canvasWidth" bson:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight" bson:"canvasHeight"`
}
