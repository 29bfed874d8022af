package orgchart

import "math"

// Size is a container size in screen units.
type Size struct {
	Width  float64
	Height float64
}

// Viewport is the transform that maps layout units onto the canvas:
// canvas = layout*Zoom + (X, Y).
type Viewport struct {
	X            float64
	Y            float64
	Zoom         float64
	CanvasWidth  float64
	CanvasHeight float64
}

// Identity returns the untransformed viewport for the given container.
func Identity(container Size) Viewport {
	return Viewport{Zoom: 1, CanvasWidth: container.Width, CanvasHeight: container.Height}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf returns the box enclosing every node, sized by geo.
func BoundsOf(nodes []Node, geo Geometry) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range nodes {
		b.MinX = min(b.MinX, n.X)
		b.MinY = min(b.MinY, n.Y)
		b.MaxX = max(b.MaxX, n.X+geo.NodeWidth)
		b.MaxY = max(b.MaxY, n.Y+geo.NodeHeightFor(len(n.Data.People)))
	}
	return b
}

// Fit returns the viewport that centers the nodes in a container, leaving
// geo.Padding on each side. The zoom is never above 1 and never below
// geo.MinZoom. The canvas is at least as wide as the container and as tall
// as the scaled chart plus padding. Without nodes Fit returns [Identity].
func Fit(nodes []Node, geo Geometry, container Size) Viewport {
	if len(nodes) == 0 {
		return Identity(container)
	}

	b := BoundsOf(nodes, geo)
	gw, gh := b.Width(), b.Height()
	pad := geo.Padding

	zoom := 1.0
	if gw > 0 && gh > 0 {
		zoom = min(1, (container.Width-2*pad)/gw, (container.Height-2*pad)/gh)
	}
	floor := geo.MinZoom
	if floor <= 0 {
		floor = DefaultMinZoom
	}
	if math.IsNaN(zoom) || zoom < floor {
		zoom = floor
	}

	canvasW := max(container.Width, gw*zoom+2*pad)
	canvasH := gh*zoom + 2*pad

	return Viewport{
		X:            (canvasW-gw*zoom)/2 - b.MinX*zoom,
		Y:            (canvasH-gh*zoom)/2 - b.MinY*zoom,
		Zoom:         zoom,
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
	}
}
