package orgchart

import (
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

// Geometry holds the layout constants, in layout units.
type Geometry struct {
	NodeWidth       float64 `toml:"node_width"`        // Width of every node box
	NodeHeight      float64 `toml:"node_height"`       // Height of a node without person rows
	PersonRowHeight float64 `toml:"person_row_height"` // Extra height per selected person

	HorizontalSpacing float64 `toml:"horizontal_spacing"` // Gap between top-level branches
	RootSpacing       float64 `toml:"root_spacing"`       // Gap between the root and its children
	ChildSpacing      float64 `toml:"child_spacing"`      // Vertical gap between stacked nodes
	LevelIndent       float64 `toml:"level_indent"`       // Horizontal indent per stacked level

	// DepthIndent shifts each top-level branch right by this much per level
	// reached by the previous branch. It is a tuning knob, not a derived
	// quantity.
	DepthIndent float64 `toml:"depth_indent"`

	Padding float64 `toml:"padding"`  // Viewport padding on every side
	MinZoom float64 `toml:"min_zoom"` // Lower zoom bound; must be positive
}

// Default geometry values.
const (
	DefaultNodeWidth         = 200.0
	DefaultNodeHeight        = 60.0
	DefaultPersonRowHeight   = 22.0
	DefaultHorizontalSpacing = 40.0
	DefaultRootSpacing       = 80.0
	DefaultChildSpacing      = 20.0
	DefaultLevelIndent       = 40.0
	DefaultDepthIndent       = 40.0
	DefaultPadding           = 20.0
	DefaultMinZoom           = 0.01
)

// DefaultGeometry returns the default layout constants.
func DefaultGeometry() Geometry {
	return Geometry{
		NodeWidth:         DefaultNodeWidth,
		NodeHeight:        DefaultNodeHeight,
		PersonRowHeight:   DefaultPersonRowHeight,
		HorizontalSpacing: DefaultHorizontalSpacing,
		RootSpacing:       DefaultRootSpacing,
		ChildSpacing:      DefaultChildSpacing,
		LevelIndent:       DefaultLevelIndent,
		DepthIndent:       DefaultDepthIndent,
		Padding:           DefaultPadding,
		MinZoom:           DefaultMinZoom,
	}
}

// NodeHeightFor returns the height of a node showing n people.
func (g Geometry) NodeHeightFor(n int) float64 {
	return g.NodeHeight + float64(n)*g.PersonRowHeight
}

// Validate checks that box sizes are positive, spacings are not negative
// and the zoom floor lies in (0, 1].
func (g Geometry) Validate() error {
	if g.NodeWidth <= 0 || g.NodeHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node size must be positive, got %gx%g", g.NodeWidth, g.NodeHeight)
	}
	spacings := []struct {
		name string
		v    float64
	}{
		{"person_row_height", g.PersonRowHeight},
		{"horizontal_spacing", g.HorizontalSpacing},
		{"root_spacing", g.RootSpacing},
		{"child_spacing", g.ChildSpacing},
		{"level_indent", g.LevelIndent},
		{"depth_indent", g.DepthIndent},
		{"padding", g.Padding},
	}
	for _, s := range spacings {
		if s.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must not be negative, got %g", s.name, s.v)
		}
	}
	if g.MinZoom <= 0 || g.MinZoom > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "min_zoom must be in (0, 1], got %g", g.MinZoom)
	}
	return nil
}
