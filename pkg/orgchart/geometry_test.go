package orgchart

import (
	"testing"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

func TestNodeHeightFor(t *testing.T) {
	g := DefaultGeometry()
	for n, want := range map[int]float64{0: 60, 1: 82, 3: 126} {
		if got := g.NodeHeightFor(n); got != want {
			t.Errorf("NodeHeightFor(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Geometry)
		wantErr bool
	}{
		{"Default", func(*Geometry) {}, false},
		{"ZeroWidth", func(g *Geometry) { g.NodeWidth = 0 }, true},
		{"NegativeSpacing", func(g *Geometry) { g.ChildSpacing = -1 }, true},
		{"ZeroDepthIndent", func(g *Geometry) { g.DepthIndent = 0 }, false},
		{"ZeroMinZoom", func(g *Geometry) { g.MinZoom = 0 }, true},
		{"MinZoomAboveOne", func(g *Geometry) { g.MinZoom = 2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGeometry()
			tt.modify(&g)
			err := g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}
