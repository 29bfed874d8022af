package pipeline

import (
	"fmt"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/render/nodelink"
	"github.com/NCI-Agency/anet-orgchart/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(l, opts)
	dotOpts := nodelink.Options{Detailed: opts.Detailed}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.Renderer == RendererGraphviz {
				data, err = nodelink.RenderSVG(nodelink.ToDOT(l, dotOpts))
			} else {
				data = sink.RenderSVG(l, svgOpts...)
			}
		case FormatPDF:
			data, err = sink.RenderPDF(l, svgOpts...)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, dotOpts))
		case FormatPNG:
			data, err = nodelink.RenderPNG(nodelink.ToDOT(l, dotOpts))
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data, such as
// a layout JSON file written earlier.
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(parsed, opts)
}

func buildSVGOptions(l graph.Layout, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if root, ok := l.Node(l.RootID); ok {
		svgOpts = append(svgOpts, sink.WithTitle(root.Label))
	}
	return svgOpts
}
