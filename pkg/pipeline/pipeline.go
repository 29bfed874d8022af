// Package pipeline runs the fetch → layout → render chain shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: load an organization and its descendants from a source
//     (cached between runs)
//  2. Layout: place the organizations, center the root and fit the
//     viewport to the requested canvas
//  3. Render: produce SVG, PDF, PNG, DOT or JSON output
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(src, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    OrgUUID:    "7e1f6f1c-2f0d-4a3b-9d8e-1c2b3a4d5e6f",
//	    DepthLimit: 2,
//	    Filter:     "LEADERS",
//	    Formats:    []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	tree, err := runner.Fetch(ctx, opts)
//	layout, err := pipeline.ComputeLayout(tree, opts)
//	artifacts, err := pipeline.Render(layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/orgchart"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default container width the viewport is fitted to.
	DefaultWidth = 1200.0

	// DefaultHeight is the default container height.
	DefaultHeight = 800.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Renderers draw the svg format. Cards is the standalone sink; graphviz
// routes the pinned DOT through neato.
const (
	RendererCards    = "cards"
	RendererGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatDOT:  "text/vnd.graphviz",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Fetch options
	OrgUUID string `json:"org_uuid,omitempty"` // Empty is only valid for file sources
	Refresh bool   `json:"refresh,omitempty"`  // Bypass the tree cache

	// Layout options
	DepthLimit int     `json:"depth"`            // Negative selects orgchart.DefaultDepthLimit
	Filter     string  `json:"filter,omitempty"` // Filter mode name; empty is ALL
	Symbols    bool    `json:"symbols,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`    // DOT labels include codes and long names
	Interactive bool     `json:"interactive,omitempty"` // SVG hover highlighting
	Renderer    string   `json:"renderer,omitempty"`    // Empty is RendererCards

	// Runtime options (not serialized)
	Geometry *orgchart.Geometry `json:"-"` // nil selects the default geometry
	Ranks    org.RankScale      `json:"-"` // nil selects the default rank scale
	Locale   string             `json:"-"`
	Logger   *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the fetched organization tree.
	Tree *org.Tree

	// Layout is the fitted chart.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	OrgCount   int
	NodeCount  int
	EdgeCount  int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Only fetched trees
// are cached.
type CacheInfo struct {
	FetchHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateRenderer checks that name selects a known SVG renderer. Empty is
// accepted as the default.
func ValidateRenderer(name string) error {
	switch name {
	case "", RendererCards, RendererGraphviz:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid renderer: %q (must be cards or graphviz)", name)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := orgchart.ParseFilterMode(o.Filter); err != nil {
		return err
	}
	return o.geometry().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = RendererCards
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// FilterMode returns the parsed filter mode, or the default for invalid
// names. Call ValidateForLayout first to reject them instead.
func (o *Options) FilterMode() orgchart.FilterMode {
	mode, err := orgchart.ParseFilterMode(o.Filter)
	if err != nil {
		return orgchart.DefaultFilterMode
	}
	return mode
}

func (o *Options) geometry() orgchart.Geometry {
	if o.Geometry != nil {
		return *o.Geometry
	}
	return orgchart.DefaultGeometry()
}

func (o *Options) container() orgchart.Size {
	return orgchart.Size{Width: o.Width, Height: o.Height}
}
