package cli

import (
	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/config"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// chartFlags are the flags shared by every command that lays out a chart.
// Unset flags fall back to the environment configuration.
type chartFlags struct {
	org          string
	depth        int
	filter       string
	width        float64
	height       float64
	symbols      bool
	layoutConfig string
	refresh      bool
	noCache      bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.org, "org", "", "organization uuid (required unless a tree file is given)")
	fl.IntVarP(&f.depth, "depth", "d", 3, "levels below the root to show")
	fl.StringVar(&f.filter, "filter", "ALL", "people filter: NONE, LEADERS, LEADERS_AND_DEPUTIES, TOP_POSITION, TOP_2_POSITIONS, ALL")
	fl.Float64Var(&f.width, "width", pipeline.DefaultWidth, "container width the chart is fitted to")
	fl.Float64Var(&f.height, "height", pipeline.DefaultHeight, "container height the chart is fitted to")
	fl.BoolVar(&f.symbols, "symbols", false, "show APP-6 symbol frames")
	fl.StringVar(&f.layoutConfig, "geometry", "", "TOML layout config with geometry and rank scale")
	fl.BoolVar(&f.refresh, "refresh", false, "refetch even if the tree is cached")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the tree cache")
}

// chartOptions merges the configuration, the layout config file and the flags
// the user set explicitly.
func (c *CLI) chartOptions(cmd *cobra.Command, f *chartFlags) (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}

	path := cfg.LayoutFile
	if cmd.Flags().Changed("geometry") {
		path = f.layoutConfig
	}
	layout, err := config.LoadLayoutFile(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	locale := layout.Locale
	if locale == "" {
		locale = cfg.Locale
	}

	opts := pipeline.Options{
		OrgUUID:    f.org,
		Refresh:    f.refresh,
		DepthLimit: cfg.Depth,
		Filter:     cfg.Filter,
		Symbols:    cfg.Symbols,
		Width:      f.width,
		Height:     f.height,
		Geometry:   &layout.Geometry,
		Ranks:      layout.Ranks,
		Locale:     locale,
		Logger:     c.Logger,
	}

	changed := cmd.Flags().Changed
	if changed("depth") {
		opts.DepthLimit = f.depth
	}
	if changed("filter") {
		opts.Filter = f.filter
	}
	if changed("symbols") {
		opts.Symbols = f.symbols
	}
	return opts, nil
}
