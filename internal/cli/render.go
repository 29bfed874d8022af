package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// renderOpts holds the render-only flags; layout flags live in chartFlags.
type renderOpts struct {
	output      string
	formats     []string
	detailed    bool
	interactive bool
	renderer    string
}

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		opts       renderOpts
		flags      chartFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tree-file | layout.json]",
		Short: "Render an organization chart",
		Long: `Lay out and render an organization chart.

The input is a tree file (produced by 'fetch'), a layout file (produced by
'layout', ending in .layout.json) which is rendered as is, or nothing with
--org to fetch from the configured source.

Formats: svg (default), pdf, png, dot, json. PDF needs rsvg-convert on the
PATH; PNG is drawn by Graphviz. --renderer graphviz draws the SVG with
Graphviz too, from the same pinned positions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			po, err := c.chartOptions(cmd, &flags)
			if err != nil {
				return err
			}
			po.Formats = opts.formats
			po.Detailed = opts.detailed
			po.Interactive = opts.interactive
			po.Renderer = opts.renderer
			if err := pipeline.ValidateRenderer(po.Renderer); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), inputArg(args), po, &opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, pdf, png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include codes and long names in DOT labels")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "highlight connectors on hover (SVG)")
	cmd.Flags().StringVar(&opts.renderer, "renderer", pipeline.RendererCards, "SVG renderer: cards or graphviz")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, po pipeline.Options, opts *renderOpts, noCache bool) error {
	if strings.HasSuffix(input, ".layout.json") {
		return c.renderLayoutFile(input, po, opts)
	}
	if err := requireInput(input, po.OrgUUID); err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, input, noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	spinner := newSpinnerWithContext(ctx, "Rendering chart...")
	spinner.Start()
	result, err := runner.Execute(ctx, po)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(opts.output, input, result.Tree.Root.DisplayName())
	paths, err := writeArtifacts(result.Artifacts, opts, base)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(result.Tree.Root.DisplayName()))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Layout.DepthLimit, result.CacheInfo.FetchHit)
	return nil
}

func (c *CLI) renderLayoutFile(input string, po pipeline.Options, opts *renderOpts) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read layout %s: %w", input, err)
	}
	artifacts, err := pipeline.RenderFromLayoutData(data, po)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(artifacts, opts, basePath(opts.output, input, ""))
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each artifact to base.<format>, or to the output
// path itself when a single format was requested with an explicit output.
func writeArtifacts(artifacts map[string][]byte, opts *renderOpts, base string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
