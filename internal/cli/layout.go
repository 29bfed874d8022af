package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tree-file]",
		Short: "Compute a chart layout as JSON",
		Long: `Compute the layout of an organization chart.

The input is a tree file (produced by 'fetch'), or the organization given
with --org fetched from the configured source. The output is a layout.json
file (same format as 'render -f json') holding node positions, connectors
and the fitted viewport.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.chartOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), inputArg(args), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := requireInput(input, opts.OrgUUID); err != nil {
		return err
	}
	runner, closeRunner, err := c.newRunner(ctx, input, noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	tree, hit, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	layout, err := runner.ComputeLayout(ctx, tree, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input, tree.Root.DisplayName()) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Nodes), layout.DepthLimit, hit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)
	return nil
}

// inputArg returns the optional positional tree file.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func requireInput(input, orgUUID string) error {
	if input == "" && orgUUID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "give a tree file or --org")
	}
	return nil
}

// basePath derives the output path without extension. An explicit output
// loses a known format extension; otherwise the input file name is used,
// and without input the chart's root name.
func basePath(output, input, rootName string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(strings.TrimSuffix(input, filepath.Ext(input)), ".layout")
	}
	return sanitizeFileName(rootName)
}

func sanitizeFileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name = strings.Trim(name, "-"); name == "" {
		return "orgchart"
	}
	return name
}
