package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// fetchCommand creates the fetch command for downloading an organization tree.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <org-uuid>",
		Short: "Fetch an organization and its descendants",
		Long: `Fetch an organization and all of its descendant organizations from the
configured source (ORGCHART_SOURCE) and write them to a tree file.

The tree file can be laid out and rendered offline with 'layout' and
'render'. Use a .yaml extension to write YAML instead of JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), args[0], output, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tree.json", "output tree file (.json, .yaml)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch even if the tree is cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the tree cache")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, orgUUID, output string, refresh, noCache bool) error {
	runner, closeRunner, err := c.newRunner(ctx, "", noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	spinner := newSpinnerWithContext(ctx, "Fetching from "+runner.Source.Name()+"...")
	spinner.Start()
	p := newProgress(c.Logger)

	tree, hit, err := runner.FetchWithCacheInfo(ctx, pipeline.Options{OrgUUID: orgUUID, Refresh: refresh})
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch %s: %w", orgUUID, err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Fetched %d organizations", tree.Size()))

	if err := graph.WriteTreeFile(tree, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Fetched %s", StyleHighlight.Render(tree.Root.DisplayName()))
	printFile(output)
	printStats(tree.Size(), tree.MaxDepth(), hit)
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
