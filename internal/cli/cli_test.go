package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NCI-Agency/anet-orgchart/pkg/config"
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

const (
	rootUUID = "7e1f6f1c-2f0d-4a3b-9d8e-1c2b3a4d5e6f"
	opsUUID  = "0b8f2d8e-4c1a-4f7e-8a55-2d9c6e1f3a70"
	logUUID  = "a3c9d1e2-5b6f-4a70-8c9d-0e1f2a3b4c5d"
	cellUUID = "5d4c3b2a-1f0e-4d9c-8b7a-6f5e4d3c2b1a"
)

func sampleTree() *org.Tree {
	return &org.Tree{
		Root: org.Organization{UUID: rootUUID, ShortName: "HQ"},
		Descendants: []org.Organization{
			{UUID: opsUUID, ShortName: "OPS", ParentOrg: &org.Ref{UUID: rootUUID},
				AscendantOrgs: []org.Ref{{UUID: rootUUID}},
				Positions: []org.Position{
					{UUID: "p1", Name: "Chief", Role: org.RoleLeader, Person: &org.Person{Name: "Ada", Rank: "COL"}},
					{UUID: "p2", Name: "Clerk", Role: org.RoleMember, Person: &org.Person{Name: "Bob"}},
				}},
			{UUID: logUUID, ShortName: "LOG", ParentOrg: &org.Ref{UUID: rootUUID},
				AscendantOrgs: []org.Ref{{UUID: rootUUID}}},
			{UUID: cellUUID, ShortName: "CELL", ParentOrg: &org.Ref{UUID: opsUUID},
				AscendantOrgs: []org.Ref{{UUID: opsUUID}, {UUID: rootUUID}}},
		},
	}
}

func writeSampleTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, graph.WriteTreeFile(sampleTree(), path))
	return path
}

// newTestCLI returns a CLI configured for the file source without caching,
// independent of the test environment.
func newTestCLI(treeFile string) *CLI {
	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{
		Source:   config.SourceOptions{Kind: config.SourceFile, TreeFile: treeFile},
		Cache:    config.CacheOptions{Backend: config.CacheNone},
		LogLevel: "info",
		Locale:   "en",
		Filter:   "ALL",
		Depth:    3,
	}
	return c
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"fetch", "layout", "render", "explore", "serve", "import", "cache", "version", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestFetchWritesTreeFile(t *testing.T) {
	c := newTestCLI(writeSampleTree(t))
	out := filepath.Join(t.TempDir(), "fetched.yaml")

	_, err := execute(t, c, "fetch", rootUUID, "-o", out)
	require.NoError(t, err)

	tree, err := graph.ReadTreeFile(out)
	require.NoError(t, err)
	require.Equal(t, "HQ", tree.Root.ShortName)
	require.Len(t, tree.Descendants, 3)
}

func TestFetchUnknownOrganization(t *testing.T) {
	c := newTestCLI(writeSampleTree(t))
	_, err := execute(t, c, "fetch", logUUID, "-o", filepath.Join(t.TempDir(), "x.json"))
	require.True(t, errors.Is(err, errors.ErrCodeOrgNotFound), "err = %v", err)
}

func TestLayoutCommand(t *testing.T) {
	input := writeSampleTree(t)
	c := newTestCLI("")
	out := filepath.Join(t.TempDir(), "chart.layout.json")

	_, err := execute(t, c, "layout", input, "-o", out, "--depth", "1", "--filter", "leaders")
	require.NoError(t, err)

	l, err := graph.ReadLayoutFile(out)
	require.NoError(t, err)
	require.Equal(t, 1, l.DepthLimit)
	require.Equal(t, "LEADERS", l.FilterMode)
	require.Len(t, l.Nodes, 3)

	ops, ok := l.Node(opsUUID)
	require.True(t, ok)
	require.Len(t, ops.People, 1)
	require.Equal(t, "Ada", ops.People[0].Name)
}

func TestLayoutRequiresInput(t *testing.T) {
	_, err := execute(t, newTestCLI(""), "layout")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--org")
}

func TestRenderCommand(t *testing.T) {
	input := writeSampleTree(t)
	base := filepath.Join(t.TempDir(), "hq")

	_, err := execute(t, newTestCLI(""), "render", input, "-f", "svg,dot,json", "-o", base, "--symbols")
	require.NoError(t, err)

	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	require.Contains(t, string(svg), "CELL")

	dot, err := os.ReadFile(base + ".dot")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(dot), "digraph"))

	l, err := graph.ReadLayoutFile(base + ".json")
	require.NoError(t, err)
	require.True(t, l.ShowSymbols)
}

func TestRenderFromLayoutFile(t *testing.T) {
	input := writeSampleTree(t)
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "hq.layout.json")

	_, err := execute(t, newTestCLI(""), "layout", input, "-o", layoutPath, "--depth", "0")
	require.NoError(t, err)

	svgPath := filepath.Join(dir, "only-root.svg")
	_, err = execute(t, newTestCLI(""), "render", layoutPath, "-o", svgPath)
	require.NoError(t, err)

	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	require.Contains(t, string(svg), "HQ")
	require.NotContains(t, string(svg), "OPS")
}

func TestRenderGraphvizRenderer(t *testing.T) {
	output := filepath.Join(t.TempDir(), "hq.svg")

	_, err := execute(t, newTestCLI(""), "render", writeSampleTree(t), "-o", output, "--renderer", "graphviz")
	require.NoError(t, err)

	svg, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(svg), `class="graph"`)

	_, err = execute(t, newTestCLI(""), "render", writeSampleTree(t), "--renderer", "inkscape")
	require.Error(t, err)
	require.Contains(t, err.Error(), "inkscape")
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, newTestCLI(""), "render", writeSampleTree(t), "-f", "gif")
	require.Error(t, err)
	require.Contains(t, err.Error(), "gif")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, newTestCLI(""), "version")
	require.NoError(t, err)
	require.Contains(t, out, "orgchart")
	require.Contains(t, out, "commit:")
}
