// Package cli implements the orgchart command-line interface.
//
// # Commands
//
//   - fetch: download an organization tree from the configured source
//   - layout: compute a chart layout as JSON
//   - render: lay out and render to SVG, PDF, PNG, DOT or JSON
//   - explore: browse a chart interactively in the terminal
//   - serve: run the HTTP API
//   - import: load a tree file into the Mongo organization store
//   - cache: inspect or clear the tree cache
//
// Settings come from ORGCHART_* environment variables (see pkg/config);
// flags override them for a single run.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/buildinfo"
	"github.com/NCI-Agency/anet-orgchart/pkg/config"
	"github.com/NCI-Agency/anet-orgchart/pkg/observability"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "orgchart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline, cache
// and HTTP events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).RegisterAll()
	}
}

// LoadConfig reads the environment configuration. It is called once before
// any command runs.
func (c *CLI) LoadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// ConfigLevel returns the log level named by ORGCHART_LOG_LEVEL, or info.
func (c *CLI) ConfigLevel() log.Level {
	if c.cfg == nil {
		return LogInfo
	}
	level, err := log.ParseLevel(c.cfg.LogLevel)
	if err != nil {
		return LogInfo
	}
	return level
}

// config returns the loaded configuration, parsing the environment on
// first use when LoadConfig was skipped (as in tests).
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "orgchart lays out ANET organization charts",
		Long:         `orgchart fetches an organization and its descendants from ANET (or a tree file, MongoDB or PostgreSQL), lays them out as a chart and renders it to SVG, PDF, PNG, DOT or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
