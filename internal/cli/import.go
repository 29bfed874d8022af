package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NCI-Agency/anet-orgchart/pkg/config"
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/source/mongo"
)

// importCommand creates the import command that seeds the Mongo store.
func (c *CLI) importCommand() *cobra.Command {
	var (
		uri      string
		database string
	)

	cmd := &cobra.Command{
		Use:   "import <tree-file>",
		Short: "Load a tree file into the MongoDB organization store",
		Long: `Upsert every organization of a tree file into the MongoDB "organizations"
collection, creating its indexes first. Organizations are matched by uuid,
so importing the same file twice leaves one copy.

The connection defaults to ORGCHART_MONGO_URI and ORGCHART_MONGO_DATABASE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("uri") {
				uri = cfg.Source.MongoURI
			}
			if !cmd.Flags().Changed("database") {
				database = cfg.Source.MongoDatabase
			}
			return c.runImport(cmd.Context(), args[0], uri, database)
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&database, "database", mongo.DefaultDatabase, "database name")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, uri, database string) error {
	if uri == "" {
		return errors.New(errors.ErrCodeInvalidSource, "import requires --uri or %sMONGO_URI", config.EnvPrefix)
	}
	tree, err := graph.ReadTreeFile(input)
	if err != nil {
		return err
	}

	store, err := mongo.Open(ctx, uri, database)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	p := newProgress(c.Logger)
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	if err := store.Save(ctx, tree); err != nil {
		return fmt.Errorf("save %s: %w", input, err)
	}
	p.done(fmt.Sprintf("Imported %d organizations", tree.Size()))

	printSuccess("Imported %s into %s", StyleHighlight.Render(tree.Root.DisplayName()), store.Name())
	printNextStep("Render", fmt.Sprintf("%s=mongo %s render --org %s", config.EnvPrefix+"SOURCE", appName, tree.Root.UUID))
	return nil
}
