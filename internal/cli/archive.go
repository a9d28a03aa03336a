package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/store"
)

// archiveCommand creates the archive management command.
func (c *CLI) archiveCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage archived layouts",
		Long: `Manage archived layouts.

Archived layouts live in MongoDB and are written by the HTTP API when a
request asks for archiving. These subcommands list, show, and delete them.
The connection comes from --mongo-uri or the [server] section of the config
file.`,
	}

	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "mongodb URI for the layout archive")

	cmd.AddCommand(c.archiveListCommand(&mongoURI))
	cmd.AddCommand(c.archiveShowCommand(&mongoURI))
	cmd.AddCommand(c.archiveDeleteCommand(&mongoURI))

	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand(mongoURI *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), *mongoURI, func(ctx context.Context, s store.Store) error {
				entries, err := s.List(ctx, limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					printInfo("Archive is empty")
					return nil
				}
				for _, e := range entries {
					name := e.Name
					if name == "" {
						name = "(unnamed)"
					}
					fmt.Println(StyleValue.Render(e.ID) + "  " + name)
					printDetail("%s · %d nodes · %d layers",
						e.CreatedAt.Format("2006-01-02 15:04"),
						e.Graph.NodeCount(),
						e.Result.Metrics.Layers)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (0 = all)")
	return cmd
}

// archiveShowCommand creates the "archive show" subcommand.
func (c *CLI) archiveShowCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print one archived layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), *mongoURI, func(ctx context.Context, s store.Store) error {
				entry, err := s.Get(ctx, args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entry)
			})
		},
	}
}

// archiveDeleteCommand creates the "archive delete" subcommand.
func (c *CLI) archiveDeleteCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an archived layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), *mongoURI, func(ctx context.Context, s store.Store) error {
				if err := s.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}

// withArchive connects to the archive, runs fn, and closes the connection.
func (c *CLI) withArchive(ctx context.Context, mongoURI string, fn func(context.Context, store.Store) error) error {
	if mongoURI == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mongoURI = cfg.Server.MongoURI
	}
	if mongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"archive requires --mongo-uri or server.mongo_uri in the config file")
	}

	s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	if err != nil {
		return fmt.Errorf("connect archive: %w", err)
	}
	defer s.Close(context.Background())

	return fn(ctx, s)
}
