package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/store"
)

// storeCommand creates the graph store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage graphs served by 'spiderweb serve'",
	}

	cmd.AddCommand(c.storePushCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeRemoveCommand())

	return cmd
}

// storePushCommand creates the "store push" subcommand.
func (c *CLI) storePushCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Store a graph from a JSON file or an edge list",
		Long: `Store a graph from a JSON file or an edge list.

Edge lists have one "from -> to" pair per line and '//' starts a comment
line. Names starting with '#' become tags, and targets that are never used
as a source become unresolved files. Pass '-' to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = c.cfg.Server.Graph
			}
			return c.runStorePush(cmd.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "graph name (default from config)")
	return cmd
}

func (c *CLI) runStorePush(ctx context.Context, input, name string) error {
	g, err := readGraphFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if err := graph.Validate(g); err != nil {
		return err
	}

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.Save(ctx, name, graph.Normalize(g)); err != nil {
		return err
	}
	printSuccess("Stored %s", StyleHighlight.Render(name))
	printStats(len(g.Nodes), len(g.Links), 0)
	if fs, ok := st.(*store.FileStore); ok {
		printDetail("Directory: %s", fs.Path())
	}
	printNextStep("Serve it", "spiderweb serve --graph "+name)
	return nil
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No graphs stored")
				return nil
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

// storeRemoveCommand creates the "store rm" subcommand.
func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [name]",
		Short: "Remove a stored graph",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: c.completeGraphNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}
