package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/server"
)

// serveCommand creates the graph server command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen, name, openCmd string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored graphs to viewers",
		Long: `Serve stored graphs over HTTP at /v1.

Viewers fetch GET /v1/graph and report clicks with POST /v1/document/show.
With --open-command, every click runs the command through the shell with
{name} replaced by the clicked node's name (shell-quoted), e.g.:

  spiderweb serve --open-command 'code -g notes/{name}.md'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := c.cfg.Server
			if listen == "" {
				listen = sc.Listen
			}
			if name == "" {
				name = sc.Graph
			}
			if openCmd == "" {
				openCmd = sc.OpenCommand
			}
			return c.runServe(cmd.Context(), listen, name, openCmd)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	cmd.Flags().StringVarP(&name, "graph", "g", "", "graph served by default (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("graph", c.completeGraphNames)
	cmd.Flags().StringVar(&openCmd, "open-command", "", "shell command run when a node is opened")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen, name, openCmd string) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	srv := server.New(st,
		server.WithGraphName(name),
		server.WithLogger(loggerFromContext(ctx)),
		server.WithShowFunc(showFunc(openCmd)),
	)
	return srv.ListenAndServe(ctx, listen)
}

// showFunc runs openCmd for each opened node, or prints the node name when
// no command is configured.
func showFunc(openCmd string) server.ShowFunc {
	if openCmd == "" {
		return func(_ context.Context, ev server.OpenEvent) error {
			printInfo("open %s", StyleHighlight.Render(ev.Name))
			return nil
		}
	}
	return func(ctx context.Context, ev server.OpenEvent) error {
		line := strings.ReplaceAll(openCmd, "{name}", shellQuote(ev.Name))
		cmd := exec.CommandContext(ctx, "sh", "-c", line)
		cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
		return cmd.Run()
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
