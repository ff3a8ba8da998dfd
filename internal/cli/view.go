package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/internal/tui"
	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/observability"
	"github.com/matzehuels/spiderweb/pkg/render"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	source  sourceOpts
	theme   string
	fps     int
	magnify float64
	logFile string
}

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive graph view",
		Long: `Open the interactive graph view in the terminal.

The graph is fetched from the graph server (see 'spiderweb serve') or read
from a file with --file. Mouse: hover to focus a node and its neighbors,
drag a node to pin it while the layout reacts, drag empty space to pan,
scroll to zoom, click to open. Keys: +/- zoom, arrows pan, 0 reset,
r reheat the layout, R reload the graph, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), opts)
		},
	}

	addSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: auto, dark, light (default from config)")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "frames per second (default from config)")
	cmd.Flags().Float64Var(&opts.magnify, "magnify", 0, "hit radius multiplier (default from config)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the view is open")

	return cmd
}

func (c *CLI) runView(ctx context.Context, opts viewOpts) error {
	vc := c.cfg.View
	if opts.theme == "" {
		opts.theme = vc.Theme
	}
	if opts.fps <= 0 {
		opts.fps = vc.FPS
	}
	if opts.magnify <= 0 {
		opts.magnify = vc.Magnify
	}

	g, err := c.loadGraph(ctx, opts.source)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	// Evaluated once, before the alt screen takes over the terminal.
	pal := palette(opts.theme)

	// The alt screen owns stderr, so logs go to a file or nowhere.
	var logw io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logw = f
	}
	logger := newLogger(logw, c.Logger.GetLevel())
	if logger.GetLevel() <= LogDebug {
		observability.SetAll(observability.NewLogging(logger))
		defer observability.SetAll(observability.NewLogging(c.Logger))
	}

	cfg := tui.Config{
		Graph:   g,
		Palette: pal,
		Sim:     c.cfg.Simulation,
		FPS:     opts.fps,
		Magnify: opts.magnify,
		Renderer: []render.Option{
			render.WithFontSize(vc.FontSize),
			render.WithLabelThreshold(vc.LabelThreshold),
		},
		Logger: logger,
	}

	if opts.source.file == "" {
		ch, err := c.newCache(ctx, opts.source.noCache)
		if err != nil {
			return err
		}
		defer ch.Close()
		cl := c.newClient(ch, opts.source.url)
		cfg.Open = cl.OpenNode
		cfg.Reload = func(ctx context.Context) (graph.Graph, error) {
			return cl.FetchGraph(ctx, true)
		}
	} else {
		cfg.Reload = func(context.Context) (graph.Graph, error) {
			return readGraphFile(opts.source.file)
		}
	}

	logger.Info("view", "nodes", len(g.Nodes), "links", len(g.Links), "theme", pal.Name)
	m := tui.New(ctx, cfg)
	defer m.Close()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("view: %w", err)
	}
	return ctx.Err()
}
