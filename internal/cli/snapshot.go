package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/hover"
	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/render/raster"
	"github.com/matzehuels/spiderweb/pkg/sim"
	"github.com/matzehuels/spiderweb/pkg/view"
)

const (
	defaultWidth  = 1200 // default PNG width
	defaultHeight = 800  // default PNG height
	defaultTicks  = 300  // default simulation ticks before drawing
)

// snapshotOpts holds the command-line flags for the snapshot command.
type snapshotOpts struct {
	source sourceOpts
	output string
	width  int
	height int
	ticks  int
	scale  float64
	theme  string
	focus  string // node name drawn hovered
}

// snapshotCommand creates the snapshot command, which settles the layout
// and renders a single frame to PNG.
func (c *CLI) snapshotCommand() *cobra.Command {
	opts := snapshotOpts{
		width:  defaultWidth,
		height: defaultHeight,
		ticks:  defaultTicks,
		scale:  1,
	}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the graph view to a PNG",
		Long: `Render the graph view to a PNG.

The force layout runs for --ticks iterations, then one frame is drawn the
way the interactive view would draw it. --focus draws a node as hovered,
with its neighbors highlighted and everything else faded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				opts.output = "graph.png"
			}
			if !strings.HasSuffix(strings.ToLower(opts.output), ".png") {
				return fmt.Errorf("output must be a .png file: %s", opts.output)
			}
			return c.runSnapshot(cmd.Context(), opts)
		},
	}

	addSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default graph.png)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "image height")
	cmd.Flags().IntVar(&opts.ticks, "ticks", opts.ticks, "simulation ticks before drawing")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "zoom level (labels appear above the label threshold)")
	cmd.Flags().StringVar(&opts.theme, "theme", "dark", "color theme: dark, light")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "draw this node as hovered")

	return cmd
}

func (c *CLI) runSnapshot(ctx context.Context, opts snapshotOpts) error {
	g, err := c.loadGraph(ctx, opts.source)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	prog := newProgress(loggerFromContext(ctx))
	data := graph.Resolve(graph.Normalize(g))
	sim.New(data, c.cfg.Simulation).Run(opts.ticks)

	snap, err := focusSnapshot(data, opts.focus)
	if err != nil {
		return err
	}

	surface, err := raster.New(opts.width, opts.height)
	if err != nil {
		return err
	}
	defer surface.Close()

	vc := c.cfg.View
	r := render.New(render.WithFontSize(vc.FontSize), render.WithLabelThreshold(vc.LabelThreshold))
	t := view.Center(view.Point{X: float64(opts.width) / 2, Y: float64(opts.height) / 2}, opts.scale)
	stats := r.DrawFrame(surface, data, t, snap, render.PaletteByName(opts.theme, true))

	if err := surface.SavePNG(opts.output); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("rendered snapshot", "nodes", stats.Nodes, "ticks", opts.ticks)
	printSuccess("Snapshot written")
	printFile(opts.output)
	printStats(stats.Nodes, stats.Links, stats.Labels)
	return nil
}

// focusSnapshot returns a fully faded-in hover state on the named node, or
// the empty snapshot when name is empty.
func focusSnapshot(d *graph.Data, name string) (hover.Snapshot, error) {
	if name == "" {
		return hover.Snapshot{}, nil
	}
	for _, n := range d.NodeList() {
		if n.Name == name {
			a := hover.New(hover.DefaultDuration)
			a.SetHovered(n, d.LinkList())
			a.Advance(hover.DefaultDuration)
			return a.Snapshot(), nil
		}
	}
	return hover.Snapshot{}, fmt.Errorf("focus node %q not found", name)
}
