package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/render/nodelink"
)

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

// exportCommand creates the export command for static node-link output.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		source   sourceOpts
		format   string
		output   string
		detailed bool
		theme    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph as DOT, SVG or JSON",
		Long: `Export the graph as a static node-link diagram (DOT or SVG via Graphviz)
or as normalized graph JSON, e.g. to seed a store with 'spiderweb store push'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatDOT, formatSVG, formatJSON:
			default:
				return fmt.Errorf("invalid format %q: must be dot, svg or json", format)
			}
			return c.runExport(cmd.Context(), source, format, output, detailed, theme)
		},
	}

	addSourceFlags(cmd, &source)
	cmd.Flags().StringVarP(&format, "format", "F", formatSVG, "output format: svg, dot, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with id, kind and size")
	cmd.Flags().StringVar(&theme, "theme", "dark", "color theme: dark, light")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, source sourceOpts, format, output string, detailed bool, theme string) error {
	g, err := c.loadGraph(ctx, source)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	g = graph.Normalize(g)

	var data []byte
	switch format {
	case formatJSON:
		data, err = graph.MarshalGraph(g)
	default:
		pal := render.PaletteByName(theme, true)
		dot := nodelink.ToDOT(g, nodelink.Options{Detailed: detailed, Palette: &pal})
		if format == formatDOT {
			data = []byte(dot)
		} else {
			data, err = nodelink.RenderSVG(ctx, dot)
		}
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Exported %s", format)
	printFile(output)
	return nil
}
