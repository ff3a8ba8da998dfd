// Package cli implements the spiderweb command-line interface.
//
// # Commands
//
//   - view: the interactive terminal graph view
//   - serve: the HTTP graph server viewers fetch from
//   - snapshot: settle the layout and render one frame to PNG
//   - export: static DOT/SVG node-link diagrams or graph JSON
//   - store: push, list and remove graphs served by serve
//   - cache: clear or locate the graph response cache
//   - config: locate or initialize the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The view
// command owns the terminal, so its logs go to --log-file instead.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/buildinfo"
	"github.com/matzehuels/spiderweb/pkg/cache"
	"github.com/matzehuels/spiderweb/pkg/client"
	"github.com/matzehuels/spiderweb/pkg/config"
	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/observability"
	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spiderweb"

	// redisPrefix namespaces keys in a shared Redis instance.
	redisPrefix = appName + ":"
)

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

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level the render,
// cache and HTTP hooks also log through it.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetAll(observability.NewLogging(c.Logger))
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spiderweb is an interactive viewer for note graphs",
		Long:         `Spiderweb draws the link graph of a notes vault as a force-directed web in the terminal. Hover a node to focus its neighbors, drag to rearrange, click to open the note.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newCache builds the response cache selected by the config. A Redis
// server that cannot be reached degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.cfg.Cache
	if noCache || cc.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cc.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cc.RedisAddr, cc.RedisPass, cc.RedisDB)
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", cc.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.Namespace(rc, redisPrefix), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/spiderweb.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return expandHome(c.cfg.Cache.Dir), nil
	}
	return cache.DefaultDir()
}

// newStore opens the graph store selected by the config.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	sc := c.cfg.Store
	if sc.Backend == "mongo" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        sc.MongoURI,
			Database:   sc.MongoDatabase,
			Collection: sc.MongoCollection,
		})
	}
	return store.NewFileStore(expandHome(sc.Path))
}

// newClient builds a graph client for baseURL (config when empty).
func (c *CLI) newClient(ch cache.Cache, baseURL string) *client.Client {
	if baseURL == "" {
		baseURL = c.cfg.Server.BaseURL
	}
	return client.New(baseURL, client.WithCache(ch, c.cfg.Cache.TTL))
}

// palette resolves a theme name; "auto" (or empty) asks the terminal.
func palette(theme string) render.Palette {
	if theme == "" || theme == "auto" {
		return render.PaletteFor(lipgloss.HasDarkBackground())
	}
	return render.PaletteByName(theme, true)
}

// =============================================================================
// Graph Sources
// =============================================================================

// sourceOpts selects where a command reads its graph from.
type sourceOpts struct {
	file    string // local graph.json or edge list; "-" for stdin
	url     string // graph server base URL
	refresh bool   // bypass the response cache
	noCache bool   // disable the response cache
}

func addSourceFlags(cmd *cobra.Command, o *sourceOpts) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "read the graph from a file (.json or edge list) instead of the server")
	cmd.Flags().StringVar(&o.url, "url", "", "graph server base URL")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the response cache")
}

// loadGraph reads the graph from the file or the server named by o.
func (c *CLI) loadGraph(ctx context.Context, o sourceOpts) (graph.Graph, error) {
	if o.file != "" {
		return readGraphFile(o.file)
	}

	if o.url != "" {
		if err := errs.ValidateURL(o.url); err != nil {
			return graph.Graph{}, err
		}
	}
	ch, err := c.newCache(ctx, o.noCache)
	if err != nil {
		return graph.Graph{}, err
	}
	defer ch.Close()
	cl := c.newClient(ch, o.url)

	spinner := newSpinnerWithContext(ctx, "Fetching graph from "+cl.BaseURL()+"...")
	spinner.Start()
	g, err := cl.FetchGraph(ctx, o.refresh)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return graph.Graph{}, err
	}
	spinner.Stop()
	return g, nil
}

// readGraphFile reads JSON graphs by extension and edge lists otherwise.
func readGraphFile(path string) (graph.Graph, error) {
	if path == "-" {
		return graph.ReadEdgeList(os.Stdin)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return graph.ReadGraphFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return graph.Graph{}, err
	}
	defer f.Close()
	return graph.ReadEdgeList(f)
}

// =============================================================================
// Paths
// =============================================================================

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
