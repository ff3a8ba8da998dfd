package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the graph response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached graph responses",
		Long: `Clear cached graph responses.

For the file backend the whole cache directory is emptied. For Redis only
the entry of the configured (or --url) server is removed, since the
instance may be shared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch c.cfg.Cache.Backend {
			case "none":
				printInfo("Caching is disabled")
				return nil
			case "redis":
				ch, err := c.newCache(ctx, false)
				if err != nil {
					return err
				}
				defer ch.Close()
				if url == "" {
					url = c.cfg.Server.BaseURL
				}
				if err := ch.Delete(ctx, cache.GraphKey(url)); err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
				printSuccess("Cleared cached graph for %s", url)
				return nil
			}

			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared cache")
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "graph server whose entry is removed (redis)")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Long: `Print the cache directory path. With --verbose the number of cached
entries and their size are logged as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, size, err := fc.Usage()
			if err != nil {
				return fmt.Errorf("scan cache: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("cache usage", "entries", n, "bytes", size)
			return nil
		},
	}
}
