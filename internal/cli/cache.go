package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/friendgraph/internal/config"
	"github.com/matzehuels/friendgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the query cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached query results",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			qc, closeCache := c.newCache()
			defer closeCache()

			if _, null := qc.(*cache.NullCache); null {
				c.printInfo("Cache is disabled")
				return nil
			}
			clearer, ok := qc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache %T cannot be cleared", qc)
			}

			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				c.printInfo("Cache is empty")
				return nil
			}
			c.printSuccess("Cleared %d cached entries", count)
			if fc, ok := qc.(*cache.FileCache); ok {
				c.printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Cache.Backend == config.CacheRedis {
				c.printLine("redis://" + c.cfg.Store.Redis.Addr + "/" + c.cfg.Cache.RedisPrefix)
				return nil
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			c.printLine(dir)
			return nil
		},
	}
}
