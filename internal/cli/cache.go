package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eleitos/pkg/cache"
	apperrors "github.com/matzehuels/eleitos/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the elections API response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheConfig reads the config for the cache commands. The API key is not
// needed here and a missing file means defaults.
func (c *CLI) cacheConfig() (*Config, error) {
	cfg, _, err := readConfig(c.configPath)
	if apperrors.Is(err, apperrors.ErrCodeConfigMissing) {
		return nil, nil
	}
	return cfg, err
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.cacheConfig()
			if err != nil {
				return err
			}
			store, err := newCache(cmd.Context(), cfg, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Cache backend cannot be cleared")
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared cached responses")
			printDetail("Location: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.cacheConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation is the Redis URL or the cache directory.
func cacheLocation(cfg *Config) string {
	if cfg != nil && cfg.Cache.RedisURL != "" {
		return cfg.Cache.RedisURL
	}
	dir, err := resolveCacheDir(cfg)
	if err != nil {
		return "(unavailable)"
	}
	return dir
}
