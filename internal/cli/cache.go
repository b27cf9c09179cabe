package cli

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the packing and artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Drop every cached packing and artifact",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print where the cache lives",
			Args:  cobra.NoArgs,
			RunE:  c.runCachePath,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Count the entries of a file cache by kind",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheStats,
		},
	)
	return cmd
}

func (c *CLI) runCacheClear(cmd *cobra.Command, _ []string) error {
	ch, err := newCache(cmd.Context(), c.cacheURL, c.cacheScope)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer ch.Close()

	if err := ch.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cache cleared")
	if fc, ok := ch.(*cache.FileCache); ok {
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}

func (c *CLI) runCachePath(cmd *cobra.Command, _ []string) error {
	where := c.cacheURL
	if where == "" || where == "none" {
		dir, err := cache.DefaultDir()
		if err != nil {
			return fmt.Errorf("locate cache dir: %w", err)
		}
		where = dir
	}
	fmt.Fprintln(cmd.OutOrStdout(), where)
	return nil
}

func (c *CLI) runCacheStats(cmd *cobra.Command, _ []string) error {
	ch, err := newCache(cmd.Context(), c.cacheURL, c.cacheScope)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer ch.Close()

	fc, ok := ch.(*cache.FileCache)
	if !ok {
		return fmt.Errorf("stats are only available for a file cache, not %T", ch)
	}
	usage, err := fc.Usage(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan cache: %w", err)
	}

	kinds := make([]string, 0, len(usage))
	for k := range usage {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	printInfo("%s", fc.Dir())
	if len(kinds) == 0 {
		printDetail("empty")
		return nil
	}
	for _, k := range kinds {
		u := usage[k]
		printKeyValue(k, fmt.Sprintf("%d entries, %s", u.Entries, humanize.Bytes(uint64(u.Bytes))))
	}
	return nil
}
