package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/buildinfo"
	"github.com/matzehuels/ribbonpack/pkg/cache"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for key prefixes and display.
	appName = "ribbonpack"

	// cacheEnv selects the cache backend when --cache is not given.
	cacheEnv = "RIBBONPACK_CACHE"

	// mongoDatabase and mongoCollection hold MongoDB cache entries.
	mongoDatabase   = appName
	mongoCollection = "cache"
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

	cacheURL   string // --cache: "", "none", a directory, redis:// or mongodb:// URL
	cacheScope string // --cache-scope: key prefix for shared backends
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Ribbonpack realizes combinatorial maps as circle packings",
		Long: `Ribbonpack builds ribbon graphs from expressions, catalog examples or map
files, solves for the circle packing of their medial triangulation and draws
the result as SVG, PNG, PDF or JSON.`,
		Version:      buildinfo.Current(),
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cacheURL, "cache", os.Getenv(cacheEnv),
		"cache backend: directory, redis://..., mongodb://... or none (default: $"+cacheEnv+" or the user cache dir)")
	root.PersistentFlags().StringVar(&c.cacheScope, "cache-scope", "", "key prefix for shared cache backends")

	// Register all subcommands
	root.AddCommand(c.packCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appName)
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend := c.cacheURL
	if noCache {
		backend = "none"
	}
	ch, err := newCache(ctx, backend, c.cacheScope)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cacheScope != "" {
		keyer = cache.NewScopedKeyer(nil, c.cacheScope)
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache opens the cache backend named by spec. The empty string selects
// the file cache in the default directory; a directory that cannot be
// resolved disables caching.
func newCache(ctx context.Context, spec, scope string) (cache.Cache, error) {
	switch {
	case spec == "none":
		return cache.NewNullCache(), nil
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		prefix := appName + ":"
		if scope != "" {
			prefix += scope + ":"
		}
		return cache.NewRedisCache(spec, prefix)
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		return cache.NewMongoCache(ctx, spec, mongoDatabase, mongoCollection)
	case spec != "":
		return cache.NewFileCache(spec)
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}
