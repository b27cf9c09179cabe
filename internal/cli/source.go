package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/pipeline"
)

// sourceFlags selects the map a command works on: a positional
// expression, a catalog example or a map file, optionally on top of a
// TOML options file.
type sourceFlags struct {
	example string
	file    string
	name    string
	config  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.example, "example", "e", "", "catalog example name (see 'ribbonpack catalog')")
	cmd.Flags().StringVar(&f.file, "file", "", "map file (.json or .toml), path or http(s) URL")
	cmd.Flags().StringVar(&f.name, "name", "", "surface name used for titles and output files")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML options file; flags override its values")
	_ = cmd.RegisterFlagCompletionFunc("example", completeExamples)
}

// options loads the config file, if any, and applies the source flags and
// positional expression on top.
func (f *sourceFlags) options(args []string) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		var err error
		if opts, err = pipeline.LoadOptions(f.config); err != nil {
			return opts, err
		}
	}

	given := 0
	if len(args) > 0 {
		given++
	}
	if f.example != "" {
		given++
	}
	if f.file != "" {
		given++
	}
	if given > 1 {
		return opts, fmt.Errorf("give only one of an expression, --example or --file")
	}
	if given == 1 {
		opts.Expr, opts.Example, opts.File = "", "", ""
	}

	switch {
	case len(args) > 0:
		opts.Expr = strings.Join(args, " ")
	case f.example != "":
		opts.Example = f.example
	case f.file != "":
		opts.File = f.file
	}
	if f.name != "" {
		opts.Name = f.name
	}
	if opts.Expr == "" && opts.Example == "" && opts.File == "" {
		return opts, fmt.Errorf("give an expression, --example or --file")
	}
	return opts, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// baseName derives a file name stem for the outputs of opts.
func baseName(opts pipeline.Options) string {
	switch {
	case opts.Name != "":
		return slug(opts.Name)
	case opts.Example != "":
		return slug(opts.Example)
	case opts.File != "":
		return strings.TrimSuffix(opts.File, filepath.Ext(opts.File))
	}
	return slug(opts.Expr)
}

// slug turns s into a short file-name-safe stem.
func slug(s string) string {
	s = strings.Trim(unsafeChars.ReplaceAllString(s, "_"), "_")
	if len(s) > 48 {
		s = strings.TrimRight(s[:48], "_")
	}
	if s == "" {
		return appName
	}
	return s
}
