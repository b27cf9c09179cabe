// Package cli implements the ribbonpack command line.
//
// Every command resolves a map source (an expression, a catalog example or
// a map file), runs it through [pipeline.Runner] and reports with the
// styled helpers in ui.go. Diagnostics go through a charmbracelet/log
// logger on stderr; --verbose lowers it to debug, which adds solver
// progress and cache traffic.
//
// Commands: pack, inspect, dot, export, catalog, pick, cache, serve,
// version and completion.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// logFormatEnv switches the log format to "json" or "logfmt", which suits
// serve behind a log collector.
const logFormatEnv = "RIBBONPACK_LOG_FORMAT"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       logFormatter(os.Getenv(logFormatEnv)),
	})
}

func logFormatter(name string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
