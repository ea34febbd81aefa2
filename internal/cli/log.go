// Package cli implements the ontograph command-line interface.
//
// Every query command takes an ontology document (TOML or YAML) as its first
// argument, builds the closure graph and prints the result as a table or as
// JSON. The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - ancestors, descendants: closures of one entity
//   - edges: direct (primitive) edges of one entity
//   - between: closure edges connecting two entities
//   - cycles: strongly connected components over a relation subset
//   - check: axiom shapes skipped during edge extraction
//   - render: closure diagrams as SVG, PDF, PNG or DOT
//   - serve: the HTTP query service
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes per-closure timing from the engine.
//
// # Example
//
//	import "github.com/matzehuels/ontograph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger: timestamps as "HH:MM:SS.ms", messages
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command for --verbose output.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with keyvals and the elapsed time, e.g.
//
//	14:32:01.45 DEBU loaded ontology name=anatomy entities=42 elapsed=12ms
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Debug(msg, keyvals...)
}
