package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/buildinfo"
	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	pkgio "github.com/matzehuels/ontograph/pkg/io"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "ontograph"
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
		Use:          appName,
		Short:        "Ontograph answers closure queries over ontology graphs",
		Long:         `Ontograph turns class and relation axioms into a labeled graph and answers ancestor, descendant and cycle queries whose edges carry relation semantics: quantifiers, property chains and transitivity.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.ancestorsCommand())
	root.AddCommand(c.descendantsCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.betweenCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Graph Options
// =============================================================================

// graphOpts holds the flags every command that loads an ontology shares.
// Flag values override the --config document.
type graphOpts struct {
	config           string   // YAML traversal config document
	include          []string // relation patterns to follow
	exclude          []string // relation patterns to drop
	excludeMetaclass string   // prune instances of this class
	noCache          bool     // disable closure memoization
	noImports        bool     // ignore imported axiom sets
	maxEdges         int      // closure budget, 0 = unbounded
	pick             bool     // resolve ambiguous identifiers interactively
}

// bind registers the shared flags on cmd.
func (o *graphOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.config, "config", "", "traversal config document (YAML)")
	f.StringSliceVar(&o.include, "include", nil, "relation patterns to follow, e.g. part_of,\"some adjacent_to\",is_a")
	f.StringSliceVar(&o.exclude, "exclude", nil, "relation patterns to drop")
	f.StringVar(&o.excludeMetaclass, "exclude-metaclass", "", "prune nodes asserted to be instances of this class")
	f.BoolVar(&o.noCache, "no-cache", false, "disable closure caching")
	f.BoolVar(&o.noImports, "no-imports", false, "ignore axioms from imported documents")
	f.IntVar(&o.maxEdges, "max-edges", 0, "stop a closure after this many edges (0 = unbounded)")
	f.BoolVar(&o.pick, "pick", false, "choose interactively when an identifier is ambiguous")

	cmd.ValidArgsFunction = completeOntology
	_ = cmd.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

// overrides converts the flags into a config document layer.
func (o *graphOpts) overrides() *pkgio.ConfigDocument {
	doc := &pkgio.ConfigDocument{ExcludeMetaclass: o.excludeMetaclass}
	if len(o.include) > 0 {
		doc.Include = o.include
	}
	if len(o.exclude) > 0 {
		doc.Exclude = o.exclude
	}
	if o.noCache {
		doc.Cache = ptr(false)
	}
	if o.noImports {
		doc.IncludeImports = ptr(false)
	}
	if o.maxEdges > 0 {
		doc.MaxEdges = ptr(o.maxEdges)
	}
	return doc
}

func ptr[T any](v T) *T { return &v }

// loadGraph reads the ontology at path and builds a graph configured from
// the config document and flags, in that order.
func (c *CLI) loadGraph(path string, o *graphOpts) (*graph.Graph, error) {
	p := newProgress(c.Logger)
	ont, err := pkgio.LoadOntology(path)
	if err != nil {
		return nil, err
	}

	cfg := graph.DefaultConfig()
	if o.config != "" {
		doc, err := pkgio.LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
		if cfg, err = doc.Apply(ont, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", o.config, err)
		}
	}
	if cfg, err = o.overrides().Apply(ont, cfg); err != nil {
		return nil, err
	}

	g, err := graph.New(ont, cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	p.done("loaded ontology", "name", ont.Name(), "entities", ont.Len())
	return g, nil
}

// resolve looks ref up in f. An ambiguous ref is offered in the picker when
// pick is set; otherwise the candidates are printed and the error returned.
func (c *CLI) resolve(f ontology.Facade, ref string, pick bool) (ontology.ID, error) {
	id, err := f.Lookup(ref)
	amb, ok := errors.AsAmbiguous(err)
	if !ok {
		return id, err
	}
	if !pick {
		printWarning("%q is ambiguous; use a full IRI or --pick", ref)
		for _, cand := range amb.Candidates {
			printDetail("%s", cand)
		}
		return ontology.None, err
	}

	iri, err := pickCandidate(f, amb)
	if err != nil {
		return ontology.None, err
	}
	return f.Lookup(iri)
}
