// Package server implements the read-only HTTP query service.
//
// Every query names its start entity with the id query parameter, which is
// resolved through the ontology's Lookup (full IRI, CURIE, short id or
// label). An ambiguous id is answered with 409 and the candidate IRIs; the
// service never guesses.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/entity?id=
//	GET  /v1/ancestors?id=&reflexive=
//	GET  /v1/descendants?id=&reflexive=
//	GET  /v1/outgoing?id=
//	GET  /v1/incoming?id=
//	GET  /v1/between?from=&to=
//	GET  /v1/cycles?relation=
//	GET  /v1/diagram?id=&direction=&boundary=
//	POST /v1/cache/clear
//	GET  /metrics
package server

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ontograph/pkg/cache"
	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	pkgio "github.com/matzehuels/ontograph/pkg/io"
	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/ontology"
	"github.com/matzehuels/ontograph/pkg/render/nodelink"
)

// DefaultAddr is the listen address used when Options.Addr is empty.
const DefaultAddr = ":8090"

// Options configures a [Server].
type Options struct {
	// Addr is the TCP listen address.
	Addr string

	// Metrics, when set, is mounted on /metrics.
	Metrics http.Handler

	// RequestTimeout bounds each request, including cycle scans and
	// diagram rendering. Zero means 30 seconds.
	RequestTimeout time.Duration
}

// Server answers closure queries over a single graph.
type Server struct {
	Logger *log.Logger

	graph  *graph.Graph
	router chi.Router
	opts   Options
}

// New creates a server for g. If logger is nil, log.Default() is used.
func New(g *graph.Graph, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	s := &Server{Logger: logger, graph: g, opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/entity", s.handleEntity)
		r.Get("/ancestors", s.handleClosure(graph.Outgoing))
		r.Get("/descendants", s.handleClosure(graph.Incoming))
		r.Get("/outgoing", s.handleDirect(graph.Outgoing))
		r.Get("/incoming", s.handleDirect(graph.Incoming))
		r.Get("/between", s.handleBetween)
		r.Get("/cycles", s.handleCycles)
		r.Get("/diagram", s.handleDiagram)
		r.Post("/cache/clear", s.handleClearCache)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("query service listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// instrument logs each request and reports it to the HTTP hooks, keyed by
// route pattern rather than raw path.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.Logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"elapsed", elapsed,
			"id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	n, err := s.lookup(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, r, s.encoder().Entity(n))
}

func (s *Server) handleClosure(dir graph.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := s.lookup(r, "id")
		if err != nil {
			s.writeError(w, err)
			return
		}
		reflexive, err := boolParam(r, "reflexive")
		if err != nil {
			s.writeError(w, err)
			return
		}
		c := s.graph.Edges(n, dir, reflexive)
		s.writeJSON(w, r, s.encoder().Closure(c))
	}
}

func (s *Server) handleDirect(dir graph.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := s.lookup(r, "id")
		if err != nil {
			s.writeError(w, err)
			return
		}
		var edges []graph.Edge
		if dir == graph.Outgoing {
			edges = s.graph.OutgoingEdges(n)
		} else {
			edges = s.graph.IncomingEdges(n)
		}
		s.writeJSON(w, r, s.encoder().Edges(edges))
	}
}

func (s *Server) handleBetween(w http.ResponseWriter, r *http.Request) {
	from, err := s.lookup(r, "from")
	if err != nil {
		s.writeError(w, err)
		return
	}
	to, err := s.lookup(r, "to")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, r, s.encoder().Edges(s.graph.EdgesBetween(from, to)))
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	relations, err := pkgio.ParsePatterns(r.URL.Query()["relation"], s.graph.Facade())
	if err != nil {
		s.writeError(w, err)
		return
	}
	cycles, err := s.graph.FindCycles(r.Context(), relations)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "cycle scan interrupted"))
		return
	}
	s.writeJSON(w, r, s.encoder().Cycles(cycles))
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	n, err := s.lookup(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	dir := graph.Outgoing
	switch r.URL.Query().Get("direction") {
	case "", "outgoing", "ancestors":
	case "incoming", "descendants":
		dir = graph.Incoming
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "direction must be outgoing or incoming"))
		return
	}
	boundary, err := boolParam(r, "boundary")
	if err != nil {
		s.writeError(w, err)
		return
	}

	c := s.graph.Edges(n, dir, false)
	svg, err := nodelink.Render(r.Context(), s.graph, c, nodelink.Options{Boundary: boundary})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBody(w, r, "image/svg+xml", svg)
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	s.graph.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) encoder() *pkgio.Encoder { return pkgio.NewEncoder(s.graph.Facade()) }

func (s *Server) lookup(r *http.Request, param string) (ontology.ID, error) {
	ref := r.URL.Query().Get(param)
	if ref == "" {
		return ontology.None, errors.New(errors.ErrCodeInvalidInput, "missing %s parameter", param)
	}
	return s.graph.Facade().Lookup(ref)
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(&buf, v); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	s.writeBody(w, r, "application/json", buf.Bytes())
}

// writeBody sends body with an ETag derived from it and the ontology
// generation, and honors If-None-Match.
func (s *Server) writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := `"` + cache.Fingerprint(s.graph.Facade().Generation(), body) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
