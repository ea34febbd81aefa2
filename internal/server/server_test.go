package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	pkgio "github.com/matzehuels/ontograph/pkg/io"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

const ex = "http://example.org/"

func newTestServer(t *testing.T) (*Server, *ontology.Ontology) {
	t.Helper()
	o := ontology.New("anatomy")
	partOf := o.Relation(ex + "part_of")
	finger := o.Class(ex + "finger")
	hand := o.Class(ex + "hand")
	limb := o.Class(ex + "limb")
	o.SetTransitive(partOf, true)
	o.SubClassOf(finger, ontology.Some(partOf, ontology.Named(hand)))
	o.SubClassOf(hand, ontology.Some(partOf, ontology.Named(limb)))

	// two classes sharing a label
	o.SetLabel(o.Class(ex+"digit_a"), "digit")
	o.SetLabel(o.Class(ex+"digit_b"), "digit")

	// an is_a cycle
	x, y := o.Class(ex+"x"), o.Class(ex+"y")
	o.SubClassOf(x, ontology.Named(y))
	o.SubClassOf(y, ontology.Named(x))

	g, err := graph.New(o, graph.DefaultConfig(), log.New(io.Discard))
	require.NoError(t, err)
	return New(g, log.New(io.Discard), Options{}), o
}

func get(t *testing.T, s *Server, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if query != nil {
		target += "?" + query.Encode()
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func targets(edges []pkgio.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Target
	}
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestAncestors(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/v1/ancestors", url.Values{"id": {"finger"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	c := decode[pkgio.Closure](t, rec)
	assert.Equal(t, ex+"finger", c.Start.IRI)
	assert.Equal(t, "outgoing", c.Direction)
	assert.False(t, c.Reflexive)
	assert.ElementsMatch(t, []string{ex + "hand", ex + "limb"}, targets(c.Edges))

	rec = get(t, s, "/v1/ancestors", url.Values{"id": {ex + "finger"}, "reflexive": {"true"}})
	require.Equal(t, http.StatusOK, rec.Code)
	c = decode[pkgio.Closure](t, rec)
	assert.True(t, c.Reflexive)
	assert.Contains(t, targets(c.Edges), ex+"finger")
}

func TestDescendants(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/descendants", url.Values{"id": {"limb"}})
	require.Equal(t, http.StatusOK, rec.Code)

	c := decode[pkgio.Closure](t, rec)
	assert.Equal(t, "incoming", c.Direction)
	var sources []string
	for _, e := range c.Edges {
		sources = append(sources, e.Source)
	}
	assert.ElementsMatch(t, []string{ex + "finger", ex + "hand"}, sources)
}

func TestDirectEdges(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/v1/outgoing", url.Values{"id": {"finger"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{ex + "hand"}, targets(decode[[]pkgio.Edge](t, rec)))

	rec = get(t, s, "/v1/incoming", url.Values{"id": {"hand"}})
	require.Equal(t, http.StatusOK, rec.Code)
	edges := decode[[]pkgio.Edge](t, rec)
	require.Len(t, edges, 1)
	assert.Equal(t, ex+"finger", edges[0].Source)
}

func TestBetween(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/between", url.Values{"from": {"finger"}, "to": {"limb"}})
	require.Equal(t, http.StatusOK, rec.Code)

	edges := decode[[]pkgio.Edge](t, rec)
	require.Len(t, edges, 1)
	assert.Equal(t, 2, edges[0].Distance)
	require.Len(t, edges[0].Label, 1)
	assert.Equal(t, ex+"part_of", edges[0].Label[0].Relation)
}

func TestCycles(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/v1/cycles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cycles := decode[[][]pkgio.Entity](t, rec)
	require.Len(t, cycles, 1)
	assert.Len(t, cycles[0], 2)

	rec = get(t, s, "/v1/cycles", url.Values{"relation": {"is_a"}})
	require.Equal(t, http.StatusOK, rec.Code)
	cycles = decode[[][]pkgio.Entity](t, rec)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{ex + "x", ex + "y"}, []string{cycles[0][0].IRI, cycles[0][1].IRI})
}

func TestErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		query  url.Values
		status int
		code   errors.Code
	}{
		{"missing id", "/v1/ancestors", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown", "/v1/ancestors", url.Values{"id": {"elbow"}}, http.StatusNotFound, errors.ErrCodeUnknownEntity},
		{"ambiguous", "/v1/entity", url.Values{"id": {"digit"}}, http.StatusConflict, errors.ErrCodeAmbiguousIdentifier},
		{"bad bool", "/v1/ancestors", url.Values{"id": {"finger"}, "reflexive": {"maybe"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad direction", "/v1/diagram", url.Values{"id": {"finger"}, "direction": {"up"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad pattern", "/v1/cycles", url.Values{"relation": {"is_a part_of"}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.path, tt.query)
			assert.Equal(t, tt.status, rec.Code)
			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.code, body.Code)
		})
	}

	rec := get(t, s, "/v1/entity", url.Values{"id": {"digit"}})
	body := decode[errorBody](t, rec)
	assert.ElementsMatch(t, []string{ex + "digit_a", ex + "digit_b"}, body.Candidates)
}

func TestETag(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/entity", url.Values{"id": {"hand"}})
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/v1/entity?id=hand", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestClearCache(t *testing.T) {
	s, _ := newTestServer(t)
	get(t, s, "/v1/ancestors", url.Values{"id": {"finger"}})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cache/clear", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = get(t, s, "/v1/cache/clear", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsMount(t *testing.T) {
	o := ontology.New("empty")
	g, err := graph.New(o, graph.DefaultConfig(), log.New(io.Discard))
	require.NoError(t, err)

	s := New(g, log.New(io.Discard), Options{})
	assert.Equal(t, http.StatusNotFound, get(t, s, "/metrics", nil).Code)

	s = New(g, log.New(io.Discard), Options{
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		}),
	})
	rec := get(t, s, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics\n", rec.Body.String())
}

func TestDiagram(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/v1/diagram", url.Values{"id": {"finger"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}
