// Package httpapi exposes the crossing-reduction engine over HTTP: POST
// /v1/reorder runs pkg/wire.Reorder behind a cache and records a run in
// pkg/store; GET /healthz reports liveness.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/crossred/crossred/pkg/cache"
	crosserrors "github.com/crossred/crossred/pkg/errors"
	"github.com/crossred/crossred/pkg/observability"
	"github.com/crossred/crossred/pkg/store"
	"github.com/crossred/crossred/pkg/wire"
)

// Server serves the HTTP API. It holds no per-request state; all request
// handling is stateless aside from the shared cache and store.
type Server struct {
	Cache cache.Cache
	Store store.Store
	Keyer cache.Keyer
	TTL   time.Duration
}

// New builds a Server with sane defaults for any nil dependency: a
// [cache.NullCache], an in-memory [store.MemoryStore], and [cache.DefaultKeyer].
func New(c cache.Cache, s store.Store) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if s == nil {
		s = store.NewMemoryStore()
	}
	return &Server{Cache: c, Store: s, Keyer: cache.DefaultKeyer{}, TTL: 24 * time.Hour}
}

// Router builds the chi router exposing this server's routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/reorder", s.handleReorder)

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type reorderRequest struct {
	NumRanks int     `json:"numRanks"`
	NumNodes int     `json:"numNodes"`
	NumEdges int     `json:"numEdges"`
	Buffer   []int32 `json:"buffer"`
}

type reorderResponse struct {
	Buffer   []int32 `json:"buffer"`
	RunID    string  `json:"runId"`
	CacheHit bool    `json:"cacheHit"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, crosserrors.Wrap(crosserrors.ErrCodeInvalidInput, err, "decoding request body"))
		return
	}

	ctx := r.Context()
	key := s.Keyer.Key(req.NumRanks, req.NumNodes, req.NumEdges, req.Buffer, 0)

	if cached, ok, err := s.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "reorder")
		var resp reorderResponse
		if json.Unmarshal(cached, &resp) == nil {
			resp.CacheHit = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
	} else {
		observability.Cache().OnCacheMiss(ctx, "reorder")
	}

	start := time.Now()
	buffer := append([]int32(nil), req.Buffer...)
	if err := wire.Reorder(req.NumRanks, req.NumNodes, req.NumEdges, buffer); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	elapsed := time.Since(start)

	runID := uuid.NewString()
	run := &store.Run{
		ID:        runID,
		NumNodes:  req.NumNodes,
		NumEdges:  req.NumEdges,
		Duration:  elapsed,
		CreatedAt: time.Now(),
	}
	if err := s.Store.Set(ctx, run); err != nil {
		observability.HTTP().OnError(ctx, r.Method, r.URL.Path, err)
	}

	resp := reorderResponse{Buffer: buffer, RunID: runID}
	if data, err := json.Marshal(resp); err == nil {
		_ = s.Cache.Set(ctx, key, data, s.TTL)
		observability.Cache().OnCacheSet(ctx, "reorder", len(data))
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": crosserrors.UserMessage(err)})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
