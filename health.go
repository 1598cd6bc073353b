package kvring

import (
	"context"
	"encoding/json"
	"net/http"
)

// healthServer exposes /healthz and /readyz over HTTP (SPEC_FULL.md's
// supplemented health-check feature, carried over from the original
// system's aiohttp health endpoints). /healthz reports process liveness
// unconditionally; /readyz reports whether the node is ready to serve —
// currently identical, since a Node has no startup phase that outlives
// NewNode returning.
type healthServer struct {
	addr   string
	store  *store
	server *http.Server
}

func newHealthServer(addr string, st *store) *healthServer {
	h := &healthServer{addr: addr, store: st}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealthz)
	mux.HandleFunc("/readyz", h.handleReadyz)
	h.server = &http.Server{Addr: addr, Handler: mux}

	return h
}

func (h *healthServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, "ok", h.store.Len())
}

func (h *healthServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, "ready", h.store.Len())
}

func writeStatus(w http.ResponseWriter, status string, keyCount int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"key_count": keyCount,
	})
}

// Start begins serving. It blocks until the server is closed, matching
// net/http.Server.ListenAndServe's contract.
func (h *healthServer) Start() error {
	err := h.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the health server down.
func (h *healthServer) Stop(ctx context.Context) {
	h.server.Shutdown(ctx)
}
