package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const checkTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to a health check.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports on the database and any optional dependencies.
// Only the database decides readiness; a broken relay degrades fan-out to
// this instance but must not take it out of rotation.
type HealthHandler struct {
	db      pinger
	extra   map[string]pinger
	version string
	now     func() time.Time
}

func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, extra: map[string]pinger{}, now: time.Now}
}

// WithComponent adds a named dependency to /health.
func (h *HealthHandler) WithComponent(name string, p pinger) *HealthHandler {
	h.extra[name] = p
	return h
}

// HealthResponse is the body of /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers as long as the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Timestamp: h.now()}
	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// Health pings every component in parallel and reports each one with its
// latency. Any failing component turns the overall status down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	targets := make(map[string]pinger, len(h.extra)+1)
	for name, p := range h.extra {
		targets[name] = p
	}
	targets["database"] = h.db

	var (
		mu         sync.Mutex
		components = make(map[string]CompStatus, len(targets))
	)
	var g errgroup.Group
	for name, p := range targets {
		g.Go(func() error {
			cs := checkComponent(ctx, p)
			mu.Lock()
			components[name] = cs
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	}
	status := http.StatusOK
	for _, cs := range components {
		if cs.Status != "ok" {
			resp.Status = "down"
			status = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, status, resp)
}

func checkComponent(ctx context.Context, p pinger) CompStatus {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Error: err.Error()}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
