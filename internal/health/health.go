package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Check reports whether a dependency is reachable.
type Check struct {
	Name string
	// Required dependencies make the service unhealthy when down; optional
	// ones only degrade it.
	Required bool
	Probe    func(ctx context.Context) error
}

type HealthResponse struct {
	Status        string            `json:"status"`
	Service       string            `json:"service"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Timestamp     int64             `json:"timestamp"`
	Dependencies  map[string]string `json:"dependencies,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
	Stats         interface{}       `json:"stats,omitempty"`
}

// StatsFunc returns running totals to show on /health.
type StatsFunc func(ctx context.Context) (interface{}, error)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthServer answers HTTP health checks and keeps the gRPC health service
// in step with them.
type HealthServer struct {
	service string
	checks  []Check
	started time.Time
	grpc    *health.Server
	stats   StatsFunc

	mu     sync.Mutex
	server *http.Server
}

func NewHealthServer(service string, checks ...Check) *HealthServer {
	sort.SliceStable(checks, func(i, j int) bool { return checks[i].Name < checks[j].Name })
	return &HealthServer{
		service: service,
		checks:  checks,
		started: time.Now(),
		grpc:    health.NewServer(),
	}
}

// SetStats adds fn's result to every /health response. A failing fn leaves
// stats out without changing the status.
func (h *HealthServer) SetStats(fn StatsFunc) {
	h.stats = fn
}

// GRPC returns the gRPC health service to register on a grpc.Server.
func (h *HealthServer) GRPC() *health.Server {
	return h.grpc
}

// Evaluate runs every check once.
func (h *HealthServer) Evaluate(ctx context.Context) HealthResponse {
	resp := HealthResponse{
		Status:        StatusHealthy,
		Service:       h.service,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Timestamp:     time.Now().Unix(),
		Dependencies:  make(map[string]string, len(h.checks)),
	}

	for _, c := range h.checks {
		if err := c.Probe(ctx); err != nil {
			resp.Dependencies[c.Name] = "disconnected"
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[c.Name] = err.Error()
			if c.Required {
				resp.Status = StatusUnhealthy
			} else if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
			continue
		}
		resp.Dependencies[c.Name] = "connected"
	}

	return resp
}

// Refresh evaluates the checks and publishes the result to gRPC health
// clients.
func (h *HealthServer) Refresh(ctx context.Context) HealthResponse {
	resp := h.Evaluate(ctx)
	status := healthpb.HealthCheckResponse_SERVING
	if resp.Status == StatusUnhealthy {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.grpc.SetServingStatus("", status)
	h.grpc.SetServingStatus(h.service, status)
	return resp
}

// Watch refreshes the gRPC status every interval until ctx ends.
func (h *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	h.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.grpc.Shutdown()
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.healthCheckHandler)
	return mux
}

func (h *HealthServer) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	h.mu.Lock()
	h.server = srv
	h.mu.Unlock()

	return srv.ListenAndServe()
}

func (h *HealthServer) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	srv := h.server
	h.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (h *HealthServer) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := h.Evaluate(ctx)
	if h.stats != nil {
		if stats, err := h.stats(ctx); err == nil {
			resp.Stats = stats
		}
	}

	code := http.StatusOK
	if resp.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
