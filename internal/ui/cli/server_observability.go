package cli

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"layoutlint/internal/core/app"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ObservabilityServer exposes /metrics and /health while watch mode runs.
type ObservabilityServer struct {
	addr          string
	healthService *app.HealthService
	server        *http.Server
}

func NewObservabilityServer(addr string, healthService *app.HealthService) *ObservabilityServer {
	return &ObservabilityServer{
		addr:          addr,
		healthService: healthService,
	}
}

// Start binds the listener synchronously so a bad address fails fast, then
// serves in the background.
func (s *ObservabilityServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.handleHealth)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("observability server starting", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("observability server failed", "error", err)
		}
	}()
	return nil
}

func (s *ObservabilityServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.healthService.Check(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if status.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		slog.Debug("failed to write health response", "error", err)
	}
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
