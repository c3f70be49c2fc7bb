package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clip-summarize/internal/infra/summarizer"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// SummarizerHealthResponse reports the circuit breaker of the active provider.
type SummarizerHealthResponse struct {
	Healthy bool                      `json:"healthy"`
	Breaker *summarizer.BreakerStatus `json:"breaker,omitempty"`
}

// breakerStatusSource is implemented by *summarizer.Factory.
type breakerStatusSource interface {
	Status() (summarizer.BreakerStatus, bool)
}

// newMetricsServer builds the watch-mode HTTP server.
//
// The server exposes the following endpoints:
//   - GET /metrics - Prometheus metrics endpoint
//   - GET /health - Simple liveness probe (always returns 200 OK)
//   - GET /health/summarizer - 503 while the provider circuit breaker is open
func newMetricsServer(port int, breakers breakerStatusSource) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/summarizer", summarizerHealthHandler(breakers))

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// serveMetrics runs server until ctx is done, then shuts it down within 5 seconds.
func serveMetrics(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("metrics server shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", slog.Any("error", err))
		return err
	}
	logger.Info("metrics server stopped")
	return <-errCh
}

// healthHandler handles GET /health requests (liveness probe).
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

// summarizerHealthHandler handles GET /health/summarizer (readiness probe).
func summarizerHealthHandler(breakers breakerStatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := SummarizerHealthResponse{Healthy: true}
		if status, ok := breakers.Status(); ok {
			resp.Breaker = &status
			resp.Healthy = !status.Open
		}

		statusCode := http.StatusOK
		if !resp.Healthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
