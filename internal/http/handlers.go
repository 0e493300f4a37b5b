package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

func (s *Server) handleStaticPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := page{Title: title, Active: name}
		s.pageResponse(r, http.StatusOK, name, data).Write(w)
	}
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.metrics.started).Round(time.Second).String(),
	})
}

// handleReady reports 503 until the catch store answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := map[string]string{"templates": "ok", "store": "ok"}

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	if err := s.catches.Ping(ctx); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	tm := s.tracer.Metrics()
	rl := s.limiter.Metrics()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n", name, help, name, kind, name, value)
	}
	metric("fishlog_uptime_seconds", "gauge", "Seconds since the server started.", int64(time.Since(s.metrics.started).Seconds()))
	metric("fishlog_http_requests_total", "counter", "HTTP requests served.", tm.TotalRequests)
	metric("fishlog_http_server_errors_total", "counter", "HTTP responses with a 5xx status.", tm.ServerErrors)
	metric("fishlog_http_request_duration_ms_total", "counter", "Cumulative request handling time.", tm.TotalDurationMs)
	metric("fishlog_catches_created_total", "counter", "Catches recorded.", atomic.LoadInt64(&s.metrics.catchesCreated))
	metric("fishlog_catches_deleted_total", "counter", "Catches deleted.", atomic.LoadInt64(&s.metrics.catchesDeleted))
	metric("fishlog_validation_failures_total", "counter", "Rejected catch submissions.", atomic.LoadInt64(&s.metrics.validationFailures))
	metric("fishlog_store_errors_total", "counter", "Catch store failures seen by handlers.", atomic.LoadInt64(&s.metrics.storeErrors))
	metric("fishlog_rate_limit_hits_total", "counter", "Requests rejected by the rate limiter.", rl.TotalHits)
	metric("fishlog_rate_limit_clients", "gauge", "Clients tracked by the rate limiter.", rl.ClientCount)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
