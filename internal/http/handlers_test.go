package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fishlog/internal/services"
	"fishlog/internal/storage/memory"
)

func TestHealth(t *testing.T) {
	srv, _ := seededServer(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		svc        CatchService
		wantStatus int
		wantState  string
	}{
		{"store reachable", services.NewCatchService(memory.New(), nil), http.StatusOK, "ready"},
		{"store down", services.NewCatchService(unavailableStore{memory.New()}, nil), http.StatusServiceUnavailable, "not_ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.svc, 0)
			rec := do(srv, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantState {
				t.Errorf("status = %q, want %q", body.Status, tt.wantState)
			}
		})
	}
}

func TestMetrics_CountsCatches(t *testing.T) {
	srv, _ := seededServer(t)
	do(srv, postForm("/catches", validForm()))
	bad := validForm()
	bad.Del("species")
	do(srv, postForm("/catches", bad))
	do(srv, postForm("/catches/delete", map[string][]string{"id": {"1"}}))

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"fishlog_catches_created_total 1\n",
		"fishlog_catches_deleted_total 1\n",
		"fishlog_validation_failures_total 1\n",
		"fishlog_store_errors_total 0\n",
		"# TYPE fishlog_http_requests_total counter",
		"fishlog_rate_limit_hits_total 0\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
