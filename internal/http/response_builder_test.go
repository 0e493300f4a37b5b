package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTMXResponseBuilder_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().
		Status(http.StatusCreated).
		TriggerCatchCreated(9).
		TriggerFormReset().
		Header("X-Test", "yes").
		BodyHTML("<p>ok</p>").
		Write(rec)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Test") != "yes" {
		t.Error("custom header not set")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var triggers map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger: %v", err)
	}
	if len(triggers) != 2 {
		t.Errorf("triggers = %v", triggers)
	}
	if rec.Body.String() != "<p>ok</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHTMXResponseBuilder_NoTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().Write(rec)
	if rec.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger set without triggers")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestErrorResponse_EscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	ServiceUnavailableError(`<script>alert("x")</script>`).Write(rec)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "30" {
		t.Error("missing Retry-After")
	}
	want := `<div class="notice error">&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</div>`
	if rec.Body.String() != want {
		t.Errorf("body = %q", rec.Body.String())
	}
}
