package http

import (
	"bytes"
	"errors"
	"net/http"
	"sync/atomic"

	"fishlog/internal/core"
	applog "fishlog/internal/log"
)

type noticeKind string

const (
	noticeSuccess noticeKind = "success"
	noticeWarning noticeKind = "warning"
)

type notice struct {
	Kind    noticeKind
	Message string
}

// page is embedded by every template's data.
type page struct {
	Title  string
	Active string
	Notice *notice
}

// renderHTML executes a template into a string so failures never leave a
// half-written response.
func (s *Server) renderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pageResponse renders a full page, or a 500 response when rendering fails.
func (s *Server) pageResponse(r *http.Request, status int, name string, data any) *HTMXResponseBuilder {
	html, err := s.renderHTML(name, data)
	if err != nil {
		s.log.LogError(r.Context(), "Template execution failed", err, applog.OpRender, applog.ErrorTypeInternal)
		return InternalServerError("Something went wrong rendering this page")
	}
	return NewHTMXResponse().Status(status).BodyHTML(html)
}

// storeErrorResponse maps a store failure to 503 or 500 and logs it.
func (s *Server) storeErrorResponse(r *http.Request, op string, err error) *HTMXResponseBuilder {
	atomic.AddInt64(&s.metrics.storeErrors, 1)
	if errors.Is(err, core.ErrStoreUnavailable) {
		s.log.LogError(r.Context(), "Catch store unavailable", err, op, applog.ErrorTypeUnavailable)
		return ServiceUnavailableError("The catch log is temporarily unavailable. Please try again shortly.")
	}
	s.log.LogError(r.Context(), "Catch store error", err, op, applog.ErrorTypeInternal)
	return InternalServerError("Unexpected error while reading the catch log")
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
