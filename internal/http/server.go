package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"fishlog/internal/core"
	applog "fishlog/internal/log"
	"fishlog/internal/middleware/ratelimit"
	"fishlog/internal/middleware/security"
	"fishlog/internal/middleware/trace"
	appweb "fishlog/web"
)

// CatchService is what the handlers need from the catch log.
type CatchService interface {
	CreateCatch(ctx context.Context, c core.NewCatch) (int64, error)
	DeleteCatch(ctx context.Context, id int64) error
	ListCatches(ctx context.Context) ([]core.CatchRecord, error)
	Overview(ctx context.Context) ([]core.CatchRecord, core.CatchOverview, error)
	Leaderboard(ctx context.Context) ([]core.CategoryCount, error)
	Ping(ctx context.Context) error
}

type Options struct {
	Addr               string
	RateLimitPerMinute int
	Logger             *applog.Logger

	// TrustedProxies are CIDRs added to the default private ranges.
	TrustedProxies []string
}

type Server struct {
	http.Server
	templates *template.Template
	catches   CatchService

	logger  *applog.Logger
	log     *applog.StructuredLogger
	limiter *ratelimit.Limiter
	tracer  *trace.Middleware
	metrics appMetrics

	shutdownOnce sync.Once
}

type appMetrics struct {
	started            time.Time
	catchesCreated     int64
	catchesDeleted     int64
	validationFailures int64
	storeErrors        int64
}

// NewServer parses the embedded templates and wires routes and middleware.
func NewServer(opts Options, catches CatchService) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.Config{Component: applog.ComponentHTTP})
	}

	templates, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	ipx := security.NewIPExtractor()
	for _, cidr := range opts.TrustedProxies {
		if err := ipx.AddTrustedProxy(cidr); err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
	}
	s := &Server{
		templates: templates,
		catches:   catches,
		logger:    logger,
		log:       applog.NewStructuredLogger(logger),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		tracer:    trace.NewMiddleware(logger, ipx.ClientIP),
		metrics:   appMetrics{started: time.Now()},
	}

	mux := http.NewServeMux()
	if err := s.routes(mux); err != nil {
		s.limiter.Stop()
		return nil, err
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	var handler http.Handler = mux
	handler = s.limiter.Middleware(ipx.ClientIP)(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) error {
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("mount static assets: %w", err)
	}
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /catches", s.handleCreateCatch)
	mux.HandleFunc("POST /catches/delete", s.handleDeleteCatch)
	mux.HandleFunc("DELETE /catches/delete", s.handleDeleteCatch)
	mux.HandleFunc("GET /database", s.handleDatabase)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /about", s.handleStaticPage("about.html", "About"))
	mux.HandleFunc("GET /contact", s.handleStaticPage("contact.html", "Contact"))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	return nil
}

// Shutdown stops background work and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
