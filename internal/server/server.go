package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/friendgraph/pkg/buildinfo"
	"github.com/matzehuels/friendgraph/pkg/observability"
	"github.com/matzehuels/friendgraph/pkg/social"
)

// Config configures the HTTP wrapper.
type Config struct {
	Addr            string
	Timeout         time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the engine over HTTP.
type Server struct {
	svc      *social.Service
	cfg      Config
	logger   *log.Logger
	validate *validator.Validate
	registry *prometheus.Registry
	router   chi.Router
}

// New creates a server for svc. It registers the server's metrics as the
// process-wide observability hooks. A nil logger uses log.Default().
func New(svc *social.Service, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		svc:      svc,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
		registry: prometheus.NewRegistry(),
	}

	m := newMetrics(s.registry)
	observability.SetStoreHooks(m)
	observability.SetOperationHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))

		r.Post("/add_user", s.handleAddUser)
		r.Post("/remove_user", s.handleRemoveUser)
		r.Post("/add_friend", s.handleAddFriend)
		r.Post("/remove_friend", s.handleRemoveFriend)
		r.Post("/show_friends", s.handleShowFriends)
		r.Post("/find_path", s.handleFindPath)
		r.Post("/recommend", s.handleRecommend)
	})
	return r
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String(), "version", buildinfo.Version)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
