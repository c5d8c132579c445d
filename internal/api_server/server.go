// Package apiserver wires the HTTP surface: routing, middleware, the
// metrics endpoint and graceful shutdown.
package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/checkpoint"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/config"
	handlers "github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/handlers/v1alpha1"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/llm"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/internal/service"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/metrics"
	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	gateway  llm.Gateway
	store    *checkpoint.Store
	listener net.Listener
}

// New returns a new instance of the analyzer API server.
func New(
	cfg *config.Config,
	gateway llm.Gateway,
	store *checkpoint.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		gateway:  gateway,
		store:    store,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	resumeService := service.NewResumeService(s.gateway, s.store)
	handlers.NewResumeHandler(resumeService).RegisterRoutes(router)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
