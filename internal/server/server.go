package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"go.uber.org/zap"
)

type WebAPI struct {
	router *chi.Mux
	logger *zap.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Engine  *calculation.CalculationEngine
	Presets *presets.Registry
	Policy  domain.ReviewCostPolicy
}

type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxBodyBytes    int64
	Build           BuildInfo
	Dependencies    Dependencies
}

func NewWebAPI(logger *zap.Logger, config Config) *WebAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := NewHandler(config.Dependencies, config.Build)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(Logger(logger))
	router.Use(middleware.Recoverer)
	if config.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSize(config.MaxBodyBytes))
	}

	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", h.Health)
		r.Get("/version", h.Version)
		r.Get("/presets", h.ListPresets)
		r.Get("/presets/{name}", h.GetPreset)
		r.Post("/evaluate", h.Evaluate)
		r.Post("/sensitivity", h.Sensitivity)
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler exposes the router, mainly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info("starting server", zap.String("addr", w.server.Addr))
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		w.logger.Info("shutdown initiated", zap.String("signal", sig.String()))
	case <-ctx.Done():
		w.logger.Info("shutdown initiated", zap.Error(ctx.Err()))
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	if err := w.server.Shutdown(shutdownCtx); err != nil {
		w.logger.Error("graceful shutdown failed", zap.Error(err))
		return w.server.Close()
	}
	return nil
}
