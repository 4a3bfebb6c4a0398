package server

import (
	"context"
	"errors"
	"fmt"
	"image-resizer/internal/auth"
	"image-resizer/internal/banner"
	"image-resizer/internal/config"
	"image-resizer/internal/data"
	"image-resizer/internal/middlewares"
	"image-resizer/internal/twitter"
	"image-resizer/internal/version"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	stateCache  data.StateCache
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	instanceID := os.Getenv("HOSTNAME")
	if instanceID == "" {
		instanceID = uuid.New().String()
	}

	logger := setupLogger(cfg).With("instance", instanceID)

	ctx, cancel := context.WithCancel(context.Background())

	stateCache, err := data.NewStateCache(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize oauth state cache", "error", err)
		cancel()
		return nil, err
	}

	oauthProvider := auth.NewTwitterOAuthProvider(cfg.Twitter)
	twitterClient := twitter.NewClient(cfg.Twitter, logger)
	resizer := banner.NewResizer()

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, oauthProvider, twitterClient, stateCache, resizer, instanceID)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           setupRouter(appCtx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var debugServer *http.Server
	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		debugServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler:           setupDebugRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		appCtx:      appCtx,
		httpServer:  httpServer,
		debugServer: debugServer,
		stateCache:  stateCache,
		cancel:      cancel,
	}, nil
}

// Start serves until SIGINT/SIGTERM or until a listener fails, then shuts
// both servers down gracefully.
func (s *Server) Start() error {
	go func() {
		s.logger.Info("Server Started",
			"port", s.cfg.Server.Port,
			"version", version.String(),
			"environment", s.cfg.Server.Environment,
			"state_cache", s.cfg.Cache.Type)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	return s.Shutdown()
}

func (s *Server) Shutdown() error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	defer s.cancel()

	s.logger.Info("Shutting Down Server")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	if err := s.stateCache.Close(); err != nil {
		s.logger.Warn("failed to close oauth state cache", "error", err)
	}

	s.logger.Info("Server Exited")
	return nil
}
