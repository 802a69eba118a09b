package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escolabr/escolar/internal/app/routes"
	"github.com/escolabr/escolar/internal/bootstrap"
	"github.com/escolabr/escolar/internal/middleware"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// Server wraps the HTTP server and the wired application.
type Server struct {
	app  *bootstrap.App
	http *http.Server
}

// New builds the gin engine and the HTTP server around the application.
func New(app *bootstrap.App) *Server {
	if app.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	routes.SetupRoutes(router, app.Controllers, app.JWTService)

	return &Server{
		app: app,
		http: &http.Server{
			Addr:         ":" + app.Config.Server.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run starts the server and blocks until a shutdown signal arrives, then
// drains in-flight requests.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}

	s.app.Close()
	logger.Info().Msg("Server stopped")
	return nil
}
