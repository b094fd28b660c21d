// Package http is the request-handling layer of the auth server: route
// registration, the middleware chain, and response shaping.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/psidorov/interviewhub/internal/logging"
	"github.com/psidorov/interviewhub/internal/server/ratelimit"
	"github.com/psidorov/interviewhub/internal/server/services"
)

type Server struct {
	address string
	auth    *services.AuthService
	limiter *ratelimit.Limiter
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, as *services.AuthService, rl *ratelimit.Limiter) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    as,
		limiter: rl,
	}
}

// Handler builds the full middleware/handler chain. Security headers wrap
// everything so that even 404s and rate-limit rejections carry them.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/signup", s.rateLimit(ratelimit.RouteSignup, http.HandlerFunc(s.handleSignup)))
	mux.Handle("POST /api/signin", s.rateLimit(ratelimit.RouteSignin, http.HandlerFunc(s.handleSignin)))
	mux.Handle("GET /api/auth/profile", s.rateLimit("profile", http.HandlerFunc(s.handleProfile)))

	return securityHeaders(mux)
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
