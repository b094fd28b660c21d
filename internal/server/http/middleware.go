package http

import (
	"net"
	"net/http"
)

// securityHeaders stamps the fixed hardening headers on every response,
// regardless of route or outcome.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		next.ServeHTTP(w, r)
	})
}

// rateLimit rejects over-limit clients before the request body is even
// decoded. Limiter backend errors fail open with a warning so that a
// broken counter never turns into an outage.
func (s *Server) rateLimit(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.limiter.Allow(r.Context(), clientKey(r), route)
		if err != nil {
			s.logger.Warn(r.Context(), "rate limiter error", "route", route, "error", err.Error())
		} else if !ok {
			writeJSON(w, http.StatusTooManyRequests, messageBody("Rate limit exceeded. Try again later."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the client for rate limiting: the remote host
// without the port. Proxy-header trust is left to the terminating layer.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
