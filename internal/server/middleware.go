package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
)

// Request headers carrying caller credentials checked by [Authenticate].
const (
	HeaderName  = "name"
	HeaderToken = "token"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs method, path, status and duration of every request.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// RateLimit rejects requests beyond rps requests per second with a 429.
func RateLimit(rps float64, burst int) Middleware {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
					Timestamp: time.Now().UTC(),
					Status:    http.StatusTooManyRequests,
					Error:     http.StatusText(http.StatusTooManyRequests),
					Message:   "Rate limit exceeded",
					Path:      r.URL.Path,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate validates the name and token headers of every request with auth.
func Authenticate(auth services.Authenticator, logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, token := r.Header.Get(HeaderName), r.Header.Get(HeaderToken)
			if name == "" || token == "" {
				writeError(w, r, fmt.Errorf("%w: name and token headers are required", shared.ErrMissingCredentials))
				return
			}

			if err := auth.Validate(r.Context(), name, token); err != nil {
				logger.Warn("token rejected", "name", name, "error", err)
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
