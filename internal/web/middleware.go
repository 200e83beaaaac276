package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrills/internal/logging"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const learnerContextKey contextKey = "learner"

const learnerValue = "learner_id"

func learnerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(learnerContextKey).(string)
	return id
}

// learnerMiddleware makes sure every request carries a learner id, issuing
// a signed cookie on first visit.
func (s *Server) learnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		// Get returns a fresh session when the cookie fails to decode.
		sess, err := s.cookies.Get(r, s.cookie)
		if err != nil {
			log.Debug("discarding unreadable learner cookie", "error", err)
		}
		id, _ := sess.Values[learnerValue].(string)
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			sess.Values[learnerValue] = id
			if err := sess.Save(r, w); err != nil {
				log.Error("failed to save learner cookie", "error", err)
				s.renderError(w, r, http.StatusInternalServerError, "Could not start a session.")
				return
			}
			log.Info("new learner", "learner", id)
		}

		ctx := context.WithValue(r.Context(), learnerContextKey, id)
		ctx = logging.NewContext(ctx, log.With("learner", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs requests with timing, status and a request id.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := s.logger.With(
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
		)
		r = r.WithContext(logging.NewContext(r.Context(), log))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		attrs := []any{
			"status", wrapped.status,
			"size", wrapped.size,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case wrapped.status >= 500:
			log.Error("request completed with server error", attrs...)
		case wrapped.status >= 400:
			log.Warn("request completed with client error", attrs...)
		default:
			log.Info("request completed", attrs...)
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(r.Context()).Error("panic recovered", "panic", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
