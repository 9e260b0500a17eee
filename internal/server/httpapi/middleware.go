package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

// TokenVerifier checks a bearer token of the given kind and returns its
// subject.
type TokenVerifier interface {
	Verify(token string, kind auth.TokenKind) (string, error)
}

// requireToken rejects requests without a valid bearer token of kind with
// 401 before any handler runs.
func requireToken(v TokenVerifier, kind auth.TokenKind, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			token, ok := strings.CutPrefix(header, common.BearerPrefix)
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, r, log, common.ErrorUnauthorized)
				return
			}

			subject, err := v.Verify(strings.TrimSpace(token), kind)
			if err != nil {
				writeError(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSubject(r.Context(), subject, strings.TrimSpace(token))))
		})
	}
}

// requestLogger logs every request once it completes and tags the
// request context with its id for downstream log entries.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			if id := middleware.GetReqID(r.Context()); id != "" {
				r = r.WithContext(logging.ContextWith(r.Context(), "request_id", id))
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := statusOf(ww)
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}

			switch {
			case status >= 500:
				log.Error(r.Context(), "HTTP request", args...)
			case status >= 400:
				log.Warn(r.Context(), "HTTP request", args...)
			default:
				log.Info(r.Context(), "HTTP request", args...)
			}
		})
	}
}
