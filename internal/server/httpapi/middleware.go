package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/bandroomhq/bandroom/internal/logging"
	"github.com/bandroomhq/bandroom/internal/server/auth"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

// Middleware wraps a handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h, first middleware outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// refreshTokenHeader optionally carries the client's refresh token so a
// nearly-expired session can be rotated mid-request instead of failing
// the batch it was about to authorize.
const refreshTokenHeader = "X-Refresh-Token"

// AuthnMiddleware verifies the bearer token and materializes the
// caller's session into the request context. The session is built fresh
// from the token on every request; nothing is cached across requests.
func AuthnMiddleware(secretKey []byte) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := auth.ParseToken(raw, secretKey)
			if err != nil {
				writeBearerError(w, "token verification failed")
				return
			}

			var expiresAt time.Time
			if claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}

			holder := &sessionHolder{
				session: &models.Session{
					UserID:       claims.UserID,
					BandID:       claims.BandID,
					AccessToken:  raw,
					RefreshToken: r.Header.Get(refreshTokenHeader),
					ExpiresAt:    expiresAt,
				},
				w: w,
			}

			next.ServeHTTP(w, r.WithContext(contextWithSession(r.Context(), holder)))
		})
	}
}

// writeBearerError writes an RFC 6750 bearer auth failure.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info(r.Context(), "request",
				"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}
