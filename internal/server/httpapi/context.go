package httpapi

import (
	"context"
	"net/http"

	"github.com/bandroomhq/bandroom/internal/server/models"
)

type ctxKey string

const ctxKeySession ctxKey = "session"

// sessionHolder carries the request's session through the middleware
// chain. It also keeps the ResponseWriter so a mid-request token
// rotation can hand the replacement pair back to the client via
// response headers, which is only safe before the body is written.
type sessionHolder struct {
	session *models.Session
	w       http.ResponseWriter
}

func contextWithSession(ctx context.Context, h *sessionHolder) context.Context {
	return context.WithValue(ctx, ctxKeySession, h)
}

func holderFromContext(ctx context.Context) *sessionHolder {
	h, _ := ctx.Value(ctxKeySession).(*sessionHolder)
	return h
}

// SessionFromContext returns the authenticated session, or nil when the
// request did not pass the auth middleware.
func SessionFromContext(ctx context.Context) *models.Session {
	if h := holderFromContext(ctx); h != nil {
		return h.session
	}
	return nil
}
