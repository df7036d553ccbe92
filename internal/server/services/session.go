package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/logging"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

// refreshWindow is how close to expiry a session may get before the
// guard refreshes it. A token that would outlive the window is used
// as-is; anything closer is rotated so a batch issued under it cannot
// fail auth halfway through.
const refreshWindow = 60 * time.Second

// SessionProvider supplies the caller's current session and can rotate
// it. The provider is the owner of session state; the guard only reads
// and triggers refreshes.
type SessionProvider interface {
	// Current returns the caller's session, or nil when there is none.
	Current(ctx context.Context) (*models.Session, error)

	// Refresh rotates the session and returns its replacement.
	Refresh(ctx context.Context, session *models.Session) (*models.Session, error)
}

// Guard is the session-liveness check run before any token issuance.
type Guard interface {
	EnsureValidSession(ctx context.Context) (*models.Session, error)
}

// SessionGuard ensures the caller holds a live, non-expiring-soon session.
// It is called unconditionally before issuance and never caches: a
// session can expire, and the active band can change, between two calls.
type SessionGuard struct {
	provider SessionProvider
	logger   logging.Logger
}

// NewSessionGuard constructs a SessionGuard over the given provider.
func NewSessionGuard(provider SessionProvider, logger logging.Logger) *SessionGuard {
	return &SessionGuard{
		provider: provider,
		logger:   logger.With("module", "session_guard"),
	}
}

// EnsureValidSession returns a session safe to issue tokens under.
//
// When the session is within refreshWindow of expiry it attempts a
// refresh. A failed refresh falls back to the existing session rather
// than failing outright: it may still be valid for the immediate call,
// and a stale link beats a broken page.
func (g *SessionGuard) EnsureValidSession(ctx context.Context) (*models.Session, error) {
	session, err := g.provider.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNoSession, err)
	}
	if session == nil {
		return nil, common.ErrNoSession
	}

	if time.Until(session.ExpiresAt) >= refreshWindow {
		return session, nil
	}

	refreshed, err := g.provider.Refresh(ctx, session)
	if err != nil {
		g.logger.Warn(ctx, "session refresh failed, using existing session", "error", err)
		return session, nil
	}
	return refreshed, nil
}
