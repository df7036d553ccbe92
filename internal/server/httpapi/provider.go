package httpapi

import (
	"context"
	"errors"

	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/services"
)

// Response headers carrying a mid-request token rotation back to the
// client. Present only when the session guard rotated the pair.
const (
	newAccessTokenHeader  = "X-New-Access-Token"
	newRefreshTokenHeader = "X-New-Refresh-Token"
)

var errNoRefreshToken = errors.New("request carries no refresh token")

// RequestSessionProvider adapts the per-request session placed in the
// context by AuthnMiddleware to the services.SessionProvider contract.
// Refreshing rotates the member's token pair and surfaces the new pair
// in response headers, since the old refresh token dies on rotation.
type RequestSessionProvider struct {
	members *services.MemberService
}

// NewRequestSessionProvider constructs a RequestSessionProvider.
func NewRequestSessionProvider(members *services.MemberService) *RequestSessionProvider {
	return &RequestSessionProvider{members: members}
}

// Current returns the session materialized from the bearer token, or
// nil for unauthenticated requests.
func (p *RequestSessionProvider) Current(ctx context.Context) (*models.Session, error) {
	return SessionFromContext(ctx), nil
}

// Refresh rotates the session's token pair. It fails when the request
// carried no refresh token; the guard then falls back to the session
// it already has.
func (p *RequestSessionProvider) Refresh(ctx context.Context, session *models.Session) (*models.Session, error) {
	if session.RefreshToken == "" {
		return nil, errNoRefreshToken
	}

	pair, err := p.members.RefreshSession(ctx, session.RefreshToken, session.BandID)
	if err != nil {
		return nil, err
	}

	refreshed := &models.Session{
		UserID:       session.UserID,
		BandID:       session.BandID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}

	if h := holderFromContext(ctx); h != nil {
		h.session = refreshed
		// Headers land before the handler writes the body, so this is
		// still safe to set here.
		h.w.Header().Set(newAccessTokenHeader, pair.AccessToken)
		h.w.Header().Set(newRefreshTokenHeader, pair.RefreshToken)
	}
	return refreshed, nil
}
