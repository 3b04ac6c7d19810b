// Package identity maps an inbound request to the user who owns its session
// cookie. Resolution never fails loudly: any problem with the cookie, the
// token, the denylist or the user store yields an anonymous request.
package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"anitrack/pkg/session"
	"anitrack/pkg/token"
	"anitrack/pkg/user"
)

// Store is the part of the credential store the resolver needs.
type Store interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// Identity is an authenticated request principal.
type Identity struct {
	User      user.Public
	TokenID   string
	ExpiresAt time.Time
}

type Resolver struct {
	Cookies  *session.CookieManager
	Tokens   *token.Codec
	Store    Store
	Denylist session.Denylist
	Logger   *slog.Logger

	// Observe, if set, receives the outcome of every resolution: "ok",
	// "no_cookie", a token rejection reason, "revoked", "denylist_error" or
	// "unknown_user".
	Observe func(outcome string)
}

func NewResolver(cookies *session.CookieManager, tokens *token.Codec, store Store, denylist session.Denylist, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		Cookies:  cookies,
		Tokens:   tokens,
		Store:    store,
		Denylist: denylist,
		Logger:   logger,
	}
}

// Resolve returns the identity for a Cookie header, or false for an
// anonymous request.
func (r *Resolver) Resolve(ctx context.Context, cookieHeader string) (*Identity, bool) {
	raw, ok := r.Cookies.Token(cookieHeader)
	if !ok {
		r.observe("no_cookie")
		return nil, false
	}

	res := r.Tokens.Verify(raw)
	if !res.Valid() {
		r.Logger.DebugContext(ctx, "session rejected", "reason", res.Reason.String())
		r.observe(res.Reason.String())
		return nil, false
	}
	claims := res.Claims

	if r.Denylist != nil && claims.ID != "" {
		revoked, err := r.Denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			r.Logger.ErrorContext(ctx, "denylist lookup", "error", err)
			r.observe("denylist_error")
			return nil, false
		}
		if revoked {
			r.Logger.DebugContext(ctx, "session rejected", "reason", "revoked", "user", claims.UserID)
			r.observe("revoked")
			return nil, false
		}
	}

	u, err := r.Store.FindByID(ctx, claims.UserID)
	if err != nil || u == nil {
		r.Logger.DebugContext(ctx, "session rejected", "reason", "user lookup", "user", claims.UserID, "error", err)
		r.observe("unknown_user")
		return nil, false
	}

	r.observe("ok")

	return &Identity{
		User:      u.Public(),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}

// ResolveRequest resolves the identity of r using all of its Cookie headers.
func (r *Resolver) ResolveRequest(req *http.Request) (*Identity, bool) {
	return r.Resolve(req.Context(), strings.Join(req.Header.Values("Cookie"), "; "))
}

func (r *Resolver) observe(outcome string) {
	if r.Observe != nil {
		r.Observe(outcome)
	}
}
