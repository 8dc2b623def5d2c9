package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/apperr"
)

// Tier is the capability a route demands of its caller.
type Tier int

const (
	Public Tier = iota
	Authenticated
	Admin
)

func (t Tier) String() string {
	switch t {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// TokenVerifier is satisfied by *auth.Issuer.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

const (
	msgNoToken     = "Not authorized, no token"
	msgTokenFailed = "Not authorized, token failed"
	msgNotAdmin    = "Not authorized as an admin"
)

type userKey struct{}

func withUser(ctx context.Context, u accounts.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// currentUser is only meaningful behind an Authenticated or Admin guard.
func currentUser(ctx context.Context) accounts.User {
	u, _ := ctx.Value(userKey{}).(accounts.User)
	return u
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

// guard resolves the bearer token to a stored user and enforces tier. A token
// whose user no longer exists fails the same way as a forged one.
func (a *API) guard(tier Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tier == Public {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := bearer(r)
			if !ok {
				a.fail(w, r, apperr.Unauthorized(msgNoToken))
				return
			}
			id, err := a.Tokens.Verify(tok)
			if err != nil {
				a.fail(w, r, apperr.Unauthorized(msgTokenFailed))
				return
			}
			u, err := a.Accounts.Get(r.Context(), id)
			if apperr.Is(err, apperr.KindNotFound) {
				a.fail(w, r, apperr.Unauthorized(msgTokenFailed))
				return
			}
			if err != nil {
				a.fail(w, r, err)
				return
			}
			if tier == Admin && !u.IsAdmin {
				a.fail(w, r, apperr.Forbidden(msgNotAdmin))
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
		})
	}
}
