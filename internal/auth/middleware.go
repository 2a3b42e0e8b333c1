package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/wellpulse/wellpulse/internal/platform/httpx"
)

// TokenCookie is the cookie the browser client stores its token in.
const TokenCookie = "token"

// Resolver is the single authentication-resolution capability: every
// place that needs the current user (API middleware, access gate) goes
// through it, so token handling cannot drift between call sites.
type Resolver struct {
	service *Service
}

// NewResolver constructs a Resolver.
func NewResolver(service *Service) *Resolver {
	return &Resolver{service: service}
}

// CurrentUser resolves the authenticated user from the request. The
// Authorization header takes precedence over the token cookie when both
// are present. A missing or invalid token, or a token for a deleted
// account, resolves to nil without error.
func (res *Resolver) CurrentUser(ctx context.Context, r *http.Request) *User {
	token := bearerToken(r)
	if token == "" {
		token = cookieToken(r)
	}
	if token == "" {
		return nil
	}

	userID, err := res.service.tokens.Verify(token)
	if err != nil {
		return nil
	}
	user, err := res.service.UserByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}

// RequireUser rejects unauthenticated requests with 401 and stores the
// resolved user in the request context for downstream handlers.
func (res *Resolver) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := res.CurrentUser(r.Context(), r)
		if user == nil {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
