package auth

import (
	"net/http"
	"strings"
)

// Gate redirects browser page requests based on authentication state
// before any page handler runs. It only inspects the token cookie: page
// navigations never carry an Authorization header, and the gate must not
// touch persistence beyond token verification.
type Gate struct {
	tokens *TokenManager

	// Path prefixes that require a valid token cookie.
	protectedPrefixes []string
	// Exact paths authenticated users are bounced away from.
	authPaths []string

	loginPath     string
	dashboardPath string
}

// NewGate constructs the access gate with the journal's path sets.
func NewGate(tokens *TokenManager) *Gate {
	return &Gate{
		tokens:            tokens,
		protectedPrefixes: []string{"/dashboard", "/entries"},
		authPaths:         []string{"/login", "/signup"},
		loginPath:         "/login",
		dashboardPath:     "/dashboard",
	}
}

// Middleware applies the gate. Protected paths without a valid token
// cookie redirect to the login page; auth pages with a valid token
// redirect to the dashboard; everything else passes through unmodified.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if g.isProtected(path) && !g.hasValidCookie(r) {
			http.Redirect(w, r, g.loginPath, http.StatusSeeOther)
			return
		}

		if g.isAuthPage(path) && g.hasValidCookie(r) {
			http.Redirect(w, r, g.dashboardPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gate) isProtected(path string) bool {
	for _, prefix := range g.protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func (g *Gate) isAuthPage(path string) bool {
	for _, p := range g.authPaths {
		if path == p {
			return true
		}
	}
	return false
}

func (g *Gate) hasValidCookie(r *http.Request) bool {
	token := cookieToken(r)
	if token == "" {
		return false
	}
	_, err := g.tokens.Verify(token)
	return err == nil
}
