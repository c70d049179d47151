package auth

import (
	"crypto/subtle"
	"net/http"
)

// HeaderName carries the admin token on every admin request
const HeaderName = "X-Admin-Token"

// Gateway guards the admin surface with a single shared token. The secret is
// set once at construction and never changes.
type Gateway struct {
	secret string
}

// NewGateway creates a Gateway for secret. An empty secret denies every token.
func NewGateway(secret string) *Gateway {
	return &Gateway{secret: secret}
}

// Enabled reports whether a secret is configured
func (g *Gateway) Enabled() bool {
	return g.secret != ""
}

// Verify checks a token against the secret
func (g *Gateway) Verify(token string) bool {
	if g.secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) == 1
}

// TokenFromRequest extracts the admin token from a request
func TokenFromRequest(r *http.Request) string {
	return r.Header.Get(HeaderName)
}

// RequireToken middleware for admin endpoints (returns 401)
func (g *Gateway) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Verify(TokenFromRequest(r)) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized"}`))
	})
}
