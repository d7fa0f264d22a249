package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/skyps2003/Freelancer/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth validates the bearer token and stashes its claims in the request
// context. Requests without a valid token get a 401.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "No token, authorization denied", http.StatusUnauthorized)
				return
			}
			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				http.Error(w, "Token is not valid", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header, falling
// back to the x-auth-token header and the token query parameter (the latter
// is what the websocket upgrade uses).
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if h := r.Header.Get("x-auth-token"); h != "" {
		return h
	}
	return r.URL.Query().Get("token")
}

// UserClaims returns the claims placed by Auth, or nil outside it.
func UserClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}

// UserID is a shorthand for the authenticated caller's ID.
func UserID(r *http.Request) string {
	if c := UserClaims(r); c != nil {
		return c.UserID
	}
	return ""
}
