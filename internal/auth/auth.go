package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier authenticates bearer tokens presented to the MCP endpoint.
// Two forms are accepted: the shared AUTH_TOKEN itself, or an HS256
// JWT signed with that token as the secret. The second form lets chat
// platforms mint short-lived tokens without sharing the raw secret.
type Verifier struct {
	token string
}

// NewVerifier creates a Verifier for the given shared token.
func NewVerifier(token string) *Verifier {
	return &Verifier{token: token}
}

// Verify checks a bearer token value (without the "Bearer " prefix).
func (v *Verifier) Verify(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty token")
	}

	// Exact match against the shared secret
	if raw == v.token {
		return nil
	}

	// Otherwise treat it as an HS256 JWT signed with the shared secret
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.token), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// Middleware wraps an http.Handler with bearer-token authentication.
// Failures get a 401 JSON body and the request never reaches next.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "missing bearer token")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if err := v.Verify(token); err != nil {
			unauthorized(w, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, message)
}
