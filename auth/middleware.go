package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// RequireToken wraps an HTTP handler with bearer token validation.
//
// Requests without a valid token receive a 401 JSON response. On
// success the validated claims are attached to the request context and
// can be read with ClaimsFromContext.
func RequireToken(manager *TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := manager.Validate(bearerToken(r))
		if err != nil {
			writeUnauthorized(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	msg := "invalid token"
	switch {
	case errors.Is(err, ErrMissingToken):
		msg = "missing token"
	case errors.Is(err, ErrTokenExpired):
		msg = "token expired"
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
