// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// operatorKey is the context key for storing the authenticated operator email.
const operatorKey ContextKey = "operator"

// TokenValidator is an interface for validating JWT bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (SubjectGetter, error)
}

// SubjectGetter is an interface for extracting the subject from token claims.
type SubjectGetter interface {
	GetSubject() string
}

// Auth creates middleware that validates bearer tokens and adds the
// operator identity to the request context.
func Auth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, claims.GetSubject())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperator extracts the authenticated operator email from the request context.
func GetOperator(r *http.Request) (string, error) {
	email, ok := r.Context().Value(operatorKey).(string)
	if !ok || email == "" {
		return "", fmt.Errorf("operator not found in request context")
	}
	return email, nil
}
