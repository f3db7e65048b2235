package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
)

type contextKey string

const (
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// AdminMiddleware validates the bearer token and requires the admin role
func (s *TokenService) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn(r.Context()).Msg("Missing authorization header")
			httpx.RespondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.RespondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := s.ValidateToken(parts[1])
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			httpx.RespondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if claims.Role != RoleAdmin {
			logger.Warn(r.Context()).
				Str("username", claims.Username).
				Str("role", claims.Role).
				Msg("Admin access denied")
			httpx.RespondError(w, http.StatusForbidden, "Admin access required")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
