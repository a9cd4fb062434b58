package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pizza-nz/dish-admin/internal/api"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/service"
)

// LoginPath is where unauthenticated requests are sent
const LoginPath = "/login"

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
	UsernameKey contextKey = "username"
)

// TokenValidator checks a session token and returns its claims
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// Auth middleware for authenticating requests. The token is read from a
// Bearer Authorization header or, failing that, from the session cookie.
// Requests without any credentials are redirected to the login page.
func Auth(validator TokenValidator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := tokenFromRequest(r, cookieName)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			// Validate the token
			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				api.Unauthorized(w, "Invalid or expired token")
				return
			}

			// Add user info to context
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleKey, models.Role(claims.Role))
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)

			// Call the next handler with the updated context
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			// Present but malformed, let validation reject it
			return authHeader, true
		}
		return parts[1], true
	}

	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, true
		}
	}

	return "", false
}

// RequireRole middleware for checking that the user's role grants at least min
func RequireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				api.Unauthorized(w, "Unauthorized")
				return
			}

			if !role.Satisfies(min) {
				api.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Authorize gates next behind authentication and a minimum role. An empty
// role leaves the route public.
func Authorize(validator TokenValidator, cookieName string, min models.Role) func(http.Handler) http.Handler {
	if min == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	auth := Auth(validator, cookieName)
	requireRole := RequireRole(min)
	return func(next http.Handler) http.Handler {
		return auth(requireRole(next))
	}
}

// Helper functions for extracting values from context
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

func GetUserRole(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(UserRoleKey).(models.Role)
	return role, ok
}

func GetUsername(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UsernameKey).(string)
	return name, ok
}
