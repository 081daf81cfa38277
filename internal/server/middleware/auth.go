// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/hr-insights/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// userKey is the context key for storing the authenticated user.
const userKey ContextKey = "user"

// Roles carried in token claims
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// Permissions checked by RequirePermission
const (
	PermUseAIFeatures     = "use_ai_features"
	PermManageRecruitment = "manage_recruitment"
	PermViewAnalytics     = "view_analytics"
)

var rolePermissions = map[string][]string{
	RoleEmployee: {},
	RoleManager:  {PermUseAIFeatures},
	RoleHR:       {PermUseAIFeatures, PermManageRecruitment, PermViewAnalytics},
	RoleAdmin:    {PermUseAIFeatures, PermManageRecruitment, PermViewAnalytics},
}

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserContextGetter, error)
}

// UserContextGetter is an interface for extracting the user from token claims.
type UserContextGetter interface {
	GetUserContext() types.UserContext
}

// IsKnownRole reports whether role is one of the declared roles.
func IsKnownRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// HasPermission reports whether role grants permission.
func HasPermission(role, permission string) bool {
	for _, p := range rolePermissions[strings.ToLower(role)] {
		if p == permission {
			return true
		}
	}
	return false
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the user to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return authenticate(jwtService, false)
}

// StreamAuthMiddleware is AuthMiddleware that also accepts a "token" query
// parameter, for clients such as browsers opening websockets or event streams
// that cannot set headers.
func StreamAuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return authenticate(jwtService, true)
}

func authenticate(jwtService TokenValidator, allowQuery bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok && allowQuery {
				tokenString = strings.TrimSpace(r.URL.Query().Get("token"))
				ok = tokenString != ""
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user := claims.GetUserContext()
			if user.UserID == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// bearerToken parses a case-insensitive "Bearer <token>" Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequirePermission rejects requests whose user role lacks permission.
// It must run after AuthMiddleware.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := GetUser(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !HasPermission(user.Role, permission) {
				writeError(w, http.StatusForbidden, fmt.Sprintf("permission %s required", permission))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user types.UserContext) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser extracts the authenticated user from the request context.
func GetUser(r *http.Request) (types.UserContext, error) {
	user, ok := r.Context().Value(userKey).(types.UserContext)
	if !ok {
		return types.UserContext{}, fmt.Errorf("user not found in request context")
	}
	return user, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
