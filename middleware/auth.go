package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
)

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")), true
}

func withIdentity(r *http.Request, userID uint, role string) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
	ctx = context.WithValue(ctx, utils.UserRoleKey, role)
	return r.WithContext(ctx)
}

// AuthMiddleware requires a valid bearer token and places the user identity
// in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}

		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Session expired, please sign in again"})
				return
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid token"})
			return
		}

		userID := utils.UserIDFromClaims(claims)
		role, _ := claims["role"].(string)

		next.ServeHTTP(w, withIdentity(r, userID, role))
	})
}

// OptionalAuthMiddleware resolves the user identity when a valid token is
// present and lets anonymous requests through untouched. Catalog browsing
// uses it so ownership flags work for signed-in shoppers.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		role, _ := claims["role"].(string)
		next.ServeHTTP(w, withIdentity(r, utils.UserIDFromClaims(claims), role))
	})
}
