package controller

import (
	"net/http"
	"strings"

	"github.com/aalkhodiry/ikhtibar/internal/dto"
	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/service"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

// OptionalAuth resolves the bearer token when one is present. Anonymous
// requests pass through; exam taking works without an account, only the
// statistics write is skipped.
func OptionalAuth(auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if user, ok := auth.CurrentUser(token); ok {
				ctx.Set(currentUserKey, user)
			}
		}
		ctx.Next()
	}
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		user, ok := auth.CurrentUser(token)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired session"})
			return
		}
		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

// AdminRequired gates admin-only routes. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok || user.Role != model.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Administrator access required"})
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user attached by the middleware.
func CurrentUser(ctx *gin.Context) (model.User, bool) {
	value, exists := ctx.Get(currentUserKey)
	if !exists {
		return model.User{}, false
	}
	user, ok := value.(model.User)
	return user, ok
}
