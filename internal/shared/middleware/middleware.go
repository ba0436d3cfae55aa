package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventbook/internal/auth"
	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/utils/response"
	"eventbook/internal/users"
	"eventbook/pkg/logger"
)

// TokenAuth validates the bearer token and stores the caller's identity in
// the gin context under "user_id", "user_phone" and "user_role".
func TokenAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apierror.Unauthorized("Authorization header is missing"))
			return
		}

		token := auth.BearerToken(authHeader)
		if !tokens.Validate(token) {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid token", c.ClientIP())
			abortWith(c, apierror.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set("user_id", tokens.ExtractUserID(token))
		c.Set("user_phone", tokens.ExtractPhone(token))
		c.Set("user_role", tokens.ExtractRole(token))

		c.Next()
	}
}

// RequireRole must run after TokenAuth.
func RequireRole(requiredRole users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			abortWith(c, apierror.Unauthorized("Authorization header is missing"))
			return
		}

		if role, ok := userRole.(string); !ok || role != string(requiredRole) {
			abortWith(c, apierror.New(http.StatusForbidden, "Insufficient permissions"))
			return
		}

		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(users.RoleAdmin)
}

// RequestLogger logs one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.GetDefault().LogHTTPRequest(c, time.Since(start))
	}
}

func abortWith(c *gin.Context, err *apierror.ApiError) {
	response.RespondError(c, err)
	c.Abort()
}
