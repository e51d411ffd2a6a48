package middlewares

import (
	"net/http"
	"strings"

	"spotfix-admin/utils"
	"spotfix-admin/views"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// OperatorKey is the gin context key holding the authenticated operator.
const OperatorKey = "operator"

// AuthMiddleware requires a valid operator token, read from the auth_token
// cookie or a Bearer Authorization header. Rejections render the error page.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return authenticate(secret, abortUnauthorized)
}

// APIAuthMiddleware is AuthMiddleware for JSON endpoints: rejections are
// written as {"error": message}.
func APIAuthMiddleware(secret string) gin.HandlerFunc {
	return authenticate(secret, abortUnauthorizedJSON)
}

func authenticate(secret string, reject func(*gin.Context, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			reject(c, "No authorization token provided")
			return
		}

		operator, err := utils.ParseOperatorToken(secret, tokenString)
		if err != nil {
			log.WithError(err).WithField("path", c.Request.URL.Path).Warn("Token validation failed")
			reject(c, "Invalid authorization token")
			return
		}

		c.Set(OperatorKey, operator)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.HTML(http.StatusUnauthorized, views.ErrorTemplate, views.ErrorPage{Message: message})
	c.Abort()
}

func abortUnauthorizedJSON(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
