package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopgrid/accounts-api/pkg/helpers"
	"github.com/shopgrid/accounts-api/pkg/response"
)

const (
	CtxAccountEmail = "accountEmail"
	CtxAccountRole  = "accountRole"
)

// Auth validates the Bearer token and injects the caller's identity into
// the Gin context for downstream handlers.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp := response.NewError[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			resp := response.NewError[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxAccountEmail, claims.Email)
		c.Set(CtxAccountRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
