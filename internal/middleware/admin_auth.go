package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"catalog-browser/internal/model"

	"github.com/gin-gonic/gin"
)

const adminRealm = `Bearer realm="catalog-admin"`

// AdminAuth guards the analytics and backend routes.
// If apiKey is empty, authentication is disabled
func AdminAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		key, ok := adminCredential(c)
		if !ok {
			c.Header("WWW-Authenticate", adminRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.APIResponse{
				Code:  401,
				Error: "未授权：缺少 API Key",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, model.APIResponse{
				Code:  403,
				Error: "禁止访问：API Key 无效",
			})
			return
		}

		c.Next()
	}
}

// adminCredential reads the key from "Authorization: Bearer <key>" or
// "Authorization: ApiKey <key>", falling back to ?api_key=. The scheme is
// case-insensitive; an unknown scheme counts as a missing key.
func adminCredential(c *gin.Context) (string, bool) {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		key := c.Query("api_key")
		return key, key != ""
	}

	scheme, key, found := strings.Cut(auth, " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "bearer", "apikey":
		key = strings.TrimSpace(key)
		return key, key != ""
	}
	return "", false
}
