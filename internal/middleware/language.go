package middleware

import (
	"net/http"

	"catalog-browser/internal/handler"
	"catalog-browser/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientCookie identifies a browser across requests so that its language
// preference can be stored.
const ClientCookie = "cb_client"

const clientCookieMaxAge = 365 * 24 * 60 * 60

// Language resolves the active language of every request and stores it in
// the gin context under handler.LangKey. A ?lang= query parameter overrides
// the detected language for that request only.
func Language(detector *i18n.Detector) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := c.Cookie(ClientCookie)
		if err != nil || uuid.Validate(clientID) != nil {
			clientID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, clientID, clientCookieMaxAge, "/", "", false, true)
		}

		lang := detector.Detect(c.Request.Context(), clientID, c.GetHeader("Accept-Language"))
		if override := i18n.Normalize(c.Query("lang")); override != "" && detector.Bundle().Supports(override) {
			lang = override
		}

		c.Set(handler.ClientIDKey, clientID)
		c.Set(handler.LangKey, lang)
		c.Header("Content-Language", lang)

		c.Next()
	}
}
