package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
)

const (
	SessionCookieName   = "shopadmin_session"
	SessionContextKey   = "session"
	CurrentPathHeader   = "X-Current-Path"
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// SessionMiddleware identifies the browser session with an opaque cookie
// and places the session id and the current admin path in the request
// context for the shop API client.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", secure, true)
		}

		currentPath := c.GetHeader(CurrentPathHeader)
		if currentPath == "" {
			currentPath = c.Request.URL.RequestURI()
		}

		ctx := shopapi.WithSession(c.Request.Context(), sessionID)
		ctx = shopapi.WithCurrentPath(ctx, currentPath)
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionContextKey, sessionID)

		c.Next()
	}
}

// GetSessionID retrieves the session id from context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(SessionContextKey)
	if !exists {
		return "", false
	}

	id, ok := sessionID.(string)
	return id, ok
}
