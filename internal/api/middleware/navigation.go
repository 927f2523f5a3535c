package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/api/dto"
)

type navigationKey struct{}

type navigation struct {
	loginPath     string
	forbiddenPath string

	mu         sync.Mutex
	login      bool
	forbidden  bool
	returnPath string
}

// Navigator routes the shop API client's navigation requests to the
// recorder of the request being served.
type Navigator struct{}

func (Navigator) ToLogin(ctx context.Context, returnPath string) {
	if nav, ok := ctx.Value(navigationKey{}).(*navigation); ok {
		nav.mu.Lock()
		nav.login = true
		nav.returnPath = returnPath
		nav.mu.Unlock()
	}
}

func (Navigator) ToForbidden(ctx context.Context) {
	if nav, ok := ctx.Value(navigationKey{}).(*navigation); ok {
		nav.mu.Lock()
		nav.forbidden = true
		nav.mu.Unlock()
	}
}

// NavigationMiddleware installs a navigation recorder for each request.
// A recorded redirect is answered unless the handler already responded.
func NavigationMiddleware(loginPath, forbiddenPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		nav := &navigation{loginPath: loginPath, forbiddenPath: forbiddenPath}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), navigationKey{}, nav))

		c.Next()

		if !c.Writer.Written() {
			WriteRedirect(c)
		}
	}
}

// WriteRedirect answers the request with the redirect recorded by the shop
// API client and reports whether there was one. A login redirect is a 401,
// a forbidden redirect a 403; browsers asking for HTML get a 303.
func WriteRedirect(c *gin.Context) bool {
	nav, ok := c.Request.Context().Value(navigationKey{}).(*navigation)
	if !ok {
		return false
	}

	nav.mu.Lock()
	login, forbidden, returnPath := nav.login, nav.forbidden, nav.returnPath
	nav.mu.Unlock()

	var target string
	var code int
	switch {
	case login:
		target, code = nav.loginPath, http.StatusUnauthorized
		if returnPath != "" {
			target += "?redirect=" + url.QueryEscape(returnPath)
		}
	case forbidden:
		target, code = nav.forbiddenPath, http.StatusForbidden
	default:
		return false
	}

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return true
	}

	c.AbortWithStatusJSON(code, dto.RedirectResponse{
		Error:    http.StatusText(code),
		Redirect: target,
		Code:     code,
	})
	return true
}
