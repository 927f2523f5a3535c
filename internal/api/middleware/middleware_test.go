package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(false), NavigationMiddleware("/login", "/forbidden"))
	router.GET("/admin/products", handler)
	return router
}

func TestSessionMiddleware_IssuesAndReusesCookie(t *testing.T) {
	var sessions, paths []string
	router := newRouter(func(c *gin.Context) {
		id, _ := shopapi.SessionFrom(c.Request.Context())
		sessions = append(sessions, id)
		paths = append(paths, shopapi.CurrentPathFrom(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products?page=1", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(cookies[0])
	req.Header.Set(CurrentPathHeader, "/products")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Result().Cookies())

	require.Len(t, sessions, 2)
	assert.Equal(t, cookies[0].Value, sessions[0])
	assert.Equal(t, sessions[0], sessions[1])
	assert.Equal(t, []string{"/admin/products?page=1", "/products"}, paths)
}

func TestSessionMiddleware_ReplacesMalformedCookie(t *testing.T) {
	router := newRouter(func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "../../etc"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc", cookies[0].Value)
}

func TestNavigationMiddleware_AnswersUnhandledRedirect(t *testing.T) {
	router := newRouter(func(c *gin.Context) {
		Navigator{}.ToLogin(c.Request.Context(), "/products?page=3")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","redirect":"/login?redirect=%2Fproducts%3Fpage%3D3","code":401}`, w.Body.String())
}

func TestNavigationMiddleware_LeavesWrittenResponses(t *testing.T) {
	router := newRouter(func(c *gin.Context) {
		Navigator{}.ToForbidden(c.Request.Context())
		c.String(http.StatusTeapot, "handled")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "handled", w.Body.String())
}

func TestNavigator_IgnoresContextWithoutRecorder(t *testing.T) {
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	assert.NotPanics(t, func() {
		Navigator{}.ToLogin(ctx, "/x")
		Navigator{}.ToForbidden(ctx)
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), CurrentPathHeader)
}
