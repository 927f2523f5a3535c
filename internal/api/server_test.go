package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/api/dto"
	"github.com/martijn/shopadmin/internal/api/middleware"
	"github.com/martijn/shopadmin/internal/core/service"
	"github.com/martijn/shopadmin/internal/infrastructure/sqlite"
	"github.com/martijn/shopadmin/internal/logger"
	"github.com/martijn/shopadmin/pkg/config"
	"github.com/martijn/shopadmin/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream is a fake shop API. Logins hand out loginToken; only validToken
// is accepted on resource calls.
type upstream struct {
	mu            sync.Mutex
	loginToken    string
	validToken    string
	refreshStatus int
	lastQuery     url.Values
	writes        int
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/auth/login":
		json.NewEncoder(w).Encode(shopapi.TokenPair{AccessToken: u.loginToken, RefreshToken: "refresh"})
		return
	case r.URL.Path == "/api/auth/logout":
		w.WriteHeader(http.StatusNoContent)
		return
	case r.URL.Path == "/api/auth/refresh":
		if u.refreshStatus != http.StatusOK {
			w.WriteHeader(u.refreshStatus)
			return
		}
		json.NewEncoder(w).Encode(shopapi.TokenPair{AccessToken: u.validToken})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+u.validToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.URL.Path == "/api/roles":
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"roles:read required"}`))
	case r.URL.Path == "/api/products" && r.Method == http.MethodGet:
		u.lastQuery = r.URL.Query()
		w.Write([]byte(`{"content":[{"id":1,"name":"Shoe","sku":"S-1","price":"10.00","stock":3,"active":true}],"totalElements":41,"totalPages":3,"number":1,"size":20}`))
	case r.URL.Path == "/api/products/404":
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"product not found"}`))
	default:
		u.writes++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":9}`))
	}
}

type testEnv struct {
	upstream *upstream
	router   http.Handler
	cookie   *http.Cookie
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	up := &upstream{loginToken: "good", validToken: "good", refreshStatus: http.StatusOK}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		APIBaseURL:     srv.URL + "/api",
		RequestTimeout: config.DefaultRequestTimeout,
		LoginPath:      "/login",
		ForbiddenPath:  "/forbidden",
	}

	tokens := service.NewSessionTokenStore(sqlite.NewAuthStateRepository(db))
	client, err := shopapi.NewClient(shopapi.Options{
		BaseURL:   cfg.APIBaseURL,
		Store:     tokens,
		Navigator: middleware.Navigator{},
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	server := NewServer(cfg, log, metrics.NewRegistry(),
		service.NewAuthService(client, tokens, log),
		service.NewResourceServices(client, 20, log),
	)

	return &testEnv{upstream: up, router: server.Handler()}
}

func (env *testEnv) do(t *testing.T, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if env.cookie != nil {
		req.AddCookie(env.cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			env.cookie = c
		}
	}
	return w
}

func (env *testEnv) login(t *testing.T) dto.LoginResponse {
	t.Helper()

	w := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@shop.test",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestServer_LoginAndList(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.login(t)
	require.NotNil(t, env.cookie, "login must issue a session cookie")
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "/", resp.Redirect)

	w := env.do(t, http.MethodGet, "/admin/products?page=1&per_page=20&order=name|asc&query=price|gte|5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decode[dto.ListResponse[map[string]any]](t, w)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Shoe", list.Items[0]["name"])
	assert.Equal(t, dto.PaginationInfo{Total: 41, Page: 1, PerPage: 20, TotalPages: 3}, list.Pagination)

	assert.Equal(t, "1", env.upstream.lastQuery.Get("page"))
	assert.Equal(t, "20", env.upstream.lastQuery.Get("size"))
	assert.Equal(t, "name,asc", env.upstream.lastQuery.Get("sort"))
	assert.Equal(t, "5", env.upstream.lastQuery.Get("price.gte"))
}

func TestServer_ListClampsPageSize(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	tests := []struct {
		perPage string
		want    string
	}{
		{"-5", "1"},
		{"0", "1"},
		{"500", "100"},
	}
	for _, tt := range tests {
		w := env.do(t, http.MethodGet, "/admin/products?per_page="+tt.perPage, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, tt.want, env.upstream.lastQuery.Get("size"), "per_page=%s", tt.perPage)
	}
}

func TestServer_ExpiredSessionRedirectsToLogin(t *testing.T) {
	env := setupTestEnv(t)
	env.upstream.loginToken = "stale"
	env.upstream.refreshStatus = http.StatusForbidden
	env.login(t)

	w := env.do(t, http.MethodGet, "/admin/products?page=2", nil, middleware.CurrentPathHeader, "/products?page=2")
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	redirect := decode[dto.RedirectResponse](t, w)
	assert.Equal(t, "/login?redirect="+url.QueryEscape("/products?page=2"), redirect.Redirect)

	status := decode[dto.StatusResponse](t, env.do(t, http.MethodGet, "/auth/status", nil))
	assert.False(t, status.Authenticated)
	assert.False(t, status.HasRefreshToken)

	// logging back in returns to where the session expired
	env.upstream.loginToken = "good"
	resp := env.login(t)
	assert.Equal(t, "/products?page=2", resp.Redirect)
}

func TestServer_ExpiredSessionBrowserRedirect(t *testing.T) {
	env := setupTestEnv(t)
	env.upstream.loginToken = "stale"
	env.upstream.refreshStatus = http.StatusForbidden
	env.login(t)

	w := env.do(t, http.MethodGet, "/admin/products", nil, "Accept", "text/html")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect="+url.QueryEscape("/admin/products"), w.Header().Get("Location"))
}

func TestServer_RefreshIsTransparent(t *testing.T) {
	env := setupTestEnv(t)
	env.upstream.loginToken = "stale"
	env.login(t)

	w := env.do(t, http.MethodGet, "/admin/products", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestServer_ForbiddenRedirect(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	w := env.do(t, http.MethodGet, "/admin/roles", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/forbidden", decode[dto.RedirectResponse](t, w).Redirect)

	view := decode[dto.ViewResponse](t, env.do(t, http.MethodGet, "/forbidden", nil))
	assert.Equal(t, "forbidden", view.View)
}

func TestServer_BadRequests(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	tests := []struct {
		name   string
		method string
		target string
		body   any
	}{
		{"unknown filter field", http.MethodGet, "/admin/products?query=password|x", nil},
		{"bad order direction", http.MethodGet, "/admin/products?order=name|up", nil},
		{"bad page", http.MethodGet, "/admin/products?page=two", nil},
		{"bad id", http.MethodGet, "/admin/products/abc", nil},
		{"invalid coupon", http.MethodPost, "/admin/coupons", map[string]any{"code": "X", "discount_type": "percent", "value": "250"}},
		{"invalid user email", http.MethodPost, "/admin/users", map[string]any{"email": "nope", "full_name": "A"}},
		{"category own parent", http.MethodPut, "/admin/categories/5", map[string]any{"name": "Shoes", "parent_id": 5}},
		{"body id mismatch", http.MethodPut, "/admin/categories/5", map[string]any{"id": 9, "name": "Shoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, http.StatusBadRequest, decode[dto.ErrorResponse](t, w).Code)
		})
	}
	assert.Equal(t, 0, env.upstream.writes)
}

func TestServer_UpstreamErrorKeepsStatus(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	w := env.do(t, http.MethodGet, "/admin/products/404", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product not found", decode[dto.ErrorResponse](t, w).Message)
}

func TestServer_CreateAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	w := env.do(t, http.MethodPost, "/admin/brands", map[string]any{"name": "Acme"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(9), decode[map[string]any](t, w)["id"])

	w = env.do(t, http.MethodDelete, "/admin/brands/9", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 2, env.upstream.writes)
}

func TestServer_LogoutClearsSession(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	w := env.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	status := decode[dto.StatusResponse](t, env.do(t, http.MethodGet, "/auth/status", nil))
	assert.False(t, status.Authenticated)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/admin/products", nil).Code)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	env.do(t, http.MethodGet, "/health", nil)
	w = env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "shopadmin_http_request_duration_seconds"))
	assert.Contains(t, w.Body.String(), `shopadmin_upstream_requests_total{method="GET",resource="products",status="200"}`)
}
