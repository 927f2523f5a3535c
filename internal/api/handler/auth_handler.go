package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/api/dto"
	"github.com/martijn/shopadmin/internal/core/service"
)

const defaultLandingPath = "/"

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	returnPath, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Authenticated: true,
		Redirect:      landingPath(returnPath, c.Query("redirect")),
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Status handles GET /auth/status
func (h *AuthHandler) Status(c *gin.Context) {
	status, err := h.authService.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Authenticated:   status.Authenticated,
		Subject:         status.Subject,
		Email:           status.Email,
		Roles:           status.Roles,
		ExpiresAt:       status.ExpiresAt,
		Expired:         status.Expired,
		HasRefreshToken: status.HasRefreshToken,
	})
}

// LoginView handles GET /login
func (h *AuthHandler) LoginView(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ViewResponse{
		View:     "login",
		Message:  "Sign in to continue",
		Redirect: safeRedirect(c.Query("redirect")),
	})
}

// ForbiddenView handles GET /forbidden
func (h *AuthHandler) ForbiddenView(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ViewResponse{
		View:    "forbidden",
		Message: "You do not have permission to view this page",
	})
}

// landingPath prefers the path remembered by the session over the one the
// login form was opened with.
func landingPath(remembered, requested string) string {
	if path := safeRedirect(remembered); path != "" {
		return path
	}
	if path := safeRedirect(requested); path != "" {
		return path
	}
	return defaultLandingPath
}

// safeRedirect only allows paths on this origin.
func safeRedirect(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, `\`) {
		return ""
	}
	return path
}
