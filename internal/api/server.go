package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/api/handler"
	"github.com/martijn/shopadmin/internal/api/middleware"
	"github.com/martijn/shopadmin/internal/core/service"
	"github.com/martijn/shopadmin/internal/logger"
	"github.com/martijn/shopadmin/pkg/config"
	"github.com/martijn/shopadmin/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    *logger.Logger
}

// NewServer creates a new API server. The shop API client behind the
// services must use middleware.Navigator so redirects reach the browser.
func NewServer(
	cfg *config.Config,
	log *logger.Logger,
	registry *prometheus.Registry,
	authService *service.AuthService,
	resources *service.ResourceServices,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SessionMiddleware(cfg.SessionCookieSecure))
	router.Use(middleware.NavigationMiddleware(cfg.LoginPath, cfg.ForbiddenPath))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)

	// Auth
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/status", authHandler.Status)
	}

	// Views the browser is sent to
	router.GET(cfg.LoginPath, authHandler.LoginView)
	router.GET(cfg.ForbiddenPath, authHandler.ForbiddenView)

	// Admin resources
	admin := router.Group("/admin")
	handler.NewResourceHandler(resources.Products).Register(admin)
	handler.NewResourceHandler(resources.Users).Register(admin)
	handler.NewResourceHandler(resources.Roles).Register(admin)
	handler.NewResourceHandler(resources.Permissions).Register(admin)
	handler.NewResourceHandler(resources.Brands).Register(admin)
	handler.NewResourceHandler(resources.Categories).Register(admin)
	handler.NewResourceHandler(resources.Coupons).Register(admin)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if registry != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))
	}

	server := &Server{
		router: router,
		config: cfg,
		log:    log,
	}

	return server
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   s.config.RequestTimeout + 15*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.log.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.log.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
