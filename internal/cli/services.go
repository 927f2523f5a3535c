package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/core/repository"
	"github.com/martijn/shopadmin/internal/core/service"
	"github.com/martijn/shopadmin/internal/infrastructure/redisstore"
	"github.com/martijn/shopadmin/internal/infrastructure/sqlite"
	"github.com/martijn/shopadmin/pkg/config"
)

// Services holds all initialized services
type Services struct {
	AuthStates repository.AuthStateRepository
	PageStates repository.PageStateRepository
	Tokens     *service.SessionTokenStore
	Client     *shopapi.Client
	Auth       *service.AuthService
	Resources  *service.ResourceServices
	Pages      *service.PageStateService

	closer io.Closer
}

// initServices builds the state storage, the shop API client and the
// services on top of them. navigator receives the client's redirects.
func initServices(ctx context.Context, navigator shopapi.Navigator) (*Services, error) {
	services := &Services{}

	switch cfg.StateBackend {
	case config.BackendRedis:
		store, err := redisstore.New(ctx, redisstore.Options{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			SessionTTL: cfg.SessionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		services.AuthStates = store.AuthStates()
		services.PageStates = store.PageStates()
		services.closer = store

	default:
		if cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		services.AuthStates = sqlite.NewAuthStateRepository(db)
		services.PageStates = sqlite.NewPageStateRepository(db)
		services.closer = db
	}

	services.Tokens = service.NewSessionTokenStore(services.AuthStates)

	client, err := shopapi.NewClient(shopapi.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		Store:     services.Tokens,
		Navigator: navigator,
		Logger:    log,
	})
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to create shop API client: %w", err)
	}
	services.Client = client

	services.Auth = service.NewAuthService(client, services.Tokens, log)
	services.Resources = service.NewResourceServices(client, cfg.DefaultPageSize, log)
	services.Pages = service.NewPageStateService(services.PageStates, cfg.DefaultPageSize)

	return services, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}
