package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	APIBaseURL string `mapstructure:"api_base_url"`

	// Optional upstream settings
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Client state storage
	StateBackend  string        `mapstructure:"state_backend"` // "sqlite" or "redis"
	DBPath        string        `mapstructure:"db_path"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	// Admin UI settings
	DefaultPageSize     int    `mapstructure:"default_page_size"`
	LoginPath           string `mapstructure:"login_path"`
	ForbiddenPath       string `mapstructure:"forbidden_path"`
	SessionCookieSecure bool   `mapstructure:"session_cookie_secure"`

	ConfigPath string
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultStateBackend    = BackendSQLite
	DefaultRedisAddr       = "localhost:6379"
	DefaultSessionTTL      = 7 * 24 * time.Hour
	DefaultAPIHost         = "127.0.0.1"
	DefaultAPIPort         = 8340
	DefaultLogLevel        = "info"
	DefaultPageSize        = 20
	MaxPageSize            = 100
	DefaultLoginPath       = "/login"
	DefaultForbiddenPath   = "/forbidden"
	EnvPrefix              = "SHOPADMIN"
	defaultConfigDirName   = "shopadmin"
	defaultConfigFileName  = "config.yml"
	defaultStateDBFileName = "state.sqlite3"
)

// DefaultConfigPath is ~/.config/shopadmin/config.yml, or the empty string
// when the user config dir cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, defaultConfigDirName, defaultConfigFileName)
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return defaultStateDBFileName
	}
	return filepath.Join(dir, defaultConfigDirName, defaultStateDBFileName)
}

// Load reads the config file, applies SHOPADMIN_ environment overrides and
// validates the result. An explicit configPath must exist; the default one
// may be missing.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("api_base_url", "")
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("state_backend", DefaultStateBackend)
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("redis_addr", DefaultRedisAddr)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("default_page_size", DefaultPageSize)
	v.SetDefault("login_path", DefaultLoginPath)
	v.SetDefault("forbidden_path", DefaultForbiddenPath)
	v.SetDefault("session_cookie_secure", false)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath
	cfg.StateBackend = strings.ToLower(cfg.StateBackend)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL: %s", c.APIBaseURL)
	}

	switch c.StateBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite state backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis state backend")
		}
	default:
		return fmt.Errorf("state_backend must be 'sqlite' or 'redis'")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if c.DefaultPageSize < 1 || c.DefaultPageSize > MaxPageSize {
		return fmt.Errorf("default_page_size must be between 1 and %d", MaxPageSize)
	}

	if !strings.HasPrefix(c.LoginPath, "/") || !strings.HasPrefix(c.ForbiddenPath, "/") {
		return fmt.Errorf("login_path and forbidden_path must start with /")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}
