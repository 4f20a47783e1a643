package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultTokenTTL is the lifetime every issued token is expected to have.
const DefaultTokenTTL = time.Hour

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	ServerPort              string        `env:"SERVER_PORT" envDefault:"3000"`
	ServerReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ServerIdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	RequestTimeout          time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	SessionStore           string        `env:"SESSION_STORE" envDefault:"memory"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`
	RedisAddr              string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword          string        `env:"REDIS_PASSWORD"`
	RedisDB                int           `env:"REDIS_DB" envDefault:"0"`

	CookieSecure     bool     `env:"COOKIE_SECURE" envDefault:"false"`
	TrustedProxies   []string `env:"TRUSTED_PROXIES" envSeparator:","`
	CORSOrigins      []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	RateLimitRPM     int      `env:"RATE_LIMIT_RPM" envDefault:"100"`
	AuthRateLimitRPM int      `env:"AUTH_RATE_LIMIT_RPM" envDefault:"10"`

	UsersFile string `env:"USERS_FILE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"pretty"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.TokenSecret = strings.TrimSpace(cfg.TokenSecret)
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.TrustedProxies = trimAll(cfg.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.TokenSecret) == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.TokenTTL != DefaultTokenTTL {
		slog.Warn("TOKEN_TTL differs from the standard token lifetime", "token_ttl", c.TokenTTL, "standard", DefaultTokenTTL)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	for _, proxy := range c.TrustedProxies {
		if err := validateProxy(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
	}

	switch c.SessionStore {
	case SessionStoreMemory:
		if c.SessionCleanupInterval <= 0 {
			return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
		}
	case SessionStoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, c.SessionStore)
	}

	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}

func validateProxy(entry string) error {
	if strings.Contains(entry, "/") {
		_, err := netip.ParsePrefix(entry)
		return err
	}
	_, err := netip.ParseAddr(entry)
	return err
}
