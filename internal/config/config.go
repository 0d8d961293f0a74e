package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret   string `yaml:"secret"`
	TokenTTL string `yaml:"token_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	VerifySID  string `yaml:"verify_service_sid"`
}

type RateLimitConfig struct {
	MaxRequests   int    `yaml:"max_requests"`
	WindowSeconds string `yaml:"window"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Config is the immutable runtime configuration, built once at startup and
// passed by reference. Business logic never reads the environment directly.
type Config struct {
	Port            string
	Environment     string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	TokenTTL        time.Duration
	TwilioSID       string
	TwilioToken     string
	TwilioVerifySID string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// IsProduction gates environment-sensitive behavior such as the cookie
// Secure attribute.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml when present and applies environment
// overrides on top of it. A missing file is fine; a missing JWT secret is not.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (*Config, error) {
	file := &ConfigFile{}
	if bytes, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(bytes, file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml at %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:          env("PORT", defaultStr(strconv.Itoa(file.App.Port), "8080", file.App.Port != 0)),
		Environment:   env("APP_ENV", defaultStr(file.App.Environment, "development", file.App.Environment != "")),
		DSN:           env("DATABASE_URL", file.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", defaultStr(file.Redis.Addr, "localhost:6379", file.Redis.Addr != "")),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		JWTSecret:     env("JWT_SECRET", file.JWT.Secret),
		TwilioSID:     env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken:   env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioVerifySID: env("TWILIO_SERVICES_SID", file.Twilio.VerifySID),
	}

	redisDB, err := strconv.Atoi(env("REDIS_DB", strconv.Itoa(file.Redis.DB)))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	cfg.TokenTTL, err = duration(env("TOKEN_TTL", file.JWT.TokenTTL), time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid token TTL: %w", err)
	}

	cfg.RateLimitMax, err = strconv.Atoi(env("RATE_LIMIT_MAX", defaultStr(strconv.Itoa(file.RateLimit.MaxRequests), "100", file.RateLimit.MaxRequests != 0)))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}

	cfg.RateLimitWindow, err = duration(env("RATE_LIMIT_WINDOW", file.RateLimit.WindowSeconds), 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func defaultStr(val, def string, ok bool) string {
	if ok {
		return val
	}
	return def
}

func duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
