// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	RSO       RSOConfig       `koanf:"rso"`
	Bootstrap BootstrapConfig `koanf:"bootstrap"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath    string        `koanf:"private_key_path"`
	PublicKeyPath     string        `koanf:"public_key_path"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
	Audience          string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// RSOConfig holds the creation rules for student organizations.
// MinMembers counts the creating admin plus every listed member.
type RSOConfig struct {
	MinMembers int `koanf:"min_members"`
}

// BootstrapConfig seeds the first university and its super admin on
// startup. super_admin accounts cannot self-register, so this is the only
// way to create one. Seeding is skipped while AdminEmail is empty.
type BootstrapConfig struct {
	UniversityName     string `koanf:"university_name"`
	UniversityLocation string `koanf:"university_location"`
	AdminUsername      string `koanf:"admin_username"`
	AdminName          string `koanf:"admin_name"`
	AdminEmail         string `koanf:"admin_email"`
	AdminPassword      string `koanf:"admin_password"`
}

func (b BootstrapConfig) Enabled() bool {
	return b.AdminEmail != ""
}

// Load layers defaults, the optional YAML file at configPath and the
// mapped environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "University Events",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             5000,
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",

		"database.max_open_conns":     10,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "15m",
		"database.auto_migrate":       true,

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"jwt.access_token_expire": "1h",
		"jwt.issuer":              "uni-events",
		"jwt.audience":            "uni-events-api",
		"jwt.private_key_path":    "keys/private.pem",
		"jwt.public_key_path":     "keys/public.pem",

		"rate_limit.requests": 120,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    30,

		"cors.allowed_origins": []string{"http://localhost:5173"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "uni-events",

		"metrics.enabled": true,
		"metrics.path":    "/metrics",

		"rso.min_members": 5,
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                  "database.url",
	"DATABASE_AUTO_MIGRATE":         "database.auto_migrate",
	"REDIS_URL":                     "redis.url",
	"ENVIRONMENT":                   "app.environment",
	"HOST":                          "server.host",
	"PORT":                          "server.port",
	"LOG_LEVEL":                     "log.level",
	"LOG_FORMAT":                    "log.format",
	"JWT_PRIVATE_KEY_PATH":          "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":           "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":       "jwt.access_token_expire",
	"JWT_ISSUER":                    "jwt.issuer",
	"JWT_AUDIENCE":                  "jwt.audience",
	"RATE_LIMIT_REQUESTS":           "rate_limit.requests",
	"RATE_LIMIT_WINDOW":             "rate_limit.window",
	"RATE_LIMIT_BURST":              "rate_limit.burst",
	"OTEL_ENDPOINT":                 "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT":   "otel.endpoint",
	"OTEL_SERVICE_NAME":             "otel.service_name",
	"OTEL_ENABLED":                  "otel.enabled",
	"OTEL_INSECURE":                 "otel.insecure",
	"OTEL_SAMPLE_RATE":              "otel.sample_rate",
	"METRICS_ENABLED":               "metrics.enabled",
	"METRICS_PATH":                  "metrics.path",
	"RSO_MIN_MEMBERS":               "rso.min_members",
	"BOOTSTRAP_UNIVERSITY_NAME":     "bootstrap.university_name",
	"BOOTSTRAP_UNIVERSITY_LOCATION": "bootstrap.university_location",
	"BOOTSTRAP_ADMIN_USERNAME":      "bootstrap.admin_username",
	"BOOTSTRAP_ADMIN_NAME":          "bootstrap.admin_name",
	"BOOTSTRAP_ADMIN_EMAIL":         "bootstrap.admin_email",
	"BOOTSTRAP_ADMIN_PASSWORD":      "bootstrap.admin_password",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.JWT.AccessTokenExpire <= 0 {
		return fmt.Errorf("jwt.access_token_expire must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	if c.RSO.MinMembers < 2 {
		return fmt.Errorf("rso.min_members must be at least 2")
	}

	return validateBootstrap(c.Bootstrap)
}

func validateBootstrap(b BootstrapConfig) error {
	if !b.Enabled() {
		return nil
	}

	required := map[string]string{
		"BOOTSTRAP_UNIVERSITY_NAME":     b.UniversityName,
		"BOOTSTRAP_UNIVERSITY_LOCATION": b.UniversityLocation,
		"BOOTSTRAP_ADMIN_USERNAME":      b.AdminUsername,
		"BOOTSTRAP_ADMIN_NAME":          b.AdminName,
		"BOOTSTRAP_ADMIN_PASSWORD":      b.AdminPassword,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required when BOOTSTRAP_ADMIN_EMAIL is set", key)
		}
	}

	if len(b.AdminPassword) < 8 {
		return fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD must be at least 8 characters")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
