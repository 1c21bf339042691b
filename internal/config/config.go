package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Workers   WorkersConfig   `mapstructure:"workers"    validate:"required"`
	Services  ServicesConfig  `mapstructure:"services"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	GRPCPort               int    `mapstructure:"grpc_port"                validate:"required,gt=0,lt=65536,nefield=Port"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0,lt=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,gtfield=TokenLifetimeMinutes"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=4,lte=31"`
}

// RedisConfig configures the refresh-token revocation backend.
// An empty URL selects the in-memory implementation.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// RateLimitConfig configures the per-client request limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst"               validate:"gt=0"`
	// TrustProxyHeaders keys clients on X-Forwarded-For / X-Real-IP instead
	// of the socket peer. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// WorkersConfig configures background processing.
type WorkersConfig struct {
	NotificationWorkers       int    `mapstructure:"notification_workers"        validate:"gt=0,lte=64"`
	NotificationQueueSize     int    `mapstructure:"notification_queue_size"     validate:"gt=0"`
	NotificationRetentionDays int    `mapstructure:"notification_retention_days" validate:"gt=0"`
	RetentionSchedule         string `mapstructure:"retention_schedule"          validate:"required"`
}

// ServicesConfig selects which service groups are mounted by the server.
type ServicesConfig struct {
	Enabled []string `mapstructure:"enabled" validate:"dive,oneof=auth news tracker shop"`
}

// Service group names accepted in ServicesConfig.Enabled.
const (
	ServiceAuth    = "auth"
	ServiceNews    = "news"
	ServiceTracker = "tracker"
	ServiceShop    = "shop"
)

// IsEnabled reports whether the named service group should be mounted.
// An empty list enables every group.
func (c ServicesConfig) IsEnabled(name string) bool {
	if len(c.Enabled) == 0 {
		return true
	}
	for _, n := range c.Enabled {
		if n == name {
			return true
		}
	}
	return false
}
