package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// IdentityConfig configures the identity server process.
type IdentityConfig struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`
	// DefaultRoleID is linked to every freshly signed-up user.
	DefaultRoleID int64 `env:"DEFAULT_ROLE_ID, default=3"`
	// MaxSignInFailures caps failed attempts per email before throttling.
	MaxSignInFailures int64 `env:"MAX_SIGNIN_FAILURES, default=5"`
	AuditWorkers      int   `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

// GatewayConfig configures the people-management gateway process.
type GatewayConfig struct {
	Port      string `env:"PORT,      default=8081"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// IdentityURL is the base URL the gateway forwards requests to.
	IdentityURL     string        `env:"IDENTITY_URL, default=http://localhost:8080"`
	IdentityTimeout time.Duration `env:"IDENTITY_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LoadIdentity reads the identity server configuration from the environment.
func LoadIdentity(ctx context.Context) (*IdentityConfig, error) {
	var cfg IdentityConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadGateway reads the gateway configuration from the environment.
func LoadGateway(ctx context.Context) (*GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
