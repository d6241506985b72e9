package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, loaded once at startup and passed
// by reference into every component.
type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds bearer token validity. Deployments have run with both
	// 7-day and 60-day tokens; the default keeps the shorter window.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	Mongo MongoConfig
	Redis RedisConfig

	// LoginMaxFailures and LoginFailureWindow drive the Redis-backed login
	// throttle. The throttle is disabled when Redis is not configured.
	LoginMaxFailures   int           `env:"LOGIN_MAX_FAILURES,   default=5"`
	LoginFailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`

	// AuditWorkers is the number of audit trail writer goroutines.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=book_catalog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
