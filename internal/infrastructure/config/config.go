package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// DeliveryFee is the flat delivery charge in integer cents, applied to
	// non-empty carts.
	DeliveryFee int64 `env:"DELIVERY_FEE, default=500"`

	// ActivityWorkers sizes the background activity pipeline.
	ActivityWorkers int `env:"ACTIVITY_WORKERS, default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type UpstreamConfig struct {
	BaseURL    string        `env:"UPSTREAM_BASE_URL, default=http://localhost:9000/api/v1"`
	Timeout    time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
	MaxRetries int           `env:"UPSTREAM_RETRIES,  default=2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
