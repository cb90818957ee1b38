package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	BcryptCost      int           `env:"BCRYPT_COST,      default=10"`
	MembersFile     string        `env:"MEMBERS_FILE,     default=./team_members.txt"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=5s"`

	DB    DBConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type DBConfig struct {
	Driver       string `env:"DB_DRIVER,         default=sqlite"`
	DSN          string `env:"DB_DSN,            default=file:database.db?_pragma=busy_timeout(5000)"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
}

// MongoConfig is optional: an empty URI disables the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=diary"`
}

// RedisConfig is optional: an empty address disables the feed cache.
type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,       default=0"`
	FeedCacheTTL time.Duration `env:"FEED_CACHE_TTL, default=30s"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
