// Package config assembles runtime configuration. Defaults are overlaid by
// an optional YAML file named in LANDREG_CONFIG, and environment variables
// win over both.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type Database struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL            string        `yaml:"url"`
	PoolSize       int           `yaml:"pool_size"`
	MinIdleConns   int           `yaml:"min_idle_conns"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	StatusCacheTTL time.Duration `yaml:"status_cache_ttl"`
}

type Kafka struct {
	Brokers       []string      `yaml:"brokers"`
	AuditTopic    string        `yaml:"audit_topic"`
	Partitions    int32         `yaml:"partitions"`
	Replication   int16         `yaml:"replication"`
	RelayInterval time.Duration `yaml:"relay_interval"`
}

type Auth struct {
	JWTSigningKey string        `yaml:"jwt_signing_key"`
	Issuer        string        `yaml:"issuer"`
	Audience      string        `yaml:"audience"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	AuditHashKey  string        `yaml:"audit_hash_key"`
}

// RateLimit caps requests per caller per window. Requests <= 0 disables it.
type RateLimit struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// Registry holds the principals and limits of the registries themselves.
type Registry struct {
	OwnerAccountID   string        `yaml:"owner_account_id"`
	EngineAccountID  string        `yaml:"engine_account_id"`
	MaxLandDocuments int           `yaml:"max_land_documents"`
	TxTimeout        time.Duration `yaml:"tx_timeout"`
}

type Config struct {
	Server    Server      `yaml:"server"`
	Database  Database    `yaml:"database"`
	Redis     RedisConfig `yaml:"redis"`
	Kafka     Kafka       `yaml:"kafka"`
	Auth      Auth        `yaml:"auth"`
	Registry  Registry    `yaml:"registry"`
	RateLimit RateLimit   `yaml:"rate_limit"`
	LogLevel  string      `yaml:"log_level"`
}

// Defaults returns the development configuration: in-memory stores, no
// cache and no relay.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Database: Database{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:       10,
			MinIdleConns:   2,
			DialTimeout:    5 * time.Second,
			ReadTimeout:    3 * time.Second,
			WriteTimeout:   3 * time.Second,
			StatusCacheTTL: 5 * time.Minute,
		},
		Kafka: Kafka{
			AuditTopic:    "landregistry.audit",
			Partitions:    3,
			Replication:   1,
			RelayInterval: time.Second,
		},
		Auth: Auth{
			// Use a default for development - should be overridden in production
			JWTSigningKey: "dev-secret-key-change-in-production",
			Issuer:        "landregistry",
			Audience:      "landregistry-api",
			TokenTTL:      time.Hour,
		},
		Registry: Registry{
			MaxLandDocuments: 10,
			TxTimeout:        10 * time.Second,
		},
		RateLimit: RateLimit{
			Requests: 600,
			Window:   time.Minute,
		},
		LogLevel: "info",
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config using getenv for every lookup.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Defaults()
	if path := getenv("LANDREG_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString(getenv, "LANDREG_ADDR", &c.Server.Addr)
	setString(getenv, "DATABASE_URL", &c.Database.URL)
	setString(getenv, "REDIS_URL", &c.Redis.URL)
	setString(getenv, "AUDIT_TOPIC", &c.Kafka.AuditTopic)
	setString(getenv, "JWT_SIGNING_KEY", &c.Auth.JWTSigningKey)
	setString(getenv, "AUDIT_HASH_KEY", &c.Auth.AuditHashKey)
	setString(getenv, "OWNER_ACCOUNT_ID", &c.Registry.OwnerAccountID)
	setString(getenv, "ENGINE_ACCOUNT_ID", &c.Registry.EngineAccountID)
	setString(getenv, "LOG_LEVEL", &c.LogLevel)

	if raw := getenv("KAFKA_BROKERS"); raw != "" {
		c.Kafka.Brokers = splitList(raw)
	}
	if raw := getenv("MAX_LAND_DOCUMENTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("MAX_LAND_DOCUMENTS: %w", err)
		}
		c.Registry.MaxLandDocuments = n
	}
	if raw := getenv("RATE_LIMIT_REQUESTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
		}
		c.RateLimit.Requests = n
	}
	if raw := getenv("STATUS_CACHE_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("STATUS_CACHE_TTL: %w", err)
		}
		c.Redis.StatusCacheTTL = d
	}
	return nil
}

// maxAuditHashKeyLen is the largest BLAKE2b key.
const maxAuditHashKeyLen = 64

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if c.Registry.MaxLandDocuments <= 0 {
		return fmt.Errorf("max land documents must be positive, got %d", c.Registry.MaxLandDocuments)
	}
	if c.Auth.JWTSigningKey == "" {
		return fmt.Errorf("jwt signing key is required")
	}
	if len(c.Auth.AuditHashKey) > maxAuditHashKeyLen {
		return fmt.Errorf("audit hash key must be at most %d bytes, got %d", maxAuditHashKeyLen, len(c.Auth.AuditHashKey))
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive when requests are limited")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		return fmt.Errorf("audit topic is required when kafka brokers are set")
	}
	return nil
}

// RelayEnabled reports whether audit events leave the process.
func (c Config) RelayEnabled() bool {
	return c.Database.URL != "" && len(c.Kafka.Brokers) > 0
}

func setString(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
