package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Cache  CacheConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// CacheConfig holds revenue cache settings.
type CacheConfig struct {
	RevenueTTL time.Duration `mapstructure:"revenue_ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the STAYLEDGER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STAYLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "stayledger")
	v.SetDefault("db.password", "stayledger_secret")
	v.SetDefault("db.name", "stayledger_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "stayledger")

	// Cache defaults
	v.SetDefault("cache.revenue_ttl", "300s")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "STAYLEDGER_SERVER_PORT",
		"server.read_timeout":  "STAYLEDGER_SERVER_READ_TIMEOUT",
		"server.write_timeout": "STAYLEDGER_SERVER_WRITE_TIMEOUT",
		"server.environment":   "STAYLEDGER_SERVER_ENVIRONMENT",
		"db.host":              "STAYLEDGER_DB_HOST",
		"db.port":              "STAYLEDGER_DB_PORT",
		"db.user":              "STAYLEDGER_DB_USER",
		"db.password":          "STAYLEDGER_DB_PASSWORD",
		"db.name":              "STAYLEDGER_DB_NAME",
		"db.sslmode":           "STAYLEDGER_DB_SSLMODE",
		"db.max_open":          "STAYLEDGER_DB_MAX_OPEN",
		"db.max_idle":          "STAYLEDGER_DB_MAX_IDLE",
		"redis.addr":           "STAYLEDGER_REDIS_ADDR",
		"redis.password":       "STAYLEDGER_REDIS_PASSWORD",
		"redis.db":             "STAYLEDGER_REDIS_DB",
		"redis.dial_timeout":   "STAYLEDGER_REDIS_DIAL_TIMEOUT",
		"redis.read_timeout":   "STAYLEDGER_REDIS_READ_TIMEOUT",
		"redis.write_timeout":  "STAYLEDGER_REDIS_WRITE_TIMEOUT",
		"jwt.secret":           "STAYLEDGER_JWT_SECRET",
		"jwt.access_expiry":    "STAYLEDGER_JWT_ACCESS_EXPIRY",
		"jwt.issuer":           "STAYLEDGER_JWT_ISSUER",
		"cache.revenue_ttl":    "STAYLEDGER_CACHE_REVENUE_TTL",
		"log.level":            "STAYLEDGER_LOG_LEVEL",
		"log.format":           "STAYLEDGER_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if STAYLEDGER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("STAYLEDGER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		Addr:         v.GetString("redis.addr"),
		Password:     v.GetString("redis.password"),
		DB:           v.GetInt("redis.db"),
		DialTimeout:  v.GetDuration("redis.dial_timeout"),
		ReadTimeout:  v.GetDuration("redis.read_timeout"),
		WriteTimeout: v.GetDuration("redis.write_timeout"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Cache = CacheConfig{
		RevenueTTL: v.GetDuration("cache.revenue_ttl"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
