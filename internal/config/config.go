package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string        `yaml:"server_port"`
	MySQLDSN      string        `yaml:"mysql_dsn"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPass     string        `yaml:"redis_password"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	RememberTTL   time.Duration `yaml:"remember_ttl"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	LogLevel      string        `yaml:"log_level"`
	SwaggerHost   string        `yaml:"swagger_host"`
	RecentLimit   int           `yaml:"recent_limit"`
	ResetDB       bool          `yaml:"reset_db"`
}

// Defaults returns the configuration used when neither a file nor the
// environment provide a value.
func Defaults() *Config {
	return &Config{
		ServerPort:    "8080",
		MySQLDSN:      "user:password@tcp(localhost:3306)/bookshelf?charset=utf8mb4&parseTime=True&loc=Local",
		RedisAddr:     "localhost:6379",
		SessionSecret: "change-me",
		SessionTTL:    12 * time.Hour,
		RememberTTL:   7 * 24 * time.Hour,
		LogLevel:      "info",
		RecentLimit:   5,
	}
}

// Load builds Config from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment, in that order of precedence.
func Load() (*Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.MySQLDSN = getEnv("MYSQL_DSN", c.MySQLDSN)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)
	c.RememberTTL = getEnvDuration("REMEMBER_TTL", c.RememberTTL)
	c.CookieSecure = getEnvBool("COOKIE_SECURE", c.CookieSecure)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
	c.RecentLimit = getEnvInt("RECENT_LIMIT", c.RecentLimit)
	c.ResetDB = getEnvBool("RESET_DB", c.ResetDB)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
