package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const DefaultConfigFile = "service_conf.json"

// ConfigPathEnvVar overrides the config file path when no --config flag is given.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Port        int            `json:"port" koanf:"port"`
	AdminSecret string         `json:"admin_secret" koanf:"admin_secret"`
	Database    DatabaseConfig `json:"database" koanf:"database"`
	Redis       RedisConfig    `json:"redis" koanf:"redis"`
	Jwt         JwtConfig      `json:"jwt" koanf:"jwt"`
	Log         LogConfig      `json:"log" koanf:"log"`
	Cors        CorsConfig     `json:"cors" koanf:"cors"`
}

type DatabaseConfig struct {
	Url                string `json:"url" koanf:"url"`
	MaxIdleConnections int    `json:"max_idle_connections" koanf:"max_idle_connections"`
	MaxOpenConnections int    `json:"max_open_connections" koanf:"max_open_connections"`
	Debug              bool   `json:"debug" koanf:"debug"`
}

type RedisConfig struct {
	Enabled  bool   `json:"enabled" koanf:"enabled"`
	Host     string `json:"host" koanf:"host"`
	Port     int    `json:"port" koanf:"port"`
	CacheTtl int    `json:"cache_ttl" koanf:"cache_ttl"`
}

type JwtConfig struct {
	Secret  string `json:"secret" koanf:"secret"`
	Timeout int    `json:"timeout" koanf:"timeout"`
}

type LogConfig struct {
	Level  string `json:"level" koanf:"level"`
	Format string `json:"format" koanf:"format"`
}

type CorsConfig struct {
	AllowOrigins string `json:"allow_origins" koanf:"allow_origins"`
}

func defaultConfig() *Config {
	return &Config{
		Port: 3000,
		Database: DatabaseConfig{
			Url:                "sqlite:///tmp/test.db",
			MaxIdleConnections: 2,
			MaxOpenConnections: 10,
		},
		Redis: RedisConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     6379,
			CacheTtl: 300,
		},
		Jwt: JwtConfig{
			Timeout: 900,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Cors: CorsConfig{
			AllowOrigins: "*",
		},
	}
}

// LoadConfig layers the built-in defaults, the JSON config file (when present)
// and the environment, in that order of increasing priority.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path = configPath(path)

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func configPath(path string) string {
	if path != "" {
		return path
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}

	return DefaultConfigFile
}

var envSections = []string{"database", "redis", "jwt", "log", "cors"}

// envTransformFunc maps DATABASE_URL to database.url, JWT_SECRET to jwt.secret and
// so on. Unrelated variables map to "" and are skipped.
func envTransformFunc(s string) string {
	key := strings.ToLower(s)

	for _, section := range envSections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}

	switch key {
	case "port", "admin_secret":
		return key
	}

	return ""
}

func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	if c.Database.Url == "" {
		errs = append(errs, errors.New("database.url is required"))
	}

	if c.Jwt.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}

	if c.Jwt.Timeout <= 0 {
		errs = append(errs, errors.New("jwt.timeout must be positive"))
	}

	if c.Redis.Enabled && c.Redis.Host == "" {
		errs = append(errs, errors.New("redis.host is required when redis is enabled"))
	}

	return errors.Join(errs...)
}

// writeDefaultConfig writes the default configuration to path. An existing file
// is never overwritten.
func writeDefaultConfig(path string) error {
	path = configPath(path)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	defaultData, err := sonic.ConfigStd.MarshalIndent(defaultConfig(), "", "    ")

	if err != nil {
		return fmt.Errorf("failed to marshal json data: %w", err)
	}

	if err := os.WriteFile(path, defaultData, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
