package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	CORS   CORSConfig   `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Load reads configuration from an optional YAML file and environment
// variables. A .env file in the working directory is folded into the
// environment first, so both sources use the same variable names.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path:         "tasktree.db",
			MaxOpenConns: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	if path := os.Getenv("TASKTREE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TASKTREE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TASKTREE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKTREE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("TASKTREE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if connsStr := os.Getenv("TASKTREE_DB_MAX_OPEN_CONNS"); connsStr != "" {
		conns, err := strconv.Atoi(connsStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKTREE_DB_MAX_OPEN_CONNS: %w", err)
		}
		cfg.DB.MaxOpenConns = conns
	}
	if level := os.Getenv("TASKTREE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if enabledStr := os.Getenv("TASKTREE_AUTH_ENABLED"); enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKTREE_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	if origins := os.Getenv("TASKTREE_CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = splitOrigins(origins)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
