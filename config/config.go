// Package config loads the configuration of the assistant.
//
// Values come from defaults, then an optional YAML file named by PCA_CONFIG, then the environment.
// A .env file in the working directory is loaded first if it exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/store"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultQueryPaths locate the user query in the webhook payloads of the supported voice platforms.
var DefaultQueryPaths = []string{
	"$.query",
	"$.message.toolCalls[0].function.arguments.query",
	"$.message.functionCall.parameters.query",
}

// Config holds application configuration
type Config struct {
	Port        int       `yaml:"port"`
	LogLevel    string    `yaml:"log_level"`
	LogPretty   bool      `yaml:"log_pretty"`
	DemoAnchor  date.Date `yaml:"-"`
	Account     string    `yaml:"account"`
	StoreDriver string    `yaml:"store"`
	SQLitePath  string    `yaml:"sqlite_path"`
	PostgresURL string    `yaml:"postgres_url"`
	SeedFile    string    `yaml:"seed_file"`
	QueryPaths  []string  `yaml:"query_paths"`
	CORSOrigins []string  `yaml:"cors_origins"`
	GeminiModel string    `yaml:"gemini_model"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:        8080,
		LogLevel:    "info",
		DemoAnchor:  date.DefaultAnchor,
		Account:     "DEMO-001",
		StoreDriver: "memory",
		SQLitePath:  "./data/demo.db",
		QueryPaths:  DefaultQueryPaths,
		CORSOrigins: []string{"*"},
		GeminiModel: "gemini-2.5-flash",
	}
}

// Load reads configuration from the YAML file and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()
	anchor := cfg.DemoAnchor.String()

	if file := os.Getenv("PCA_CONFIG"); file != "" {
		a, err := cfg.readFile(file)
		if err != nil {
			return nil, err
		}
		if a != "" {
			anchor = a
		}
	}

	cfg.Port = getEnvAsInt("PCA_PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogPretty = getEnvAsBool("LOG_PRETTY", cfg.LogPretty)
	anchor = getEnv("PCA_DEMO_ANCHOR", anchor)
	cfg.Account = getEnv("PCA_ACCOUNT", cfg.Account)
	cfg.StoreDriver = getEnv("PCA_STORE", cfg.StoreDriver)
	cfg.SQLitePath = getEnv("PCA_SQLITE_PATH", cfg.SQLitePath)
	cfg.PostgresURL = getEnv("DATABASE_URL", cfg.PostgresURL)
	cfg.SeedFile = getEnv("PCA_SEED_FILE", cfg.SeedFile)
	cfg.QueryPaths = getEnvAsList("PCA_QUERY_PATHS", cfg.QueryPaths)
	cfg.CORSOrigins = getEnvAsList("PCA_CORS_ORIGINS", cfg.CORSOrigins)
	cfg.GeminiModel = getEnv("PCA_GEMINI_MODEL", cfg.GeminiModel)

	var err error
	if cfg.DemoAnchor, err = date.Parse(anchor); err != nil {
		return nil, fmt.Errorf("invalid demo anchor: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile overrides cfg with the values set in the YAML file and returns the raw demo anchor.
func (c *Config) readFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("cannot read config file: %w", err)
	}
	file := struct {
		Config     `yaml:",inline"`
		DemoAnchor string `yaml:"demo_anchor"`
	}{Config: *c}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("cannot parse config file %q: %w", filename, err)
	}
	*c = file.Config
	return file.DemoAnchor, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Account == "" {
		return fmt.Errorf("PCA_ACCOUNT is required")
	}
	switch c.StoreDriver {
	case "memory", "sqlite":
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("%w %q", store.ErrUnknownDriver, c.StoreDriver)
	}
	if len(c.QueryPaths) == 0 {
		return fmt.Errorf("at least one query path is required")
	}
	return nil
}

// Store returns the row store configuration.
func (c *Config) Store() store.Config {
	return store.Config{
		Driver:      c.StoreDriver,
		SQLitePath:  c.SQLitePath,
		PostgresURL: c.PostgresURL,
		SeedFile:    c.SeedFile,
	}
}

// Clock returns the demo clock anchored on the configured date.
func (c *Config) Clock() *date.Clock { return date.NewClock(c.DemoAnchor) }

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsList reads a comma separated list.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}
