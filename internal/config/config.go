package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	AllowedOrigins string
	Database       DatabaseConfig
	OpenAI         OpenAIConfig
	Reminder       ReminderConfig
	Log            LogConfig
}

// DatabaseConfig holds expense store configuration
type DatabaseConfig struct {
	ConnectionString string
	Timeout          time.Duration
}

// OpenAIConfig holds chat model configuration
type OpenAIConfig struct {
	Endpoint                string
	DeploymentName          string
	APIKey                  string
	APIVersion              string
	ManagedIdentityClientID string
	Timeout                 time.Duration
	MaxRounds               int
}

// ReminderConfig holds the pending-approval digest schedule
type ReminderConfig struct {
	Schedule string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
	File  string
}

// Load reads configuration from .env, an optional config file and environment
// variables, in increasing order of precedence. configFile may be empty, in
// which case ./config.yaml is used when present.
func Load(configFile string) (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(v.GetString("app_mode"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	cfg := &Config{
		AppMode:        appMode,
		Port:           v.GetString("port"),
		AllowedOrigins: v.GetString("allowed_origins"),
		Database: DatabaseConfig{
			ConnectionString: strings.TrimSpace(v.GetString("db_connection_string")),
			Timeout:          v.GetDuration("store_timeout"),
		},
		OpenAI: OpenAIConfig{
			Endpoint:                strings.TrimSpace(v.GetString("openai_endpoint")),
			DeploymentName:          strings.TrimSpace(v.GetString("openai_deployment_name")),
			APIKey:                  v.GetString("openai_api_key"),
			APIVersion:              v.GetString("openai_api_version"),
			ManagedIdentityClientID: v.GetString("managed_identity_client_id"),
			Timeout:                 v.GetDuration("chat_timeout"),
			MaxRounds:               v.GetInt("chat_max_rounds"),
		},
		Reminder: ReminderConfig{
			Schedule: strings.TrimSpace(v.GetString("reminder_schedule")),
		},
		Log: LogConfig{
			Level: v.GetString("log_level"),
			File:  v.GetString("log_file"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_mode", "dev")
	v.SetDefault("port", "3000")
	v.SetDefault("allowed_origins", "")
	v.SetDefault("db_connection_string", "")
	v.SetDefault("store_timeout", 15*time.Second)
	v.SetDefault("openai_endpoint", "")
	v.SetDefault("openai_deployment_name", "gpt-4o")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_api_version", "2024-06-01")
	v.SetDefault("managed_identity_client_id", "")
	v.SetDefault("chat_timeout", 60*time.Second)
	v.SetDefault("chat_max_rounds", 8)
	v.SetDefault("reminder_schedule", "30 8 * * 1-5")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

func (c *Config) validate() error {
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("invalid STORE_TIMEOUT: %s", c.Database.Timeout)
	}
	if c.OpenAI.Timeout <= 0 {
		return fmt.Errorf("invalid CHAT_TIMEOUT: %s", c.OpenAI.Timeout)
	}
	if c.OpenAI.MaxRounds < 1 {
		return fmt.Errorf("invalid CHAT_MAX_ROUNDS: %d (must be at least 1)", c.OpenAI.MaxRounds)
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// ChatConfigured reports whether both a model endpoint and deployment are set
func (c *Config) ChatConfigured() bool {
	return c.OpenAI.Endpoint != "" && c.OpenAI.DeploymentName != ""
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:" + c.Port
	}
	return c.AllowedOrigins
}
