package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/core"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds Gemini API / Vertex AI configuration
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	UseVertexAI bool   `mapstructure:"use_vertexai"`
	Project     string `mapstructure:"project"`
	Location    string `mapstructure:"location"`
	Model       string `mapstructure:"model"`
	APIVersion  string `mapstructure:"api_version"`
	BaseURL     string `mapstructure:"base_url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"` // empty means environment default
}

// envAliases maps config keys to the plain variable names used by earlier
// deployments and by the Google SDKs. The prefixed name is checked first.
var envAliases = map[string][]string{
	"gemini.api_key":      {"API_KEY", "GEMINI_API_KEY"},
	"gemini.use_vertexai": {"GOOGLE_GENAI_USE_VERTEXAI"},
	"gemini.project":      {"GOOGLE_CLOUD_PROJECT"},
	"gemini.location":     {"GOOGLE_CLOUD_LOCATION"},
	"server.port":         {"PORT"},
}

const envPrefix = "BARCODE"

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/barcode-scanner-api/")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env without overriding ones already set
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.use_vertexai", false)
	v.SetDefault("gemini.project", "")
	v.SetDefault("gemini.location", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.api_version", "v1")
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("log.level", "")
}

// bindEnv binds each aliased key to BARCODE_<KEY> followed by its plain names
func bindEnv(v *viper.Viper) error {
	for key, aliases := range envAliases {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := append([]string{key, prefixed}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return err
		}
	}
	return nil
}

// validate validates the configuration
func validate(config *Config) error {
	if !core.IsKnown(config.Server.Environment) {
		return fmt.Errorf("unknown environment: %s", config.Server.Environment)
	}

	if config.Gemini.UseVertexAI {
		if config.Gemini.Project == "" || config.Gemini.Location == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION must be set when using Vertex AI")
		}
	} else if config.Gemini.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (set BARCODE_GEMINI_API_KEY or API_KEY)")
	}

	if strings.TrimSpace(config.Gemini.Model) == "" {
		return fmt.Errorf("Gemini model must not be empty")
	}

	return nil
}
