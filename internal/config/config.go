package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceAPI       = "api"
	SourceFile      = "file"
	SourceComposite = "composite"
)

// Config represents application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Source  SourceConfig  `mapstructure:"source"`
	Display DisplayConfig `mapstructure:"display"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig represents the backend REST API configuration
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Token    string `mapstructure:"token"`
	TenantID string `mapstructure:"tenant_id"`
	Timeout  string `mapstructure:"timeout"`
	Retries  int    `mapstructure:"retries"`
}

// SourceConfig selects where appointments come from
type SourceConfig struct {
	Type         string `mapstructure:"type"` // "api", "file" or "composite"
	FallbackFile string `mapstructure:"fallback_file"`
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// DisplayConfig represents presentation settings
type DisplayConfig struct {
	Timezone string `mapstructure:"timezone"` // IANA name used to resolve "today"
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.agenda")
		v.AddConfigPath("/etc/agenda")
	}

	setDefaults(v)

	// AGENDA_API_TOKEN overrides api.token, etc.
	v.SetEnvPrefix("agenda")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.retries", 3)
	v.SetDefault("source.type", SourceAPI)
	v.SetDefault("source.cache_ttl", "5m")
	v.SetDefault("display.timezone", "Local")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	sourceType := c.Source.Type
	if sourceType == "" {
		sourceType = SourceAPI
	}

	switch sourceType {
	case SourceAPI:
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required for api source")
		}
	case SourceFile:
		if c.Source.FallbackFile == "" {
			return fmt.Errorf("source.fallback_file is required for file source")
		}
	case SourceComposite:
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required for composite source")
		}
		if c.Source.FallbackFile == "" {
			return fmt.Errorf("source.fallback_file is required for composite source")
		}
	default:
		return fmt.Errorf("source.type must be 'api', 'file' or 'composite', got '%s'", sourceType)
	}

	if c.API.Retries < 0 {
		return fmt.Errorf("api.retries must not be negative")
	}

	if _, err := c.Display.GetLocation(); err != nil {
		return fmt.Errorf("display.timezone: %w", err)
	}

	return nil
}

// GetSourceType returns the source type, defaulting to api
func (c *SourceConfig) GetSourceType() string {
	if c.Type == "" {
		return SourceAPI
	}
	return c.Type
}

// GetCacheTTL returns cache TTL duration
func (c *SourceConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// GetTimeout returns the HTTP timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// GetLocation returns the display timezone
func (c *DisplayConfig) GetLocation() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.API.BaseURL = os.ExpandEnv(c.API.BaseURL)
	c.API.Token = os.ExpandEnv(c.API.Token)
	c.API.TenantID = os.ExpandEnv(c.API.TenantID)
	c.Source.FallbackFile = os.ExpandEnv(c.Source.FallbackFile)
}
