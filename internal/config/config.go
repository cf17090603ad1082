package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/deadline"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	Source       string         `mapstructure:"source"`        // CSV file path or http(s) URL
	FallbackFile string         `mapstructure:"fallback_file"` // Used when Source fails
	Timeout      string         `mapstructure:"timeout"`       // Load timeout, e.g. "10s"
	Blackout     BlackoutConfig `mapstructure:"blackout"`
}

// BlackoutConfig is the recurring shutdown window as MM-DD bounds
type BlackoutConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Empty logs to stderr
}

// DefaultsConfig holds values used when the command line omits them
type DefaultsConfig struct {
	ApplicationType string `mapstructure:"application_type"`
}

const envPrefix = "RMA_CALC"

// Load loads configuration from file. A missing file is not an error when
// no explicit path was given; defaults and environment still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rma-calc")
		v.AddConfigPath("/etc/rma-calc")
	}

	// Read environment variables, e.g. RMA_CALC_CALENDAR_SOURCE
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.source", "holidays.csv")
	v.SetDefault("calendar.fallback_file", "")
	v.SetDefault("calendar.timeout", "10s")
	v.SetDefault("calendar.blackout.start", "12-20")
	v.SetDefault("calendar.blackout.end", "01-10")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("defaults.application_type", "non_notified")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.Source == "" {
		return fmt.Errorf("calendar.source is required")
	}
	if _, err := time.ParseDuration(c.Calendar.Timeout); c.Calendar.Timeout != "" && err != nil {
		return fmt.Errorf("calendar.timeout: %w", err)
	}
	if _, err := c.Calendar.GetBlackout(); err != nil {
		return fmt.Errorf("calendar.blackout: %w", err)
	}

	if c.Defaults.ApplicationType != "" {
		if _, err := deadline.ParseApplicationType(c.Defaults.ApplicationType); err != nil {
			return fmt.Errorf("defaults.application_type: %w", err)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	return nil
}

// GetTimeout returns the calendar load timeout
func (c *CalendarConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// GetBlackout returns the configured blackout window
func (c *CalendarConfig) GetBlackout() (calendar.Blackout, error) {
	if c.Blackout.Start == "" && c.Blackout.End == "" {
		return calendar.DefaultBlackout, nil
	}
	return calendar.ParseBlackout(c.Blackout.Start, c.Blackout.End)
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.Source = os.ExpandEnv(c.Calendar.Source)
	c.Calendar.FallbackFile = os.ExpandEnv(c.Calendar.FallbackFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
