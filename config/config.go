// Package config loads the settings of the pagetour command from a file, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/networkteam/pagetour/browser"
)

const (
	// EnvPrefix is prepended to environment variables, e.g. PAGETOUR_BASE_URL.
	EnvPrefix = "PAGETOUR"
	// FileName is the config file looked up in the working directory, without extension.
	FileName = "pagetour"
)

type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	OpenCartURL string        `mapstructure:"opencart_url"`
	Browser     BrowserConfig `mapstructure:"browser"`
	Waits       WaitsConfig   `mapstructure:"waits"`
	Output      OutputConfig  `mapstructure:"output"`
	Report      ReportConfig  `mapstructure:"report"`
	Log         LogConfig     `mapstructure:"log"`
}

type BrowserConfig struct {
	Headless      bool          `mapstructure:"headless"`
	SlowMo        time.Duration `mapstructure:"slow_mo"`
	Args          []string      `mapstructure:"args"`
	ActionTimeout time.Duration `mapstructure:"action_timeout"`
}

type WaitsConfig struct {
	Default time.Duration `mapstructure:"default"`
	Popup   time.Duration `mapstructure:"popup"`
}

type OutputConfig struct {
	ScreenshotsDir string `mapstructure:"screenshots_dir"`
	ReportsDir     string `mapstructure:"reports_dir"`
	HistoryPath    string `mapstructure:"history_path"`
}

type ReportConfig struct {
	Title string `mapstructure:"title"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://the-internet.herokuapp.com")
	v.SetDefault("opencart_url", "https://demo.opencart.com")

	v.SetDefault("browser.headless", browser.DefaultOptions().Headless)
	v.SetDefault("browser.slow_mo", "0s")
	v.SetDefault("browser.args", []string{})
	v.SetDefault("browser.action_timeout", "30s")

	v.SetDefault("waits.default", "10s")
	v.SetDefault("waits.popup", "5s")

	v.SetDefault("output.screenshots_dir", "screenshots")
	v.SetDefault("output.reports_dir", "reports")
	v.SetDefault("output.history_path", "reports/history.db")

	v.SetDefault("report.title", "Selenium Mastery Project - Test Report")

	v.SetDefault("log.level", "info")
}

// Load reads configFile, or pagetour.yaml from the working directory if it is empty and present,
// applies environment overrides and validates the result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := validateURL("base_url", c.BaseURL); err != nil {
		return err
	}
	if c.OpenCartURL != "" {
		if err := validateURL("opencart_url", c.OpenCartURL); err != nil {
			return err
		}
	}
	if c.Waits.Default <= 0 {
		return fmt.Errorf("waits.default must be positive")
	}
	if c.Waits.Popup <= 0 || c.Waits.Popup >= c.Waits.Default {
		return fmt.Errorf("waits.popup must be positive and shorter than waits.default")
	}
	if c.Browser.SlowMo < 0 {
		return fmt.Errorf("browser.slow_mo must not be negative")
	}
	if c.Output.ScreenshotsDir == "" || c.Output.ReportsDir == "" {
		return fmt.Errorf("output.screenshots_dir and output.reports_dir are required")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, raw)
	}
	return nil
}
