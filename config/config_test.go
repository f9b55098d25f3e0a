package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HEADLESS", "")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://the-internet.herokuapp.com", cfg.BaseURL)
	assert.Equal(t, "https://demo.opencart.com", cfg.OpenCartURL)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Browser.ActionTimeout)
	assert.Empty(t, cfg.Browser.Args)
	assert.Equal(t, 10*time.Second, cfg.Waits.Default)
	assert.Equal(t, 5*time.Second, cfg.Waits.Popup)
	assert.Equal(t, "screenshots", cfg.Output.ScreenshotsDir)
	assert.Equal(t, "reports", cfg.Output.ReportsDir)
	assert.Equal(t, "reports/history.db", cfg.Output.HistoryPath)
	assert.Equal(t, "Selenium Mastery Project - Test Report", cfg.Report.Title)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
base_url: http://localhost:8080
browser:
  headless: true
  slow_mo: 250ms
  args:
    - --lang=de
waits:
  default: 20s
  popup: 2s
log:
  level: debug
`), 0o644))

	cfg, err := config.Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.Browser.SlowMo)
	assert.Equal(t, []string{"--lang=de"}, cfg.Browser.Args)
	assert.Equal(t, 20*time.Second, cfg.Waits.Default)
	assert.Equal(t, 2*time.Second, cfg.Waits.Popup)
	assert.Equal(t, "screenshots", cfg.Output.ScreenshotsDir)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_HeadedFromEnvironment(t *testing.T) {
	t.Setenv("HEADLESS", "false")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PAGETOUR_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("PAGETOUR_BROWSER_HEADLESS", "true")
	t.Setenv("PAGETOUR_WAITS_DEFAULT", "15s")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", cfg.BaseURL)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 15*time.Second, cfg.Waits.Default)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			BaseURL: "http://localhost",
			Waits:   config.WaitsConfig{Default: 10 * time.Second, Popup: 5 * time.Second},
			Output:  config.OutputConfig{ScreenshotsDir: "screenshots", ReportsDir: "reports"},
			Log:     config.LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		modify  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *config.Config) {}},
		{name: "relative base url", modify: func(c *config.Config) { c.BaseURL = "/login" }, wantErr: "base_url must be an absolute"},
		{name: "bad opencart url", modify: func(c *config.Config) { c.OpenCartURL = "ftp://shop" }, wantErr: "opencart_url must be an absolute"},
		{name: "zero default wait", modify: func(c *config.Config) { c.Waits.Default = 0 }, wantErr: "waits.default"},
		{name: "popup not shorter", modify: func(c *config.Config) { c.Waits.Popup = c.Waits.Default }, wantErr: "waits.popup"},
		{name: "negative slow mo", modify: func(c *config.Config) { c.Browser.SlowMo = -time.Second }, wantErr: "browser.slow_mo"},
		{name: "missing output", modify: func(c *config.Config) { c.Output.ReportsDir = "" }, wantErr: "output."},
		{name: "unknown log level", modify: func(c *config.Config) { c.Log.Level = "verbose" }, wantErr: "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
