//go:build acceptance
// +build acceptance

package acceptance

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
	"github.com/networkteam/pagetour/scenarios"
)

func TestScenarios_AgainstDemoApp(t *testing.T) {
	WithTestApp(t, func(t *testing.T, app *TestApp, bf *BrowserFixture) {
		registry := scenario.NewRegistry()
		scenarios.Register(registry, scenarios.Options{})

		selected, err := registry.Select(scenario.Selection{Names: []string{
			"herokuapp_login",
			"login_page_objects",
			"login_logout",
			"login_invalid",
			"search_add_remove",
			"forms_checkboxes",
			"forms_dropdown",
			"waits_dynamic_loading",
			"alerts_js",
			"windows_multiple",
		}})
		require.NoError(t, err)

		screenshotsDir := filepath.Join(t.TempDir(), "screenshots")
		runner := scenario.NewRunner(bf.Provider, scenario.RunnerOptions{
			Page: page.Options{
				BaseURL:        app.URL,
				Wait:           5 * time.Second,
				PopupWait:      time.Second,
				ScreenshotsDir: screenshotsDir,
			},
			Handler: app.Logger.Handler(),
		})
		t.Cleanup(runner.Close)

		results := runner.Run(context.Background(), selected)
		require.Len(t, results, len(selected))

		for _, result := range results {
			assert.Equal(t, scenario.StatusPassed, result.Status, "%s: %s", result.Scenario, result.Message)
			assert.NotEmpty(t, result.Logs, result.Scenario)
		}
	})
}

func TestScenarios_FailureScreenshot(t *testing.T) {
	WithTestApp(t, func(t *testing.T, app *TestApp, bf *BrowserFixture) {
		failing := scenario.Scenario{
			Name: "expect_secure_area",
			Run: func(t *scenario.T) error {
				if err := t.Base().Navigate(t.URL("/login")); err != nil {
					return err
				}
				heading, err := t.Base().ReadText(page.TagName("h2"))
				if err != nil {
					return err
				}
				assert.Equal(t, page.SecureHeading, heading)
				return nil
			},
		}
		missing := scenario.Scenario{
			Name: "missing_element",
			Run: func(t *scenario.T) error {
				if err := t.Base().Navigate(t.URL("/login")); err != nil {
					return err
				}
				_, err := t.Base().FindOne(page.ID("missing"))
				return err
			},
		}

		screenshotsDir := filepath.Join(t.TempDir(), "screenshots")
		runner := scenario.NewRunner(bf.Provider, scenario.RunnerOptions{
			Page: page.Options{
				BaseURL:        app.URL,
				Wait:           time.Second,
				ScreenshotsDir: screenshotsDir,
			},
			Handler: app.Logger.Handler(),
		})
		t.Cleanup(runner.Close)

		results := runner.Run(context.Background(), []scenario.Scenario{failing, missing})
		require.Len(t, results, 2)

		assert.Equal(t, scenario.StatusFailed, results[0].Status)
		assert.Equal(t, []string{filepath.Join(screenshotsDir, "expect_secure_area_assertion_error.png")}, results[0].Screenshots)
		assert.FileExists(t, results[0].Screenshots[0])

		assert.Equal(t, scenario.StatusErrored, results[1].Status)
		assert.Contains(t, results[1].Message, "timed out")
		assert.Equal(t, []string{filepath.Join(screenshotsDir, "missing_element_error.png")}, results[1].Screenshots)
	})
}
