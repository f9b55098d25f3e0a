// Package scenarios contains the browser scenarios against the-internet demo site.
package scenarios

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/pagetour/scenario"
)

const (
	ValidUsername = "tomsmith"
	ValidPassword = "SuperSecretPassword!"

	// DefaultOpenCartURL is the storefront used by the search scenario.
	DefaultOpenCartURL = "https://demo.opencart.com"

	textWait = 10 * time.Second
)

// Options configures the scenario set.
type Options struct {
	// OpenCartURL is the storefront of the opencart_search scenario.
	// Default: DefaultOpenCartURL
	OpenCartURL string
}

// All returns every scenario in the order they are listed to users.
func All(options Options) []scenario.Scenario {
	if options.OpenCartURL == "" {
		options.OpenCartURL = DefaultOpenCartURL
	}

	scenarios := []scenario.Scenario{
		{Name: "herokuapp_login", Description: "Log in with valid credentials", Tags: []string{scenario.TagSmoke, scenario.TagLogin}, Run: herokuappLogin},
		{Name: "login_page_objects", Description: "Login and failed login through page objects", Tags: []string{scenario.TagLogin}, Run: loginPageObjects},
		{Name: "login_logout", Description: "Log in, dismiss the password popup and log out", Tags: []string{scenario.TagSmoke, scenario.TagLogin}, Run: loginLogout},
	}
	scenarios = append(scenarios, invalidLoginScenarios()...)
	scenarios = append(scenarios,
		scenario.Scenario{Name: "search_add_remove", Description: "Browse examples and add and remove elements", Run: searchAddRemove},
		scenario.Scenario{Name: "forms_inputs", Description: "Type into a number input", Run: formsInputs},
		scenario.Scenario{Name: "forms_checkboxes", Description: "Toggle checkboxes", Run: formsCheckboxes},
		scenario.Scenario{Name: "forms_dropdown", Description: "Select dropdown options by label and value", Run: formsDropdown},
		scenario.Scenario{Name: "forms_key_presses", Description: "Send special keys", Run: formsKeyPresses},
		scenario.Scenario{Name: "locator_strategies", Description: "Find elements with every locator strategy", Run: locatorStrategies},
		scenario.Scenario{Name: "waits_dynamic_loading", Description: "Wait for lazily shown and rendered elements", Run: waitsDynamicLoading},
		scenario.Scenario{Name: "waits_dynamic_controls", Description: "Wait for removed, added and enabled controls", Run: waitsDynamicControls},
		scenario.Scenario{Name: "advanced_drag_and_drop", Description: "Drag column A onto column B", Run: advancedDragAndDrop},
		scenario.Scenario{Name: "advanced_hovers", Description: "Reveal captions by hovering", Run: advancedHovers},
		scenario.Scenario{Name: "alerts_js", Description: "Accept and dismiss alerts, confirms and prompts", Run: alertsJS},
		scenario.Scenario{Name: "upload_files", Description: "Upload text, CSV, JSON and HTML files", Run: uploadFiles},
		scenario.Scenario{Name: "frames_iframe", Description: "Edit content inside an iframe", Run: framesIframe},
		scenario.Scenario{Name: "frames_nested", Description: "Read content of nested frames", Run: framesNested},
		scenario.Scenario{Name: "windows_multiple", Description: "Open, switch and close windows", Run: windowsMultiple},
		scenario.Scenario{Name: "opencart_search", Description: "Search the OpenCart storefront", Tags: []string{scenario.TagExternal}, Run: openCartSearch(options.OpenCartURL)},
	)
	return scenarios
}

// Register adds all scenarios to registry.
func Register(registry *scenario.Registry, options Options) {
	registry.Add(All(options)...)
}

// waitForText waits until the first element matching css contains text and returns its full text.
func waitForText(t *scenario.T, css, text string) (string, error) {
	element := t.Base().Page().Locator(css).Filter(playwright.LocatorFilterOptions{HasText: text}).First()
	err := element.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(textWait.Milliseconds())),
	})
	if err != nil {
		return "", fmt.Errorf("waiting for %q in %s: %w", text, css, err)
	}
	content, err := element.InnerText()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", css, err)
	}
	return strings.TrimSpace(content), nil
}
