package scenarios

import (
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
)

func waitsDynamicLoading(t *scenario.T) error {
	b := t.Base()

	// Example 2 renders the element after loading, example 1 only reveals it
	for _, path := range []string{"/dynamic_loading/2", "/dynamic_loading/1"} {
		if err := b.Navigate(t.URL(path)); err != nil {
			return err
		}
		if err := b.Click(page.CSS("#start button")); err != nil {
			return err
		}
		if _, err := b.WaitUntilVisible(page.ID("finish"), textWait); err != nil {
			return err
		}
		text, err := b.ReadText(page.CSS("#finish h4"))
		if err != nil {
			return err
		}
		assert.Equal(t, "Hello World!", text, path)
		t.Step("Dynamic content loaded", "path", path)
	}
	return nil
}

func waitsDynamicControls(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/dynamic_controls")); err != nil {
		return err
	}

	checkboxButton := page.CSS("#checkbox-example button")
	if err := b.Click(checkboxButton); err != nil {
		return err
	}
	err := b.Page().Locator(page.ID("checkbox").Selector()).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64(textWait.Milliseconds())),
	})
	if err != nil {
		return err
	}
	message, err := waitForText(t, "#message", "It's gone!")
	if err != nil {
		return err
	}
	assert.Equal(t, "It's gone!", message)

	if _, err := b.WaitUntilClickable(checkboxButton, textWait); err != nil {
		return err
	}
	if err := b.Click(checkboxButton); err != nil {
		return err
	}
	if _, err := b.WaitUntilVisible(page.ID("checkbox"), textWait); err != nil {
		return err
	}

	if err := b.Click(page.CSS("#input-example button")); err != nil {
		return err
	}
	input := page.CSS("#input-example input[type='text']")
	if _, err := b.WaitUntilClickable(input, textWait); err != nil {
		return err
	}
	message, err = waitForText(t, "#message", "It's enabled!")
	if err != nil {
		return err
	}
	assert.Equal(t, "It's enabled!", message)

	enabled, err := b.IsEnabled(input)
	if err != nil {
		return err
	}
	assert.True(t, enabled)
	return nil
}
