package scenarios

import (
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
)

func searchAddRemove(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/")); err != nil {
		return err
	}

	links, err := b.FindAll(page.CSS("#content ul li a"))
	if err != nil {
		return err
	}
	require.NotEmpty(t, links)
	for i, link := range links[:min(10, len(links))] {
		text, err := link.InnerText()
		if err != nil {
			return err
		}
		t.Step("Found example", "index", i+1, "text", text)
	}

	if err := b.Click(page.LinkText("Add/Remove Elements")); err != nil {
		return err
	}
	heading, err := b.ReadText(page.TagName("h3"))
	if err != nil {
		return err
	}
	assert.Equal(t, "Add/Remove Elements", heading)

	addButton := page.XPath("//button[text()='Add Element']")
	for range 3 {
		if err := b.Click(addButton); err != nil {
			return err
		}
	}

	added, err := b.FindAll(page.ClassName("added-manually"))
	if err != nil {
		return err
	}
	require.Len(t, added, 3)

	if err := added[0].Click(); err != nil {
		return err
	}
	remaining, err := b.Page().Locator(page.ClassName("added-manually").Selector()).Count()
	if err != nil {
		return err
	}
	assert.Equal(t, 2, remaining)

	if err := b.Navigate(t.URL("/")); err != nil {
		return err
	}
	title, err := b.Title()
	if err != nil {
		return err
	}
	assert.Contains(t, title, "The Internet")
	return nil
}

func formsInputs(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/inputs")); err != nil {
		return err
	}

	number := page.CSS("input[type='number']")
	for _, value := range []string{"12345", "99999"} {
		if err := b.SetText(number, value); err != nil {
			return err
		}
		input, err := b.FindOne(number)
		if err != nil {
			return err
		}
		actual, err := input.InputValue()
		if err != nil {
			return err
		}
		assert.Equal(t, value, actual)
	}
	return nil
}

func formsCheckboxes(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/checkboxes")); err != nil {
		return err
	}

	boxes, err := b.FindAll(page.CSS("#checkboxes input[type='checkbox']"))
	if err != nil {
		return err
	}
	require.Len(t, boxes, 2)

	for i, box := range boxes {
		before, err := box.IsChecked()
		if err != nil {
			return err
		}
		if err := box.Click(); err != nil {
			return err
		}
		after, err := box.IsChecked()
		if err != nil {
			return err
		}
		assert.NotEqual(t, before, after, "checkbox %d should toggle", i+1)
	}
	return nil
}

func formsDropdown(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/dropdown")); err != nil {
		return err
	}

	dropdown, err := b.FindOne(page.ID("dropdown"))
	if err != nil {
		return err
	}

	if _, err := dropdown.SelectOption(playwright.SelectOptionValues{Labels: &[]string{"Option 1"}}); err != nil {
		return err
	}
	value, err := dropdown.InputValue()
	if err != nil {
		return err
	}
	assert.Equal(t, "1", value)

	if _, err := dropdown.SelectOption(playwright.SelectOptionValues{Values: &[]string{"2"}}); err != nil {
		return err
	}
	selected, err := dropdown.Locator("option:checked").InnerText()
	if err != nil {
		return err
	}
	assert.Equal(t, "Option 2", strings.TrimSpace(selected))
	return nil
}

func formsKeyPresses(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/key_presses")); err != nil {
		return err
	}

	target, err := b.FindOne(page.ID("target"))
	if err != nil {
		return err
	}

	keys := []struct {
		key      string
		expected string
	}{
		{"Enter", "ENTER"},
		{"Tab", "TAB"},
		{"Escape", "ESCAPE"},
		{"Space", "SPACE"},
		{"ArrowUp", "UP"},
		{"ArrowDown", "DOWN"},
	}
	for _, k := range keys {
		if err := target.Press(k.key); err != nil {
			return err
		}
		result, err := waitForText(t, "#result", k.expected)
		if err != nil {
			return err
		}
		assert.Equal(t, "You entered: "+k.expected, result)
	}
	return nil
}

func locatorStrategies(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/")); err != nil {
		return err
	}
	for _, loc := range []page.Locator{page.LinkText("Form Authentication"), page.PartialLinkText("Form Auth")} {
		if _, err := b.FindOne(loc); err != nil {
			return err
		}
		t.Step("Found element", "locator", loc.String())
	}

	login := page.NewLoginPage(b)
	if err := login.Open(); err != nil {
		return err
	}

	for _, loc := range []page.Locator{
		page.ID("username"),
		page.Name("username"),
		page.ClassName("radius"),
		page.CSS("#username"),
		page.CSS("input[name='password']"),
		page.CSS("button[type='submit']"),
		page.XPath("//input[@id='username']"),
		page.XPath("//button[@type='submit']"),
	} {
		if _, err := b.FindOne(loc); err != nil {
			return err
		}
		t.Step("Found element", "locator", loc.String())
	}

	heading, err := b.ReadText(page.TagName("h2"))
	if err != nil {
		return err
	}
	assert.Equal(t, page.LoginHeading, heading)

	inputs, err := b.FindAll(page.TagName("input"))
	if err != nil {
		return err
	}
	assert.GreaterOrEqual(t, len(inputs), 2)

	xpathHeading, err := b.ReadText(page.XPath("//h2[contains(text(), 'Login')]"))
	if err != nil {
		return err
	}
	assert.Contains(t, xpathHeading, "Login")

	if err := b.SetText(page.ID("username"), ValidUsername); err != nil {
		return err
	}
	if err := b.SetText(page.XPath("//input[@name='password']"), ValidPassword); err != nil {
		return err
	}
	if err := b.Click(page.CSS("button.radius")); err != nil {
		return err
	}
	if err := b.WaitUntilURLContains("/secure", textWait); err != nil {
		return err
	}
	assert.Contains(t, b.URL(), "/secure")
	return nil
}
