package scenarios

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
)

const dialogWait = 5 * time.Second

func advancedDragAndDrop(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/drag_and_drop")); err != nil {
		return err
	}

	if err := b.Page().DragAndDrop(page.ID("column-a").Selector(), page.ID("column-b").Selector()); err != nil {
		return err
	}

	first, err := b.ReadText(page.CSS("#column-a header"))
	if err != nil {
		return err
	}
	second, err := b.ReadText(page.CSS("#column-b header"))
	if err != nil {
		return err
	}
	assert.Equal(t, "B", first)
	assert.Equal(t, "A", second)
	return nil
}

func advancedHovers(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/hovers")); err != nil {
		return err
	}

	figures, err := b.FindAll(page.ClassName("figure"))
	if err != nil {
		return err
	}
	require.Len(t, figures, 3)

	for i, figure := range figures {
		if err := figure.Hover(); err != nil {
			return err
		}
		caption := figure.Locator(".figcaption h5")
		if err := caption.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible}); err != nil {
			return err
		}
		text, err := caption.InnerText()
		if err != nil {
			return err
		}
		assert.Equal(t, fmt.Sprintf("name: user%d", i+1), strings.TrimSpace(text))
	}
	return nil
}

func alertsJS(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/javascript_alerts")); err != nil {
		return err
	}

	steps := []struct {
		button  string
		action  browser.DialogAction
		kind    string
		message string
		result  string
	}{
		{"Click for JS Alert", browser.AcceptDialog, "alert", "I am a JS Alert", "You successfully clicked an alert"},
		{"Click for JS Confirm", browser.AcceptDialog, "confirm", "I am a JS Confirm", "You clicked: Ok"},
		{"Click for JS Confirm", browser.DismissDialog, "confirm", "I am a JS Confirm", "You clicked: Cancel"},
		{"Click for JS Prompt", browser.AcceptPrompt("Hello from Selenium Automation!"), "prompt", "I am a JS prompt", "You entered: Hello from Selenium Automation!"},
		{"Click for JS Prompt", browser.DismissDialog, "prompt", "I am a JS prompt", "You entered: null"},
	}

	for _, step := range steps {
		dialog := t.Session().HandleNextDialog(step.action)
		if err := b.Click(page.XPath(fmt.Sprintf("//button[text()='%s']", step.button))); err != nil {
			return err
		}
		if err := dialog.Wait(dialogWait); err != nil {
			return err
		}
		assert.Equal(t, step.kind, dialog.Type)
		assert.Equal(t, step.message, dialog.Message)

		result, err := waitForText(t, "#result", step.result)
		if err != nil {
			return err
		}
		assert.Equal(t, step.result, result)
		t.Step("Handled dialog", "type", dialog.Type, "accepted", step.action.Accept)
	}
	return nil
}

var uploadFixtures = []struct {
	name    string
	content string
}{
	{"test_upload.txt", "This is a test file for upload.\nCreated by pagetour.\n"},
	{"test_data.csv", "name,age,city\nJohn,30,New York\nJane,25,Los Angeles\n"},
	{"test_data.json", `{"name": "Test Data", "items": [1, 2, 3], "active": true}`},
	{"test_page.html", "<html><body><h1>Test HTML File</h1></body></html>"},
}

func uploadFiles(t *scenario.T) error {
	b := t.Base()

	dir, err := t.TempDir()
	if err != nil {
		return err
	}

	for _, fixture := range uploadFixtures {
		name := fixture.name
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(fixture.content), 0o644); err != nil {
			return fmt.Errorf("writing upload fixture: %w", err)
		}

		if err := b.Navigate(t.URL("/upload")); err != nil {
			return err
		}
		input, err := b.FindOne(page.ID("file-upload"))
		if err != nil {
			return err
		}
		inputType, err := input.GetAttribute("type")
		if err != nil {
			return err
		}
		require.Equal(t, "file", inputType)

		if err := input.SetInputFiles(path); err != nil {
			return err
		}
		if err := b.Click(page.ID("file-submit")); err != nil {
			return err
		}

		heading, err := b.ReadText(page.TagName("h3"))
		if err != nil {
			return err
		}
		assert.Equal(t, "File Uploaded!", heading)

		uploaded, err := b.ReadText(page.ID("uploaded-files"))
		if err != nil {
			return err
		}
		assert.Contains(t, uploaded, name)
		t.Step("Uploaded file", "name", name)
	}
	return nil
}

func framesIframe(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/iframe")); err != nil {
		return err
	}

	const content = "Hello from Selenium! This is inside an iframe!"

	editor := b.Page().FrameLocator("#mce_0_ifr").Locator("#tinymce")
	if err := editor.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateAttached}); err != nil {
		return err
	}
	if _, err := editor.Evaluate("(body, html) => { body.innerHTML = '<p>' + html + '</p>' }", content); err != nil {
		return err
	}
	text, err := editor.InnerText()
	if err != nil {
		return err
	}
	assert.Contains(t, text, content)

	heading, err := b.ReadText(page.TagName("h3"))
	if err != nil {
		return err
	}
	assert.Contains(t, heading, "An iFrame containing the TinyMCE WYSIWYG Editor")
	return nil
}

func framesNested(t *scenario.T) error {
	b := t.Base()
	if err := b.Navigate(t.URL("/nested_frames")); err != nil {
		return err
	}

	top := b.Page().FrameLocator("frame[name='frame-top']")
	frames := []struct {
		name    string
		body    playwright.Locator
		content string
	}{
		{"left", top.FrameLocator("frame[name='frame-left']").Locator("body"), "LEFT"},
		{"middle", top.FrameLocator("frame[name='frame-middle']").Locator("#content"), "MIDDLE"},
		{"right", top.FrameLocator("frame[name='frame-right']").Locator("body"), "RIGHT"},
		{"bottom", b.Page().FrameLocator("frame[name='frame-bottom']").Locator("body"), "BOTTOM"},
	}

	for _, frame := range frames {
		text, err := frame.body.InnerText()
		if err != nil {
			return fmt.Errorf("reading %s frame: %w", frame.name, err)
		}
		assert.Equal(t, frame.content, strings.TrimSpace(text), frame.name)
	}
	return nil
}
