package scenarios

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
)

func windowsMultiple(t *scenario.T) error {
	b := t.Base()
	session := t.Session()
	main := session.Page()

	if err := b.Navigate(t.URL("/windows")); err != nil {
		return err
	}
	openWindow := func() error { return b.Click(page.LinkText("Click Here")) }

	opened, err := session.WaitForNewPage(openWindow)
	if err != nil {
		return err
	}
	require.Len(t, session.Pages(), 2)

	if err := session.SwitchTo(opened); err != nil {
		return err
	}
	heading, err := b.ReadText(page.TagName("h3"))
	if err != nil {
		return err
	}
	assert.Equal(t, "New Window", heading)

	if err := opened.Close(); err != nil {
		return err
	}
	if err := session.SwitchTo(main); err != nil {
		return err
	}
	heading, err = b.ReadText(page.TagName("h3"))
	if err != nil {
		return err
	}
	assert.Equal(t, "Opening a new window", heading)

	for range 3 {
		if _, err := session.WaitForNewPage(openWindow); err != nil {
			return err
		}
	}
	require.Len(t, session.Pages(), 4)
	for i, window := range session.Pages() {
		title, err := window.Title()
		if err != nil {
			return err
		}
		t.Step("Open window", "index", i, "url", window.URL(), "title", title)
	}

	if err := session.CloseOthers(main); err != nil {
		return err
	}
	assert.Len(t, session.Pages(), 1)

	scripted, err := session.WaitForNewPage(func() error {
		_, err := main.Evaluate(`url => { window.open(url, '_blank') }`, t.URL("/"))
		return err
	})
	if err != nil {
		return err
	}
	if err := session.SwitchTo(scripted); err != nil {
		return err
	}
	title, err := b.Title()
	if err != nil {
		return err
	}
	assert.Contains(t, title, "The Internet")

	return session.CloseOthers(main)
}
