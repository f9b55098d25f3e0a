package demoapp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestLayout_RendersFlash(t *testing.T) {
	var sb strings.Builder
	err := layout("The Internet", &flash{Kind: "error", Message: "<b>nope</b>"}, loginPage()).Render(context.Background(), &sb)
	require.NoError(t, err)

	html := sb.String()
	assert.Contains(t, html, `<div data-alert id="flash" class="flash error">&lt;b&gt;nope&lt;/b&gt;<a href="#" class="close"`)
	assert.Contains(t, html, `<div id="content" class="large-12 columns"><div class="example"><h2>Login Page</h2>`)
	assert.NotContains(t, html, "<b>nope</b>")
}

func TestLayout_WithoutFlash(t *testing.T) {
	var sb strings.Builder
	err := layout("New Window", nil, newWindowPage()).Render(context.Background(), &sb)
	require.NoError(t, err)

	assert.Contains(t, sb.String(), `<div id="flash-messages" class="large-12 columns"></div>`)
	assert.Contains(t, sb.String(), "<title>New Window</title>")
}

func TestLayout_ReturnsWriteErrors(t *testing.T) {
	err := layout("The Internet", nil, homePage()).Render(context.Background(), failingWriter{})
	assert.EqualError(t, err, "connection reset")
}
