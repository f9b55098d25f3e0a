package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_LaunchArgs(t *testing.T) {
	options := Options{
		Args: []string{"--start-maximized", "--lang=en-US"},
	}

	args := options.launchArgs()

	assert.Contains(t, args, "--disable-save-password-bubble")
	assert.Contains(t, args, "--disable-notifications")
	assert.Contains(t, args, "--lang=en-US")

	var maximized int
	for _, arg := range args {
		if arg == "--start-maximized" {
			maximized++
		}
	}
	assert.Equal(t, 1, maximized, "duplicate args are dropped")
}

func TestOptions_LaunchArgsDoNotAliasDefaults(t *testing.T) {
	args := Options{}.launchArgs()
	args[0] = "--changed"

	assert.Equal(t, "--start-maximized", Options{}.launchArgs()[0])
}

func TestOptions_PersistentContextOptions(t *testing.T) {
	opts := Options{Headless: true, SlowMo: 250 * time.Millisecond}.persistentContextOptions()

	require.NotNil(t, opts.Headless)
	assert.True(t, *opts.Headless)
	require.NotNil(t, opts.NoViewport)
	assert.True(t, *opts.NoViewport)
	assert.ElementsMatch(t, []string{"--enable-automation", "--enable-logging"}, opts.IgnoreDefaultArgs)
	require.NotNil(t, opts.SlowMo)
	assert.Equal(t, 250.0, *opts.SlowMo)

	assert.Nil(t, Options{}.persistentContextOptions().SlowMo)
}

func TestOptions_WithDefaults(t *testing.T) {
	options := Options{}.withDefaults()

	assert.Equal(t, DefaultActionTimeout, options.ActionTimeout)
	assert.Equal(t, DefaultProfileDirPattern, options.ProfileDirPattern)
	assert.NotNil(t, options.Logger)
}

func TestDefaultOptions_HeadlessFromEnv(t *testing.T) {
	t.Setenv("HEADLESS", "false")
	assert.False(t, DefaultOptions().Headless)

	t.Setenv("HEADLESS", "")
	assert.True(t, DefaultOptions().Headless)
}
