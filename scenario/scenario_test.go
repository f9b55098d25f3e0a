package scenario_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/scenario"
)

func noop(*scenario.T) error { return nil }

func names(scenarios []scenario.Scenario) []string {
	return lo.Map(scenarios, func(s scenario.Scenario, _ int) string { return s.Name })
}

func newRegistry() *scenario.Registry {
	registry := scenario.NewRegistry()
	registry.Add(
		scenario.Scenario{Name: "herokuapp_login", Tags: []string{scenario.TagSmoke, scenario.TagLogin}, Run: noop},
		scenario.Scenario{Name: "forms_dropdown", Run: noop},
		scenario.Scenario{Name: "opencart_search", Tags: []string{scenario.TagExternal}, Run: noop},
	)
	registry.Add(scenario.Cases("login_invalid", "Invalid login", []string{scenario.TagLogin},
		[]scenario.Case[[2]string]{
			{Name: "empty", Data: [2]string{"", ""}},
			{Name: "bad_password", Data: [2]string{"tomsmith", "badpassword"}},
		},
		func(t *scenario.T, creds [2]string) error { return nil },
	)...)
	return registry
}

func TestRegistry_Select(t *testing.T) {
	registry := newRegistry()

	tests := []struct {
		name      string
		selection scenario.Selection
		expected  []string
	}{
		{"everything", scenario.Selection{}, []string{"herokuapp_login", "forms_dropdown", "opencart_search", "login_invalid/empty", "login_invalid/bad_password"}},
		{"by tag", scenario.Selection{Tags: []string{scenario.TagSmoke}}, []string{"herokuapp_login"}},
		{"any tag", scenario.Selection{Tags: []string{scenario.TagSmoke, scenario.TagLogin}}, []string{"herokuapp_login", "login_invalid/empty", "login_invalid/bad_password"}},
		{"by case group name", scenario.Selection{Names: []string{"login_invalid"}}, []string{"login_invalid/empty", "login_invalid/bad_password"}},
		{"by case name", scenario.Selection{Names: []string{"login_invalid/empty"}}, []string{"login_invalid/empty"}},
		{"excluded tag", scenario.Selection{ExcludeTags: []string{scenario.TagExternal, scenario.TagLogin}}, []string{"forms_dropdown"}},
		{"names and tags", scenario.Selection{Names: []string{"forms_dropdown", "herokuapp_login"}, Tags: []string{scenario.TagLogin}}, []string{"herokuapp_login"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := registry.Select(tt.selection)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(selected))
		})
	}
}

func TestRegistry_SelectUnknownName(t *testing.T) {
	_, err := newRegistry().Select(scenario.Selection{Names: []string{"login"}})
	assert.ErrorContains(t, err, `unknown scenario "login"`)
}

func TestRegistry_Tags(t *testing.T) {
	assert.Equal(t, []string{"external", "login", "smoke"}, newRegistry().Tags())
}

func TestRegistry_DuplicateName(t *testing.T) {
	registry := newRegistry()
	assert.Panics(t, func() {
		registry.Add(scenario.Scenario{Name: "forms_dropdown", Run: noop})
	})
}

func TestCases_Naming(t *testing.T) {
	scenarios := scenario.Cases("login_invalid", "Invalid login", []string{scenario.TagLogin},
		[]scenario.Case[string]{{Name: "empty", Data: ""}},
		func(t *scenario.T, _ string) error { return nil },
	)

	require.Len(t, scenarios, 1)
	assert.Equal(t, "login_invalid/empty", scenarios[0].Name)
	assert.Equal(t, "Invalid login (empty)", scenarios[0].Description)
	assert.True(t, scenarios[0].HasTag(scenario.TagLogin))
}
