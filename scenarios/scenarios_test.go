package scenarios_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/scenario"
	"github.com/networkteam/pagetour/scenarios"
)

func TestRegister(t *testing.T) {
	registry := scenario.NewRegistry()
	scenarios.Register(registry, scenarios.Options{})

	all := registry.All()
	for _, s := range all {
		assert.NotEmpty(t, s.Description, s.Name)
		assert.NotNil(t, s.Run, s.Name)
	}

	smoke, err := registry.Select(scenario.Selection{Tags: []string{scenario.TagSmoke}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"herokuapp_login", "login_logout"}, lo.Map(smoke, func(s scenario.Scenario, _ int) string { return s.Name }))

	invalid, err := registry.Select(scenario.Selection{Names: []string{"login_invalid"}})
	require.NoError(t, err)
	assert.Len(t, invalid, 3)

	offline, err := registry.Select(scenario.Selection{ExcludeTags: []string{scenario.TagExternal}})
	require.NoError(t, err)
	assert.Len(t, offline, len(all)-1)
}
