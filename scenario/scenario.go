// Package scenario runs browser scenarios, each in a fresh session, and classifies their outcome.
package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Common tags.
const (
	TagSmoke    = "smoke"
	TagLogin    = "login"
	TagExternal = "external"
)

// Scenario is a named linear procedure against the demo site.
// Run returns an error for unexpected failures; expectations are checked with testify through T.
type Scenario struct {
	Name        string
	Description string
	Tags        []string
	Run         func(t *T) error
}

// HasTag reports whether the scenario carries tag.
func (s Scenario) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Case is one data set of a data-driven scenario.
type Case[D any] struct {
	Name string
	Data D
}

// Cases expands a data-driven scenario into one scenario per case, named "<name>/<case>".
func Cases[D any](name, description string, tags []string, cases []Case[D], run func(t *T, data D) error) []Scenario {
	return lo.Map(cases, func(c Case[D], _ int) Scenario {
		return Scenario{
			Name:        name + "/" + c.Name,
			Description: fmt.Sprintf("%s (%s)", description, c.Name),
			Tags:        tags,
			Run: func(t *T) error {
				return run(t, c.Data)
			},
		}
	})
}

// Registry holds scenarios in registration order.
type Registry struct {
	scenarios []Scenario
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers scenarios. Names must be unique.
func (r *Registry) Add(scenarios ...Scenario) {
	for _, s := range scenarios {
		if s.Name == "" || s.Run == nil {
			panic("scenario needs a name and a run function")
		}
		if _, exists := r.find(s.Name); exists {
			panic(fmt.Sprintf("scenario %q registered twice", s.Name))
		}
		r.scenarios = append(r.scenarios, s)
	}
}

// All returns every registered scenario.
func (r *Registry) All() []Scenario {
	return slices.Clone(r.scenarios)
}

// Tags returns all tags in use, sorted.
func (r *Registry) Tags() []string {
	tags := lo.Uniq(lo.FlatMap(r.scenarios, func(s Scenario, _ int) []string { return s.Tags }))
	slices.Sort(tags)
	return tags
}

// Selection narrows the registered scenarios. Empty fields do not filter.
type Selection struct {
	// Names selects scenarios by name. A data-driven scenario name selects all its cases.
	Names []string
	// Tags selects scenarios carrying any of the tags.
	Tags []string
	// ExcludeTags drops scenarios carrying any of the tags.
	ExcludeTags []string
}

// Select returns the matching scenarios in registration order. Unknown names are an error.
func (r *Registry) Select(selection Selection) ([]Scenario, error) {
	for _, name := range selection.Names {
		if !lo.ContainsBy(r.scenarios, func(s Scenario) bool { return matchesName(s.Name, name) }) {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
	}

	return lo.Filter(r.scenarios, func(s Scenario, _ int) bool {
		if len(selection.Names) > 0 && !lo.ContainsBy(selection.Names, func(name string) bool { return matchesName(s.Name, name) }) {
			return false
		}
		if len(selection.Tags) > 0 && !lo.SomeBy(selection.Tags, s.HasTag) {
			return false
		}
		return !lo.SomeBy(selection.ExcludeTags, s.HasTag)
	}), nil
}

func (r *Registry) find(name string) (Scenario, bool) {
	return lo.Find(r.scenarios, func(s Scenario) bool { return s.Name == name })
}

func matchesName(scenarioName, name string) bool {
	return scenarioName == name || strings.HasPrefix(scenarioName, name+"/")
}
