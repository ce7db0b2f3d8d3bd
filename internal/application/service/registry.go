package service

import (
	"swaglabs-e2e/internal/application/port/output"
)

var _ output.ScenarioRegistry = (*ScenarioRegistryImpl)(nil)

// ScenarioRegistryImpl keeps scenarios in registration order.
type ScenarioRegistryImpl struct {
	scenarios map[string]output.ScenarioPort
	order     []string
}

func NewScenarioRegistry() *ScenarioRegistryImpl {
	return &ScenarioRegistryImpl{
		scenarios: make(map[string]output.ScenarioPort),
	}
}

func (r *ScenarioRegistryImpl) Register(scenario output.ScenarioPort) {
	name := scenario.Name()
	if _, exists := r.scenarios[name]; !exists {
		r.order = append(r.order, name)
	}
	r.scenarios[name] = scenario
}

func (r *ScenarioRegistryImpl) Get(name string) (output.ScenarioPort, bool) {
	scenario, ok := r.scenarios[name]
	return scenario, ok
}

func (r *ScenarioRegistryImpl) All() []output.ScenarioPort {
	result := make([]output.ScenarioPort, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.scenarios[name])
	}
	return result
}
