package output

import "context"

type ScenarioPort interface {
	Name() string
	Description() string
	Run(ctx context.Context) error
}

type ScenarioRegistry interface {
	Register(scenario ScenarioPort)
	Get(name string) (ScenarioPort, bool)
	All() []ScenarioPort
}
