package input

import (
	"context"

	"swaglabs-e2e/internal/domain/entity"
)

type ScenarioRunner interface {
	// Run executes the named scenarios in order; no names means all of them.
	Run(ctx context.Context, names ...string) ([]entity.ScenarioResult, error)
	Names() []string
}
