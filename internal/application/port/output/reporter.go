package output

import (
	"context"

	"swaglabs-e2e/internal/domain/entity"
)

// ReporterPort presents scenario progress to the person running the suite.
type ReporterPort interface {
	ShowScenarioStart(ctx context.Context, name, description string)
	ShowScenarioResult(ctx context.Context, result entity.ScenarioResult)
	ShowSummary(ctx context.Context, results []entity.ScenarioResult)
}
