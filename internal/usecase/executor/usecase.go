package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swaglabs-e2e/internal/application/port/input"
	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/resilience"
	"swaglabs-e2e/internal/syncengine"
	"swaglabs-e2e/internal/usecase/scenario"
)

var _ input.ScenarioRunner = (*UseCase)(nil)

var ErrUnknownScenario = errors.New("unknown scenario")

// UseCase runs registered scenarios one after another. A failing scenario
// does not stop the ones after it.
type UseCase struct {
	scenarios output.ScenarioRegistry
	logger    output.LoggerPort
	retry     resilience.RetryConfig
	reporter  output.ReporterPort
}

func New(
	scenarios output.ScenarioRegistry,
	logger output.LoggerPort,
	retry resilience.RetryConfig,
	reporter output.ReporterPort,
) *UseCase {
	if retry.Permanent == nil {
		retry.Permanent = isPermanent
	}
	return &UseCase{
		scenarios: scenarios,
		logger:    logger,
		retry:     retry,
		reporter:  reporter,
	}
}

// isPermanent keeps assertion, configuration and timeout failures out of
// the retry loop; retries are for lost sessions and similar hiccups.
func isPermanent(err error) bool {
	return errors.Is(err, scenario.ErrAssertion) ||
		syncengine.IsConfigurationError(err) ||
		syncengine.IsTimeout(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (uc *UseCase) Names() []string {
	all := uc.scenarios.All()
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name())
	}
	return names
}

func (uc *UseCase) Run(ctx context.Context, names ...string) ([]entity.ScenarioResult, error) {
	selected, err := uc.resolve(names)
	if err != nil {
		return nil, err
	}

	results := make([]entity.ScenarioResult, 0, len(selected))
	for _, s := range selected {
		if ctx.Err() != nil {
			results = append(results, entity.ScenarioResult{Name: s.Name(), Status: entity.ScenarioSkipped})
			continue
		}
		results = append(results, uc.runOne(ctx, s))
	}

	if uc.reporter != nil {
		uc.reporter.ShowSummary(ctx, results)
	}
	return results, nil
}

func (uc *UseCase) resolve(names []string) ([]output.ScenarioPort, error) {
	if len(names) == 0 {
		return uc.scenarios.All(), nil
	}
	selected := make([]output.ScenarioPort, 0, len(names))
	for _, name := range names {
		s, ok := uc.scenarios.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

func (uc *UseCase) runOne(ctx context.Context, s output.ScenarioPort) entity.ScenarioResult {
	log := uc.logger.WithField("scenario", s.Name())
	log.Info("Scenario started", "description", s.Description())
	if uc.reporter != nil {
		uc.reporter.ShowScenarioStart(ctx, s.Name(), s.Description())
	}

	start := time.Now()
	err := resilience.TimedErr(log, s.Name(), func() error {
		return resilience.RetryErr(ctx, uc.retry, log, s.Run)
	})

	result := entity.ScenarioResult{
		Name:     s.Name(),
		Status:   entity.ScenarioPassed,
		Duration: time.Since(start),
	}
	if err != nil {
		result.Status = entity.ScenarioFailed
		result.Error = err.Error()
		log.Error("Scenario failed", "error", err)
	} else {
		log.Info("Scenario passed", "duration", result.Duration.String())
	}

	if uc.reporter != nil {
		uc.reporter.ShowScenarioResult(ctx, result)
	}
	return result
}
