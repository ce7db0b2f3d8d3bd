package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"swaglabs-e2e/internal/application/port/input"
	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/application/service"
	"swaglabs-e2e/internal/infrastructure/browser/rod"
	"swaglabs-e2e/internal/infrastructure/diagnostics"
	"swaglabs-e2e/internal/infrastructure/fixture"
	"swaglabs-e2e/internal/infrastructure/logger"
	"swaglabs-e2e/internal/infrastructure/userinteraction"
	"swaglabs-e2e/internal/resilience"
	"swaglabs-e2e/internal/usecase/executor"
	"swaglabs-e2e/internal/usecase/scenario"
)

type Container struct {
	Logger    output.LoggerPort
	Fixtures  *fixture.Fixtures
	Scenarios output.ScenarioRegistry
	Runner    input.ScenarioRunner
}

type Config struct {
	BaseURL string

	BrowserHeadless   bool
	BrowserSlowMotion time.Duration
	BrowserTimeout    time.Duration
	BrowserBin        string
	BrowserNoSandbox  bool

	Log          logger.Config
	ArtifactDir  string
	TestDataPath string

	Retries    int
	RetryDelay time.Duration

	// NewSession replaces the Chromium session factory, e.g. in tests.
	NewSession scenario.SessionFactory
	// Reporter defaults to a console reporter on stdout.
	Reporter output.ReporterPort
}

// ConfigFromEnv reads the runner settings from the environment.
func ConfigFromEnv(env output.ConfigPort) Config {
	logCfg := logger.DefaultConfig()
	logCfg.Level = env.GetWithDefault("LOG_LEVEL", logCfg.Level)
	logCfg.Format = env.GetWithDefault("LOG_FORMAT", logCfg.Format)
	logCfg.File = env.Get("LOG_FILE")

	return Config{
		BaseURL:           env.Get("BASE_URL"),
		BrowserHeadless:   env.GetBool("HEADLESS", true),
		BrowserSlowMotion: env.GetDuration("SLOW_MOTION", 0),
		BrowserTimeout:    env.GetDuration("BROWSER_TIMEOUT", 30*time.Second),
		BrowserBin:        env.Get("BROWSER_BIN"),
		BrowserNoSandbox:  env.GetBool("NO_SANDBOX", false),
		Log:               logCfg,
		ArtifactDir:       env.GetWithDefault("ARTIFACT_DIR", "artifacts"),
		TestDataPath:      env.GetWithDefault("TEST_DATA", fixture.DefaultPath),
		Retries:           env.GetInt("SCENARIO_RETRIES", 0),
		RetryDelay:        env.GetDuration("SCENARIO_RETRY_DELAY", resilience.DefaultRetryDelay),
	}
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	fixtures, err := loadFixtures(cfg.TestDataPath, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	if cfg.BaseURL != "" {
		fixtures.BaseURL = cfg.BaseURL
	}

	newSession := cfg.NewSession
	if newSession == nil {
		newSession = chromiumSessions(cfg)
	}

	var recorder output.DiagnosticsPort
	if cfg.ArtifactDir != "" {
		recorder = diagnostics.NewRecorder(cfg.ArtifactDir, log)
	}

	deps := scenario.Deps{
		NewSession:  newSession,
		Logger:      log,
		Diagnostics: recorder,
		Fixtures:    fixtures,
	}
	scenarios := service.NewScenarioRegistry()
	for _, s := range scenario.All(deps) {
		scenarios.Register(s)
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = userinteraction.NewConsoleReporter()
	}
	retry := resilience.RetryConfig{Retries: cfg.Retries, Delay: cfg.RetryDelay}

	return &Container{
		Logger:    log,
		Fixtures:  fixtures,
		Scenarios: scenarios,
		Runner:    executor.New(scenarios, log, retry, reporter),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func loadFixtures(path string, log output.LoggerPort) (*fixture.Fixtures, error) {
	if path == "" {
		return fixture.Default(), nil
	}
	fixtures, err := fixture.LoadFixtures(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("Test data file not found, using built-in fixtures", "path", path)
		return fixture.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test data: %w", err)
	}
	return fixtures, nil
}

func chromiumSessions(cfg Config) scenario.SessionFactory {
	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	browserCfg.SlowMotion = cfg.BrowserSlowMotion
	browserCfg.Timeout = cfg.BrowserTimeout
	browserCfg.Bin = cfg.BrowserBin
	browserCfg.NoSandbox = cfg.BrowserNoSandbox

	return func(ctx context.Context) (output.SessionPort, error) {
		adapter, err := rod.NewBrowserAdapter(ctx, browserCfg)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
}
