package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/infrastructure/browser/fake"
	"swaglabs-e2e/internal/infrastructure/env"
	"swaglabs-e2e/internal/infrastructure/fixture"
	"swaglabs-e2e/internal/infrastructure/logger"
	"swaglabs-e2e/internal/usecase/scenario"
)

type silentReporter struct{}

func (silentReporter) ShowScenarioStart(context.Context, string, string)         {}
func (silentReporter) ShowScenarioResult(context.Context, entity.ScenarioResult) {}
func (silentReporter) ShowSummary(context.Context, []entity.ScenarioResult)      {}

func testConfig(t *testing.T) Config {
	t.Helper()
	logCfg := logger.DefaultConfig()
	logCfg.Level = "error"

	return Config{
		Log:          logCfg,
		ArtifactDir:  t.TempDir(),
		TestDataPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Retries:      1,
		RetryDelay:   time.Millisecond,
		NewSession: func(context.Context) (output.SessionPort, error) {
			return fake.NewSwagLabs(nil, fake.SwagLabsOptions{}), nil
		},
		Reporter: silentReporter{},
	}
}

func TestNewContainer_RunsAllScenarios(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{scenario.NameValidLogin, scenario.NameInvalidLogin, scenario.NameAddToCart}, c.Runner.Names())

	results, err := c.Runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, entity.ScenarioPassed, res.Status, "%s: %s", res.Name, res.Error)
	}
}

func TestNewContainer_BaseURLOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.BaseURL = "http://localhost:3000/"

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "http://localhost:3000/", c.Fixtures.BaseURL)
}

func TestNewContainer_LoadsFixtureFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.TestDataPath = filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(cfg.TestDataPath, []byte("base_url: http://staging.test/\n"), 0o600))

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "http://staging.test/", c.Fixtures.BaseURL)
}

func TestNewContainer_InvalidFixtureFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.TestDataPath = filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(cfg.TestDataPath, []byte("unknown_key: 1\n"), 0o600))

	_, err := NewContainer(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to load test data")
}

func TestNewContainer_InvalidLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "loud"

	_, err := NewContainer(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to create logger")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BASE_URL", "http://localhost:8080/")
	t.Setenv("HEADLESS", "false")
	t.Setenv("SLOW_MOTION", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "e2e.log")
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("TEST_DATA", "")
	t.Setenv("SCENARIO_RETRIES", "2")

	cfg := ConfigFromEnv(&env.EnvService{})

	assert.Equal(t, "http://localhost:8080/", cfg.BaseURL)
	assert.False(t, cfg.BrowserHeadless)
	assert.Equal(t, 250*time.Millisecond, cfg.BrowserSlowMotion)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "e2e.log", cfg.Log.File)
	assert.Equal(t, "artifacts", cfg.ArtifactDir)
	assert.Equal(t, fixture.DefaultPath, cfg.TestDataPath)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 30*time.Second, cfg.BrowserTimeout)
}
