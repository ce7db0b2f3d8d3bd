// Package scenario holds the Swag Labs business flows. Each run gets its own
// browser session, mirroring one test per driver.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/infrastructure/fixture"
	"swaglabs-e2e/internal/pageobject"
	"swaglabs-e2e/internal/syncengine"
)

// ErrAssertion marks a flow that ran but observed the wrong page state.
var ErrAssertion = errors.New("assertion failed")

type SessionFactory func(ctx context.Context) (output.SessionPort, error)

type Deps struct {
	NewSession  SessionFactory
	Logger      output.LoggerPort
	Diagnostics output.DiagnosticsPort
	Fixtures    *fixture.Fixtures
	// EngineOptions are appended after the logger and diagnostics options.
	EngineOptions []syncengine.Option
}

// Pages are the page objects of one session, sharing one engine.
type Pages struct {
	Login     *pageobject.LoginPage
	Inventory *pageobject.InventoryPage
	Cart      *pageobject.CartPage
}

type Flow func(ctx context.Context, pages *Pages, fixtures *fixture.Fixtures) error

type Scenario struct {
	name        string
	description string
	flow        Flow
	deps        Deps
}

var _ output.ScenarioPort = (*Scenario)(nil)

func New(name, description string, flow Flow, deps Deps) *Scenario {
	if deps.Fixtures == nil {
		deps.Fixtures = fixture.Default()
	}
	return &Scenario{
		name:        name,
		description: description,
		flow:        flow,
		deps:        deps,
	}
}

func (s *Scenario) Name() string {
	return s.name
}

func (s *Scenario) Description() string {
	return s.description
}

func (s *Scenario) Run(ctx context.Context) error {
	if s.deps.NewSession == nil {
		return fmt.Errorf("scenario %s: no session factory", s.name)
	}
	session, err := s.deps.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.Close()

	opts := []syncengine.Option{syncengine.WithDiagnostics(s.deps.Diagnostics)}
	if s.deps.Logger != nil {
		opts = append(opts, syncengine.WithLogger(s.deps.Logger.WithField("scenario", s.name)))
	}
	opts = append(opts, s.deps.EngineOptions...)

	base := syncengine.New(session, opts...)
	pages := &Pages{
		Login:     pageobject.NewLoginPage(base, s.deps.Fixtures.BaseURL),
		Inventory: pageobject.NewInventoryPage(base),
		Cart:      pageobject.NewCartPage(base),
	}
	return s.flow(ctx, pages, s.deps.Fixtures)
}

func assertf(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}
