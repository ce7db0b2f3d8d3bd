// Package syncengine turns asynchronous DOM state into bounded, waitable
// operations. BasePage polls a dispatched condition against the borrowed
// session until it holds or the selected wait profile times out; every
// interaction resolves its element through that loop first.
package syncengine

import (
	"context"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/resilience"
)

const (
	scrollIntoViewJS = `(el) => el.scrollIntoView()`
	highlightJS      = `(el) => { el.style.border = '3px solid red' }`
)

// BasePage is the synchronization core shared by every page object. It
// borrows the session and never closes it.
type BasePage struct {
	session     output.SessionPort
	logger      output.LoggerPort
	clock       Clock
	diagnostics output.DiagnosticsPort
}

type Option func(*BasePage)

func WithLogger(log output.LoggerPort) Option {
	return func(p *BasePage) {
		if log != nil {
			p.logger = log
		}
	}
}

func WithClock(c Clock) Option {
	return func(p *BasePage) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithDiagnostics captures failure artifacts whenever a wait times out.
func WithDiagnostics(d output.DiagnosticsPort) Option {
	return func(p *BasePage) {
		p.diagnostics = d
	}
}

func New(session output.SessionPort, opts ...Option) *BasePage {
	p := &BasePage{
		session: session,
		logger:  nopLogger{},
		clock:   realClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WaitFor polls cond for loc until it holds or the profile times out. Errors
// in the profile's ignored set count as "not yet"; anything else is returned
// at once as a *DriverCommandError.
func (p *BasePage) WaitFor(ctx context.Context, loc entity.Locator, cond entity.Condition, profile ...entity.WaitProfile) (output.ElementPort, error) {
	predicate, err := Dispatch(cond, loc)
	if err != nil {
		return nil, err
	}
	cfg := SelectProfile(profile...)

	return resilience.Timed(p.logger, "wait_for", func() (output.ElementPort, error) {
		return p.poll(ctx, loc, cond, cfg, predicate)
	})
}

func (p *BasePage) poll(ctx context.Context, loc entity.Locator, cond entity.Condition, cfg entity.WaitConfig, predicate Predicate) (output.ElementPort, error) {
	start := p.clock.Now()
	deadline := start.Add(cfg.Timeout)

	var lastErr error
	for {
		el, err := predicate(ctx, p.session)
		switch {
		case err == nil && el != nil:
			return el, nil
		case err != nil && !cfg.Ignores(err):
			return nil, &DriverCommandError{Op: "wait for " + cond.String(), Locator: loc, Err: err}
		case err != nil:
			lastErr = err
		}

		now := p.clock.Now()
		remaining := deadline.Sub(now)
		if remaining <= 0 {
			timeoutErr := &WaitTimeoutError{
				Condition: cond,
				Locator:   loc,
				Profile:   cfg.Profile,
				Timeout:   cfg.Timeout,
				Elapsed:   now.Sub(start),
				LastErr:   lastErr,
			}
			p.reportTimeout(ctx, timeoutErr)
			return nil, timeoutErr
		}

		if err := p.clock.Sleep(ctx, min(cfg.PollInterval, remaining)); err != nil {
			return nil, err
		}
	}
}

func (p *BasePage) reportTimeout(ctx context.Context, timeoutErr *WaitTimeoutError) {
	log := p.logger.WithFields(map[string]any{
		"locator":   timeoutErr.Locator.String(),
		"condition": timeoutErr.Condition.String(),
		"profile":   timeoutErr.Profile.String(),
	})
	log.Debug("wait timed out", "elapsed_s", timeoutErr.Elapsed.Seconds())

	if p.diagnostics == nil {
		return
	}
	dir, err := p.diagnostics.Capture(ctx, p.session, timeoutErr.Condition.String()+"_"+timeoutErr.Locator.Value)
	if err != nil {
		log.Warn("failed to capture diagnostics", "error", err)
		return
	}
	log.Info("diagnostics captured", "dir", dir)
}

type clickOptions struct {
	condition entity.Condition
	profile   []entity.WaitProfile
}

type ClickOption func(*clickOptions)

// WithCondition overrides the default Clickable condition of Click.
func WithCondition(c entity.Condition) ClickOption {
	return func(o *clickOptions) {
		o.condition = c
	}
}

func WithProfile(profile ...entity.WaitProfile) ClickOption {
	return func(o *clickOptions) {
		o.profile = profile
	}
}

// Click waits for loc (Clickable unless overridden) and clicks it. A click
// failure after resolution is not retried.
func (p *BasePage) Click(ctx context.Context, loc entity.Locator, opts ...ClickOption) error {
	o := clickOptions{condition: entity.Clickable}
	for _, opt := range opts {
		opt(&o)
	}

	el, err := p.WaitFor(ctx, loc, o.condition, o.profile...)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return &DriverCommandError{Op: "click", Locator: loc, Err: err}
	}
	p.logger.Debug("clicked", "locator", loc.String())
	return nil
}

// SafeClick is Click that reports a timeout as false instead of an error.
// Other failures are still returned.
func (p *BasePage) SafeClick(ctx context.Context, loc entity.Locator, profile ...entity.WaitProfile) (bool, error) {
	err := p.Click(ctx, loc, WithProfile(profile...))
	switch {
	case err == nil:
		return true, nil
	case IsTimeout(err):
		return false, nil
	}
	return false, err
}

// SetText waits for loc to be visible, clears it and types text. An empty
// text leaves the field empty.
func (p *BasePage) SetText(ctx context.Context, loc entity.Locator, text string, profile ...entity.WaitProfile) error {
	el, err := p.WaitFor(ctx, loc, entity.Visible, profile...)
	if err != nil {
		return err
	}
	if err := el.Clear(ctx); err != nil {
		return &DriverCommandError{Op: "clear", Locator: loc, Err: err}
	}
	if text == "" {
		return nil
	}
	if err := el.Input(ctx, text); err != nil {
		return &DriverCommandError{Op: "input", Locator: loc, Err: err}
	}
	return nil
}

// GetText returns the text of loc once it is present. Visibility is not
// required so hidden status text can be read.
func (p *BasePage) GetText(ctx context.Context, loc entity.Locator, profile ...entity.WaitProfile) (string, error) {
	el, err := p.WaitFor(ctx, loc, entity.Present, profile...)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", &DriverCommandError{Op: "read text", Locator: loc, Err: err}
	}
	return text, nil
}

// IsPresent reports whether loc appears in the DOM within the profile
// timeout. A timeout is false, never an error.
func (p *BasePage) IsPresent(ctx context.Context, loc entity.Locator, profile ...entity.WaitProfile) (bool, error) {
	_, err := p.WaitFor(ctx, loc, entity.Present, profile...)
	switch {
	case err == nil:
		return true, nil
	case IsTimeout(err):
		return false, nil
	}
	return false, err
}

// FindAll waits for at least one match of loc and returns every match.
func (p *BasePage) FindAll(ctx context.Context, loc entity.Locator, profile ...entity.WaitProfile) ([]output.ElementPort, error) {
	if _, err := p.WaitFor(ctx, loc, entity.Present, profile...); err != nil {
		return nil, err
	}
	els, err := p.session.FindElements(ctx, loc)
	if err != nil {
		return nil, &DriverCommandError{Op: "find all", Locator: loc, Err: err}
	}
	return els, nil
}

func (p *BasePage) NavigateTo(ctx context.Context, url string) error {
	p.logger.Info("navigating", "url", url)
	return p.session.Navigate(ctx, url)
}

func (p *BasePage) CurrentURL(ctx context.Context) (string, error) {
	return p.session.CurrentURL(ctx)
}

func (p *BasePage) Title(ctx context.Context) (string, error) {
	title, err := p.session.Title(ctx)
	if err != nil {
		return "", err
	}
	p.logger.Debug("page title", "title", title)
	return title, nil
}

func (p *BasePage) Refresh(ctx context.Context) error {
	return p.session.Refresh(ctx)
}

func (p *BasePage) ScrollIntoView(ctx context.Context, el output.ElementPort) error {
	_, err := p.session.ExecuteScript(ctx, scrollIntoViewJS, el)
	return err
}

// Highlight draws a red border around el. Debug aid only.
func (p *BasePage) Highlight(ctx context.Context, el output.ElementPort) error {
	_, err := p.session.ExecuteScript(ctx, highlightJS, el)
	return err
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Sync() error                                   { return nil }
func (nopLogger) Close() error                                  { return nil }
