package syncengine_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/infrastructure/browser/fake"
	"swaglabs-e2e/internal/mocks"
	"swaglabs-e2e/internal/syncengine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	username = entity.ID("user-name")
	submit   = entity.ID("login-button")
	banner   = entity.XPath("//h3[@data-test='error']")
)

func setupEngine(t *testing.T, opts ...syncengine.Option) (*syncengine.BasePage, *fake.Session, *fake.Clock) {
	t.Helper()
	clock := fake.NewClock()
	session := fake.NewSession(clock)
	session.Load("https://example.test/", "Example")

	opts = append([]syncengine.Option{syncengine.WithClock(clock)}, opts...)
	return syncengine.New(session, opts...), session, clock
}

type recordingDiagnostics struct {
	labels []string
	err    error
}

func (d *recordingDiagnostics) Capture(_ context.Context, _ output.SessionPort, label string) (string, error) {
	d.labels = append(d.labels, label)
	if d.err != nil {
		return "", d.err
	}
	return "/tmp/artifacts/" + label, nil
}

func (d *recordingDiagnostics) Snapshot(context.Context, output.SessionPort) (*entity.PageSnapshot, error) {
	return &entity.PageSnapshot{}, nil
}

func TestWaitFor_SatisfiedImmediately(t *testing.T) {
	page, session, clock := setupEngine(t)
	session.Add(&fake.Node{Locators: []entity.Locator{submit}})

	for _, cond := range []entity.Condition{entity.Present, entity.Visible, entity.Clickable} {
		el, err := page.WaitFor(context.Background(), submit, cond)
		require.NoError(t, err, cond.String())
		assert.Equal(t, submit, el.Locator())
	}
	assert.Zero(t, clock.Sleeps(), "no sleep when satisfied at the first poll")
}

func TestWaitFor_PollsUntilElementAppears(t *testing.T) {
	page, session, clock := setupEngine(t)
	session.Add(&fake.Node{Locators: []entity.Locator{banner}, AppearAfter: 3 * time.Second})

	el, err := page.WaitFor(context.Background(), banner, entity.Present)
	require.NoError(t, err)
	require.NotNil(t, el)

	assert.Equal(t, 6, clock.Sleeps())
	assert.Equal(t, 3*time.Second, clock.Slept())
	assert.Equal(t, 7, session.Lookups())
}

func TestWaitFor_WaitsForVisibility(t *testing.T) {
	page, session, clock := setupEngine(t)
	session.Add(&fake.Node{Locators: []entity.Locator{username}, ShowAfter: 1200 * time.Millisecond})

	_, err := page.WaitFor(context.Background(), username, entity.Visible)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, clock.Slept())
}

func TestWaitFor_TimeoutWindow(t *testing.T) {
	for _, profile := range []entity.WaitProfile{entity.WaitDefault, entity.WaitShort, entity.WaitLong, entity.WaitFluent} {
		t.Run(profile.String(), func(t *testing.T) {
			page, _, clock := setupEngine(t)
			cfg := syncengine.SelectProfile(profile)

			_, err := page.WaitFor(context.Background(), banner, entity.Visible, profile)
			require.Error(t, err)

			var timeoutErr *syncengine.WaitTimeoutError
			require.ErrorAs(t, err, &timeoutErr)
			assert.True(t, syncengine.IsTimeout(err))
			assert.GreaterOrEqual(t, timeoutErr.Elapsed, cfg.Timeout)
			assert.Less(t, timeoutErr.Elapsed, cfg.Timeout+cfg.PollInterval)
			assert.Equal(t, clock.Slept(), timeoutErr.Elapsed)
			assert.Equal(t, profile, timeoutErr.Profile)
		})
	}
}

func TestWaitFor_TimeoutMessage(t *testing.T) {
	page, _, _ := setupEngine(t)

	_, err := page.WaitFor(context.Background(), banner, entity.Visible)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "condition 'visible'")
	assert.Contains(t, msg, banner.String())
	assert.Contains(t, msg, "20.00 seconds")
	assert.Contains(t, msg, "DEFAULT")
	assert.ErrorIs(t, err, entity.ErrElementNotFound, "last transient error stays reachable")
}

func TestWaitFor_UnknownConditionFailsBeforePolling(t *testing.T) {
	page, session, clock := setupEngine(t)
	session.Add(&fake.Node{Locators: []entity.Locator{submit}})

	_, err := page.WaitFor(context.Background(), submit, entity.Condition(99))

	assert.True(t, syncengine.IsConfigurationError(err))
	assert.False(t, syncengine.IsTimeout(err))
	assert.Zero(t, session.Lookups())
	assert.Zero(t, clock.Sleeps())
}

func TestWaitFor_UnknownProfileBehavesAsDefault(t *testing.T) {
	page, _, _ := setupEngine(t)

	_, err := page.WaitFor(context.Background(), banner, entity.Present, entity.WaitProfile(7))

	var timeoutErr *syncengine.WaitTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, entity.WaitDefault, timeoutErr.Profile)
	assert.Equal(t, entity.DefaultWaitTimeout, timeoutErr.Elapsed)
}

func TestWaitFor_StaleLookupsAreTransient(t *testing.T) {
	for _, profile := range []entity.WaitProfile{entity.WaitDefault, entity.WaitFluent} {
		t.Run(profile.String(), func(t *testing.T) {
			page, session, clock := setupEngine(t)
			session.Add(&fake.Node{Locators: []entity.Locator{submit}, StaleLookups: 2})

			_, err := page.WaitFor(context.Background(), submit, entity.Clickable, profile)
			require.NoError(t, err)
			assert.Equal(t, 2, clock.Sleeps())
		})
	}
}

func TestWaitFor_NotVisibleIgnoredOnlyByFluent(t *testing.T) {
	ctx := context.Background()

	t.Run("default propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mocks.NewMockSessionPort(ctrl)
		el := mocks.NewMockElementPort(ctrl)
		clock := fake.NewClock()

		session.EXPECT().FindElement(gomock.Any(), username).Return(el, nil)
		el.EXPECT().Visible(gomock.Any()).Return(false, entity.ErrElementNotVisible)

		page := syncengine.New(session, syncengine.WithClock(clock))
		_, err := page.WaitFor(ctx, username, entity.Visible)

		var cmdErr *syncengine.DriverCommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.ErrorIs(t, err, entity.ErrElementNotVisible)
		assert.Zero(t, clock.Sleeps())
	})

	t.Run("fluent retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mocks.NewMockSessionPort(ctrl)
		el := mocks.NewMockElementPort(ctrl)
		clock := fake.NewClock()

		session.EXPECT().FindElement(gomock.Any(), username).Return(el, nil).Times(2)
		gomock.InOrder(
			el.EXPECT().Visible(gomock.Any()).Return(false, entity.ErrElementNotVisible),
			el.EXPECT().Visible(gomock.Any()).Return(true, nil),
		)

		page := syncengine.New(session, syncengine.WithClock(clock))
		got, err := page.WaitFor(ctx, username, entity.Visible, entity.WaitFluent)
		require.NoError(t, err)
		assert.Same(t, el, got)
		assert.Equal(t, entity.FluentPollInterval, clock.Slept())
	})
}

func TestWaitFor_DriverErrorPropagatesImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mocks.NewMockSessionPort(ctrl)
	clock := fake.NewClock()
	connErr := errors.New("websocket: connection reset")

	session.EXPECT().FindElement(gomock.Any(), submit).Return(nil, connErr).Times(1)

	page := syncengine.New(session, syncengine.WithClock(clock))
	_, err := page.WaitFor(context.Background(), submit, entity.Present)

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.False(t, syncengine.IsTimeout(err))
	assert.Zero(t, clock.Sleeps())
}

func TestWaitFor_ContextCancelled(t *testing.T) {
	page, _, clock := setupEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := page.WaitFor(ctx, banner, entity.Present)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, syncengine.IsTimeout(err))
	assert.Zero(t, clock.Sleeps())
}

func TestWaitFor_RealClockHonoursContext(t *testing.T) {
	session := fake.NewSession(nil)
	page := syncengine.New(session)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := page.WaitFor(ctx, banner, entity.Present)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), entity.DefaultPollInterval*2)
}

func TestWaitFor_CapturesDiagnosticsOnTimeout(t *testing.T) {
	diag := &recordingDiagnostics{}
	page, _, _ := setupEngine(t, syncengine.WithDiagnostics(diag))

	_, err := page.WaitFor(context.Background(), banner, entity.Visible, entity.WaitShort)
	require.True(t, syncengine.IsTimeout(err))
	require.Len(t, diag.labels, 1)
	assert.Contains(t, diag.labels[0], "visible")

	diag.err = errors.New("disk full")
	_, err = page.WaitFor(context.Background(), banner, entity.Visible, entity.WaitShort)
	assert.True(t, syncengine.IsTimeout(err), "capture failure must not mask the timeout")
	assert.Len(t, diag.labels, 2)
}

func TestClick(t *testing.T) {
	ctx := context.Background()

	t.Run("clickable element", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		node := &fake.Node{Locators: []entity.Locator{submit}}
		session.Add(node)

		require.NoError(t, page.Click(ctx, submit))
		assert.Equal(t, 1, node.Clicks())
	})

	t.Run("disabled element times out", func(t *testing.T) {
		page, session, clock := setupEngine(t)
		node := &fake.Node{Locators: []entity.Locator{submit}, Disabled: true}
		session.Add(node)

		err := page.Click(ctx, submit, syncengine.WithProfile(entity.WaitShort))
		assert.True(t, syncengine.IsTimeout(err))
		assert.Zero(t, node.Clicks())
		assert.Equal(t, entity.ShortWaitTimeout, clock.Slept())
	})

	t.Run("condition override", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		node := &fake.Node{Locators: []entity.Locator{submit}, Hidden: true}
		session.Add(node)

		require.NoError(t, page.Click(ctx, submit, syncengine.WithCondition(entity.Present)))
		assert.Equal(t, 1, node.Clicks())
	})

	t.Run("click failure is not retried", func(t *testing.T) {
		page, session, clock := setupEngine(t)
		intercepted := errors.New("element click intercepted")
		session.Add(&fake.Node{Locators: []entity.Locator{submit}, ClickErr: intercepted})

		err := page.Click(ctx, submit)

		var cmdErr *syncengine.DriverCommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "click", cmdErr.Op)
		assert.ErrorIs(t, err, intercepted)
		assert.Equal(t, 1, session.Lookups())
		assert.Zero(t, clock.Sleeps())
	})
}

func TestSafeClick(t *testing.T) {
	ctx := context.Background()

	t.Run("absent element is false without error", func(t *testing.T) {
		page, _, clock := setupEngine(t)

		clicked, err := page.SafeClick(ctx, submit, entity.WaitShort)
		require.NoError(t, err)
		assert.False(t, clicked)
		assert.Equal(t, entity.ShortWaitTimeout, clock.Slept())
	})

	t.Run("present element is clicked", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		node := &fake.Node{Locators: []entity.Locator{submit}}
		session.Add(node)

		clicked, err := page.SafeClick(ctx, submit)
		require.NoError(t, err)
		assert.True(t, clicked)
		assert.Equal(t, 1, node.Clicks())
	})

	t.Run("driver failure still surfaces", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		intercepted := errors.New("element click intercepted")
		session.Add(&fake.Node{Locators: []entity.Locator{submit}, ClickErr: intercepted})

		clicked, err := page.SafeClick(ctx, submit)
		assert.False(t, clicked)
		assert.ErrorIs(t, err, intercepted)
	})
}

func TestIsPresent(t *testing.T) {
	ctx := context.Background()

	t.Run("hidden element is present", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		session.Add(&fake.Node{Locators: []entity.Locator{banner}, Hidden: true})

		present, err := page.IsPresent(ctx, banner)
		require.NoError(t, err)
		assert.True(t, present)
	})

	t.Run("absent element is idempotent false", func(t *testing.T) {
		page, session, clock := setupEngine(t)

		for i := range 3 {
			present, err := page.IsPresent(ctx, banner, entity.WaitShort)
			require.NoError(t, err, "attempt %d", i)
			assert.False(t, present)
		}

		url, err := page.CurrentURL(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/", url)
		assert.Nil(t, session.Node(banner))
		assert.Empty(t, session.Scripts())
		assert.Equal(t, 3*entity.ShortWaitTimeout, clock.Slept())
	})

	t.Run("driver failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mocks.NewMockSessionPort(ctrl)
		closed := errors.New("browser has disconnected")
		session.EXPECT().FindElement(gomock.Any(), banner).Return(nil, closed)

		page := syncengine.New(session, syncengine.WithClock(fake.NewClock()))
		present, err := page.IsPresent(ctx, banner)
		assert.False(t, present)
		assert.ErrorIs(t, err, closed)
	})
}

func TestSetText(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces existing text", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		session.Add(&fake.Node{Locators: []entity.Locator{username}, Text: "previous"})

		require.NoError(t, page.SetText(ctx, username, "standard_user"))
		text, err := page.GetText(ctx, username)
		require.NoError(t, err)
		assert.Equal(t, "standard_user", text)
	})

	t.Run("empty text clears", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		session.Add(&fake.Node{Locators: []entity.Locator{username}, Text: "previous"})

		require.NoError(t, page.SetText(ctx, username, ""))
		text, err := page.GetText(ctx, username)
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("hidden field times out", func(t *testing.T) {
		page, session, _ := setupEngine(t)
		session.Add(&fake.Node{Locators: []entity.Locator{username}, Hidden: true})

		err := page.SetText(ctx, username, "x", entity.WaitShort)
		assert.True(t, syncengine.IsTimeout(err))
	})

	t.Run("input failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mocks.NewMockSessionPort(ctrl)
		el := mocks.NewMockElementPort(ctrl)
		typing := errors.New("cannot focus element")

		session.EXPECT().FindElement(gomock.Any(), username).Return(el, nil)
		el.EXPECT().Visible(gomock.Any()).Return(true, nil)
		el.EXPECT().Clear(gomock.Any()).Return(nil)
		el.EXPECT().Input(gomock.Any(), "secret_sauce").Return(typing)

		page := syncengine.New(session, syncengine.WithClock(fake.NewClock()))
		err := page.SetText(ctx, username, "secret_sauce")

		var cmdErr *syncengine.DriverCommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "input", cmdErr.Op)
		assert.ErrorIs(t, err, typing)
	})
}

func TestGetText(t *testing.T) {
	page, session, _ := setupEngine(t)
	session.Add(
		&fake.Node{Locators: []entity.Locator{banner}, Text: "Epic sadface", Hidden: true},
		&fake.Node{Locators: []entity.Locator{submit}},
	)

	text, err := page.GetText(context.Background(), banner)
	require.NoError(t, err)
	assert.Equal(t, "Epic sadface", text)

	text, err = page.GetText(context.Background(), submit)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFindAll(t *testing.T) {
	ctx := context.Background()
	button := entity.XPath("//button[contains(text(),'Add to cart')]")
	page, session, _ := setupEngine(t)
	for range 3 {
		session.Add(&fake.Node{Locators: []entity.Locator{button}})
	}

	els, err := page.FindAll(ctx, button)
	require.NoError(t, err)
	assert.Len(t, els, 3)

	_, err = page.FindAll(ctx, entity.ClassName("missing"), entity.WaitShort)
	assert.True(t, syncengine.IsTimeout(err))
}

func TestSessionPassthroughs(t *testing.T) {
	ctx := context.Background()
	page, session, clock := setupEngine(t)
	session.Route("https://example.test/login", func() {
		session.SetTitle("Login")
		session.Add(&fake.Node{Locators: []entity.Locator{submit}})
	})

	require.NoError(t, page.NavigateTo(ctx, "https://example.test/login"))
	url, err := page.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/login", url)

	title, err := page.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Login", title)

	el, err := page.WaitFor(ctx, submit, entity.Clickable)
	require.NoError(t, err)
	require.NoError(t, page.ScrollIntoView(ctx, el))
	require.NoError(t, page.Highlight(ctx, el))
	assert.Len(t, session.Scripts(), 2)

	require.NoError(t, page.Refresh(ctx))
	assert.ErrorIs(t, page.ScrollIntoView(ctx, el), entity.ErrStaleElement, "refresh replaces the document")
	assert.Zero(t, clock.Sleeps())
}

// Page objects embed *BasePage, so any exported accessor for the session or
// logger would let them bypass the waiting operations.
func TestBasePage_HidesSession(t *testing.T) {
	typ := reflect.TypeOf(&syncengine.BasePage{})
	for _, name := range []string{"Session", "Logger"} {
		_, ok := typ.MethodByName(name)
		assert.False(t, ok, name)
	}
}
