package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"time"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.SessionPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout    = 30 * time.Second
	defaultSlowMotion = 0
	maxScreenshotWide = 1024
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrClosed          = errors.New("browser session closed")
)

// BrowserAdapter is a single-page Chromium session driven through rod.
// Lookups never wait; waiting belongs to the caller.
type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	closed   bool
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	// Timeout bounds navigation and page load.
	Timeout   time.Duration
	NoSandbox bool
	DevTools  bool
	Trace     bool
	// Bin is an explicit browser binary; empty lets the launcher find or download one.
	Bin                     string
	DisableSecurityFeatures bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.DisableSecurityFeatures {
		l = l.Set("disable-web-security").
			Set("allow-running-insecure-content").
			Set("disable-setuid-sandbox")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) pageFor(ctx context.Context) (*rod.Page, error) {
	if !b.IsReady() {
		return nil, ErrClosed
	}
	if ctx == nil {
		return b.page, nil
	}
	return b.page.Context(ctx), nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	page, err := b.pageFor(ctx)
	if err != nil {
		return err
	}
	page = page.Timeout(b.timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL(ctx context.Context) (string, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return "", err
	}
	info, err := page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

func (b *BrowserAdapter) Title(ctx context.Context) (string, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return "", err
	}
	info, err := page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.Title, nil
}

func (b *BrowserAdapter) Refresh(ctx context.Context) error {
	page, err := b.pageFor(ctx)
	if err != nil {
		return err
	}
	page = page.Timeout(b.timeout)
	defer page.CancelTimeout()

	if err := page.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return page.WaitLoad()
}

// ExecuteScript evaluates a JS function such as `(el) => el.click()`.
// Elements returned by FindElement may be passed as arguments.
func (b *BrowserAdapter) ExecuteScript(ctx context.Context, js string, args ...any) (any, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}

	jsArgs := make([]any, 0, len(args))
	for _, arg := range args {
		if el, ok := arg.(*Element); ok {
			jsArgs = append(jsArgs, el.el.Object)
			continue
		}
		jsArgs = append(jsArgs, arg)
	}

	res, err := page.Eval(js, jsArgs...)
	if err != nil {
		return nil, translateError(fmt.Errorf("script failed: %w", err))
	}
	return res.Value.Val(), nil
}

func (b *BrowserAdapter) FindElement(ctx context.Context, loc entity.Locator) (output.ElementPort, error) {
	els, err := b.query(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, loc)
	}
	return &Element{el: els[0], loc: loc}, nil
}

func (b *BrowserAdapter) FindElements(ctx context.Context, loc entity.Locator) ([]output.ElementPort, error) {
	els, err := b.query(ctx, loc)
	if err != nil {
		return nil, err
	}
	result := make([]output.ElementPort, 0, len(els))
	for _, el := range els {
		result = append(result, &Element{el: el, loc: loc})
	}
	return result, nil
}

func (b *BrowserAdapter) query(ctx context.Context, loc entity.Locator) (rod.Elements, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}

	selector, isXPath, err := toSelector(loc)
	if err != nil {
		return nil, err
	}

	var els rod.Elements
	if isXPath {
		els, err = page.ElementsX(selector)
	} else {
		els, err = page.Elements(selector)
	}
	if err != nil {
		return nil, translateError(fmt.Errorf("query %s: %w", loc, err))
	}
	return els, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}

	imgBytes, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotWide {
		img = imaging.Resize(img, maxScreenshotWide, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) HTML(ctx context.Context) (string, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return "", err
	}
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return html, nil
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

var _ output.ElementPort = (*Element)(nil)

type Element struct {
	el  *rod.Element
	loc entity.Locator
}

func (e *Element) Locator() entity.Locator {
	return e.loc
}

func (e *Element) bind(ctx context.Context) *rod.Element {
	if ctx == nil {
		return e.el
	}
	return e.el.Context(ctx)
}

func (e *Element) Click(ctx context.Context) error {
	if err := e.bind(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return translateError(fmt.Errorf("click failed: %w", err))
	}
	return nil
}

func (e *Element) Clear(ctx context.Context) error {
	el := e.bind(ctx)
	if err := el.SelectAllText(); err != nil {
		return translateError(fmt.Errorf("select text failed: %w", err))
	}
	if err := el.Type(input.Backspace); err != nil {
		return translateError(fmt.Errorf("clear failed: %w", err))
	}
	return nil
}

func (e *Element) Input(ctx context.Context, text string) error {
	if err := e.bind(ctx).Input(text); err != nil {
		return translateError(fmt.Errorf("input failed: %w", err))
	}
	return nil
}

// elementTextJS is rod's text helper without the placeholder fallback, so a
// cleared field reads as empty.
const elementTextJS = `() => {
	switch (this.tagName) {
	case "INPUT":
	case "TEXTAREA":
		return this.value
	case "SELECT":
		return Array.from(this.selectedOptions).map(o => o.innerText).join()
	case undefined:
		return this.textContent
	default:
		return this.innerText
	}
}`

func (e *Element) Text(ctx context.Context) (string, error) {
	res, err := e.bind(ctx).Eval(elementTextJS)
	if err != nil {
		return "", translateError(fmt.Errorf("read text failed: %w", err))
	}
	return res.Value.String(), nil
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	visible, err := e.bind(ctx).Visible()
	if err != nil {
		return false, translateError(fmt.Errorf("visibility check failed: %w", err))
	}
	return visible, nil
}

func (e *Element) Enabled(ctx context.Context) (bool, error) {
	disabled, err := e.bind(ctx).Property("disabled")
	if err != nil {
		return false, translateError(fmt.Errorf("enabled check failed: %w", err))
	}
	return !disabled.Bool(), nil
}

func toSelector(loc entity.Locator) (selector string, isXPath bool, err error) {
	value := strings.TrimSpace(loc.Value)
	if value == "" {
		return "", false, fmt.Errorf("%w: empty value for %s", ErrInvalidSelector, loc.Strategy)
	}

	switch loc.Strategy {
	case entity.ByID:
		return fmt.Sprintf("[id=%q]", value), false, nil
	case entity.ByClassName:
		if strings.ContainsAny(value, " \t") {
			return "", false, fmt.Errorf("%w: compound class name %q", ErrInvalidSelector, value)
		}
		return "." + value, false, nil
	case entity.ByName:
		return fmt.Sprintf("[name=%q]", value), false, nil
	case entity.ByTagName, entity.ByCSS:
		return value, false, nil
	case entity.ByXPath:
		return value, true, nil
	case entity.ByLinkText:
		return fmt.Sprintf("//a[normalize-space(.)=%s]", xpathLiteral(value)), true, nil
	}
	return "", false, fmt.Errorf("%w: unsupported strategy %q", ErrInvalidSelector, loc.Strategy)
}

func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https", "file", "about":
		return nil
	}
	return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
}

// translateError maps rod and CDP failures onto the entity sentinels the
// wait loop understands. The original error stays wrapped.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var objErr *rod.ObjectNotFoundError
	if errors.As(err, &objErr) {
		return fmt.Errorf("%w: %w", entity.ErrStaleElement, err)
	}
	var shapeErr *rod.InvisibleShapeError
	if errors.As(err, &shapeErr) {
		return fmt.Errorf("%w: %w", entity.ErrElementNotVisible, err)
	}
	var cdpErr *cdp.Error
	if errors.As(err, &cdpErr) {
		msg := strings.ToLower(cdpErr.Message)
		if strings.Contains(msg, "detached") ||
			strings.Contains(msg, "could not find node") ||
			strings.Contains(msg, "could not find object") ||
			strings.Contains(msg, "cannot find context") ||
			strings.Contains(msg, "context was destroyed") {
			return fmt.Errorf("%w: %w", entity.ErrStaleElement, err)
		}
	}
	return err
}
