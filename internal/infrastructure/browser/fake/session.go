// Package fake is an in-memory browser session for tests. Nodes are matched
// by locator equality, may appear or become visible after a delay measured
// on a manual Clock, and go stale once the page they belong to is replaced.
package fake

import (
	"context"
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"
	"time"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
)

var _ output.SessionPort = (*Session)(nil)

var errClosed = errors.New("fake session closed")

type Node struct {
	Locators []entity.Locator
	Text     string
	Hidden   bool
	Disabled bool
	// AppearAfter delays presence, ShowAfter delays visibility; both are
	// measured from the moment the node is added.
	AppearAfter time.Duration
	ShowAfter   time.Duration
	// StaleLookups makes the next N lookups fail with ErrStaleElement.
	StaleLookups int
	ClickErr     error
	OnClick      func()

	addedAt  time.Time
	detached bool
	clicks   int
}

func (n *Node) Matches(loc entity.Locator) bool {
	return slices.Contains(n.Locators, loc)
}

func (n *Node) Clicks() int {
	return n.clicks
}

type Session struct {
	clock   *Clock
	url     string
	title   string
	nodes   []*Node
	routes  map[string]func()
	scripts []string
	lookups int
	closed  bool
}

func NewSession(clock *Clock) *Session {
	if clock == nil {
		clock = NewClock()
	}
	return &Session{
		clock:  clock,
		url:    "about:blank",
		routes: make(map[string]func()),
	}
}

func (s *Session) Clock() *Clock {
	return s.clock
}

// Route registers the page builder run whenever url is loaded.
func (s *Session) Route(url string, build func()) {
	s.routes[url] = build
}

// Load replaces the current document without going through a route.
func (s *Session) Load(url, title string, nodes ...*Node) {
	s.detachAll()
	s.url = url
	s.title = title
	s.Add(nodes...)
}

func (s *Session) SetTitle(title string) {
	s.title = title
}

func (s *Session) Add(nodes ...*Node) {
	for _, n := range nodes {
		n.addedAt = s.clock.Now()
		n.detached = false
		s.nodes = append(s.nodes, n)
	}
}

func (s *Session) Remove(loc entity.Locator) {
	s.nodes = slices.DeleteFunc(s.nodes, func(n *Node) bool {
		if n.Matches(loc) {
			n.detached = true
			return true
		}
		return false
	})
}

// Node returns the first attached node matching loc, present or not.
func (s *Session) Node(loc entity.Locator) *Node {
	for _, n := range s.nodes {
		if n.Matches(loc) {
			return n
		}
	}
	return nil
}

func (s *Session) Lookups() int {
	return s.lookups
}

func (s *Session) Scripts() []string {
	return s.scripts
}

func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) detachAll() {
	for _, n := range s.nodes {
		n.detached = true
	}
	s.nodes = nil
}

func (s *Session) present(n *Node) bool {
	return !s.clock.Now().Before(n.addedAt.Add(n.AppearAfter))
}

func (s *Session) visible(n *Node) bool {
	return !n.Hidden && !s.clock.Now().Before(n.addedAt.Add(n.ShowAfter))
}

func (s *Session) open(url string) {
	s.detachAll()
	s.url = url
	s.title = ""
	if build, ok := s.routes[url]; ok {
		build()
	}
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if s.closed {
		return errClosed
	}
	s.open(url)
	return nil
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	if s.closed {
		return "", errClosed
	}
	return s.url, nil
}

func (s *Session) Title(ctx context.Context) (string, error) {
	if s.closed {
		return "", errClosed
	}
	return s.title, nil
}

func (s *Session) Refresh(ctx context.Context) error {
	return s.Navigate(ctx, s.url)
}

func (s *Session) ExecuteScript(ctx context.Context, js string, args ...any) (any, error) {
	if s.closed {
		return nil, errClosed
	}
	for _, arg := range args {
		if el, ok := arg.(*Element); ok && el.node.detached {
			return nil, fmt.Errorf("%w: script argument %s", entity.ErrStaleElement, el.loc)
		}
	}
	s.scripts = append(s.scripts, js)
	return nil, nil
}

func (s *Session) FindElement(ctx context.Context, loc entity.Locator) (output.ElementPort, error) {
	els, err := s.find(loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (s *Session) FindElements(ctx context.Context, loc entity.Locator) ([]output.ElementPort, error) {
	return s.find(loc)
}

func (s *Session) find(loc entity.Locator) ([]output.ElementPort, error) {
	if s.closed {
		return nil, errClosed
	}
	s.lookups++

	var result []output.ElementPort
	for _, n := range s.nodes {
		if !n.Matches(loc) || !s.present(n) {
			continue
		}
		if n.StaleLookups > 0 {
			n.StaleLookups--
			return nil, fmt.Errorf("%w: %s", entity.ErrStaleElement, loc)
		}
		result = append(result, &Element{node: n, session: s, loc: loc})
	}
	return result, nil
}

func (s *Session) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if s.closed {
		return nil, errClosed
	}
	return &entity.Screenshot{
		Data:   []byte{0xFF, 0xD8, 0xFF, 0xD9},
		Format: "jpeg",
		Width:  1,
		Height: 1,
	}, nil
}

// HTML renders the present nodes as a flat document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	if s.closed {
		return "", errClosed
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<html><head><title>%s</title></head><body>", html.EscapeString(s.title))
	for _, n := range s.nodes {
		if !s.present(n) {
			continue
		}
		var sel string
		if len(n.Locators) > 0 {
			sel = n.Locators[0].String()
		}
		fmt.Fprintf(&sb, `<div data-locator="%s" data-visible="%t">%s</div>`,
			html.EscapeString(sel), s.visible(n), html.EscapeString(n.Text))
	}
	sb.WriteString("</body></html>")
	return sb.String(), nil
}

func (s *Session) Close() {
	s.closed = true
}

var _ output.ElementPort = (*Element)(nil)

type Element struct {
	node    *Node
	session *Session
	loc     entity.Locator
}

func (e *Element) Locator() entity.Locator {
	return e.loc
}

func (e *Element) check() error {
	if e.session.closed {
		return errClosed
	}
	if e.node.detached {
		return fmt.Errorf("%w: %s", entity.ErrStaleElement, e.loc)
	}
	return nil
}

func (e *Element) Click(ctx context.Context) error {
	if err := e.check(); err != nil {
		return err
	}
	if e.node.ClickErr != nil {
		return e.node.ClickErr
	}
	e.node.clicks++
	if e.node.OnClick != nil {
		e.node.OnClick()
	}
	return nil
}

func (e *Element) Clear(ctx context.Context) error {
	if err := e.check(); err != nil {
		return err
	}
	e.node.Text = ""
	return nil
}

func (e *Element) Input(ctx context.Context, text string) error {
	if err := e.check(); err != nil {
		return err
	}
	e.node.Text += text
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	return e.node.Text, nil
}

func (e *Element) Visible(ctx context.Context) (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	return e.session.visible(e.node), nil
}

func (e *Element) Enabled(ctx context.Context) (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	return !e.node.Disabled, nil
}
