package output

import (
	"context"

	"swaglabs-e2e/internal/domain/entity"
)

// SessionPort is the live browser driver handle. Implementations are
// synchronous and report missing or detached nodes with the entity
// sentinels (ErrElementNotFound, ErrStaleElement) so wait loops can tell
// them apart from real failures.
type SessionPort interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	Refresh(ctx context.Context) error
	ExecuteScript(ctx context.Context, js string, args ...any) (any, error)

	// FindElement returns the first match without waiting.
	FindElement(ctx context.Context, loc entity.Locator) (ElementPort, error)
	FindElements(ctx context.Context, loc entity.Locator) ([]ElementPort, error)

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	HTML(ctx context.Context) (string, error)

	Close()
}

// ElementPort is a resolved DOM node. It is only valid until the next
// navigation or re-render.
type ElementPort interface {
	Locator() entity.Locator

	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	Input(ctx context.Context, text string) error
	Text(ctx context.Context) (string, error)

	// Visible reports a non-zero rendered size.
	Visible(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
}
