package pageobject

import (
	"context"
	"strings"

	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/syncengine"
)

// loadedAt reports whether marker is present and the current URL ends with
// suffix. The marker wait absorbs the navigation delay and is bounded by the
// SHORT profile, so a negative answer costs at most its timeout.
func loadedAt(ctx context.Context, base *syncengine.BasePage, marker entity.Locator, suffix string) (bool, error) {
	present, err := base.IsPresent(ctx, marker, entity.WaitShort)
	if err != nil || !present {
		return false, err
	}
	url, err := base.CurrentURL(ctx)
	if err != nil {
		return false, err
	}
	return strings.HasSuffix(url, suffix), nil
}
