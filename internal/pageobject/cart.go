package pageobject

import (
	"context"

	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/locators"
	"swaglabs-e2e/internal/syncengine"
)

type CartPage struct {
	*syncengine.BasePage
}

func NewCartPage(base *syncengine.BasePage) *CartPage {
	return &CartPage{BasePage: base}
}

func (p *CartPage) GetCartCount(ctx context.Context) (string, error) {
	return p.GetText(ctx, locators.CartPage.CartBadge)
}

func (p *CartPage) GoToCart(ctx context.Context) error {
	return p.Click(ctx, locators.CartPage.CartIcon)
}

func (p *CartPage) IsCartPageLoaded(ctx context.Context) (bool, error) {
	return loadedAt(ctx, p.BasePage, locators.CartPage.CartList, "/cart.html")
}

// IsProductInCart reports whether a cart item becomes visible. Only a
// timeout maps to false.
func (p *CartPage) IsProductInCart(ctx context.Context) (bool, error) {
	_, err := p.WaitFor(ctx, locators.CartPage.CartItem, entity.Visible)
	switch {
	case err == nil:
		return true, nil
	case syncengine.IsTimeout(err):
		return false, nil
	}
	return false, err
}

func (p *CartPage) GetCartItemName(ctx context.Context) (string, error) {
	return p.GetText(ctx, locators.CartPage.ItemName)
}

func (p *CartPage) GetCartItemPrice(ctx context.Context) (string, error) {
	return p.GetText(ctx, locators.CartPage.ItemPrice)
}
