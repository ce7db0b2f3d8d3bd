package pageobject

import (
	"context"
	"fmt"

	"swaglabs-e2e/internal/locators"
	"swaglabs-e2e/internal/syncengine"
)

type InventoryPage struct {
	*syncengine.BasePage
}

func NewInventoryPage(base *syncengine.BasePage) *InventoryPage {
	return &InventoryPage{BasePage: base}
}

func (p *InventoryPage) IsLoaded(ctx context.Context) (bool, error) {
	return loadedAt(ctx, p.BasePage, locators.InventoryPage.InventoryList, "/inventory.html")
}

func (p *InventoryPage) PageTitle(ctx context.Context) (string, error) {
	return p.GetText(ctx, locators.InventoryPage.PageTitle)
}

func (p *InventoryPage) AddToCartButtonCount(ctx context.Context) (int, error) {
	buttons, err := p.FindAll(ctx, locators.InventoryPage.AddToCartButtons)
	if err != nil {
		return 0, err
	}
	return len(buttons), nil
}

// AddFirstItemToCart clicks the first "Add to cart" button on the page.
func (p *InventoryPage) AddFirstItemToCart(ctx context.Context) error {
	if err := p.Click(ctx, locators.InventoryPage.AddToCartButtons); err != nil {
		return fmt.Errorf("add first item to cart: %w", err)
	}
	return nil
}
