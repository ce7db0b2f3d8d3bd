package scenario

import (
	"context"
	"fmt"
	"strings"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/infrastructure/fixture"
)

const (
	NameValidLogin   = "valid_login_and_logout"
	NameInvalidLogin = "invalid_login"
	NameAddToCart    = "add_to_cart_and_verify"
)

func All(deps Deps) []output.ScenarioPort {
	return []output.ScenarioPort{
		ValidLoginAndLogout(deps),
		InvalidLogin(deps),
		AddToCartAndVerify(deps),
	}
}

func ValidLoginAndLogout(deps Deps) *Scenario {
	return New(NameValidLogin, "standard user logs in, lands on the inventory and logs out", validLoginAndLogout, deps)
}

func InvalidLogin(deps Deps) *Scenario {
	return New(NameInvalidLogin, "wrong password shows the credentials error banner", invalidLogin, deps)
}

func AddToCartAndVerify(deps Deps) *Scenario {
	return New(NameAddToCart, "first product is added to the cart and shown on the cart page", addToCartAndVerify, deps)
}

func login(ctx context.Context, pages *Pages, creds fixture.Credentials) error {
	if err := pages.Login.GoTo(ctx); err != nil {
		return err
	}
	return pages.Login.Login(ctx, creds.Username, creds.Password)
}

func validLoginAndLogout(ctx context.Context, pages *Pages, fixtures *fixture.Fixtures) error {
	creds, err := fixtures.User("standard")
	if err != nil {
		return err
	}
	if err := login(ctx, pages, creds); err != nil {
		return err
	}

	loaded, err := pages.Login.IsInventoryPageLoaded(ctx)
	if err != nil {
		return err
	}
	if err := assertf(loaded, "inventory page not loaded after login"); err != nil {
		return err
	}
	return pages.Login.Logout(ctx)
}

func invalidLogin(ctx context.Context, pages *Pages, fixtures *fixture.Fixtures) error {
	creds, err := fixtures.User("invalid")
	if err != nil {
		return err
	}
	want, err := fixtures.Message("invalid_login")
	if err != nil {
		return err
	}
	if err := login(ctx, pages, creds); err != nil {
		return err
	}

	msg, err := pages.Login.GetErrorMessage(ctx)
	if err != nil {
		return err
	}
	return assertf(strings.Contains(msg, want), "error message %q does not contain %q", msg, want)
}

func addToCartAndVerify(ctx context.Context, pages *Pages, fixtures *fixture.Fixtures) error {
	creds, err := fixtures.User("standard")
	if err != nil {
		return err
	}
	if err := login(ctx, pages, creds); err != nil {
		return err
	}
	loaded, err := pages.Login.IsInventoryPageLoaded(ctx)
	if err != nil {
		return err
	}
	if err := assertf(loaded, "inventory page not loaded after login"); err != nil {
		return err
	}

	buttons, err := pages.Inventory.AddToCartButtonCount(ctx)
	if err != nil {
		return fmt.Errorf("find add to cart buttons: %w", err)
	}
	if err := assertf(buttons > 0, "no add to cart buttons found"); err != nil {
		return err
	}
	if err := pages.Inventory.AddFirstItemToCart(ctx); err != nil {
		return err
	}

	count, err := pages.Cart.GetCartCount(ctx)
	if err != nil {
		return err
	}
	if err := assertf(count == "1", "cart badge shows %q, want \"1\"", count); err != nil {
		return err
	}

	if err := pages.Cart.GoToCart(ctx); err != nil {
		return err
	}
	checks := []struct {
		name  string
		check func(context.Context) (bool, error)
	}{
		{"cart page loaded", pages.Cart.IsCartPageLoaded},
		{"product in cart", pages.Cart.IsProductInCart},
	}
	for _, c := range checks {
		ok, err := c.check(ctx)
		if err != nil {
			return err
		}
		if err := assertf(ok, "%s check failed", c.name); err != nil {
			return err
		}
	}

	name, err := pages.Cart.GetCartItemName(ctx)
	if err != nil {
		return err
	}
	if err := assertf(name != "", "cart item has no name"); err != nil {
		return err
	}
	price, err := pages.Cart.GetCartItemPrice(ctx)
	if err != nil {
		return err
	}
	return assertf(strings.Contains(price, "$"), "cart item price %q has no currency sign", price)
}
