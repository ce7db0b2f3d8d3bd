// Package locators holds the locator tables of the Swag Labs pages. The
// tables are package-level values and are never modified.
package locators

import "swaglabs-e2e/internal/domain/entity"

var LoginPage = struct {
	Username     entity.Locator
	Password     entity.Locator
	LoginButton  entity.Locator
	ErrorMessage entity.Locator
	BurgerMenu   entity.Locator
	LogoutLink   entity.Locator
}{
	Username:     entity.ID("user-name"),
	Password:     entity.ID("password"),
	LoginButton:  entity.ID("login-button"),
	ErrorMessage: entity.XPath(`//*[@id="login_button_container"]/div/form/div[3]/h3`),
	BurgerMenu:   entity.ID("react-burger-menu-btn"),
	LogoutLink:   entity.ID("logout_sidebar_link"),
}

var InventoryPage = struct {
	PageTitle        entity.Locator
	InventoryList    entity.Locator
	AddToCartButtons entity.Locator
}{
	PageTitle:        entity.ClassName("title"),
	InventoryList:    entity.ClassName("inventory_list"),
	AddToCartButtons: entity.XPath(`//button[contains(text(),'Add to cart')]`),
}

var CartPage = struct {
	CartIcon  entity.Locator
	CartList  entity.Locator
	CartItem  entity.Locator
	ItemName  entity.Locator
	ItemPrice entity.Locator
	CartBadge entity.Locator
}{
	CartIcon:  entity.ClassName("shopping_cart_link"),
	CartList:  entity.ClassName("cart_list"),
	CartItem:  entity.ClassName("cart_item"),
	ItemName:  entity.ClassName("inventory_item_name"),
	ItemPrice: entity.ClassName("inventory_item_price"),
	CartBadge: entity.ClassName("shopping_cart_badge"),
}
