// Package pageobject expresses Swag Labs business actions on top of the
// synchronization engine. Page objects hold locators and URLs only; every
// state-dependent read or write goes through syncengine.BasePage.
package pageobject

import (
	"context"
	"fmt"

	"swaglabs-e2e/internal/locators"
	"swaglabs-e2e/internal/syncengine"
)

const DefaultBaseURL = "https://www.saucedemo.com/"

type LoginPage struct {
	*syncengine.BasePage
	baseURL string
}

func NewLoginPage(base *syncengine.BasePage, baseURL string) *LoginPage {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &LoginPage{BasePage: base, baseURL: baseURL}
}

func (p *LoginPage) GoTo(ctx context.Context) error {
	return p.NavigateTo(ctx, p.baseURL)
}

func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.SetText(ctx, locators.LoginPage.Username, username); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}
	if err := p.SetText(ctx, locators.LoginPage.Password, password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	if err := p.Click(ctx, locators.LoginPage.LoginButton); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	return nil
}

// IsInventoryPageLoaded waits for the inventory list and then checks the URL.
func (p *LoginPage) IsInventoryPageLoaded(ctx context.Context) (bool, error) {
	return loadedAt(ctx, p.BasePage, locators.InventoryPage.InventoryList, "/inventory.html")
}

func (p *LoginPage) Logout(ctx context.Context) error {
	if err := p.Click(ctx, locators.LoginPage.BurgerMenu); err != nil {
		return fmt.Errorf("open menu: %w", err)
	}
	if err := p.Click(ctx, locators.LoginPage.LogoutLink); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (p *LoginPage) GetErrorMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, locators.LoginPage.ErrorMessage)
}
