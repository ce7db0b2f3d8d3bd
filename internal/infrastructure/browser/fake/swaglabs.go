package fake

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/locators"
)

const (
	SwagLabsURL   = "https://www.saucedemo.com/"
	inventoryPath = "inventory.html"
	cartPath      = "cart.html"

	MsgBadCredentials   = "Epic sadface: Username and password do not match any user in this service"
	MsgLockedOut        = "Epic sadface: Sorry, this user has been locked out."
	MsgUsernameRequired = "Epic sadface: Username is required"
	MsgPasswordRequired = "Epic sadface: Password is required"
)

type Product struct {
	Name  string
	Price string
}

var Products = []Product{
	{Name: "Sauce Labs Backpack", Price: "$29.99"},
	{Name: "Sauce Labs Bike Light", Price: "$9.99"},
	{Name: "Sauce Labs Bolt T-Shirt", Price: "$15.99"},
	{Name: "Sauce Labs Fleece Jacket", Price: "$49.99"},
	{Name: "Sauce Labs Onesie", Price: "$7.99"},
	{Name: "Test.allTheThings() T-Shirt (Red)", Price: "$15.99"},
}

// SwagLabsOptions sets how long the simulated site takes to render things.
type SwagLabsOptions struct {
	LoginDelay time.Duration
	ErrorDelay time.Duration
	BadgeDelay time.Duration
	MenuDelay  time.Duration
}

// SwagLabs simulates the saucedemo.com login, inventory and cart pages.
type SwagLabs struct {
	*Session
	opts    SwagLabsOptions
	baseURL string
	cart    []int
}

func NewSwagLabs(clock *Clock, opts SwagLabsOptions) *SwagLabs {
	site := &SwagLabs{
		Session: NewSession(clock),
		opts:    opts,
		baseURL: SwagLabsURL,
	}
	site.Route(site.baseURL, site.loginPage)
	site.Route(site.baseURL+inventoryPath, site.inventoryPage)
	site.Route(site.baseURL+cartPath, site.cartPage)
	return site
}

func (s *SwagLabs) CartSize() int {
	return len(s.cart)
}

func (s *SwagLabs) loginPage() {
	s.SetTitle("Swag Labs")
	s.Add(
		&Node{Locators: []entity.Locator{locators.LoginPage.Username}},
		&Node{Locators: []entity.Locator{locators.LoginPage.Password}},
		&Node{
			Locators: []entity.Locator{locators.LoginPage.LoginButton},
			Text:     "Login",
			OnClick:  s.submitLogin,
		},
	)
}

func (s *SwagLabs) submitLogin() {
	username := s.Node(locators.LoginPage.Username).Text
	password := s.Node(locators.LoginPage.Password).Text

	var msg string
	switch {
	case username == "":
		msg = MsgUsernameRequired
	case password == "":
		msg = MsgPasswordRequired
	case username == "locked_out_user" && password == "secret_sauce":
		msg = MsgLockedOut
	case username == "standard_user" && password == "secret_sauce":
		s.open(s.baseURL + inventoryPath)
		return
	default:
		msg = MsgBadCredentials
	}

	s.Remove(locators.LoginPage.ErrorMessage)
	s.Add(&Node{
		Locators:    []entity.Locator{locators.LoginPage.ErrorMessage},
		Text:        msg,
		AppearAfter: s.opts.ErrorDelay,
	})
}

func (s *SwagLabs) header() {
	s.Add(
		&Node{
			Locators:    []entity.Locator{locators.CartPage.CartIcon},
			AppearAfter: s.opts.LoginDelay,
			OnClick:     func() { s.open(s.baseURL + cartPath) },
		},
		&Node{
			Locators:    []entity.Locator{locators.LoginPage.BurgerMenu},
			Text:        "Open Menu",
			AppearAfter: s.opts.LoginDelay,
			OnClick:     s.openMenu,
		},
	)
	if len(s.cart) > 0 {
		s.Add(&Node{
			Locators:    []entity.Locator{locators.CartPage.CartBadge},
			Text:        strconv.Itoa(len(s.cart)),
			AppearAfter: s.opts.LoginDelay,
		})
	}
}

func (s *SwagLabs) openMenu() {
	if s.Node(locators.LoginPage.LogoutLink) != nil {
		return
	}
	s.Add(&Node{
		Locators:  []entity.Locator{locators.LoginPage.LogoutLink},
		Text:      "Logout",
		ShowAfter: s.opts.MenuDelay,
		OnClick: func() {
			s.cart = nil
			s.open(s.baseURL)
		},
	})
}

func (s *SwagLabs) inventoryPage() {
	s.SetTitle("Swag Labs")
	s.header()
	s.Add(
		&Node{Locators: []entity.Locator{locators.InventoryPage.PageTitle}, Text: "Products", AppearAfter: s.opts.LoginDelay},
		&Node{Locators: []entity.Locator{locators.InventoryPage.InventoryList}, AppearAfter: s.opts.LoginDelay},
	)
	for i := range Products {
		btn := &Node{AppearAfter: s.opts.LoginDelay}
		if s.inCart(i) {
			btn.Text = "Remove"
		} else {
			btn.Text = "Add to cart"
			btn.Locators = []entity.Locator{locators.InventoryPage.AddToCartButtons}
		}
		btn.Locators = append(btn.Locators, buttonID(i, s.inCart(i)))
		btn.OnClick = func() { s.addToCart(i, btn) }
		s.Add(btn)
	}
}

func (s *SwagLabs) addToCart(i int, btn *Node) {
	if s.inCart(i) {
		return
	}
	s.cart = append(s.cart, i)
	btn.Text = "Remove"
	btn.Locators = []entity.Locator{buttonID(i, true)}

	if badge := s.Node(locators.CartPage.CartBadge); badge != nil {
		badge.Text = strconv.Itoa(len(s.cart))
		return
	}
	s.Add(&Node{
		Locators:    []entity.Locator{locators.CartPage.CartBadge},
		Text:        strconv.Itoa(len(s.cart)),
		AppearAfter: s.opts.BadgeDelay,
	})
}

func (s *SwagLabs) cartPage() {
	s.SetTitle("Swag Labs")
	s.header()
	s.Add(
		&Node{Locators: []entity.Locator{locators.InventoryPage.PageTitle}, Text: "Your Cart"},
		&Node{Locators: []entity.Locator{locators.CartPage.CartList}},
	)
	for _, i := range s.cart {
		p := Products[i]
		s.Add(
			&Node{Locators: []entity.Locator{locators.CartPage.CartItem}, Text: fmt.Sprintf("1 %s %s", p.Name, p.Price)},
			&Node{Locators: []entity.Locator{locators.CartPage.ItemName}, Text: p.Name},
			&Node{Locators: []entity.Locator{locators.CartPage.ItemPrice}, Text: p.Price},
		)
	}
}

func (s *SwagLabs) inCart(i int) bool {
	for _, c := range s.cart {
		if c == i {
			return true
		}
	}
	return false
}

func buttonID(i int, inCart bool) entity.Locator {
	slug := strings.NewReplacer(" ", "-", ".", "-", "(", "", ")", "").Replace(strings.ToLower(Products[i].Name))
	if inCart {
		return entity.ID("remove-" + slug)
	}
	return entity.ID("add-to-cart-" + slug)
}
