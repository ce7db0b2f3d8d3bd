package entity

import "fmt"

type Strategy string

const (
	ByID        Strategy = "id"
	ByClassName Strategy = "class name"
	ByXPath     Strategy = "xpath"
	ByCSS       Strategy = "css selector"
	ByName      Strategy = "name"
	ByTagName   Strategy = "tag name"
	ByLinkText  Strategy = "link text"
)

func (s Strategy) String() string {
	return string(s)
}

// Locator identifies zero or more DOM nodes. It is compared by value and
// never mutated after construction.
type Locator struct {
	Strategy Strategy
	Value    string
}

func (l Locator) String() string {
	return fmt.Sprintf("(%s, %q)", l.Strategy, l.Value)
}

func ID(v string) Locator        { return Locator{Strategy: ByID, Value: v} }
func ClassName(v string) Locator { return Locator{Strategy: ByClassName, Value: v} }
func XPath(v string) Locator     { return Locator{Strategy: ByXPath, Value: v} }
func CSS(v string) Locator       { return Locator{Strategy: ByCSS, Value: v} }
func Name(v string) Locator      { return Locator{Strategy: ByName, Value: v} }
func TagName(v string) Locator   { return Locator{Strategy: ByTagName, Value: v} }
func LinkText(v string) Locator  { return Locator{Strategy: ByLinkText, Value: v} }
