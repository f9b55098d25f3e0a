package page

import (
	"fmt"
	"strconv"
)

// Strategy is the way a Locator finds elements.
type Strategy string

const (
	ByID              Strategy = "id"
	ByName            Strategy = "name"
	ByClassName       Strategy = "class name"
	ByTagName         Strategy = "tag name"
	ByLinkText        Strategy = "link text"
	ByPartialLinkText Strategy = "partial link text"
	ByCSS             Strategy = "css selector"
	ByXPath           Strategy = "xpath"
)

// Locator identifies UI elements by a strategy and a value. Locators are plain values and never change.
type Locator struct {
	Strategy Strategy
	Value    string
}

func ID(id string) Locator                { return Locator{ByID, id} }
func Name(name string) Locator            { return Locator{ByName, name} }
func ClassName(class string) Locator      { return Locator{ByClassName, class} }
func TagName(tag string) Locator          { return Locator{ByTagName, tag} }
func LinkText(text string) Locator        { return Locator{ByLinkText, text} }
func PartialLinkText(text string) Locator { return Locator{ByPartialLinkText, text} }
func CSS(selector string) Locator         { return Locator{ByCSS, selector} }
func XPath(expr string) Locator           { return Locator{ByXPath, expr} }

// Selector translates the locator into a playwright selector.
func (l Locator) Selector() string {
	switch l.Strategy {
	case ByID:
		return "id=" + l.Value
	case ByName:
		return "css=[name=" + strconv.Quote(l.Value) + "]"
	case ByClassName:
		return "css=." + l.Value
	case ByTagName:
		return "css=" + l.Value
	case ByLinkText:
		return "css=a:text-is(" + strconv.Quote(l.Value) + ")"
	case ByPartialLinkText:
		return "css=a:has-text(" + strconv.Quote(l.Value) + ")"
	case ByXPath:
		return "xpath=" + l.Value
	default:
		return "css=" + l.Value
	}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Value)
}
