// Package view is the rendered side of a select widget: the trigger, the
// floating panel and its option entries, kept as an in-memory markup tree so
// selectors and element handles address options the way a page would.
package view

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/odvcencio/selectsync/pkg/option"
)

const (
	AttrRole            = "data-role"
	AttrValue           = "data-value"
	AttrSelected        = "data-selected"
	AttrDefaultSelected = "data-default-selected"
	AttrDisabled        = "data-disabled"

	RoleContent        = "content"
	RoleItem           = "item"
	RoleTriggerContent = "trigger-content"
	RoleTriggerItem    = "trigger-item"

	// SelectedPredicate matches rendered options whose selected flag is set.
	SelectedPredicate = `[data-selected="true"]`

	// OpenedClass marks the trigger while the panel is visible.
	OpenedClass = "ui-select-opened"
)

// Handle is an opaque reference to one rendered option element.
type Handle = *html.Node

// Renderer produces rendered option entries from a model. Output order must
// match model order, and every entry must expose AttrSelected, AttrDisabled
// and AttrValue.
type Renderer interface {
	RenderOptions(m option.Model) []*html.Node
}

// Positioner moves the floating panel next to its anchor.
type Positioner interface {
	Position(anchor *goquery.Selection)
}

// PositionerFunc adapts a function to Positioner.
type PositionerFunc func(anchor *goquery.Selection)

func (f PositionerFunc) Position(anchor *goquery.Selection) { f(anchor) }

// NopPositioner ignores positioning requests.
type NopPositioner struct{}

func (NopPositioner) Position(*goquery.Selection) {}

// ClassName returns prefix-name, or "" when the prefix is empty.
func ClassName(prefix, name string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "-" + name
}

// HTMLRenderer renders each option as an <li data-role="item"> element.
type HTMLRenderer struct{}

func (HTMLRenderer) RenderOptions(m option.Model) []*html.Node {
	nodes := make([]*html.Node, 0, len(m.Options))
	for _, o := range m.Options {
		classes := []string{}
		if c := ClassName(m.ClassPrefix, "item"); c != "" {
			classes = append(classes, c)
		}
		if o.Disabled {
			if c := ClassName(m.ClassPrefix, "item-disabled"); c != "" {
				classes = append(classes, c)
			}
		}

		attrs := []string{
			AttrRole, RoleItem,
			AttrValue, o.Value,
			AttrSelected, strconv.FormatBool(o.Selected),
			AttrDefaultSelected, strconv.FormatBool(o.DefaultSelected),
			AttrDisabled, strconv.FormatBool(o.Disabled),
		}
		if len(classes) > 0 {
			attrs = append(attrs, "class", strings.Join(classes, " "))
		}

		li := element(atom.Li, attrs...)
		li.AppendChild(&html.Node{Type: html.TextNode, Data: o.Text})
		nodes = append(nodes, li)
	}
	return nodes
}

// element builds an element node from alternating attribute keys and values.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}
