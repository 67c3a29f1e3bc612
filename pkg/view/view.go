package view

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	apperrors "github.com/odvcencio/selectsync/pkg/errors"
	"github.com/odvcencio/selectsync/pkg/option"
)

// View owns the trigger element and the panel holding the option list.
type View struct {
	renderer Renderer
	prefix   string

	root    *html.Node
	trigger *goquery.Selection
	panel   *goquery.Selection
	content *goquery.Selection

	visible bool
}

// New builds the trigger from triggerTemplate and an empty, hidden panel.
// A nil renderer uses HTMLRenderer.
func New(renderer Renderer, triggerTemplate, prefix string) (*View, error) {
	if renderer == nil {
		renderer = HTMLRenderer{}
	}

	triggerNode, err := parseTrigger(triggerTemplate)
	if err != nil {
		return nil, err
	}

	panelNode := element(atom.Div, "data-role", "select", "hidden", "")
	if prefix != "" {
		panelNode.Attr = append(panelNode.Attr, html.Attribute{Key: "class", Val: prefix})
	}
	contentNode := element(atom.Ul, AttrRole, RoleContent)
	if c := ClassName(prefix, "content"); c != "" {
		contentNode.Attr = append(contentNode.Attr, html.Attribute{Key: "class", Val: c})
	}
	panelNode.AppendChild(contentNode)

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(triggerNode)
	root.AppendChild(panelNode)

	doc := goquery.NewDocumentFromNode(root)

	v := &View{
		renderer: renderer,
		prefix:   prefix,
		root:     root,
		trigger:  doc.FindNodes(triggerNode),
		panel:    doc.FindNodes(panelNode),
		content:  doc.FindNodes(contentNode),
	}
	v.AddTriggerClass(ClassName(prefix, "trigger"))

	return v, nil
}

func parseTrigger(tpl string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(tpl), context)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeRender, "parse trigger template")
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrCodeRender, "trigger template has no element").
		WithContext("template", tpl)
}

// Render replaces the option entries with a fresh rendering of m.
func (v *View) Render(m option.Model) {
	v.content.Empty()
	v.content.AppendNodes(v.renderer.RenderOptions(m)...)
}

// Options returns the rendered option entries in model order.
func (v *View) Options() *goquery.Selection {
	return v.content.Children()
}

// Len returns the number of rendered options.
func (v *View) Len() int {
	return v.Options().Length()
}

func (v *View) Trigger() *goquery.Selection { return v.trigger }
func (v *View) Panel() *goquery.Selection   { return v.panel }

// RemoveOption drops the rendered entry at index, if present.
func (v *View) RemoveOption(index int) {
	if index < 0 {
		return
	}
	v.Options().Eq(index).Remove()
}

// SetSelected updates the selected attribute and class of every entry in s.
func (v *View) SetSelected(s *goquery.Selection, selected bool) {
	if s == nil || s.Length() == 0 {
		return
	}
	s.SetAttr(AttrSelected, strconv.FormatBool(selected))
	if c := ClassName(v.prefix, "selected"); c != "" {
		if selected {
			s.AddClass(c)
		} else {
			s.RemoveClass(c)
		}
	}
}

// IsDisabled reports whether the rendered entry is marked disabled.
func IsDisabled(h Handle) bool {
	if h == nil {
		return false
	}
	for _, a := range h.Attr {
		if a.Key == AttrDisabled {
			return a.Val == "true"
		}
	}
	return false
}

// ValueOf returns the entry's data-value.
func ValueOf(s *goquery.Selection) string {
	val, _ := s.Attr(AttrValue)
	return val
}

// InnerHTML returns the entry's content markup.
func InnerHTML(s *goquery.Selection) string {
	markup, err := s.Html()
	if err != nil {
		return ""
	}
	return markup
}

// triggerTarget is the trigger-content element when the trigger template has
// one, otherwise the trigger itself.
func (v *View) triggerTarget() *goquery.Selection {
	if tc := v.trigger.Find(`[data-role="` + RoleTriggerContent + `"]`); tc.Length() > 0 {
		return tc
	}
	return v.trigger
}

// SetTriggerHTML fills the trigger preview.
func (v *View) SetTriggerHTML(markup string) {
	v.triggerTarget().SetHtml(markup)
}

// TriggerHTML returns the trigger preview markup.
func (v *View) TriggerHTML() string {
	return InnerHTML(v.triggerTarget())
}

// ItemsMarkup wraps each option's content for the multi-select preview.
func (v *View) ItemsMarkup(items []string) string {
	class := ""
	if c := ClassName(v.prefix, "trigger-item"); c != "" {
		class = ` class="` + html.EscapeString(c) + `"`
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString(`<span data-role="` + RoleTriggerItem + `"` + class + `>`)
		b.WriteString(item)
		b.WriteString(`</span>`)
	}
	return b.String()
}

// AddTriggerClass adds a class to the trigger; empty names are ignored.
func (v *View) AddTriggerClass(name string) {
	if name != "" {
		v.trigger.AddClass(name)
	}
}

// RemoveTriggerClass removes a class from the trigger.
func (v *View) RemoveTriggerClass(name string) {
	if name != "" {
		v.trigger.RemoveClass(name)
	}
}

// HasTriggerClass reports whether the trigger carries a class.
func (v *View) HasTriggerClass(name string) bool {
	return name != "" && v.trigger.HasClass(name)
}

// Visible reports whether the panel is shown.
func (v *View) Visible() bool {
	return v.visible
}

// SetVisible shows or hides the panel.
func (v *View) SetVisible(visible bool) {
	v.visible = visible
	if visible {
		v.panel.RemoveAttr("hidden")
		v.trigger.AddClass(OpenedClass)
	} else {
		v.panel.SetAttr("hidden", "")
		v.trigger.RemoveClass(OpenedClass)
	}
}

// Markup serializes the trigger followed by the panel.
func (v *View) Markup() (string, error) {
	var b strings.Builder
	for c := v.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", apperrors.Wrap(err, apperrors.ErrCodeRender, "render markup")
		}
	}
	return b.String(), nil
}

// Destroy detaches the trigger and panel from the tree.
func (v *View) Destroy() {
	v.content.Empty()
	v.trigger.Remove()
	v.panel.Remove()
	v.visible = false
}
