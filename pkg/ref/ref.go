// Package ref resolves the different ways a caller can name an option
// (position, selector, element handle) to option indexes.
package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Kind identifies which variant a Reference holds.
type Kind uint8

const (
	KindIndex Kind = iota + 1
	KindSelector
	KindHandle
	KindHandleList
)

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindSelector:
		return "selector"
	case KindHandle:
		return "handle"
	case KindHandleList:
		return "handle_list"
	default:
		return "unknown"
	}
}

// Reference names one or more options. The zero value is not a valid
// reference; build one with ByIndex, BySelector, ByHandle or ByHandleList.
type Reference struct {
	kind     Kind
	index    int
	selector string
	handles  []*html.Node
}

// ByIndex refers to the option at position i. Negative or out-of-range
// positions are passed through unchanged.
func ByIndex(i int) Reference {
	return Reference{kind: KindIndex, index: i}
}

// BySelector refers to every option matched by a CSS selector, evaluated
// against the options' container.
func BySelector(sel string) Reference {
	return Reference{kind: KindSelector, selector: sel}
}

// ByHandle refers to one rendered option element.
func ByHandle(h *html.Node) Reference {
	return Reference{kind: KindHandle, handles: []*html.Node{h}}
}

// ByHandleList refers to several rendered option elements.
func ByHandleList(hs ...*html.Node) Reference {
	list := make([]*html.Node, len(hs))
	copy(list, hs)
	return Reference{kind: KindHandleList, handles: list}
}

// FromSelection turns a selection into a handle reference: a single element
// becomes ByHandle, anything else ByHandleList.
func FromSelection(s *goquery.Selection) Reference {
	if s != nil && s.Length() == 1 {
		return ByHandle(s.Get(0))
	}
	if s == nil {
		return ByHandleList()
	}
	return ByHandleList(s.Nodes...)
}

// Parse reads a textual reference: an integer is an index, anything else a
// selector.
func Parse(raw string) Reference {
	trimmed := strings.TrimSpace(raw)
	if i, err := strconv.Atoi(trimmed); err == nil {
		return ByIndex(i)
	}
	return BySelector(trimmed)
}

func (r Reference) Kind() Kind { return r.kind }

func (r Reference) String() string {
	switch r.kind {
	case KindIndex:
		return strconv.Itoa(r.index)
	case KindSelector:
		return r.selector
	case KindHandle:
		return "handle"
	case KindHandleList:
		return fmt.Sprintf("handles[%d]", len(r.handles))
	default:
		return "invalid"
	}
}
