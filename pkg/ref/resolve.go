package ref

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NotFound is the index of a reference that matched nothing.
const NotFound = -1

// Resolution is the outcome of resolving a Reference: a single index, or a
// list of indexes when a selector matched several options or a handle list
// was given. A single resolution may be NotFound.
type Resolution struct {
	Index   int
	Indexes []int
	list    bool
}

func single(i int) Resolution { return Resolution{Index: i} }

func list(indexes []int) Resolution {
	return Resolution{Index: NotFound, Indexes: indexes, list: true}
}

// IsList reports whether the resolution carries several indexes.
func (r Resolution) IsList() bool { return r.list }

// Miss reports a single resolution that matched nothing.
func (r Resolution) Miss() bool { return !r.list && r.Index < 0 }

// First returns the single index, or the first list entry.
func (r Resolution) First() int {
	if !r.list {
		return r.Index
	}
	if len(r.Indexes) == 0 {
		return NotFound
	}
	return r.Indexes[0]
}

// All returns every resolved index; a single miss yields nothing.
func (r Resolution) All() []int {
	if r.list {
		out := make([]int, len(r.Indexes))
		copy(out, r.Indexes)
		return out
	}
	if r.Index < 0 {
		return nil
	}
	return []int{r.Index}
}

// Resolve maps r to positions within options, the rendered option entries
// in model order. Index references are returned as given, without a range
// check.
func Resolve(r Reference, options *goquery.Selection) Resolution {
	switch r.kind {
	case KindIndex:
		return single(r.index)

	case KindSelector:
		if options == nil || options.Length() == 0 {
			return single(NotFound)
		}
		matches := options.Parent().Find(r.selector)
		switch matches.Length() {
		case 0:
			return single(NotFound)
		case 1:
			return single(indexOf(options, matches.Get(0)))
		default:
			indexes := make([]int, 0, matches.Length())
			for _, n := range matches.Nodes {
				indexes = append(indexes, indexOf(options, n))
			}
			return list(indexes)
		}

	case KindHandle:
		return single(indexOf(options, r.handles[0]))

	case KindHandleList:
		indexes := make([]int, 0, len(r.handles))
		for _, n := range r.handles {
			indexes = append(indexes, indexOf(options, n))
		}
		return list(indexes)

	default:
		panic(fmt.Sprintf("ref: unknown reference kind %d", r.kind))
	}
}

func indexOf(options *goquery.Selection, n *html.Node) int {
	if options == nil || n == nil {
		return NotFound
	}
	return options.IndexOfNode(n)
}
