package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/view"
)

func rendered(t *testing.T) *view.View {
	t.Helper()
	v, err := view.New(nil, `<a href="#"></a>`, "ui-select")
	require.NoError(t, err)
	v.Render(option.Normalize([]option.Raw{
		{Text: "Paris", Value: "par"},
		{Text: "Rome", Value: "rom"},
		{Text: "Oslo", Value: "osl", Selected: true},
		{Text: "Rome again", Value: "rom"},
	}, "ui-select", false))
	return v
}

func TestResolve_Index(t *testing.T) {
	opts := rendered(t).Options()

	for _, i := range []int{0, 3, -1, 42} {
		res := Resolve(ByIndex(i), opts)
		assert.False(t, res.IsList())
		assert.Equal(t, i, res.Index, "index references pass through unchanged")
	}
}

func TestResolve_Selector(t *testing.T) {
	opts := rendered(t).Options()

	one := Resolve(BySelector(view.SelectedPredicate), opts)
	assert.False(t, one.IsList())
	assert.Equal(t, 2, one.Index)

	none := Resolve(BySelector(`[data-value="nope"]`), opts)
	assert.True(t, none.Miss())
	assert.Nil(t, none.All())

	many := Resolve(BySelector(`[data-value="rom"]`), opts)
	require.True(t, many.IsList())
	assert.Equal(t, []int{1, 3}, many.Indexes)
	assert.Equal(t, 1, many.First())
}

func TestResolve_SelectorOnEmptyList(t *testing.T) {
	v, err := view.New(nil, `<a href="#"></a>`, "")
	require.NoError(t, err)

	assert.True(t, Resolve(BySelector("li"), v.Options()).Miss())
}

func TestResolve_Handles(t *testing.T) {
	opts := rendered(t).Options()

	assert.Equal(t, 1, Resolve(ByHandle(opts.Get(1)), opts).Index)

	stranger := &html.Node{Type: html.ElementNode, Data: "li"}
	assert.True(t, Resolve(ByHandle(stranger), opts).Miss())

	res := Resolve(ByHandleList(opts.Get(3), opts.Get(0)), opts)
	require.True(t, res.IsList())
	assert.Equal(t, []int{3, 0}, res.All())

	fromSel := Resolve(FromSelection(opts.Eq(2)), opts)
	assert.Equal(t, KindHandle, FromSelection(opts.Eq(2)).Kind())
	assert.Equal(t, 2, fromSel.Index)
	assert.Equal(t, KindHandleList, FromSelection(opts.Slice(0, 2)).Kind())
}

func TestResolve_ZeroReferencePanics(t *testing.T) {
	assert.Panics(t, func() {
		Resolve(Reference{}, rendered(t).Options())
	})
}

func TestParse(t *testing.T) {
	assert.Equal(t, KindIndex, Parse(" 2 ").Kind())
	assert.Equal(t, "2", Parse("2").String())
	assert.Equal(t, KindSelector, Parse(`[data-value="rom"]`).Kind())
	assert.Equal(t, "handles[2]", ByHandleList(nil, nil).String())
}

func TestResolution_First(t *testing.T) {
	assert.Equal(t, NotFound, list(nil).First())
	assert.Equal(t, 4, single(4).First())
	assert.Equal(t, []int{4}, single(4).All())
}
