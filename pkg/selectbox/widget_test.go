package selectbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/native"
	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/ref"
	"github.com/odvcencio/selectsync/pkg/view"
)

func valueSelect(multiple bool, entries ...option.Entry) *native.Select {
	if len(entries) == 0 {
		entries = []option.Entry{
			{Text: "text1", Value: "value1"},
			{Text: "text2", Value: "value2"},
		}
	}
	return native.NewSelect("field", multiple, entries...)
}

func fourOptions() []option.Raw {
	return []option.Raw{
		{Text: "text1", Value: "value1", Selected: true},
		{Text: "text2", Value: "value2"},
		{Text: "text3", Value: "value3", Selected: true},
		{Text: "text4", Value: "value4", Selected: true},
	}
}

func selectedFlags(w *Widget) []bool {
	m := w.Model()
	flags := make([]bool, m.Len())
	for i, o := range m.Options {
		flags[i] = o.Selected
	}
	return flags
}

func TestNew_FromSelectDefaultsToFirst(t *testing.T) {
	ctl := valueSelect(false)

	w, err := New(WithControl(ctl))
	require.NoError(t, err)

	assert.Equal(t, "field", w.Name())
	assert.Equal(t, 0, w.SelectedIndex())
	assert.Equal(t, []bool{true, false}, selectedFlags(w))
	assert.Equal(t, "value1", ctl.Value())
	assert.Equal(t, "value1", w.Value())
	assert.Equal(t, "text1", w.View().TriggerHTML())
	assert.True(t, w.View().HasTriggerClass("ui-select-trigger"))
}

func TestNew_FromRawModelLastDeclaredWins(t *testing.T) {
	w, err := New(WithModel(fourOptions()))
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false, true}, selectedFlags(w))
	assert.Equal(t, 3, w.SelectedIndex())
	assert.Equal(t, 4, w.Length())
}

func TestNew_MultipleKeepsDeclaredSelection(t *testing.T) {
	w, err := New(WithMultiple(true), WithModel([]option.Raw{
		{Text: "a", Value: "a", Selected: true},
		{Text: "b", Value: "b", Selected: true},
	}))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, w.SelectedIndexes())
	assert.True(t, w.View().HasTriggerClass("ui-select-trigger-multiple"))

	state := w.Select(ref.ByIndex(0))
	assert.Equal(t, []int{1}, state.SelectedIndexes)
	assert.Equal(t, []bool{false, true}, selectedFlags(w))
	assert.Equal(t, []string{"b"}, w.Values())
}

func TestNew_SharedInputDoesNotLeak(t *testing.T) {
	shared := []option.Raw{
		{Text: "a", Value: "a"},
		{Text: "b", Value: "b"},
	}

	first, err := New(WithModel(shared))
	require.NoError(t, err)
	second, err := New(WithModel(shared))
	require.NoError(t, err)

	assert.Equal(t, 0, first.SelectedIndex())
	assert.Equal(t, 0, second.SelectedIndex())

	first.Select(ref.ByIndex(1))

	assert.Equal(t, 1, first.SelectedIndex())
	assert.Equal(t, 0, second.SelectedIndex())
	assert.Equal(t, []bool{true, false}, selectedFlags(second))
	assert.False(t, bool(shared[0].Selected))
	assert.False(t, bool(shared[1].Selected))
}

func TestNew_NameCreatesHiddenInput(t *testing.T) {
	w, err := New(WithName("city"), WithModel([]option.Raw{{Text: "Paris", Value: "par"}}))
	require.NoError(t, err)

	require.NotNil(t, w.Control())
	assert.Equal(t, native.TagInput, w.Control().TagName())
	assert.Equal(t, "city", w.Control().Name())
	assert.Equal(t, "par", w.Control().Value())
}

func TestNew_BadTriggerTemplate(t *testing.T) {
	_, err := New(WithTriggerTemplate("no element here"))
	assert.Error(t, err)
}

func TestSelect_SingleReselectNotifiesOnce(t *testing.T) {
	w, err := New(WithControl(valueSelect(false)))
	require.NoError(t, err)

	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })

	w.Select(ref.ByIndex(1))
	w.Select(ref.ByIndex(1))

	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, w.SelectedIndex())
}

func TestSelect_SingleEventCarriesBothEntries(t *testing.T) {
	w, err := New(WithModel(fourOptions()))
	require.NoError(t, err)

	var got ChangeEvent
	w.OnChange(func(ev ChangeEvent) { got = ev })
	w.Select(ref.BySelector(`[data-value="value2"]`))

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, 3, got.PreviousIndex)
	assert.Equal(t, "text2", got.Selected.Text())
	assert.Equal(t, "text4", got.Previous.Text())
	assert.Equal(t, []string{"value2"}, got.Values)
}

func TestSelect_SingleHidesAfterCommit(t *testing.T) {
	w, err := New(WithControl(valueSelect(false)))
	require.NoError(t, err)

	w.Show()
	require.True(t, w.Visible())
	assert.True(t, w.View().HasTriggerClass(view.OpenedClass))

	w.Select(ref.ByIndex(1))
	assert.False(t, w.Visible())
	assert.False(t, w.View().HasTriggerClass(view.OpenedClass))
}

func TestSelect_SingleMissClearsSelection(t *testing.T) {
	ctl := valueSelect(false)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)
	w.Select(ref.ByIndex(1))

	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })
	changes := ctl.ChangeCount()

	w.Select(ref.BySelector(".nope"))

	assert.Equal(t, -1, w.SelectedIndex())
	assert.Equal(t, []bool{false, false}, selectedFlags(w))
	assert.Equal(t, "", w.Value())
	assert.Equal(t, "", ctl.Value())
	assert.Equal(t, changes+1, ctl.ChangeCount())
	assert.Equal(t, 0, w.GetOption(ref.BySelector(view.SelectedPredicate)).Length())
	assert.Equal(t, "", w.View().TriggerHTML())
	assert.Equal(t, 1, fired)

	w.Select(ref.ByIndex(0))
	assert.Equal(t, "value1", ctl.Value())
	assert.Equal(t, "text1", w.View().TriggerHTML())
}

func TestSelect_MultiToggleRoundTrip(t *testing.T) {
	w, err := New(WithControl(valueSelect(true)))
	require.NoError(t, err)
	require.Empty(t, w.SelectedIndexes())

	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })

	w.Select(ref.ByIndex(1))
	assert.Equal(t, []int{1}, w.SelectedIndexes())
	w.Select(ref.ByIndex(1))
	assert.Empty(t, w.SelectedIndexes())

	assert.Equal(t, 2, fired)
}

func TestSelect_MultiMissIsNoop(t *testing.T) {
	w, err := New(WithControl(valueSelect(true)))
	require.NoError(t, err)

	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })

	w.Select(ref.BySelector(`[data-value="nope"]`))
	w.Select(ref.ByIndex(-1))

	assert.Equal(t, 0, fired)
	assert.Empty(t, w.SelectedIndexes())
}

func TestSelect_MultiIgnoresIndexesOutsideModel(t *testing.T) {
	w, err := New(WithMultiple(true), WithModel([]option.Raw{{Text: "a", Value: "a"}}))
	require.NoError(t, err)

	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })

	w.Select(ref.ByIndex(5))
	assert.Empty(t, w.SelectedIndexes())
	assert.Equal(t, 0, fired)

	w.RemoveOption(ref.ByIndex(0))
	assert.Empty(t, w.SelectedIndexes())
}

func TestSelect_MultiWritesNativeSelect(t *testing.T) {
	ctl := valueSelect(true,
		option.Entry{Text: "a", Value: "a"},
		option.Entry{Text: "b", Value: "b"},
		option.Entry{Text: "c", Value: "c"},
	)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)

	w.Select(ref.ByIndex(2))
	w.Select(ref.ByIndex(0))

	assert.Equal(t, []int{0, 2}, w.SelectedIndexes())
	assert.Equal(t, `["a","c"]`, ctl.Value())
	assert.Equal(t, 2, ctl.ChangeCount())
}

func TestSelect_ListenerSeesCommittedStateBeforeBridge(t *testing.T) {
	ctl := valueSelect(false)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)

	var sawIndex, sawNative int
	var sawFlag bool
	w.OnChange(func(ev ChangeEvent) {
		sawIndex = w.SelectedIndex()
		sawFlag = w.Model().Options[1].Selected
		sawNative = ctl.SelectedIndex()
	})

	w.Select(ref.ByIndex(1))

	assert.Equal(t, 1, sawIndex)
	assert.True(t, sawFlag)
	assert.Equal(t, 0, sawNative, "the bound control is written after listeners run")
	assert.Equal(t, 1, ctl.SelectedIndex())
}

func TestSelect_ReentrantFromListener(t *testing.T) {
	ctl := valueSelect(false,
		option.Entry{Text: "a", Value: "a"},
		option.Entry{Text: "b", Value: "b"},
		option.Entry{Text: "c", Value: "c"},
	)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)

	var seen []int
	w.OnChange(func(ev ChangeEvent) {
		seen = append(seen, ev.Index)
		if ev.Index == 1 {
			w.Select(ref.ByIndex(2))
		}
	})

	w.Select(ref.ByIndex(1))

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 2, w.SelectedIndex())
	assert.Equal(t, "c", ctl.Value())
	assert.Equal(t, "c", w.View().TriggerHTML())
	assert.Equal(t, 1, w.View().Options().Filter(view.SelectedPredicate).Length())
}

func TestSelect_SingleListResolutionTakesFirst(t *testing.T) {
	w, err := New(WithModel([]option.Raw{
		{Text: "a", Value: "x"},
		{Text: "b", Value: "y"},
		{Text: "c", Value: "y"},
	}))
	require.NoError(t, err)

	w.Select(ref.BySelector(`[data-value="y"]`))
	assert.Equal(t, 1, w.SelectedIndex())
}

func TestSelect_DetachedControlIsTolerated(t *testing.T) {
	ctl := valueSelect(false)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)

	ctl.Detach()
	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })

	assert.NotPanics(t, func() { w.Select(ref.ByIndex(1)) })
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, w.SelectedIndex())
	assert.Nil(t, w.Control())
	assert.Equal(t, "text2", w.View().TriggerHTML())
}

func TestSyncModel(t *testing.T) {
	ctl := valueSelect(false)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)

	fired := 0
	w.OnChange(func(ChangeEvent) { fired++ })
	changes := ctl.ChangeCount()

	w.SyncModel(fourOptions())

	assert.Equal(t, 0, fired, "model replacement does not emit change")
	assert.Equal(t, 4, w.Length())
	assert.Equal(t, 3, w.SelectedIndex())
	assert.Equal(t, []bool{false, false, false, true}, selectedFlags(w))

	require.Len(t, ctl.Entries(), 4)
	assert.Equal(t, "value4", ctl.Value())
	assert.Equal(t, changes+1, ctl.ChangeCount())
	assert.Equal(t, "text4", w.View().TriggerHTML())
}

func TestSyncModel_UnchangedValueDoesNotNotifyControl(t *testing.T) {
	ctl := valueSelect(false)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)
	require.Equal(t, "value1", ctl.Value())
	changes := ctl.ChangeCount()

	w.SyncModel([]option.Raw{
		{Text: "text1", Value: "value1"},
		{Text: "text2", Value: "value2"},
	})
	assert.Equal(t, "value1", ctl.Value())
	assert.Equal(t, changes, ctl.ChangeCount())

	w.AddOption(option.Raw{Text: "text3", Value: "value3"})
	w.DisableOption(ref.ByIndex(2))
	w.EnableOption(ref.ByIndex(2))
	assert.Equal(t, "value1", ctl.Value())
	assert.Equal(t, changes, ctl.ChangeCount())
}

func TestSyncModel_Multiple(t *testing.T) {
	w, err := New(WithMultiple(true), WithModel([]option.Raw{{Text: "a", Value: "a"}}))
	require.NoError(t, err)

	w.SyncModel([]option.Raw{
		{Text: "a", Value: "a", Selected: true},
		{Text: "b", Value: "b"},
		{Text: "c", Value: "c", Selected: true},
	})
	assert.Equal(t, []int{0, 2}, w.SelectedIndexes())

	w.SyncModel([]option.Raw{{Text: "a", Value: "a"}})
	assert.Empty(t, w.SelectedIndexes())
}

func TestGetOption(t *testing.T) {
	w, err := New(WithModel([]option.Raw{
		{Text: "a", Value: "x"},
		{Text: "b", Value: "y"},
		{Text: "c", Value: "y"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "b", w.GetOption(ref.ByIndex(1)).Text())
	assert.Equal(t, 0, w.GetOption(ref.ByIndex(7)).Length())
	assert.Equal(t, 0, w.GetOption(ref.ByIndex(-1)).Length())
	assert.Equal(t, 0, w.GetOption(ref.BySelector(`[data-value="z"]`)).Length())
	assert.Equal(t, 2, w.GetOption(ref.BySelector(`[data-value="y"]`)).Length())
}

func TestAddOption(t *testing.T) {
	w, err := New(WithControl(valueSelect(false)))
	require.NoError(t, err)
	w.Select(ref.ByIndex(1))

	w.AddOption(option.Raw{Text: "text3", Value: "value3"})
	assert.Equal(t, 3, w.Length())
	assert.Equal(t, 1, w.SelectedIndex(), "current selection is kept")

	w.AddOption(option.Raw{Text: "text4", Value: "value4", Selected: true})
	assert.Equal(t, 3, w.SelectedIndex(), "a new selected option takes over")
	assert.Equal(t, "value4", w.Value())
}

func TestRemoveOption(t *testing.T) {
	w, err := New(WithModel([]option.Raw{
		{Text: "a", Value: "a"},
		{Text: "b", Value: "b"},
		{Text: "c", Value: "c", Selected: true},
		{Text: "d", Value: "d"},
	}))
	require.NoError(t, err)

	w.RemoveOption(ref.ByIndex(0))
	assert.Equal(t, 1, w.SelectedIndex(), "selection shifts down")
	assert.Equal(t, "c", w.Value())

	w.RemoveOption(ref.ByIndex(2))
	assert.Equal(t, 1, w.SelectedIndex(), "removing a later option keeps the selection")

	w.RemoveOption(ref.BySelector(`[data-value="c"]`))
	assert.Equal(t, 0, w.SelectedIndex(), "removing the selected option selects the first")
	assert.Equal(t, "b", w.Value())
	assert.Equal(t, "b", w.View().TriggerHTML())
	assert.Equal(t, 1, w.Length())

	w.RemoveOption(ref.ByIndex(5))
	assert.Equal(t, 1, w.Length())
}

func TestRemoveOption_MultipleShiftsSet(t *testing.T) {
	w, err := New(WithMultiple(true), WithModel([]option.Raw{
		{Text: "a", Value: "a", Selected: true},
		{Text: "b", Value: "b", Selected: true},
		{Text: "c", Value: "c"},
		{Text: "d", Value: "d", Selected: true},
	}))
	require.NoError(t, err)

	w.RemoveOption(ref.ByIndex(1))

	assert.Equal(t, []int{0, 2}, w.SelectedIndexes())
	assert.Equal(t, []string{"a", "d"}, w.Values())
}

func TestEnableDisableOption(t *testing.T) {
	w, err := New(WithControl(valueSelect(false)))
	require.NoError(t, err)
	w.Select(ref.ByIndex(1))

	w.DisableOption(ref.ByIndex(0))
	assert.True(t, w.Model().Options[0].Disabled)
	assert.True(t, view.IsDisabled(w.GetOption(ref.ByIndex(0)).Get(0)))
	assert.Equal(t, 1, w.SelectedIndex(), "disabling re-syncs without losing the selection")

	_, ok := w.HandleItemClick(w.GetOption(ref.ByIndex(0)).Get(0))
	assert.False(t, ok)
	assert.Equal(t, 1, w.SelectedIndex())

	w.EnableOption(ref.ByIndex(0))
	state, ok := w.HandleItemClick(w.GetOption(ref.ByIndex(0)).Get(0))
	assert.True(t, ok)
	assert.Equal(t, 0, state.SelectedIndex)

	assert.NotPanics(t, func() { w.DisableOption(ref.ByIndex(9)) })
}

func TestSetDisabled(t *testing.T) {
	w, err := New(WithControl(valueSelect(false)))
	require.NoError(t, err)

	var events []DisabledEvent
	w.OnDisabledChange(func(ev DisabledEvent) { events = append(events, ev) })

	w.SetDisabled(true)
	w.SetDisabled(true)
	assert.True(t, w.Disabled())
	assert.True(t, w.View().HasTriggerClass("ui-select-disabled"))

	w.Toggle()
	assert.False(t, w.Visible(), "toggle is ignored while disabled")

	w.SetDisabled(false)
	w.Toggle()
	assert.True(t, w.Visible())
	w.Toggle()
	assert.False(t, w.Visible())

	require.Len(t, events, 2)
	assert.True(t, events[0].Disabled)
	assert.Equal(t, "text1", events[0].Selected.Text())
	assert.False(t, events[1].Disabled)
}

func TestShowPositionsPanel(t *testing.T) {
	var anchored *goquery.Selection
	w, err := New(
		WithControl(valueSelect(false)),
		WithPositioner(view.PositionerFunc(func(anchor *goquery.Selection) { anchored = anchor })),
	)
	require.NoError(t, err)

	w.Show()
	require.NotNil(t, anchored)
	assert.True(t, anchored.HasClass("ui-select-trigger"))
}

func TestDestroyLeavesControl(t *testing.T) {
	ctl := valueSelect(false)
	w, err := New(WithControl(ctl))
	require.NoError(t, err)
	changes := ctl.ChangeCount()

	w.Destroy()
	w.Destroy()
	w.Select(ref.ByIndex(1))

	assert.Equal(t, 0, w.Length())
	assert.Equal(t, "value1", ctl.Value())
	assert.Equal(t, changes, ctl.ChangeCount())
	assert.False(t, ctl.Detached())
}

func TestPublishesChanges(t *testing.T) {
	mb := bus.NewMemoryBus()
	defer mb.Close()

	received := make(chan *bus.Message, 4)
	sub, err := mb.Subscribe(context.Background(), "widgets.field.change", func(msg *bus.Message) {
		received <- msg
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	w, err := New(WithControl(valueSelect(false)), WithPublisher(mb, "widgets"))
	require.NoError(t, err)
	w.Select(ref.ByIndex(1))

	var last changeMessage
	for i := 0; i < 2; i++ {
		select {
		case msg := <-received:
			require.NoError(t, json.Unmarshal(msg.Data, &last))
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for change message")
		}
	}
	assert.Equal(t, "field", last.Widget)
	assert.Equal(t, 1, last.Index)
	assert.Equal(t, 0, last.PreviousIndex)
	assert.Equal(t, []string{"value2"}, last.Values)
}

func TestEmptyPrefixHasNoClasses(t *testing.T) {
	w, err := New(WithClassPrefix(""), WithModel([]option.Raw{{Text: "a", Value: "a"}}))
	require.NoError(t, err)

	markup, err := w.Markup()
	require.NoError(t, err)
	assert.NotContains(t, markup, "ui-select-")
	assert.Equal(t, 0, w.SelectedIndex())
}
