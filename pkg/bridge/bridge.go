// Package bridge keeps the bound native control and the rendered view in
// step with a widget's selection state. It only ever renders state the
// widget has already committed.
package bridge

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/odvcencio/selectsync/pkg/native"
	"github.com/odvcencio/selectsync/pkg/observability"
	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/view"
)

const (
	opSetSelectedIndex  = "set_selected_index"
	opSetOptionSelected = "set_option_selected"
	opSetValue          = "set_value"
	opNotifyChanged     = "notify_changed"
	opReplaceOptions    = "replace_options"
	opRemoveOption      = "remove_option"
)

// Bridge renders committed selection state onto a view and a native control.
// The control is optional; once it reports itself detached the bridge stops
// writing to it.
type Bridge struct {
	control    native.Control
	view       *view.View
	positioner view.Positioner
	logger     *observability.Logger

	current *html.Node

	// baseline holds the control's value from before ReplaceNativeOptions
	// until the next sync compares against it.
	baseline    string
	hasBaseline bool
}

// New creates a bridge. control may be nil; positioner and logger default to
// no-ops.
func New(control native.Control, v *view.View, positioner view.Positioner, logger *observability.Logger) *Bridge {
	if positioner == nil {
		positioner = view.NopPositioner{}
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Bridge{
		control:    control,
		view:       v,
		positioner: positioner,
		logger:     logger,
	}
}

// Control returns the bound control, or nil once it is gone.
func (b *Bridge) Control() native.Control {
	return b.control
}

// Reset forgets the rendered current option. Call it after the option list
// has been re-rendered.
func (b *Bridge) Reset() {
	b.current = nil
}

// SyncSingle renders index as the one selected option. It returns the
// option's value and whether anything was rendered. An index that is already
// current renders nothing; a negative or out of range index clears the
// rendered selection and the control's value.
func (b *Bridge) SyncSingle(index int) (string, bool) {
	if index < 0 || index >= b.view.Len() {
		return "", b.clearSingle()
	}

	selected := b.view.Options().Eq(index)
	node := selected.Get(0)
	if node == b.current {
		b.dropBaseline()
		return view.ValueOf(selected), false
	}

	value := view.ValueOf(selected)

	if c := b.control; c != nil {
		old := b.previousValue(c)
		var ok bool
		if native.IsSelect(c) {
			ok = b.write(opSetSelectedIndex, func() error { return c.SetSelectedIndex(index) })
		} else {
			ok = b.write(opSetValue, func() error { return c.SetValue(value) })
		}
		if ok && old != value {
			b.notify()
		}
	} else {
		b.dropBaseline()
	}

	if b.current != nil {
		b.view.SetSelected(b.view.Options().FilterNodes(b.current), false)
	}
	b.view.SetSelected(selected, true)
	b.view.SetTriggerHTML(view.InnerHTML(selected))

	b.current = node
	return value, true
}

// clearSingle removes the rendered selection and empties the control's value.
// It reports whether anything was cleared.
func (b *Bridge) clearSingle() bool {
	cleared := false
	if b.current != nil {
		b.view.SetSelected(b.view.Options().FilterNodes(b.current), false)
		b.view.SetTriggerHTML("")
		b.current = nil
		cleared = true
	}

	c := b.control
	if c == nil {
		b.dropBaseline()
		return cleared
	}
	rebuilt := b.hasBaseline
	old := b.previousValue(c)
	now := old
	if rebuilt {
		now = c.Value()
	}
	if now == "" && old == "" {
		return cleared
	}

	var ok bool
	if native.IsSelect(c) {
		ok = b.write(opSetSelectedIndex, func() error { return c.SetSelectedIndex(-1) })
	} else {
		ok = b.write(opSetValue, func() error { return c.SetValue("") })
	}
	if ok && old != "" {
		b.notify()
	}
	return true
}

// SyncMulti renders exactly indexes as selected and returns the selected
// values in option order.
func (b *Bridge) SyncMulti(indexes []int) []string {
	in := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		in[i] = true
	}

	options := b.view.Options()
	values := []string{}
	items := []string{}
	for i := range options.Nodes {
		entry := options.Eq(i)
		if in[i] {
			values = append(values, view.ValueOf(entry))
			items = append(items, view.InnerHTML(entry))
		}
		b.view.SetSelected(entry, in[i])
	}

	if c := b.control; c == nil {
		b.dropBaseline()
	} else {
		old := b.previousValue(c)
		serialized := native.SerializeValues(values)
		ok := true
		if native.IsSelect(c) {
			for i := range options.Nodes {
				selected := in[i]
				idx := i
				if ok = b.write(opSetOptionSelected, func() error { return c.SetOptionSelected(idx, selected) }); !ok {
					break
				}
			}
		} else {
			ok = b.write(opSetValue, func() error { return c.SetValue(serialized) })
		}
		if ok && old != serialized {
			b.notify()
		}
	}

	b.view.SetTriggerHTML(b.view.ItemsMarkup(items))
	b.positioner.Position(b.view.Trigger())

	return values
}

// ReplaceNativeOptions rebuilds the native option list from m, carrying text
// and value only. Selection is written by the next sync, which compares the
// new value against the one the control held before the rebuild.
func (b *Bridge) ReplaceNativeOptions(m option.Model) {
	c := b.control
	if c == nil || !native.IsSelect(c) {
		return
	}
	if !b.hasBaseline {
		b.baseline, b.hasBaseline = c.Value(), true
	}
	entries := make([]option.Entry, len(m.Options))
	for i, o := range m.Options {
		entries[i] = option.Entry{Text: o.Text, Value: o.Value}
	}
	b.write(opReplaceOptions, func() error { return c.ReplaceOptions(entries) })
}

// RemoveNativeOption drops the native option at index.
func (b *Bridge) RemoveNativeOption(index int) {
	c := b.control
	if c == nil || !native.IsSelect(c) || index < 0 {
		return
	}
	b.write(opRemoveOption, func() error { return c.RemoveOption(index) })
}

// Release drops the control reference without touching the control.
func (b *Bridge) Release() {
	b.control = nil
	b.current = nil
	b.dropBaseline()
}

// previousValue returns the value a sync compares against: the baseline
// captured before an option rebuild, else the control's current value.
func (b *Bridge) previousValue(c native.Control) string {
	if b.hasBaseline {
		old := b.baseline
		b.dropBaseline()
		return old
	}
	return c.Value()
}

func (b *Bridge) dropBaseline() {
	b.baseline, b.hasBaseline = "", false
}

func (b *Bridge) notify() {
	c := b.control
	if c == nil {
		return
	}
	if b.write(opNotifyChanged, c.NotifyChanged) {
		observability.NativeChangeEvents.Inc()
	}
}

func (b *Bridge) write(op string, fn func() error) bool {
	err := fn()
	if err == nil {
		return true
	}

	b.logger.BridgeWriteFailed(op, err)
	observability.BridgeWriteFailures.WithLabelValues(op).Inc()

	if errors.Is(err, native.ErrDetached) {
		b.control = nil
	}
	return false
}
