// Package selectbox is the selection engine of a dropdown select widget. A
// Widget owns one option model and its selection state, resolves option
// references against the rendered view and keeps the bound native control in
// step through the bridge.
//
// A Widget is not safe for concurrent use; all calls are expected from one
// goroutine, as with any UI event loop.
package selectbox

import (
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/net/html"

	"github.com/odvcencio/selectsync/pkg/bridge"
	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/native"
	"github.com/odvcencio/selectsync/pkg/observability"
	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/ref"
	"github.com/odvcencio/selectsync/pkg/view"
)

const (
	modeSingle   = "single"
	modeMultiple = "multiple"
)

// State is a snapshot of the selection. SelectedIndex is used in single
// mode (-1 for none), SelectedIndexes in multi mode (ascending).
type State struct {
	Multiple        bool
	SelectedIndex   int
	SelectedIndexes []int
}

// Widget is one dropdown select instance.
type Widget struct {
	id       string
	name     string
	multiple bool
	disabled bool
	prefix   string

	model           option.Model
	selectedIndex   int
	selectedIndexes []int

	view       *view.View
	bridge     *bridge.Bridge
	positioner view.Positioner
	logger     *observability.Logger

	publisher     bus.Publisher
	subjectPrefix string

	changeListeners   []func(ChangeEvent)
	disabledListeners []func(DisabledEvent)

	destroyed bool
}

// New builds a widget, renders its options and applies the initial
// selection of every option declared selected.
func New(opts ...Option) (*Widget, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	control := s.control
	name := s.name
	multiple := s.multiple

	var model option.Model
	if native.IsSelect(control) {
		if n := control.Name(); n != "" {
			name = n
		}
		multiple = control.Multiple()
		model = option.Convert(control, s.classPrefix, multiple)
	} else {
		if control == nil && name != "" {
			control = native.NewInput(name)
		}
		model = option.Normalize(s.raw, s.classPrefix, multiple)
	}

	v, err := view.New(s.renderer, s.triggerTemplate, s.classPrefix)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := s.logger.WithWidget(id, name)

	w := &Widget{
		id:            id,
		name:          name,
		multiple:      multiple,
		prefix:        s.classPrefix,
		model:         model,
		selectedIndex: ref.NotFound,
		view:          v,
		bridge:        bridge.New(control, v, s.positioner, logger),
		positioner:    s.positioner,
		logger:        logger,
		publisher:     s.publisher,
		subjectPrefix: s.subjectPrefix,
	}
	if multiple {
		w.selectedIndexes = []int{}
		v.AddTriggerClass(view.ClassName(w.prefix, "trigger-multiple"))
	}

	v.Render(w.model)
	w.Select(ref.BySelector(view.SelectedPredicate))

	logger.WidgetAttached(name, multiple, w.model.Len())
	return w, nil
}

func (w *Widget) ID() string       { return w.id }
func (w *Widget) Name() string     { return w.name }
func (w *Widget) Multiple() bool   { return w.multiple }
func (w *Widget) Disabled() bool   { return w.disabled }
func (w *Widget) View() *view.View { return w.view }

// Control returns the bound native control, or nil when none is bound or it
// has been detached.
func (w *Widget) Control() native.Control { return w.bridge.Control() }

// Length returns the number of rendered options.
func (w *Widget) Length() int { return w.view.Len() }

// Model returns a copy of the current option model.
func (w *Widget) Model() option.Model { return w.model.Clone() }

// SelectedIndex returns the single-mode selection, or -1.
func (w *Widget) SelectedIndex() int {
	if w.multiple {
		return ref.NotFound
	}
	return w.selectedIndex
}

// SelectedIndexes returns the multi-mode selection in ascending order.
func (w *Widget) SelectedIndexes() []int {
	out := make([]int, len(w.selectedIndexes))
	copy(out, w.selectedIndexes)
	return out
}

// State returns a snapshot of the selection.
func (w *Widget) State() State {
	return State{
		Multiple:        w.multiple,
		SelectedIndex:   w.SelectedIndex(),
		SelectedIndexes: w.SelectedIndexes(),
	}
}

// Value returns the selected value in single mode, "" when nothing is
// selected. In multi mode use Values.
func (w *Widget) Value() string {
	if w.multiple || !w.model.Has(w.selectedIndex) {
		return ""
	}
	return w.model.Options[w.selectedIndex].Value
}

// Values returns the selected values in option order.
func (w *Widget) Values() []string {
	values := []string{}
	indexes := w.selectedIndexes
	if !w.multiple {
		indexes = []int{w.selectedIndex}
	}
	for _, i := range indexes {
		if w.model.Has(i) {
			values = append(values, w.model.Options[i].Value)
		}
	}
	return values
}

// OnChange registers a change listener. Listeners run after the selection is
// committed and before the bound control and view are updated.
func (w *Widget) OnChange(fn func(ChangeEvent)) {
	w.changeListeners = append(w.changeListeners, fn)
}

// OnDisabledChange registers a listener for SetDisabled transitions.
func (w *Widget) OnDisabledChange(fn func(DisabledEvent)) {
	w.disabledListeners = append(w.disabledListeners, fn)
}

// Select applies a selection transition.
//
// Single mode commits the resolved index and notifies only when it differs
// from the previous one; the panel is hidden afterwards. A miss clears the
// selection. Multi mode toggles each resolved index that names an option and
// always notifies, unless nothing resolved.
func (w *Widget) Select(r ref.Reference) State {
	if w.destroyed {
		return w.State()
	}

	res := ref.Resolve(r, w.view.Options())
	if res.Miss() {
		w.logger.ResolutionMissed(r.String())
		observability.ResolutionMisses.WithLabelValues(r.Kind().String()).Inc()
	}

	if w.multiple {
		w.toggle(res.All())
	} else {
		w.commit(res.First())
		w.Hide()
	}
	return w.State()
}

func (w *Widget) commit(index int) {
	old := w.selectedIndex
	w.selectedIndex = index

	if w.model.Has(old) {
		w.model.Options[old].Selected = false
	}
	if w.model.Has(index) {
		w.model.Options[index].Selected = true
	}

	notified := old != index
	observability.SelectionCommits.WithLabelValues(modeSingle).Inc()
	w.logger.SelectionCommitted(modeSingle, []int{index}, []int{old}, notified)

	if notified {
		w.emit(ChangeEvent{
			Index:         index,
			PreviousIndex: old,
			Selected:      w.entryAt(index),
			Previous:      w.entryAt(old),
		})
	}

	w.bridge.SyncSingle(w.selectedIndex)
}

func (w *Widget) toggle(indexes []int) {
	seen := map[int]bool{}
	toggled := []int{}
	for _, i := range indexes {
		if !w.model.Has(i) || seen[i] {
			continue
		}
		seen[i] = true
		toggled = append(toggled, i)
	}
	if len(toggled) == 0 {
		return
	}

	previous := w.SelectedIndexes()
	for _, i := range toggled {
		if pos := indexIn(w.selectedIndexes, i); pos >= 0 {
			w.selectedIndexes = append(w.selectedIndexes[:pos], w.selectedIndexes[pos+1:]...)
		} else {
			w.selectedIndexes = append(w.selectedIndexes, i)
		}
	}
	sort.Ints(w.selectedIndexes)
	w.applySetToModel()

	observability.SelectionCommits.WithLabelValues(modeMultiple).Inc()
	w.logger.SelectionCommitted(modeMultiple, w.SelectedIndexes(), previous, true)

	last := toggled[len(toggled)-1]
	w.emit(ChangeEvent{
		Index:         last,
		PreviousIndex: ref.NotFound,
		Selected:      w.entryAt(last),
		Previous:      w.entryAt(ref.NotFound),
	})

	w.bridge.SyncMulti(w.selectedIndexes)
}

// entryAt returns the rendered entry at index, empty when there is none.
func (w *Widget) entryAt(index int) *goquery.Selection {
	options := w.view.Options()
	if index < 0 {
		return options.Slice(0, 0)
	}
	return options.Eq(index)
}

func (w *Widget) applySetToModel() {
	for i := range w.model.Options {
		w.model.Options[i].Selected = indexIn(w.selectedIndexes, i) >= 0
	}
}

func (w *Widget) emit(ev ChangeEvent) {
	ev.ID = ulid.Make().String()
	ev.Widget = w.name
	ev.Multiple = w.multiple
	ev.SelectedIndexes = w.SelectedIndexes()
	ev.Values = w.Values()

	mode := modeSingle
	if w.multiple {
		mode = modeMultiple
	}
	observability.ChangeNotifications.WithLabelValues(mode).Inc()

	for _, fn := range append([]func(ChangeEvent){}, w.changeListeners...) {
		fn(ev)
	}
	w.publish(ev)
}

// SyncModel replaces the model with a normalized copy of raw, re-renders the
// options and recomputes the selection from the options declared selected.
// No change notification is emitted; the bound control still fires its own
// when its value changes.
func (w *Widget) SyncModel(raw []option.Raw) {
	if w.destroyed {
		return
	}

	w.model = option.Normalize(raw, w.prefix, w.multiple)
	w.view.Render(w.model)
	w.bridge.Reset()
	w.bridge.ReplaceNativeOptions(w.model)

	res := ref.Resolve(ref.BySelector(view.SelectedPredicate), w.view.Options())
	if w.multiple {
		w.selectedIndexes = validIndexes(res.All())
		w.bridge.SyncMulti(w.selectedIndexes)
	} else {
		w.selectedIndex = res.First()
		w.bridge.SyncSingle(w.selectedIndex)
	}

	observability.ModelSyncs.Inc()
	w.logger.ModelSynced(w.model.Len(), w.model.SelectedIndexes())
}

// GetOption returns the rendered entries r refers to; the selection is empty
// on a miss.
func (w *Widget) GetOption(r ref.Reference) *goquery.Selection {
	options := w.view.Options()
	res := ref.Resolve(r, options)
	if !res.IsList() {
		return w.entryAt(res.Index)
	}

	nodes := []*html.Node{}
	for _, i := range res.All() {
		if i >= 0 && i < len(options.Nodes) {
			nodes = append(nodes, options.Nodes[i])
		}
	}
	return options.FilterNodes(nodes...)
}

// AddOption appends a record and re-syncs the model. In single mode a record
// declared selected takes over the selection.
func (w *Widget) AddOption(r option.Raw) {
	raw := w.model.Raw()
	raw = append(raw, r)
	w.SyncModel(raw)
}

// RemoveOption removes the option r refers to. Removing the selected option
// selects the first one; removing an earlier option shifts the selection
// down by one. A miss is a no-op.
func (w *Widget) RemoveOption(r ref.Reference) {
	if w.destroyed {
		return
	}

	removed := ref.Resolve(r, w.view.Options()).First()
	if !w.model.Has(removed) {
		return
	}

	w.view.RemoveOption(removed)
	w.model.Options = append(w.model.Options[:removed], w.model.Options[removed+1:]...)
	w.bridge.RemoveNativeOption(removed)

	if w.multiple {
		next := []int{}
		for _, i := range w.selectedIndexes {
			switch {
			case i < removed:
				next = append(next, i)
			case i > removed:
				next = append(next, i-1)
			}
		}
		w.selectedIndexes = next
		w.applySetToModel()
		w.bridge.SyncMulti(w.selectedIndexes)
		return
	}

	switch {
	case removed == w.selectedIndex:
		w.selectedIndex = ref.NotFound
		if w.model.Len() > 0 {
			w.selectedIndex = 0
			w.model.Options[0].Selected = true
		}
	case removed < w.selectedIndex:
		w.selectedIndex--
	}
	w.bridge.SyncSingle(w.selectedIndex)
}

// EnableOption clears the disabled flag of the option r refers to.
func (w *Widget) EnableOption(r ref.Reference) {
	w.setOptionDisabled(r, false)
}

// DisableOption sets the disabled flag of the option r refers to.
func (w *Widget) DisableOption(r ref.Reference) {
	w.setOptionDisabled(r, true)
}

func (w *Widget) setOptionDisabled(r ref.Reference, disabled bool) {
	if w.destroyed {
		return
	}
	index := ref.Resolve(r, w.view.Options()).First()
	if !w.model.Has(index) {
		return
	}
	w.model.Options[index].Disabled = disabled
	w.SyncModel(w.model.Raw())
}

// SetDisabled toggles the disabled state of the widget.
func (w *Widget) SetDisabled(disabled bool) {
	if w.destroyed || w.disabled == disabled {
		return
	}
	w.disabled = disabled

	class := view.ClassName(w.prefix, "disabled")
	if disabled {
		w.view.AddTriggerClass(class)
	} else {
		w.view.RemoveTriggerClass(class)
	}

	ev := DisabledEvent{
		Widget:   w.name,
		Selected: w.entryAt(w.selectedIndex),
		Disabled: disabled,
	}
	for _, fn := range append([]func(DisabledEvent){}, w.disabledListeners...) {
		fn(ev)
	}
}

// HandleItemClick dispatches an interactive click on a rendered option.
// Disabled options are refused.
func (w *Widget) HandleItemClick(h view.Handle) (State, bool) {
	if w.destroyed || view.IsDisabled(h) {
		return w.State(), false
	}
	return w.Select(ref.ByHandle(h)), true
}

// Visible reports whether the panel is open.
func (w *Widget) Visible() bool { return w.view.Visible() }

// Show opens the panel next to the trigger.
func (w *Widget) Show() {
	if w.destroyed {
		return
	}
	w.view.SetVisible(true)
	w.positioner.Position(w.view.Trigger())
}

// Hide closes the panel.
func (w *Widget) Hide() {
	if w.destroyed {
		return
	}
	w.view.SetVisible(false)
}

// Toggle opens or closes the panel; it is ignored while disabled.
func (w *Widget) Toggle() {
	if w.disabled {
		return
	}
	if w.view.Visible() {
		w.Hide()
	} else {
		w.Show()
	}
}

// Markup serializes the trigger and panel.
func (w *Widget) Markup() (string, error) {
	return w.view.Markup()
}

// Destroy tears down the view and drops listeners. The bound control is not
// owned by the widget and is left as it is.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	w.view.Destroy()
	w.bridge.Release()
	w.changeListeners = nil
	w.disabledListeners = nil
	w.destroyed = true
	w.logger.WidgetDestroyed(w.name)
}

func indexIn(set []int, i int) int {
	for pos, v := range set {
		if v == i {
			return pos
		}
	}
	return -1
}

func validIndexes(indexes []int) []int {
	out := []int{}
	for _, i := range indexes {
		if i >= 0 && indexIn(out, i) < 0 {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
