package native

import "github.com/odvcencio/selectsync/pkg/option"

// Input is an in-memory generic field that stores the serialized value of a
// widget built on a non-select trigger.
type Input struct {
	name      string
	value     string
	detached  bool
	changes   int
	listeners []func()
}

// NewInput creates a field with the given name.
func NewInput(name string) *Input {
	return &Input{name: name}
}

func (in *Input) TagName() string         { return TagInput }
func (in *Input) Name() string            { return in.name }
func (in *Input) Multiple() bool          { return false }
func (in *Input) Disabled() bool          { return false }
func (in *Input) ReadOnly() bool          { return false }
func (in *Input) Value() string           { return in.value }
func (in *Input) Entries() []option.Entry { return nil }
func (in *Input) ChangeCount() int        { return in.changes }
func (in *Input) Detach()                 { in.detached = true }
func (in *Input) OnChange(fn func())      { in.listeners = append(in.listeners, fn) }

func (in *Input) SetValue(value string) error {
	if in.detached {
		return detached("set_value", in.name)
	}
	in.value = value
	return nil
}

// A field has no options; index writes are accepted and ignored.
func (in *Input) SetSelectedIndex(int) error          { return in.alive("set_selected_index") }
func (in *Input) SetOptionSelected(int, bool) error   { return in.alive("set_option_selected") }
func (in *Input) ReplaceOptions([]option.Entry) error { return in.alive("replace_options") }
func (in *Input) RemoveOption(int) error              { return in.alive("remove_option") }

func (in *Input) NotifyChanged() error {
	if in.detached {
		return detached("notify_changed", in.name)
	}
	in.changes++
	for _, fn := range in.listeners {
		fn()
	}
	return nil
}

func (in *Input) alive(op string) error {
	if in.detached {
		return detached(op, in.name)
	}
	return nil
}
