package native

import (
	"github.com/odvcencio/selectsync/pkg/option"
)

// Select is an in-memory choice control. It reports declared state as given
// and does not apply a browser's implicit first-option selectedness.
type Select struct {
	name      string
	multiple  bool
	disabled  bool
	readOnly  bool
	entries   []option.Entry
	detached  bool
	changes   int
	listeners []func()
}

// NewSelect creates a select control with the given options.
func NewSelect(name string, multiple bool, entries ...option.Entry) *Select {
	return &Select{
		name:     name,
		multiple: multiple,
		entries:  append([]option.Entry(nil), entries...),
	}
}

func (s *Select) TagName() string { return TagSelect }
func (s *Select) Name() string    { return s.name }
func (s *Select) Multiple() bool  { return s.multiple }
func (s *Select) Disabled() bool  { return s.disabled }
func (s *Select) ReadOnly() bool  { return s.readOnly }

// SetDisabled sets the control's disabled attribute.
func (s *Select) SetDisabled(disabled bool) { s.disabled = disabled }

// SetReadOnly sets the control's readonly attribute.
func (s *Select) SetReadOnly(readOnly bool) { s.readOnly = readOnly }

// Detach simulates removal from the document; later writes fail.
func (s *Select) Detach() { s.detached = true }

// Detached reports whether Detach was called.
func (s *Select) Detached() bool { return s.detached }

// OnChange registers a listener for NotifyChanged.
func (s *Select) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// ChangeCount returns how many change events fired.
func (s *Select) ChangeCount() int { return s.changes }

// Entries returns a copy of the option list.
func (s *Select) Entries() []option.Entry {
	return append([]option.Entry(nil), s.entries...)
}

// SelectedIndex returns the first selected position, or -1.
func (s *Select) SelectedIndex() int {
	for i, e := range s.entries {
		if e.Selected {
			return i
		}
	}
	return -1
}

func (s *Select) selectedValues() []string {
	values := []string{}
	for _, e := range s.entries {
		if e.Selected {
			values = append(values, e.Value)
		}
	}
	return values
}

func (s *Select) Value() string {
	values := s.selectedValues()
	if s.multiple {
		return SerializeValues(values)
	}
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// SetValue selects the options whose values appear in value. A multiple
// select accepts a serialized JSON array.
func (s *Select) SetValue(value string) error {
	if s.detached {
		return detached("set_value", s.name)
	}

	wanted := map[string]bool{}
	if s.multiple {
		for _, v := range ParseValues(value) {
			wanted[v] = true
		}
	} else {
		wanted[value] = true
	}

	found := false
	for i := range s.entries {
		match := wanted[s.entries[i].Value] && (s.multiple || !found)
		s.entries[i].Selected = match
		found = found || match
	}
	return nil
}

// SetSelectedIndex selects exactly one option; an out-of-range index clears
// the selection.
func (s *Select) SetSelectedIndex(index int) error {
	if s.detached {
		return detached("set_selected_index", s.name)
	}
	for i := range s.entries {
		s.entries[i].Selected = i == index
	}
	return nil
}

func (s *Select) SetOptionSelected(index int, selected bool) error {
	if s.detached {
		return detached("set_option_selected", s.name)
	}
	if index < 0 || index >= len(s.entries) {
		return nil
	}
	if selected && !s.multiple {
		for i := range s.entries {
			s.entries[i].Selected = false
		}
	}
	s.entries[index].Selected = selected
	return nil
}

func (s *Select) ReplaceOptions(entries []option.Entry) error {
	if s.detached {
		return detached("replace_options", s.name)
	}
	s.entries = append([]option.Entry(nil), entries...)
	return nil
}

func (s *Select) RemoveOption(index int) error {
	if s.detached {
		return detached("remove_option", s.name)
	}
	if index < 0 || index >= len(s.entries) {
		return nil
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return nil
}

func (s *Select) NotifyChanged() error {
	if s.detached {
		return detached("notify_changed", s.name)
	}
	s.changes++
	for _, fn := range s.listeners {
		fn()
	}
	return nil
}
