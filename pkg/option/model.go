// Package option holds the canonical option model of a select widget and the
// two ways of producing it: converting a native choice control and
// normalizing a caller-supplied option list.
package option

// Record is one selectable entry.
// DefaultSelected is the declared selection and never changes after the
// record is built; Selected is the current state.
type Record struct {
	Text            string `json:"text"`
	Value           string `json:"value"`
	Selected        bool   `json:"selected"`
	DefaultSelected bool   `json:"defaultSelected"`
	Disabled        bool   `json:"disabled"`
}

// Model is an ordered option list plus the settings it was built with.
// Position in Options is the option's index.
type Model struct {
	Options     []Record `json:"options"`
	ClassPrefix string   `json:"classPrefix,omitempty"`
	Multiple    bool     `json:"multiple"`
}

// Len returns the number of options.
func (m Model) Len() int {
	return len(m.Options)
}

// Has reports whether index addresses an existing record.
func (m Model) Has(index int) bool {
	return index >= 0 && index < len(m.Options)
}

// SelectedIndexes returns the positions whose Selected flag is set, ascending.
func (m Model) SelectedIndexes() []int {
	indexes := []int{}
	for i, o := range m.Options {
		if o.Selected {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// Clone returns a deep copy. Models handed to more than one widget must never
// share the backing array.
func (m Model) Clone() Model {
	out := m
	if m.Options != nil {
		out.Options = make([]Record, len(m.Options))
		copy(out.Options, m.Options)
	}
	return out
}

// Raw returns the model as normalizer input, carrying the current Selected
// flags as the declared selection.
func (m Model) Raw() []Raw {
	raw := make([]Raw, len(m.Options))
	for i, o := range m.Options {
		raw[i] = Raw{
			Text:     o.Text,
			Value:    o.Value,
			Selected: Flag(o.Selected),
			Disabled: Flag(o.Disabled),
		}
	}
	return raw
}
