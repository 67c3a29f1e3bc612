package option

// Entry is one option as a native choice control exposes it.
type Entry struct {
	Text            string
	Value           string
	Selected        bool
	DefaultSelected bool
	Disabled        bool
}

// Source is a native choice control's live option set.
type Source interface {
	Entries() []Entry
}

// Convert builds a model from a native control by copying each entry's five
// fields in order. In single mode, when no entry is selected, the first
// record becomes selected. A nil source or empty list yields an empty model.
func Convert(src Source, classPrefix string, multiple bool) Model {
	var entries []Entry
	if src != nil {
		entries = src.Entries()
	}

	options := make([]Record, 0, len(entries))
	hasSelected := false

	for _, e := range entries {
		if e.Selected {
			hasSelected = true
		}
		options = append(options, Record{
			Text:            e.Text,
			Value:           e.Value,
			Selected:        e.Selected,
			DefaultSelected: e.DefaultSelected,
			Disabled:        e.Disabled,
		})
	}

	if !multiple && !hasSelected && len(options) > 0 {
		options[0].Selected = true
	}

	return Model{
		Options:     options,
		ClassPrefix: classPrefix,
		Multiple:    multiple,
	}
}
