package option

// Normalize repairs an arbitrary option list into a valid model. Every
// record's declared selection (DefaultSelected) is the input's Selected flag,
// and Selected starts from the same value.
//
// In single mode the last record declared selected, in scan order, stays
// selected and every earlier declaration is cleared; when nothing is declared
// the first record is selected. Multi mode keeps the flags as given.
//
// The input is never mutated and the result shares no memory with it.
func Normalize(raw []Raw, classPrefix string, multiple bool) Model {
	options := make([]Record, 0, len(raw))
	declared := []int{}

	for i, r := range raw {
		selected := bool(r.Selected)
		if selected {
			declared = append(declared, i)
		}
		options = append(options, Record{
			Text:            r.Text,
			Value:           r.Value,
			Selected:        selected,
			DefaultSelected: selected,
			Disabled:        bool(r.Disabled),
		})
	}

	if !multiple {
		if len(declared) > 0 {
			for _, i := range declared[:len(declared)-1] {
				options[i].Selected = false
			}
		} else if len(options) > 0 {
			options[0].Selected = true
		}
	}

	return Model{
		Options:     options,
		ClassPrefix: classPrefix,
		Multiple:    multiple,
	}
}
