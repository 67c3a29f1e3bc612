package option

import (
	"encoding/json"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Raw is an option-like record supplied by a caller or decoded from a file.
// Only Text and Value are required.
type Raw struct {
	Text     string `json:"text" yaml:"text" toml:"text"`
	Value    string `json:"value" yaml:"value" toml:"value"`
	Selected Flag   `json:"selected,omitempty" yaml:"selected,omitempty" toml:"selected,omitempty"`
	Disabled Flag   `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// Flag is a boolean that decodes loosely: any present, non-empty,
// non-zero, non-"false" value counts as set. Markup-derived option lists
// write `selected: "selected"` or `selected: 1` as often as `true`.
type Flag bool

// Truthy reports whether v counts as a set flag.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		s := strings.TrimSpace(strings.ToLower(x))
		return s != "" && s != "false" && s != "0"
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case Flag:
		return bool(x)
	default:
		return true
	}
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flag(Truthy(v))
	return nil
}

func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	*f = Flag(Truthy(v))
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (f *Flag) UnmarshalTOML(v any) error {
	*f = Flag(Truthy(v))
	return nil
}
