// Package native adapts the form control a select widget stays bound to:
// either a real choice control (a select) mirrored by index, or a generic
// field that receives the serialized value.
package native

import (
	"encoding/json"
	"strings"

	apperrors "github.com/odvcencio/selectsync/pkg/errors"
	"github.com/odvcencio/selectsync/pkg/option"
)

//go:generate mockgen -destination=mocks/mock_control.go -package=mocks . Control

const (
	TagSelect = "select"
	TagInput  = "input"
)

// ErrDetached is returned by every write to a control that has been removed
// from its document. Match it with errors.Is.
var ErrDetached = apperrors.New(apperrors.ErrCodeControlDetached, "")

// Control is the bound native control. The widget holds it as a weak
// reference and only reads and writes values through it.
type Control interface {
	option.Source

	TagName() string
	Name() string
	Multiple() bool
	Disabled() bool
	ReadOnly() bool

	// Value is the serialized current value: the selected value of a single
	// control, a JSON array of selected values for a multiple select, or ""
	// when nothing is selected.
	Value() string

	SetValue(value string) error
	SetSelectedIndex(index int) error
	SetOptionSelected(index int, selected bool) error
	ReplaceOptions(entries []option.Entry) error
	RemoveOption(index int) error

	// NotifyChanged fires the control's own change event.
	NotifyChanged() error
}

// IsSelect reports whether c is a real choice control.
func IsSelect(c Control) bool {
	return c != nil && strings.EqualFold(c.TagName(), TagSelect)
}

// SerializeValues encodes selected values the way a generic bound field
// stores them: a JSON array, or "" when nothing is selected.
func SerializeValues(values []string) string {
	if len(values) == 0 {
		return ""
	}
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

// ParseValues is the inverse of SerializeValues. A non-JSON string is taken
// as a single value.
func ParseValues(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{raw}
	}
	return values
}

func detached(op, name string) error {
	return apperrors.New(apperrors.ErrCodeControlDetached, "control is no longer in the document").
		WithContext("op", op).
		WithContext("name", name)
}
