package selectbox

import (
	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/native"
	"github.com/odvcencio/selectsync/pkg/observability"
	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/view"
)

const (
	DefaultClassPrefix     = "ui-select"
	DefaultTriggerTemplate = `<a href="#"></a>`
)

// Option configures a Widget.
type Option func(*settings)

type settings struct {
	control         native.Control
	raw             []option.Raw
	name            string
	multiple        bool
	classPrefix     string
	triggerTemplate string
	renderer        view.Renderer
	positioner      view.Positioner
	logger          *observability.Logger
	publisher       bus.Publisher
	subjectPrefix   string
}

func defaultSettings() settings {
	return settings{
		classPrefix:     DefaultClassPrefix,
		triggerTemplate: DefaultTriggerTemplate,
		renderer:        view.HTMLRenderer{},
		positioner:      view.NopPositioner{},
		logger:          observability.NopLogger(),
		subjectPrefix:   "selectsync",
	}
}

// WithControl binds a native control. A select control also supplies the
// widget's name, mode and model.
func WithControl(c native.Control) Option {
	return func(s *settings) { s.control = c }
}

// WithModel supplies the option list used when no select control is bound.
func WithModel(raw []option.Raw) Option {
	return func(s *settings) { s.raw = raw }
}

// WithName sets the field name. Without a bound control a hidden input with
// this name is created.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

func WithMultiple(multiple bool) Option {
	return func(s *settings) { s.multiple = multiple }
}

// WithClassPrefix sets the class prefix; an empty prefix disables classes.
func WithClassPrefix(prefix string) Option {
	return func(s *settings) { s.classPrefix = prefix }
}

func WithTriggerTemplate(tpl string) Option {
	return func(s *settings) {
		if tpl != "" {
			s.triggerTemplate = tpl
		}
	}
}

func WithRenderer(r view.Renderer) Option {
	return func(s *settings) {
		if r != nil {
			s.renderer = r
		}
	}
}

func WithPositioner(p view.Positioner) Option {
	return func(s *settings) {
		if p != nil {
			s.positioner = p
		}
	}
}

func WithLogger(l *observability.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPublisher exports every change notification to p under
// <prefix>.<name>.change.
func WithPublisher(p bus.Publisher, prefix string) Option {
	return func(s *settings) {
		s.publisher = p
		if prefix != "" {
			s.subjectPrefix = prefix
		}
	}
}
