// Package host attaches select widgets to the controls of a hosting form and
// keeps them addressable by field name. Each host owns its own Registry;
// there is no process-wide table.
package host

import (
	"context"
	"encoding/json"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/native"
	"github.com/odvcencio/selectsync/pkg/observability"
	"github.com/odvcencio/selectsync/pkg/selectbox"
)

// ExportFunc is called for every widget the registry creates.
type ExportFunc func(name string, w *selectbox.Widget)

// Registry maps field names to the widgets attached to them.
type Registry struct {
	mu       sync.Mutex
	widgets  map[string]*selectbox.Widget
	attached map[native.Control]struct{}
	exports  []ExportFunc

	widgetOpts    []selectbox.Option
	publisher     bus.Publisher
	subjectPrefix string
	logger        *observability.Logger
	closed        bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithWidgetOptions applies opts to every widget the registry creates.
func WithWidgetOptions(opts ...selectbox.Option) Option {
	return func(r *Registry) {
		r.widgetOpts = append(r.widgetOpts, opts...)
	}
}

// WithBus publishes export messages and widget change notifications on p.
func WithBus(p bus.Publisher, subjectPrefix string) Option {
	return func(r *Registry) {
		r.publisher = p
		if subjectPrefix != "" {
			r.subjectPrefix = subjectPrefix
		}
	}
}

func WithLogger(l *observability.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		widgets:       make(map[string]*selectbox.Widget),
		attached:      make(map[native.Control]struct{}),
		subjectPrefix: "selectsync",
		logger:        observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnExport registers a callback fired for each newly attached widget.
func (r *Registry) OnExport(fn ExportFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports = append(r.exports, fn)
}

type exportMessage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Multiple bool   `json:"multiple"`
	Options  int    `json:"options"`
	Disabled bool   `json:"disabled"`
}

// Attach creates a widget for every select control not attached yet; other
// controls are skipped. A disabled or readonly control yields a disabled
// widget. A widget already registered under the same name is replaced.
func (r *Registry) Attach(ctx context.Context, controls ...native.Control) ([]*selectbox.Widget, error) {
	ctx, span := observability.StartSpan(ctx, "host.attach")
	defer span.End()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		observability.FailSpan(span, ErrClosed)
		return nil, ErrClosed
	}

	var created []*selectbox.Widget
	var replaced []*selectbox.Widget
	for _, c := range controls {
		if !native.IsSelect(c) {
			continue
		}
		if _, ok := r.attached[c]; ok {
			continue
		}

		opts := append([]selectbox.Option{}, r.widgetOpts...)
		opts = append(opts, selectbox.WithControl(c), selectbox.WithLogger(r.logger))
		if r.publisher != nil {
			opts = append(opts, selectbox.WithPublisher(r.publisher, r.subjectPrefix))
		}

		w, err := selectbox.New(opts...)
		if err != nil {
			r.mu.Unlock()
			for _, old := range replaced {
				old.Destroy()
			}
			observability.FailSpan(span, err)
			return created, err
		}
		w.SetDisabled(c.Disabled() || c.ReadOnly())

		if old, ok := r.widgets[w.Name()]; ok {
			replaced = append(replaced, old)
		} else {
			observability.ActiveWidgets.Inc()
		}
		r.attached[c] = struct{}{}
		r.widgets[w.Name()] = w
		created = append(created, w)
	}
	exports := append([]ExportFunc{}, r.exports...)
	r.mu.Unlock()

	for _, old := range replaced {
		old.Destroy()
	}

	for _, w := range created {
		observability.AddEvent(ctx, "widget.attached", observability.WidgetAttributes(w.Name(), w.Multiple(), w.Length())...)
		for _, fn := range exports {
			fn(w.Name(), w)
		}
		r.publishExport(ctx, w)
	}
	span.SetAttributes(attribute.Int("widgets.created", len(created)))

	return created, nil
}

func (r *Registry) publishExport(ctx context.Context, w *selectbox.Widget) {
	if r.publisher == nil {
		return
	}
	subject := bus.Subject(r.subjectPrefix, w.Name(), "export")
	data, err := json.Marshal(exportMessage{
		ID:       w.ID(),
		Name:     w.Name(),
		Multiple: w.Multiple(),
		Options:  w.Length(),
		Disabled: w.Disabled(),
	})
	if err == nil {
		err = r.publisher.Publish(ctx, subject, data)
	}
	if err != nil {
		r.logger.NotificationDropped(subject, err)
		observability.BusPublishFailures.Inc()
	}
}

// Get returns the widget attached under name.
func (r *Registry) Get(name string) (*selectbox.Widget, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.widgets[name]
	return w, ok
}

// Names returns the registered field names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.widgets))
	for name := range r.widgets {
		names = append(names, name)
	}
	return names
}

// Remove destroys and forgets the widget attached under name. The control
// stays attached-marked so a later Attach does not render it again.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	w, ok := r.widgets[name]
	if ok {
		delete(r.widgets, name)
		observability.ActiveWidgets.Dec()
	}
	r.mu.Unlock()

	if ok {
		w.Destroy()
	}
	return ok
}

// Close destroys every widget. Attach fails afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.closed = true
	widgets := r.widgets
	r.widgets = make(map[string]*selectbox.Widget)
	r.mu.Unlock()

	for _, w := range widgets {
		w.Destroy()
		observability.ActiveWidgets.Dec()
	}
	return nil
}
