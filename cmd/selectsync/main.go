// Command selectsync loads an option list, applies selections to a select
// widget and prints the resulting markup, state or a text preview.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/attribute"

	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/config"
	"github.com/odvcencio/selectsync/pkg/observability"
	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/ref"
	"github.com/odvcencio/selectsync/pkg/selectbox"
	"github.com/odvcencio/selectsync/pkg/source"
	"github.com/odvcencio/selectsync/pkg/terminal"
)

const (
	formatHTML  = "html"
	formatText  = "text"
	formatState = "state"
)

var errUsage = errors.New("usage: selectsync -model <file> [-select refs] [-format html|text|state]")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		terminal.NewWithOutput(os.Stderr).Error("%v", err)
		os.Exit(exitCodeForError(err))
	}
}

type options struct {
	configPath string
	modelPath  string
	multiple   bool
	selects    string
	format     string
	trace      bool
	bus        bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("selectsync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (defaults to ~/.selectsync and ./.selectsync)")
	fs.StringVar(&opts.modelPath, "model", "", "option source (.yaml, .yml, .toml, .json, .jsonc)")
	fs.BoolVar(&opts.multiple, "multiple", false, "force multi-select mode")
	fs.StringVar(&opts.selects, "select", "", "comma-separated references to select in order (integers are indexes, anything else a selector)")
	fs.StringVar(&opts.format, "format", formatText, "output format: html, text or state")
	fs.BoolVar(&opts.trace, "trace", false, "write trace spans to stderr")
	fs.BoolVar(&opts.bus, "bus", false, "publish change notifications to NATS at bus.url")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, withExitCode(err, exitUsage)
	}

	if opts.modelPath == "" && fs.NArg() > 0 {
		opts.modelPath = fs.Arg(0)
	}
	if strings.TrimSpace(opts.modelPath) == "" {
		return opts, withExitCode(errUsage, exitUsage)
	}
	switch opts.format {
	case formatHTML, formatText, formatState:
	default:
		return opts, withExitCode(fmt.Errorf("unknown format %q: %w", opts.format, errUsage), exitUsage)
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	logger := observability.NewLoggerWithWriter(stderr, "cli", observability.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	if opts.trace {
		tp, err := observability.NewTracerProvider("selectsync", stderr)
		if err != nil {
			return err
		}
		defer func() {
			if shutdownErr := tp.Shutdown(context.Background()); shutdownErr != nil && err == nil {
				err = shutdownErr
			}
		}()
	}

	ctx, span := observability.StartSpan(ctx, "selectsync.run")
	defer func() {
		observability.FailSpan(span, err)
		span.End()
	}()

	doc, err := source.LoadFile(opts.modelPath)
	if err != nil {
		return err
	}

	prefix := cfg.Widget.ClassPrefix
	if doc.ClassPrefix != "" {
		prefix = doc.ClassPrefix
	}

	widgetOpts := []selectbox.Option{
		selectbox.WithModel(doc.Options),
		selectbox.WithName(doc.Name),
		selectbox.WithMultiple(doc.Multiple || opts.multiple),
		selectbox.WithClassPrefix(prefix),
		selectbox.WithTriggerTemplate(cfg.Widget.TriggerTemplate),
		selectbox.WithLogger(logger),
	}

	if opts.bus || cfg.Bus.Enabled {
		nb, err := bus.NewNATSBus(bus.Config{URL: cfg.Bus.URL, Name: cfg.Bus.Name, Timeout: cfg.Bus.Timeout})
		if err != nil {
			return err
		}
		defer nb.Close()
		widgetOpts = append(widgetOpts, selectbox.WithPublisher(nb, cfg.Bus.SubjectPrefix))
	}

	w, err := selectbox.New(widgetOpts...)
	if err != nil {
		return err
	}
	defer w.Destroy()
	span.SetAttributes(observability.WidgetAttributes(w.Name(), w.Multiple(), w.Length())...)

	for _, raw := range splitRefs(opts.selects) {
		r := ref.Parse(raw)
		state := w.Select(r)
		observability.AddEvent(ctx, "select",
			attribute.String("ref", r.String()),
			attribute.Int("selected_index", state.SelectedIndex),
		)
	}

	switch opts.format {
	case formatHTML:
		markup, err := w.Markup()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, markup)
	case formatState:
		if err := writeState(stdout, w); err != nil {
			return err
		}
	default:
		writePreview(stdout, w, cfg.Widget)
	}

	if cfg.Metrics.Enabled {
		return writeMetrics(stderr)
	}
	return nil
}

func splitRefs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type stateOutput struct {
	Name            string       `json:"name"`
	Multiple        bool         `json:"multiple"`
	SelectedIndex   int          `json:"selected_index"`
	SelectedIndexes []int        `json:"selected_indexes"`
	Values          []string     `json:"values"`
	ControlValue    string       `json:"control_value"`
	Model           option.Model `json:"model"`
}

func writeState(out io.Writer, w *selectbox.Widget) error {
	state := stateOutput{
		Name:            w.Name(),
		Multiple:        w.Multiple(),
		SelectedIndex:   w.SelectedIndex(),
		SelectedIndexes: w.SelectedIndexes(),
		Values:          w.Values(),
		Model:           w.Model(),
	}
	if c := w.Control(); c != nil {
		state.ControlValue = c.Value()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}

func writePreview(out io.Writer, w *selectbox.Widget, cfg config.WidgetConfig) {
	tw := terminal.NewWithOutput(out)

	title := w.Name()
	if title == "" {
		title = "select"
	}
	if w.Multiple() {
		title += " (multiple)"
	}
	tw.Header(title)

	m := w.Model()
	rows := make([]terminal.Row, len(m.Options))
	for i, o := range m.Options {
		rows[i] = terminal.Row{
			Index:    i,
			Text:     o.Text,
			Value:    o.Value,
			Selected: o.Selected,
			Disabled: o.Disabled,
		}
	}
	tw.Preview(rows, cfg.MaxWidth, cfg.MaxHeight)
}

func writeMetrics(out io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "selectsync_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}
