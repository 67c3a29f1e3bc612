// Package terminal renders a select widget's option list as styled text.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	markerSelected = "●"
	markerIdle     = "○"
	ellipsis       = "…"
)

// Row is one option line of a preview.
type Row struct {
	Index    int
	Text     string
	Value    string
	Selected bool
	Disabled bool
}

// Writer provides styled terminal output.
type Writer struct {
	out io.Writer
	mu  sync.Mutex

	errorStyle    lipgloss.Style
	warnStyle     lipgloss.Style
	dimStyle      lipgloss.Style
	headerStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	disabledStyle lipgloss.Style
}

// New creates a Writer on stdout.
func New() *Writer {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput creates a Writer with a custom output destination.
func NewWithOutput(out io.Writer) *Writer {
	return &Writer{
		out: out,

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),

		warnStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}),

		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),

		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"}),

		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}).
			Bold(true),

		disabledStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}).
			Strikethrough(true),
	}
}

// Println writes text with a newline.
func (w *Writer) Println(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error prints an error message in red.
func (w *Writer) Error(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.out, w.errorStyle.Render("error: "+msg))
}

// Warn prints a warning message in yellow.
func (w *Writer) Warn(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.out, w.warnStyle.Render("warning: "+msg))
}

// Header prints a section header.
func (w *Writer) Header(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, w.headerStyle.Render(title))
}

// Preview prints one line per option, each cut to maxWidth display columns.
// At most maxHeight rows are printed; 0 means no limit.
func (w *Writer) Preview(rows []Row, maxWidth, maxHeight int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	shown := rows
	if maxHeight > 0 && len(rows) > maxHeight {
		shown = rows[:maxHeight]
	}

	for _, row := range shown {
		marker := markerIdle
		if row.Selected {
			marker = markerSelected
		}
		line := Truncate(fmt.Sprintf("%s %d  %s", marker, row.Index, row.Text), maxWidth)

		switch {
		case row.Disabled:
			line = w.disabledStyle.Render(line)
		case row.Selected:
			line = w.selectedStyle.Render(line)
		}
		fmt.Fprintln(w.out, line)
	}

	if hidden := len(rows) - len(shown); hidden > 0 {
		fmt.Fprintln(w.out, w.dimStyle.Render(fmt.Sprintf("  … %d more", hidden)))
	}
}

// Truncate cuts s to width display columns, ending with an ellipsis when
// anything was dropped. A width of 0 or less keeps s whole.
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
