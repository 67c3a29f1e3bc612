package selectbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/observability"
)

// ChangeEvent describes one committed selection change.
//
// In single mode Index and PreviousIndex are the new and old selected
// positions and Selected/Previous their rendered entries. In multi mode Index
// is the last toggled position and PreviousIndex is -1.
type ChangeEvent struct {
	ID              string
	Widget          string
	Multiple        bool
	Index           int
	PreviousIndex   int
	Selected        *goquery.Selection
	Previous        *goquery.Selection
	SelectedIndexes []int
	Values          []string
}

// DisabledEvent is emitted when the widget's disabled state changes.
type DisabledEvent struct {
	Widget   string
	Selected *goquery.Selection
	Disabled bool
}

type changeMessage struct {
	ID              string   `json:"id"`
	Widget          string   `json:"widget"`
	Multiple        bool     `json:"multiple"`
	Index           int      `json:"index"`
	PreviousIndex   int      `json:"previous_index"`
	SelectedIndexes []int    `json:"selected_indexes"`
	Values          []string `json:"values"`
}

const publishTimeout = 2 * time.Second

func (w *Widget) publish(ev ChangeEvent) {
	if w.publisher == nil {
		return
	}

	subject := bus.Subject(w.subjectPrefix, w.name, "change")
	data, err := json.Marshal(changeMessage{
		ID:              ev.ID,
		Widget:          ev.Widget,
		Multiple:        ev.Multiple,
		Index:           ev.Index,
		PreviousIndex:   ev.PreviousIndex,
		SelectedIndexes: ev.SelectedIndexes,
		Values:          ev.Values,
	})
	if err != nil {
		w.logger.NotificationDropped(subject, err)
		observability.BusPublishFailures.Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := w.publisher.Publish(ctx, subject, data); err != nil {
		w.logger.NotificationDropped(subject, err)
		observability.BusPublishFailures.Inc()
	}
}
