package host

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/selectsync/pkg/bus"
	"github.com/odvcencio/selectsync/pkg/native"
	"github.com/odvcencio/selectsync/pkg/observability"
	"github.com/odvcencio/selectsync/pkg/option"
	"github.com/odvcencio/selectsync/pkg/ref"
	"github.com/odvcencio/selectsync/pkg/selectbox"
)

func field(name string) *native.Select {
	return native.NewSelect(name, false,
		option.Entry{Text: "One", Value: "1"},
		option.Entry{Text: "Two", Value: "2"},
	)
}

func TestAttach_SelectControlsOnly(t *testing.T) {
	r := New()
	defer r.Close()

	city := field("city")
	country := field("country")

	widgets, err := r.Attach(context.Background(), city, native.NewInput("note"), country)
	require.NoError(t, err)
	require.Len(t, widgets, 2)

	w, ok := r.Get("city")
	require.True(t, ok)
	assert.Equal(t, "1", city.Value())
	assert.Equal(t, 0, w.SelectedIndex())

	_, ok = r.Get("note")
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"city", "country"}, r.Names())
}

func TestAttach_SkipsAlreadyAttached(t *testing.T) {
	r := New()
	defer r.Close()

	city := field("city")
	_, err := r.Attach(context.Background(), city)
	require.NoError(t, err)

	again, err := r.Attach(context.Background(), city, field("zip"))
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "zip", again[0].Name())
}

func TestAttach_DisabledAndReadOnly(t *testing.T) {
	r := New()
	defer r.Close()

	disabled := field("a")
	disabled.SetDisabled(true)
	readOnly := field("b")
	readOnly.SetReadOnly(true)

	_, err := r.Attach(context.Background(), disabled, readOnly, field("c"))
	require.NoError(t, err)

	for name, want := range map[string]bool{"a": true, "b": true, "c": false} {
		w, ok := r.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, w.Disabled(), name)
	}
}

func TestAttach_ExportCallbackAndWidgetOptions(t *testing.T) {
	r := New(WithWidgetOptions(selectbox.WithClassPrefix("form-select")))
	defer r.Close()

	var exported []string
	r.OnExport(func(name string, w *selectbox.Widget) {
		exported = append(exported, name)
		assert.True(t, w.View().HasTriggerClass("form-select-trigger"))
	})

	_, err := r.Attach(context.Background(), field("city"), field("zip"))
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "zip"}, exported)
}

func TestAttach_PublishesExportAndChanges(t *testing.T) {
	mb := bus.NewMemoryBus()
	defer mb.Close()

	ctx := context.Background()
	received := make(chan *bus.Message, 8)
	sub, err := mb.Subscribe(ctx, "forms.city.>", func(msg *bus.Message) { received <- msg })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	r := New(WithBus(mb, "forms"))
	defer r.Close()

	widgets, err := r.Attach(ctx, field("city"))
	require.NoError(t, err)
	widgets[0].Select(ref.ByIndex(1))

	subjects := map[string]int{}
	var export exportMessage
	for i := 0; i < 3; i++ {
		select {
		case msg := <-received:
			subjects[msg.Subject]++
			if msg.Subject == "forms.city.export" {
				require.NoError(t, json.Unmarshal(msg.Data, &export))
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for bus messages")
		}
	}

	assert.Equal(t, 2, subjects["forms.city.change"])
	assert.Equal(t, 1, subjects["forms.city.export"])
	assert.Equal(t, "city", export.Name)
	assert.Equal(t, 2, export.Options)
}

func TestRemoveAndClose(t *testing.T) {
	before := testutil.ToFloat64(observability.ActiveWidgets)

	r := New()
	city := field("city")
	_, err := r.Attach(context.Background(), city, field("zip"))
	require.NoError(t, err)
	assert.Equal(t, before+2, testutil.ToFloat64(observability.ActiveWidgets))

	w, _ := r.Get("city")
	assert.True(t, r.Remove("city"))
	assert.False(t, r.Remove("city"))
	assert.Equal(t, 0, w.Length())
	assert.Equal(t, "1", city.Value(), "the bound control is left as it is")

	require.NoError(t, r.Close())
	assert.Equal(t, before, testutil.ToFloat64(observability.ActiveWidgets))
	assert.ErrorIs(t, r.Close(), ErrClosed)

	_, err = r.Attach(context.Background(), field("late"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := New()
	b := New()
	defer a.Close()
	defer b.Close()

	_, err := a.Attach(context.Background(), field("city"))
	require.NoError(t, err)

	_, ok := b.Get("city")
	assert.False(t, ok)
}
