package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Selection metrics
	SelectionCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "selection",
			Name:      "commits_total",
			Help:      "Total number of select() transitions applied",
		},
		[]string{"mode"},
	)

	ChangeNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "selection",
			Name:      "change_notifications_total",
			Help:      "Total number of change notifications emitted",
		},
		[]string{"mode"},
	)

	ResolutionMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "resolver",
			Name:      "misses_total",
			Help:      "Total number of references that resolved to no option",
		},
		[]string{"kind"},
	)

	// Model metrics
	ModelSyncs = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "model",
			Name:      "syncs_total",
			Help:      "Total number of full model replacements",
		},
	)

	// Bridge metrics
	BridgeWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "bridge",
			Name:      "write_failures_total",
			Help:      "Total number of failed writes to the bound control",
		},
		[]string{"op"},
	)

	NativeChangeEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "bridge",
			Name:      "native_change_events_total",
			Help:      "Total number of value-changed notifications fired on bound controls",
		},
	)

	// Host metrics
	ActiveWidgets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "selectsync",
			Subsystem: "host",
			Name:      "active_widgets",
			Help:      "Number of widgets currently attached to hosts",
		},
	)

	BusPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "selectsync",
			Subsystem: "bus",
			Name:      "publish_failures_total",
			Help:      "Total number of notifications the bus refused",
		},
	)
)
