package treemetrics

import (
	"errors"

	"github.com/npillmayer/treestate/tree"
	"github.com/npillmayer/treestate/treestate"
	"github.com/prometheus/client_golang/prometheus"
)

// Observer records store changes as Prometheus metrics.
type Observer struct {
	events  *prometheus.CounterVec
	nodes   prometheus.Gauge
	version prometheus.Gauge
	depth   prometheus.Histogram
	next    func(treestate.State, treestate.Event)
}

// NewObserver creates an Observer and registers its collectors with reg.
// Collectors already registered with reg (e.g. by a previous Observer) are
// reused.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treestate_events_total",
			Help: "Total tree state events by type",
		}, []string{"type"}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "treestate_nodes",
			Help: "Number of nodes in the current tree",
		}),
		version: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "treestate_version",
			Help: "Change token of the current tree",
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "treestate_event_path_depth",
			Help:    "Depth of the paths events are addressed to",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
	}
	var err error
	if o.events, err = register(reg, o.events); err != nil {
		return nil, err
	}
	if o.nodes, err = register(reg, o.nodes); err != nil {
		return nil, err
	}
	if o.version, err = register(reg, o.version); err != nil {
		return nil, err
	}
	if o.depth, err = register(reg, o.depth); err != nil {
		return nil, err
	}
	return o, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Chain makes o call f after recording each change.
// It returns o to allow for chaining.
func (o *Observer) Chain(f func(treestate.State, treestate.Event)) *Observer {
	o.next = f
	return o
}

// Observe records a change. It has the signature of a treestate change callback.
func (o *Observer) Observe(state treestate.State, event treestate.Event) {
	o.events.WithLabelValues(event.Type).Inc()
	o.nodes.Set(float64(tree.Count(state.Root)))
	o.version.Set(float64(state.Version))
	if event.Path != nil {
		o.depth.Observe(float64(len(event.Path)))
	}
	tracer().Debugf("observed %s, version %d", event.Type, state.Version)
	if o.next != nil {
		o.next(state, event)
	}
}
