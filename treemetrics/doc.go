/*
Package treemetrics exports Prometheus metrics for a treestate.Store.

An Observer is plugged into a store as its change callback:

	obs, err := treemetrics.NewObserver(prometheus.DefaultRegisterer)
	store := treestate.New(spec, treestate.WithOnChange(obs.Observe))

It counts events by type and tracks the size and version of the tree.
*/
package treemetrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treestate.metrics'.
func tracer() tracing.Trace {
	return tracing.Select("treestate.metrics")
}
