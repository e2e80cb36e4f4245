package search

import "github.com/prometheus/client_golang/prometheus"

// metrics are the counters both engines report through, wired to
// whatever registry the caller supplies via Options.Registerer rather
// than a bound global (spec.md §1: the kernel has no wire format, so
// nothing here starts an HTTP server or binds a default registry).
type metrics struct {
	nodes        prometheus.Counter
	fails        prometheus.Counter
	props        prometheus.Counter
	bests        prometheus.Counter
	propagations prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gecode_search_nodes_total",
			Help: "Choice points explored.",
		}),
		fails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gecode_search_fails_total",
			Help: "Spaces that reached SSFailed.",
		}),
		props: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gecode_search_clones_total",
			Help: "Spaces cloned during search.",
		}),
		bests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gecode_search_best_updates_total",
			Help: "Times a new best solution replaced the previous one.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gecode_search_propagator_runs_total",
			Help: "Propagator executions across every Status call.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.nodes, m.fails, m.props, m.bests, m.propagations)
	}
	return m
}
