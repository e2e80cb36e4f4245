package search

// Bab is the search dispatch shim (spec.md §4.5): it picks Sequential or
// Parallel based on opts.Threads and wires whatever prometheus
// registerer and zerolog logger opts carries into the chosen engine.
// sizeHint pre-sizes Parallel's shared stack of open nodes (the expected
// number of choice points in flight at once); Sequential ignores it.
// Passing 0 is always safe, just possibly causing a few extra slice
// growths.
func Bab(sizeHint int, opts Options) Engine {
	m := newMetrics(opts.Registerer)
	if opts.Threads <= 1 {
		return &Sequential{opts: opts, metrics: m}
	}
	return &Parallel{opts: opts, metrics: m, sizeHint: sizeHint}
}
