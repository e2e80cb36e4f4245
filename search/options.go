// Package search supplies the branch-and-bound engines that drive a
// kernel.Space through Status/Description/Clone/Commit to enumerate or
// optimize solutions. The kernel package itself has no opinion on search
// strategy (spec.md §1); this package is the default "something on the
// other side of the interface" every runnable module needs.
package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Dekker1/gecode/kernel"
)

// Options configures a search engine. Only kernel.Space and the fields
// search cares about live here; the kernel package never sees an
// Options value.
type Options struct {
	// Threads selects the engine Bab dispatches to: <= 1 (the default,
	// the zero value) selects Sequential, anything greater selects
	// Parallel with that many workers.
	Threads int

	// NodeLimit stops the search after exploring this many choice
	// points, 0 for unlimited.
	NodeLimit int64
	// FailLimit stops the search after this many failed spaces, 0 for
	// unlimited.
	FailLimit int64
	// TimeLimit is reserved for a wall-clock cutoff. Neither engine
	// reads it: search implements no wall-clock cutoff (no wall-clock
	// reads are taken on the kernel's behalf), and Engine.Run takes no
	// context through which one could be cancelled.
	TimeLimit int64

	// Registerer, if non-nil, receives this search's prometheus
	// counters (nodes explored, propagator executions, failures).
	Registerer prometheus.Registerer
	// Logger receives structured search-progress events. The zero value
	// (zerolog.Logger{}) discards everything, matching zerolog's own
	// nop-logger convention.
	Logger zerolog.Logger
}

// Solution is the best feasible (SSSolved) space a search engine found.
// Branch-and-bound keeps only the best space seen (spec.md §6); this
// package only implements optimizing search, so Run yields at most one
// Solution even though many SSSolved spaces may be visited along the way.
type Solution struct {
	Space *kernel.Space
	Nodes int64
	Fails int64
}

// CopyActorFunc reconstructs one actor in a new Space, the same
// caller-supplied hook kernel.Space.Clone itself requires; search never
// constructs actors on its own, so every engine threads this straight
// through to Clone.
type CopyActorFunc func(home *kernel.Space, a kernel.Actor) kernel.Actor

// ConstrainFunc posts, onto candidate, whatever bound-tightening
// constraint makes it strictly better than best (e.g. "objective <
// best.objective"). It is called once per node after a Clone and before
// Status, for every node once at least one solution exists; best is
// never mutated. Returning a non-nil error fails candidate outright
// (equivalent to candidate.Fail()).
type ConstrainFunc func(candidate, best *kernel.Space) error

// Engine explores a Space to find the best solution reachable from it.
type Engine interface {
	Run(root *kernel.Space, copyActor CopyActorFunc, constrain ConstrainFunc) (*Solution, error)
}
