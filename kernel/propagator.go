package kernel

// Propagator is an actor that narrows variable domains until fixpoint or
// failure (spec.md §4.3).
type Propagator interface {
	Actor

	// Propagate consumes the accumulated modification-event delta and
	// narrows the propagator's variables. The returned ExecStatus
	// drives Space's propagation loop; see the ES* constructors below.
	Propagate(home *Space, med ModEventDelta) ExecStatus

	// Cost returns this propagator's expected execution cost, used as
	// the propagation-queue index. It may depend on med (e.g. a
	// propagator might be cheaper when only one variable changed).
	Cost(home *Space, med ModEventDelta) PropCost
}

// Advisable is implemented by propagators that want fine-grained,
// per-modification callbacks via advisors rather than being rescheduled
// wholesale. A propagator that does not implement Advisable behaves as if
// Advise always returned ESFix() (spec.md §4.2).
type Advisable interface {
	Advise(home *Space, a *Advisor, d Delta) ExecStatus
}

// execKind tags which of spec.md §4.3's ExecStatus shapes a value holds.
type execKind uint8

const (
	execFailed execKind = iota
	execFix
	execNoFix
	execSubsumed
	execFixPartial
	execNoFixPartial
	execSubsumedFix
	execSubsumedNoFix
)

// ExecStatus is the tagged result of Propagate and Advise. It is a small
// value type (not an interface) since exactly one of a handful of shapes
// is ever live at a time, matching the union spec.md §4.3 describes
// without needing an unchecked union: Go gives us a value type with a
// kind tag for free.
type ExecStatus struct {
	kind execKind
	size int
	med  ModEventDelta
}

// ESFailed reports that propagation emptied a domain; the Space must fail.
func ESFailed() ExecStatus { return ExecStatus{kind: execFailed} }

// ESFix reports that the propagator reached a fixpoint and should not be
// rescheduled until further modifications occur.
func ESFix() ExecStatus { return ExecStatus{kind: execFix} }

// ESNoFix reports that the propagator is not yet at a fixpoint and should
// run again.
func ESNoFix() ExecStatus { return ExecStatus{kind: execNoFix} }

// ESSubsumed reports that the propagator is done for good; size is the
// number of arena bytes the propagator holds. The Space unlinks the
// propagator and logs size; it does not free those bytes itself, which
// only the propagator's own Dispose (run when APDispose is set) returns
// to the arena.
func ESSubsumed(size int) ExecStatus { return ExecStatus{kind: execSubsumed, size: size} }

// ESFixPartial reports a fixpoint with respect to events already
// consumed; rest is merged into the propagator's pending delta for next
// time.
func ESFixPartial(rest ModEventDelta) ExecStatus {
	return ExecStatus{kind: execFixPartial, med: rest}
}

// ESNoFixPartial is like ESFixPartial but the propagator should also be
// rescheduled immediately.
func ESNoFixPartial(rest ModEventDelta) ExecStatus {
	return ExecStatus{kind: execNoFixPartial, med: rest}
}

// ESSubsumedFix is returned from Advise to report that the advisor (and
// its propagator, for this notification) are both at a fixpoint and the
// advisor should dispose itself.
func ESSubsumedFix() ExecStatus { return ExecStatus{kind: execSubsumedFix} }

// ESSubsumedNoFix is like ESSubsumedFix but additionally schedules the
// advisor's propagator.
func ESSubsumedNoFix() ExecStatus { return ExecStatus{kind: execSubsumedNoFix} }
