package kernel

import "github.com/Dekker1/gecode/kernel/support"

// ActorProp marks properties of an actor that the Space must honor during
// teardown and statistics, spec.md §3.
type ActorProp uint8

const (
	// APNone is the default: the actor needs no special handling.
	APNone ActorProp = 0
	// APDispose marks an actor that must be destructed even when the
	// Space is torn down (it holds resources outside the arena).
	APDispose ActorProp = 1 << 0
	// APWeakly marks a propagator that is only monotonic on assignments
	// (weakly monotonic), tracked by Space.Notice/Ignore for diagnostics.
	APWeakly ActorProp = 1 << 1
)

// Actor is the common base of Propagator and Branching. Concrete actor
// types embed ActorBase to satisfy it; ActorBase supplies the
// bookkeeping hooks (node/setNode) that only this package's Space may
// call, the same way every Gecode Actor inherits bookkeeping from
// ActorLink rather than each subclass reimplementing it.
type Actor interface {
	// Dispose releases resources the actor holds beyond its own memory.
	// Called at most once across the Space's lifetime (spec.md §8).
	Dispose(home *Space)
	// Properties reports this actor's dispose/weakly-monotonic flags.
	Properties() ActorProp

	node() *actorNode
	setNode(*actorNode)
}

// ActorBase is embedded by every concrete Propagator or Branching
// implementation. It supplies default (no-op) Dispose/Properties and the
// glue the Space uses to find an actor's bookkeeping node, so authors
// only need to implement the methods specific to their actor.
type ActorBase struct {
	n *actorNode
}

func (a *ActorBase) node() *actorNode     { return a.n }
func (a *ActorBase) setNode(n *actorNode) { a.n = n }

// Dispose is a no-op by default; override it (by redefining the method on
// the embedding type) when the actor needs AP_DISPOSE semantics.
func (a *ActorBase) Dispose(home *Space) {}

// Properties returns APNone by default; override it to mark
// AP_DISPOSE/AP_WEAKLY.
func (a *ActorBase) Properties() ActorProp { return APNone }

// actorNode is the Space-owned bookkeeping record for one actor: its
// position in the actor chain, its position in a cost-class propagation
// queue (if scheduled), and the lifecycle-phase fields the spec describes
// for Propagator (pending delta while propagating, reclaimable size once
// subsumed).
//
// This is where "the subscription array is partitioned..." bookkeeping
// and "Propagator.u has disjoint meanings by lifecycle phase" (spec.md
// §3, §9) live: rather than reusing one machine word for several
// meanings the way the original union does, actorNode carries named
// fields and a phase tag, the explicit-fields alternative spec.md §9
// recommends for languages without unchecked unions. The advisor-chain
// head the union also carries during cloning has no field here: this
// port does not replicate Council<A>::update's clone-reset pass (see
// DESIGN.md); a propagator that owns advisors recreates and resubscribes
// them itself from its own Copy, the same cooperation VarImp.resubscribe
// already asks of it for plain subscriptions.
type actorNode struct {
	chain  ActorLink // membership in the Space's propagator/branching list
	queue  ActorLink // membership in a propagation cost-class queue
	notice ActorLink // membership in Space's weakly-monotonic notice list

	actor Actor
	kind  actorKind
	props ActorProp

	// queued reports whether this node currently sits in a cost queue;
	// Schedule is idempotent, so a node already queued is not re-linked.
	queued bool
	cost   PropCost

	// propagating-phase field: modification events accumulated since
	// this propagator last ran.
	med ModEventDelta

	// subsumed-phase field: bytes to reclaim from the arena once the
	// Space has unlinked this propagator.
	subsumedSize int

	// branching-only: monotonic id matching the descriptions it
	// produces.
	branchID support.ID

	// cloneCopy is set, for the duration of one Space.Clone call, to
	// this actor's copy in the new Space. Unlike VarImp.forward it is
	// not a deduplication mechanism (actors are never shared the way
	// variables are); it only lets VarImp.resubscribe translate an
	// old-space Propagator reference into its new-space counterpart
	// once every actor in the chain has been copied.
	cloneCopy Actor
}

// clonedActor returns a's copy in the Space currently being cloned, if
// one has been recorded, and whether it exists.
func clonedActor(a Actor) (Actor, bool) {
	n := a.node()
	if n == nil || n.cloneCopy == nil {
		return nil, false
	}
	return n.cloneCopy, true
}

type actorKind uint8

const (
	kindPropagator actorKind = iota
	kindBranching
)
