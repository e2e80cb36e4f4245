package kernel

// ActorLink is an intrusive doubly linked list node. It carries no payload
// of its own; Space embeds it three times per actor (once for chain
// membership, once for propagation-queue membership, once for the
// weakly-monotonic notice list) so "reused for queues and chains"
// (spec.md §2) is literal: the same node type backs the actor chain, the
// eight cost-class queues, and the notice list.
//
// Lists are circular with a sentinel node owned by whoever holds the
// list (Space for the actor chain and the queues); an empty list is a
// sentinel pointing to itself.
type ActorLink struct {
	prev, next *ActorLink
	// owner is the actorNode this link is embedded in, set once at Post
	// time. Go has no container_of to recover it from a bare *ActorLink
	// the way the original kernel casts a queue node back to Actor*, so
	// the back-reference is carried explicitly instead.
	owner *actorNode
}

// initSentinel makes l a one-element circular list (its own head/tail).
func (l *ActorLink) initSentinel() {
	l.prev, l.next = l, l
}

func (l *ActorLink) empty() bool { return l.next == l }

// insertAfter splices n in immediately after l.
func (l *ActorLink) insertAfter(n *ActorLink) {
	n.prev = l
	n.next = l.next
	l.next.prev = n
	l.next = n
}

// insertBefore splices n in immediately before l.
func (l *ActorLink) insertBefore(n *ActorLink) {
	n.next = l
	n.prev = l.prev
	l.prev.next = n
	l.prev = n
}

// unlink removes l from whatever list it is in. l's own prev/next are left
// dangling (not reset to self) so callers can still read where it used to
// sit, e.g. when walking a cost queue and unlinking the head as it is
// dispatched.
func (l *ActorLink) unlink() {
	l.prev.next = l.next
	l.next.prev = l.prev
}
