package kernel

// Advisor is a fine-grained callback attached to one propagator and
// subscribed to one variable implementation, invoked on a specific
// modification rather than rescheduling the whole propagator (spec.md
// §3, §4.2). Data carries whatever per-advisor context the propagator
// author needs (e.g. which array index this advisor watches); Go
// interface methods cannot be parameterized per call site the way a
// C++ template can specialize Advisor<A>, so a plain `any` payload is
// the idiomatic substitute (the same trade-off context.Context makes).
type Advisor struct {
	next     *Advisor // next in the owning propagator's Council chain
	disposed bool
	owner    Propagator
	Data     any
}

// NewAdvisor creates an advisor owned by owner, carrying data.
func NewAdvisor(owner Propagator, data any) *Advisor {
	return &Advisor{owner: owner, Data: data}
}

// Owner returns the propagator this advisor was created for.
func (a *Advisor) Owner() Propagator { return a.owner }

// Dispose marks the advisor disposed. Per spec.md §4.2's Advise
// invariant, this only flags the advisor: removal from its Council
// happens lazily (in Council.ForEach), and its entry in the variable's
// subscription bucket stays in place and is skipped by VarImp.Advise
// (only CancelAdvisor removes it), so that an advisor disposing itself
// mid-iteration never causes a still-live sibling to be skipped.
func (a *Advisor) Dispose() { a.disposed = true }

// Disposed reports whether Dispose has been called.
func (a *Advisor) Disposed() bool { return a.disposed }

// Council is a propagator's own index of the advisors it owns, used to
// walk or dispose all of them in one pass (e.g. when the propagator
// itself subsumes; Space does not reset advisor chains after a clone) —
// spec.md §3's "Singly linked head pointer through advisors belonging to
// one propagator". It is independent of the (separately bucketed)
// subscription entry each advisor holds in its variable's VarImp; that
// bucket is what Advise(me, d) actually iterates.
type Council struct {
	head *Advisor
}

func (c *Council) push(a *Advisor) {
	a.next = c.head
	c.head = a
}

// New creates an advisor owned by owner and records it in this council,
// so the propagator can later walk or dispose every advisor it created
// without having to keep its own list.
func (c *Council) New(owner Propagator, data any) *Advisor {
	a := NewAdvisor(owner, data)
	c.push(a)
	return a
}

// Head returns the first advisor in the council, or nil if empty.
func (c *Council) Head() *Advisor { return c.head }

// ForEach walks live advisors, lazily unlinking any found disposed. f may
// dispose the advisor it is given; doing so does not affect the
// traversal of other, already-queued advisors.
func (c *Council) ForEach(f func(*Advisor)) {
	var prev *Advisor
	cur := c.head
	for cur != nil {
		next := cur.next
		if cur.disposed {
			if prev == nil {
				c.head = next
			} else {
				prev.next = next
			}
			cur = next
			continue
		}
		f(cur)
		prev = cur
		cur = next
	}
}

// DisposeAll marks every advisor in the council disposed, used when the
// owning propagator is removed from its Space.
func (c *Council) DisposeAll() {
	for cur := c.head; cur != nil; cur = cur.next {
		cur.disposed = true
	}
	c.head = nil
}
