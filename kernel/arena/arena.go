// Package arena implements the space-local allocator described in the
// kernel design: a byte-level slab allocator plus size-classed free lists,
// so that all intra-space allocations (actors, variable implementations,
// advisors, subscription arrays) come from one place and are recycled
// within the space rather than returned to the runtime allocator.
//
// This mirrors the growth discipline gini's internal/xo.Cdb/CDat use for
// clause storage: a backing slice grown geometrically (see
// internal/xo's ensureLitCap), with freed regions kept around for reuse
// instead of handed back. The difference is that a constraint kernel frees
// many small, differently-shaped objects (subsumed propagators, cancelled
// subscriptions) rather than one flat literal stream, so free storage is
// classed by size rather than simply compacted in place.
package arena

import "reflect"

// Arena owns all memory for one Space. It is never safe for concurrent
// use; a Space and its Arena are touched by one goroutine at a time.
type Arena struct {
	slab      []byte
	byteFree  map[int][][]byte
	byteLive  int
	byteTotal int
	typed     map[reflect.Type]any

	// subSlotsUsed counts slots already handed out of the dedicated
	// subscription-array region; see ReserveSubSlots.
	subSlotsUsed int
}

// hotRegionCap bounds the dedicated subscription-array region shared by
// every VarImp in a Space. While a variable's subscription array still
// fits inside this budget, growth is mild (VarImp grows it by 4 slots
// at a time); once the budget is exhausted, that variable falls out of
// the region permanently and grows geometrically instead. This mirrors
// the original kernel's "hot" memory pool for subscription arrays: a
// region cheap to grow a little at a time until it fills, after which
// further growth is handled like any other heap allocation.
const hotRegionCap = 4096

// ReserveSubSlots attempts to claim n more slots from the dedicated
// subscription region, reporting whether it had room. Once it reports
// false the region is exhausted for the rest of this Arena's lifetime:
// the budget is never reclaimed, matching the original's one-way
// hot-to-not-hot transition (a variable that falls out of the region
// never re-enters it, even if other variables' arrays shrink).
func (a *Arena) ReserveSubSlots(n int) bool {
	if a.subSlotsUsed+n > hotRegionCap {
		return false
	}
	a.subSlotsUsed += n
	return true
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{
		byteFree: make(map[int][][]byte),
		typed:    make(map[reflect.Type]any),
	}
}

// Live returns the number of bytes currently allocated and not yet freed.
// Used by tests to verify subsumption actually reclaims memory (spec.md
// §8 scenario 3).
func (a *Arena) Live() int { return a.byteLive }

// Total returns the number of bytes ever carved from the backing slab,
// i.e. excluding anything satisfied by a free-list hit. A healthy
// create/dispose cycle keeps this from growing much faster than Live's
// high-water mark.
func (a *Arena) Total() int { return a.byteTotal }

// Ralloc returns n fresh bytes, preferring a free-list hit of the exact
// size class n over carving from the slab.
func (a *Arena) Ralloc(n int) []byte {
	if n == 0 {
		return nil
	}
	a.byteLive += n
	if fl := a.byteFree[n]; len(fl) > 0 {
		buf := fl[len(fl)-1]
		a.byteFree[n] = fl[:len(fl)-1]
		return buf[:n]
	}
	a.byteTotal += n
	// grow the slab geometrically, the same policy VarImp subscription
	// arrays and gini's Cdb use for their backing storage.
	if cap(a.slab)-len(a.slab) < n {
		grow := 2 * cap(a.slab)
		if grow < 4096 {
			grow = 4096
		}
		for grow < n {
			grow *= 2
		}
		a.slab = make([]byte, 0, grow)
	}
	base := len(a.slab)
	a.slab = a.slab[:base+n]
	return a.slab[base : base+n : base+n]
}

// Rfree returns n bytes previously returned by Ralloc(n) (or the head of a
// larger Rrealloc-shrunk region) to the size-n free list for reuse.
func (a *Arena) Rfree(buf []byte, n int) {
	if n == 0 {
		return
	}
	a.byteLive -= n
	a.byteFree[n] = append(a.byteFree[n], buf[:0:n])
}

// Rrealloc resizes buf (previously allocated with size n) to size m,
// copying the overlap. Growing allocates a fresh region and frees the old
// one; shrinking frees the tail and returns the head in place.
func (a *Arena) Rrealloc(buf []byte, n, m int) []byte {
	if m == n {
		return buf
	}
	if m > n {
		nb := a.Ralloc(m)
		copy(nb, buf)
		a.Rfree(buf, n)
		return nb
	}
	// shrink: free the tail, keep the head.
	if m > 0 {
		a.Rfree(buf[m:n:n], n-m)
		return buf[:m]
	}
	a.Rfree(buf, n)
	return nil
}

// FlAlloc returns a T from the arena's free list for T's type, or a fresh
// zero-valued T if none is available. Go generics give us a per-type
// free list rather than the size-class free list the original kernel
// indexes by raw byte size: T's concrete type stands in for "size class"
// since two different fixed-size kernel objects are never layout
// compatible in Go the way they can be reinterpreted in C++.
func FlAlloc[T any](a *Arena) *T {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if lst, ok := a.typed[key]; ok {
		fl := lst.([]*T)
		if n := len(fl); n > 0 {
			v := fl[n-1]
			a.typed[key] = fl[:n-1]
			return v
		}
	}
	return new(T)
}

// FlDispose returns a chain of T's (head..tail, inclusive, given as a
// slice since Go's generics have no intrusive-link constraint to walk a
// head/tail pointer pair) to T's free list in one call, the batch
// disposal the original kernel's fl_dispose(head, tail) performs in O(1)
// by splicing a whole chain onto the free list at once.
func FlDispose[T any](a *Arena, chain ...*T) {
	if len(chain) == 0 {
		return
	}
	key := reflect.TypeOf((*T)(nil)).Elem()
	fl, _ := a.typed[key].([]*T)
	a.typed[key] = append(fl, chain...)
}
