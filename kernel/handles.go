package kernel

import "sync/atomic"

// Copyable is implemented by the payload a CopiedHandle wraps: a value
// that must be duplicated, not aliased, whenever the Space holding it is
// cloned (spec.md §7).
type Copyable[T any] interface {
	Copy() T
}

// CopiedHandle holds a value that is copied, field by field, every time
// its owning Space is cloned — the Go analogue of the original kernel's
// CopiedHandle, which exists so actors can own non-variable auxiliary
// state (e.g. a cached bound) without hand-writing its clone logic at
// every call site.
type CopiedHandle[T Copyable[T]] struct {
	val T
}

// NewCopiedHandle wraps val.
func NewCopiedHandle[T Copyable[T]](val T) CopiedHandle[T] {
	return CopiedHandle[T]{val: val}
}

// Get returns the wrapped value.
func (h CopiedHandle[T]) Get() T { return h.val }

// Set replaces the wrapped value.
func (h *CopiedHandle[T]) Set(v T) { h.val = v }

// Update copies the held value into a fresh instance, for use from a
// propagator's own Copy method during Space.Clone.
func (h CopiedHandle[T]) Update() CopiedHandle[T] {
	return CopiedHandle[T]{val: h.val.Copy()}
}

// SharedHandle holds a value shared, by reference, across every clone of
// the Space that first created it — used for state that is expensive to
// duplicate and safe to share because it is never mutated after
// construction (e.g. a shared sparse array or a read-only constraint
// table). Unlike the original kernel's SharedHandle, whose reference
// count only needs to be correct under sequential cloning, this one
// uses sync/atomic: SPEC_FULL.md's parallel search explores cloned
// Spaces from multiple goroutines, so two clones of the same ancestor
// can release their share of a SharedHandle concurrently.
type SharedHandle struct {
	obj *sharedObject
}

type sharedObject struct {
	refs int32
	data any
	free func(any)
}

// NewSharedHandle wraps data under a single reference. free, if non-nil,
// runs once when the last reference is released.
func NewSharedHandle(data any, free func(any)) SharedHandle {
	return SharedHandle{obj: &sharedObject{refs: 1, data: data, free: free}}
}

// Get returns the shared data.
func (h SharedHandle) Get() any { return h.obj.data }

// Update returns a handle sharing the same underlying object, with its
// reference count incremented; call this from a propagator's Copy
// method in place of duplicating the data.
func (h SharedHandle) Update() SharedHandle {
	h.obj.addRef()
	return h
}

func (o *sharedObject) addRef() { atomic.AddInt32(&o.refs, 1) }

// Release drops this handle's reference, running free on the underlying
// data if it was the last one. Call this from Actor.Dispose for any
// actor that holds a SharedHandle and sets APDispose.
func (h SharedHandle) Release() {
	if atomic.AddInt32(&h.obj.refs, -1) == 0 && h.obj.free != nil {
		h.obj.free(h.obj.data)
	}
}
