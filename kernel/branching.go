package kernel

// Branching is an actor that enumerates alternative sub-problems at a
// choice point (spec.md §4.3).
type Branching interface {
	Actor

	// Status reports whether this branching still has alternatives to
	// offer. Called once propagation reaches fixpoint; once it returns
	// false the Space advances past this branching permanently.
	Status(home *Space) bool

	// Description produces a fresh description for the current choice
	// point. Called at most once per Status() == true, before any
	// other non-const Space operation.
	Description(home *Space) *BranchingDesc

	// Commit applies alternative alt of desc. It returns ESFailed() to
	// fail the Space directly, or ESFix() otherwise; any other
	// ExecStatus is a programmer error.
	Commit(home *Space, desc *BranchingDesc, alt int) ExecStatus
}

// BranchingDesc is a heap-allocated, Space-independent record of a choice
// point: which branching produced it, how many alternatives it offers,
// and enough subclass-defined payload to replay the corresponding tell
// later (spec.md §3). It outlives the Space that produced it and is owned
// by the caller (a search engine).
type BranchingDesc struct {
	id           uint32
	alternatives int
	Payload      any
}

// ID returns the producing branching's id. Space.Commit uses this to
// advance its commit cursor to the matching branching.
func (d *BranchingDesc) ID() uint32 { return d.id }

// Alternatives returns the number of alternatives this description
// offers.
func (d *BranchingDesc) Alternatives() int { return d.alternatives }
