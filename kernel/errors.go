package kernel

// SpaceError reports a misuse of the Space API — a caller violating one
// of the ordering preconditions spec.md §5/§6 documents (e.g. committing
// before checking Status, or calling Constrain without a constraint
// function). These are programmer errors, not search outcomes;
// a failed Space is not an error, it is reported through Status.
type SpaceError string

func (e SpaceError) Error() string { return string(e) }

const (
	// SpaceFailed is returned when an operation that requires a stable,
	// non-failed Space (e.g. Description) is attempted on one that has
	// already failed.
	SpaceFailed SpaceError = "kernel: space has failed"
	// SpaceNotStable is returned when Commit or Description is called
	// before Status has driven propagation to a fixpoint.
	SpaceNotStable SpaceError = "kernel: space is not stable"
	// SpaceNoBranching is returned when Description is called after
	// Status reported SSSolved, i.e. when there is no branching left to
	// describe, or when Commit finds no branching left to commit to. (A
	// failed Space reports SpaceFailed instead.)
	SpaceNoBranching SpaceError = "kernel: no branching left to describe"
	// SpaceIllegalAlternative is returned when Commit is given an
	// alternative index outside [0, desc.Alternatives()).
	SpaceIllegalAlternative SpaceError = "kernel: illegal alternative for branching description"
	// SpaceConstrainUndefined is returned when Constrain is called with
	// a nil constraint function, i.e. no better-solution constraint has
	// been defined.
	SpaceConstrainUndefined SpaceError = "kernel: constrain is undefined"
)
