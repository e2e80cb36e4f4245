// Package support collects small compile-time hints and runtime invariants
// shared across the kernel. It carries no state of its own.
package support

import "fmt"

// Assert panics with a formatted message if cond is false, for checks of
// a documented precondition whose violation is a programmer error, not a
// recoverable condition. (The kernel reports its
// own API misuse, e.g. calling Description before Status returned
// Branch, as SpaceError values instead.)
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Never marks a branch that must not be reached given the caller's
// invariants. It is distinct from Assert so the two read differently at
// call sites: Assert checks a caller-supplied condition, Never documents
// that no condition needed checking.
func Never(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// ID is a small monotonically increasing counter used for actor and
// branching identifiers. It is not safe for concurrent use; each Space
// owns exactly one.
type ID uint32

// Gen returns the current value and advances the counter.
func (id *ID) Gen() ID {
	v := *id
	*id++
	return v
}
