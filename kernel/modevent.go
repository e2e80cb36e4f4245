package kernel

// ModEvent describes a variable-type-specific domain change. The values
// up to and including MeGenAssigned are generic and meaningful to every
// variable type; concrete variable implementations define their own
// values above it (e.g. "bound changed", "domain shrunk") with more
// precise severity.
type ModEvent int

const (
	// MeGenFailed reports that the modification emptied the variable's
	// domain; the caller must fail the Space.
	MeGenFailed ModEvent = -1
	// MeGenNone reports that nothing changed.
	MeGenNone ModEvent = 0
	// MeGenAssigned reports that the variable became assigned.
	MeGenAssigned ModEvent = 1
)

// PropCond is the minimum modification-event severity at which a
// subscribed propagator is scheduled. PcGenNone means "never schedule
// from this subscription" (advisors do not use a PropCond at all: they
// sit in their own bucket and are notified unconditionally), PcGenAssigned
// fires only once, when the variable becomes assigned.
type PropCond int

const (
	PcGenNone     PropCond = -1
	PcGenAssigned PropCond = 0
)

// ModEventDelta is a packed combination of modification events across the
// variable types one propagator is subscribed to. Concrete VarImpConfig
// implementations own the bit layout; the kernel only ever reads it
// through MeCombine/MedUpdate.
type ModEventDelta int

// Delta is the ephemeral record of one modification event, handed to
// advisors for the duration of a single notification (spec.md §3). It is
// never retained past the call that receives it.
type Delta struct {
	me ModEvent
}

// ModEvent returns the modification event this Delta carries. Mirrors the
// original kernel's Delta::modevent (spec.md §9 supplemented features).
func (d Delta) ModEvent() ModEvent { return d.me }

// PropCost classifies a propagator's expected cost of execution into one
// of eight classes; Space dispatches the cheapest non-empty class first,
// so an inexpensive propagator gets a chance to fail or narrow a domain
// before an expensive one runs against input it might have simplified
// (spec.md §5 "Ordering guarantees").
type PropCost int

const (
	CostCrazy       PropCost = 0
	CostCubicLo     PropCost = 1
	CostCubicHi     PropCost = 2
	CostQuadraticLo PropCost = 3
	CostLinearLo    PropCost = 4
	CostLinearHi    PropCost = 5
	CostBinaryLo    PropCost = 6
	CostUnaryLo     PropCost = 7
)

// numCostClasses is the size of each Space's cost-class queue array.
const numCostClasses = int(CostUnaryLo) + 1
