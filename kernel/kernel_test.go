package kernel_test

import (
	"testing"

	"github.com/Dekker1/gecode/kernel"
)

// constProp is a minimal test-only propagator whose behavior is driven
// entirely by closures, the same role gini's sudoku_test.go/gini_test.go
// hand-built constraint sets play: exercising the public Space API
// without pulling in any concrete propagator library.
type constProp struct {
	kernel.ActorBase
	run      func(home *kernel.Space, med kernel.ModEventDelta) kernel.ExecStatus
	cost     kernel.PropCost
	props    kernel.ActorProp
	disposed bool
	freeBuf  []byte
	freeLen  int
}

func (p *constProp) Propagate(home *kernel.Space, med kernel.ModEventDelta) kernel.ExecStatus {
	return p.run(home, med)
}

func (p *constProp) Cost(home *kernel.Space, med kernel.ModEventDelta) kernel.PropCost {
	return p.cost
}

func (p *constProp) Properties() kernel.ActorProp { return p.props }

func (p *constProp) Dispose(home *kernel.Space) {
	p.disposed = true
	if p.freeLen > 0 {
		home.Arena().Rfree(p.freeBuf, p.freeLen)
	}
}

func TestStatusOnEmptySpaceIsSolved(t *testing.T) {
	s := kernel.NewSpace()
	status, _, _, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != kernel.SSSolved {
		t.Fatalf("status = %v, want SSSolved", status)
	}
}

func TestStatusFailsOnFailingPropagator(t *testing.T) {
	s := kernel.NewSpace()
	p := &constProp{run: func(home *kernel.Space, med kernel.ModEventDelta) kernel.ExecStatus {
		return kernel.ESFailed()
	}}
	s.Post(p)
	status, _, _, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != kernel.SSFailed {
		t.Fatalf("status = %v, want SSFailed", status)
	}
	if !s.Failed() {
		t.Fatal("Failed() = false after SSFailed")
	}
}

func TestSubsumptionReclaimsArenaMemory(t *testing.T) {
	s := kernel.NewSpace()
	buf := s.Arena().Ralloc(64)
	live := s.Arena().Live()
	if live != 64 {
		t.Fatalf("Live() = %d after Ralloc(64), want 64", live)
	}
	p := &constProp{props: kernel.APDispose, freeBuf: buf, freeLen: 64}
	p.run = func(home *kernel.Space, med kernel.ModEventDelta) kernel.ExecStatus {
		return kernel.ESSubsumed(64)
	}
	s.Post(p)
	if _, _, _, err := s.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !p.disposed {
		t.Fatal("subsumed propagator was never disposed")
	}
	if got := s.Arena().Live(); got != 0 {
		t.Fatalf("Live() = %d after subsumption, want 0", got)
	}
}

func TestCostOrderingRunsCheapestClassFirst(t *testing.T) {
	s := kernel.NewSpace()
	var order []string
	mk := func(name string, cost kernel.PropCost) *constProp {
		p := &constProp{cost: cost}
		p.run = func(home *kernel.Space, med kernel.ModEventDelta) kernel.ExecStatus {
			order = append(order, name)
			return kernel.ESFix()
		}
		return p
	}
	// Posted out of cost order; Status must still dispatch Unary, then
	// Linear, then Crazy (cheapest class first), regardless of post
	// order.
	s.Post(mk("unary", kernel.CostUnaryLo))
	s.Post(mk("crazy", kernel.CostCrazy))
	s.Post(mk("linear", kernel.CostLinearLo))

	if _, _, _, err := s.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}
	want := []string{"unary", "linear", "crazy"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// advisableProp subscribes one advisor to a VarImp and disposes itself
// (and reschedules) when advised, exercising the Advisor/Council/VarImp
// self-subsumption path end to end.
type advisableProp struct {
	kernel.ActorBase
	council  kernel.Council
	advised  int
	rescheds int
}

func (p *advisableProp) Propagate(home *kernel.Space, med kernel.ModEventDelta) kernel.ExecStatus {
	p.rescheds++
	return kernel.ESFix()
}

func (p *advisableProp) Cost(home *kernel.Space, med kernel.ModEventDelta) kernel.PropCost {
	return kernel.CostUnaryLo
}

func (p *advisableProp) Advise(home *kernel.Space, a *kernel.Advisor, d kernel.Delta) kernel.ExecStatus {
	p.advised++
	return kernel.ESSubsumedNoFix()
}

func TestAdvisorSelfSubsumptionReschedulesOwner(t *testing.T) {
	s := kernel.NewSpace()
	p := &advisableProp{}
	s.Post(p)
	if _, _, _, err := s.Status(); err != nil {
		t.Fatalf("initial Status: %v", err)
	}
	baseRuns := p.rescheds

	v := kernel.NewVarImp(kernel.NoIdxVarImpConf{})
	adv := p.council.New(p, nil)
	v.SubscribeAdvisor(s, adv, false)

	v.Advise(s, kernel.MeGenAssigned)
	if p.advised != 1 {
		t.Fatalf("advised = %d, want 1", p.advised)
	}
	if !adv.Disposed() {
		t.Fatal("advisor was not disposed after ESSubsumedNoFix")
	}

	if _, _, _, err := s.Status(); err != nil {
		t.Fatalf("Status after advise: %v", err)
	}
	if p.rescheds != baseRuns+1 {
		t.Fatalf("rescheds = %d, want %d", p.rescheds, baseRuns+1)
	}

	// A second Advise must not redeliver to the now-disposed advisor.
	v.Advise(s, kernel.MeGenAssigned)
	if p.advised != 1 {
		t.Fatalf("advised = %d after second Advise, want still 1", p.advised)
	}
}

// countBranch is a minimal branching with a fixed number of alternatives;
// Commit records which alternative was chosen directly on itself, so
// each clone's own copy ends up with independent state.
type countBranch struct {
	kernel.ActorBase
	alts   int
	chosen int
	done   bool
}

func (b *countBranch) Status(home *kernel.Space) bool { return !b.done }

func (b *countBranch) Description(home *kernel.Space) *kernel.BranchingDesc {
	return home.NewBranchingDesc(b, b.alts, nil)
}

func (b *countBranch) Commit(home *kernel.Space, desc *kernel.BranchingDesc, alt int) kernel.ExecStatus {
	b.chosen = alt
	b.done = true
	return kernel.ESFix()
}

func TestCloneThenCommitIsIndependentPerClone(t *testing.T) {
	s := kernel.NewSpace()
	b := &countBranch{alts: 2}
	s.PostBranching(b)

	status, _, _, err := s.Status()
	if err != nil || status != kernel.SSBranch {
		t.Fatalf("Status = %v, %v, want SSBranch", status, err)
	}
	desc, err := s.Description()
	if err != nil {
		t.Fatalf("Description: %v", err)
	}

	var created *countBranch
	copyFn := func(home *kernel.Space, a kernel.Actor) kernel.Actor {
		old := a.(*countBranch)
		nb := &countBranch{alts: old.alts, chosen: old.chosen, done: old.done}
		home.PostBranching(nb)
		created = nb
		return nb
	}

	clone1, err := s.Clone(false, copyFn)
	if err != nil {
		t.Fatalf("clone1: %v", err)
	}
	b1 := created
	clone2, err := s.Clone(false, copyFn)
	if err != nil {
		t.Fatalf("clone2: %v", err)
	}
	b2 := created

	if err := clone1.Commit(desc, 0); err != nil {
		t.Fatalf("clone1.Commit: %v", err)
	}
	if err := clone2.Commit(desc, 1); err != nil {
		t.Fatalf("clone2.Commit: %v", err)
	}

	if b1.chosen != 0 {
		t.Fatalf("clone1 chosen = %d, want 0", b1.chosen)
	}
	if b2.chosen != 1 {
		t.Fatalf("clone2 chosen = %d, want 1", b2.chosen)
	}

	s1, _, _, err := clone1.Status()
	if err != nil || s1 != kernel.SSSolved {
		t.Fatalf("clone1.Status = %v, %v, want SSSolved", s1, err)
	}
	s2, _, _, err := clone2.Status()
	if err != nil || s2 != kernel.SSSolved {
		t.Fatalf("clone2.Status = %v, %v, want SSSolved", s2, err)
	}

	// The original space is untouched by either clone's commit.
	if b.done {
		t.Fatal("original branching was mutated by a clone's Commit")
	}
}
