package search_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dekker1/gecode/kernel"
	"github.com/Dekker1/gecode/search"
)

// sumBranch is a minimal test-only branching: it assigns each of n
// positions a value in [0, width) one at a time, maximizing the sum, the
// same "hand-built constraint set, no concrete propagator library" role
// gini's sudoku_test.go plays for the solver API.
type sumBranch struct {
	kernel.ActorBase
	width  int
	chosen []int // values committed so far
	n      int   // total positions
}

func (b *sumBranch) Status(home *kernel.Space) bool { return len(b.chosen) < b.n }

func (b *sumBranch) Description(home *kernel.Space) *kernel.BranchingDesc {
	return home.NewBranchingDesc(b, b.width, nil)
}

func (b *sumBranch) Commit(home *kernel.Space, desc *kernel.BranchingDesc, alt int) kernel.ExecStatus {
	b.chosen = append(b.chosen, alt)
	return kernel.ESFix()
}

func (b *sumBranch) objective() int {
	total := 0
	for _, v := range b.chosen {
		total += v
	}
	return total
}

// registry maps a *kernel.Space to the sumBranch living inside it. A
// real model would instead embed kernel.Space in its own type and carry
// this pointer as a normal field (spec.md §6); a map keyed by the
// kernel.Space pointer stands in for that here since this package keeps
// kernel.Space a concrete, unembedded type.
type registry struct {
	mu sync.Mutex
	m  map[*kernel.Space]*sumBranch
}

func newRegistry() *registry { return &registry{m: make(map[*kernel.Space]*sumBranch)} }

func (r *registry) put(s *kernel.Space, b *sumBranch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[s] = b
}

func (r *registry) get(s *kernel.Space) *sumBranch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[s]
}

func newProblem(n, width int) (*kernel.Space, *registry) {
	root := kernel.NewSpace()
	b := &sumBranch{width: width, n: n}
	root.PostBranching(b)
	reg := newRegistry()
	reg.put(root, b)
	return root, reg
}

func copyActorFor(reg *registry) search.CopyActorFunc {
	return func(home *kernel.Space, a kernel.Actor) kernel.Actor {
		old := a.(*sumBranch)
		nb := &sumBranch{width: old.width, n: old.n, chosen: append([]int(nil), old.chosen...)}
		home.PostBranching(nb)
		reg.put(home, nb)
		return nb
	}
}

func constrainFor(reg *registry) search.ConstrainFunc {
	return func(candidate, best *kernel.Space) error {
		// The best sum still reachable from candidate: every position
		// not yet committed takes the largest value, width-1.
		c := reg.get(candidate)
		bound := c.objective() + (c.n-len(c.chosen))*(c.width-1)
		if bound <= reg.get(best).objective() {
			return errors.New("not better than incumbent")
		}
		return nil
	}
}

func TestSequentialFindsMaximum(t *testing.T) {
	root, reg := newProblem(3, 2)
	eng := search.Bab(0, search.Options{Threads: 1})
	sol, err := eng.Run(root, copyActorFor(reg), constrainFor(reg))
	require.NoError(t, err)
	require.NotNil(t, sol.Space)
	require.Equal(t, 3, reg.get(sol.Space).objective())
}

func TestParallelFindsSameMaximumAsSequential(t *testing.T) {
	root, reg := newProblem(4, 2)
	eng := search.Bab(8, search.Options{Threads: 4})
	sol, err := eng.Run(root, copyActorFor(reg), constrainFor(reg))
	require.NoError(t, err)
	require.NotNil(t, sol.Space)
	require.Equal(t, 4, reg.get(sol.Space).objective())

	seqRoot, seqReg := newProblem(4, 2)
	seqSol, err := search.Bab(0, search.Options{Threads: 1}).Run(seqRoot, copyActorFor(seqReg), constrainFor(seqReg))
	require.NoError(t, err)
	require.NotNil(t, seqSol.Space)
	require.Equal(t, seqReg.get(seqSol.Space).objective(), reg.get(sol.Space).objective())
}

func TestBabSelectsSequentialEngineByDefault(t *testing.T) {
	eng := search.Bab(0, search.Options{})
	_, ok := eng.(*search.Sequential)
	require.True(t, ok, "Bab with Threads<=1 should select Sequential")
}

func TestBabSelectsParallelEngineForMultipleThreads(t *testing.T) {
	eng := search.Bab(0, search.Options{Threads: 4})
	_, ok := eng.(*search.Parallel)
	require.True(t, ok, "Bab with Threads>1 should select Parallel")
}
