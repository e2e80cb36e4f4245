package search

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Dekker1/gecode/kernel"
)

// Parallel explores a fixed-size pool of cloned spaces concurrently via
// errgroup. Work is distributed from a shared stack of pending frames
// guarded by a mutex: gini's ax pool hands whole requests to long-lived
// solver copies chosen by a similarity heuristic, but branch-and-bound
// distributes choice points instead, so this pool hands out one
// alternative at a time and pushes any siblings back onto the shared
// stack — the same dispatch-unit-of-work/collect-responses shape as
// ax.ax's handleReq/handleResp, built on errgroup instead of gini's
// hand-rolled channel plumbing.
type Parallel struct {
	opts     Options
	metrics  *metrics
	sizeHint int
}

type sharedState struct {
	mu    sync.Mutex
	cond  *sync.Cond
	stack []frame
	// inFlight counts frames popped but not yet fully processed (i.e.
	// that may still push new children). The pool can only safely
	// declare itself empty when the stack is empty AND inFlight is
	// zero — otherwise a worker might pop the last frame and be about
	// to push its children just as every other worker observes an
	// empty stack.
	inFlight int
	best     *kernel.Space
	nodes    int64
	fails    int64
	done     bool
}

func newSharedState() *sharedState {
	st := &sharedState{}
	st.cond = sync.NewCond(&st.mu)
	return st
}

func (e *Parallel) Run(root *kernel.Space, copyActor CopyActorFunc, constrain ConstrainFunc) (*Solution, error) {
	st := newSharedState()
	if e.sizeHint > 0 {
		st.stack = make([]frame, 0, e.sizeHint)
	}
	st.stack = append(st.stack, frame{space: root})

	workers := e.opts.Threads
	if workers < 2 {
		workers = 2
	}

	g := new(errgroup.Group)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return e.worker(st, copyActor, constrain)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, f := range st.stack {
		if f.space != st.best {
			f.space.Release()
		}
	}
	return &Solution{Space: st.best, Nodes: st.nodes, Fails: st.fails}, nil
}

// worker repeatedly pops a frame, drives it to a fixpoint, and either
// records a solution or pushes its children back onto the shared stack,
// until the stack empties or a configured limit is reached by any
// worker.
func (e *Parallel) worker(st *sharedState, copyActor CopyActorFunc, constrain ConstrainFunc) error {
	for {
		top, best, ok := e.pop(st)
		if !ok {
			return nil
		}
		cur := top.space
		if top.desc != nil {
			if err := cur.Commit(top.desc, top.alt); err != nil {
				e.finishNode(st, nil)
				return err
			}
		}
		if best != nil && constrain != nil {
			if err := cur.Constrain(func(home *kernel.Space) error {
				return constrain(home, best)
			}); err != nil {
				cur.Fail()
			}
		}

		e.metrics.nodes.Inc()
		status, progress, wmp, err := cur.Status()
		for status == kernel.SSSolved && wmp {
			e.metrics.propagations.Add(float64(progress))
			status, progress, wmp, err = cur.Status()
		}
		if err != nil {
			e.finishNode(st, nil)
			return err
		}
		e.metrics.propagations.Add(float64(progress))
		switch status {
		case kernel.SSFailed:
			e.metrics.fails.Inc()
			cur.Release()
			e.finishFail(st)
			continue
		case kernel.SSSolved:
			if e.finishBest(st, cur, constrain) {
				e.metrics.bests.Inc()
			}
			continue
		}

		desc, err := cur.Description()
		if err != nil {
			e.finishNode(st, nil)
			return err
		}
		var children []frame
		for alt := desc.Alternatives() - 1; alt >= 0; alt-- {
			clone, err := cur.Clone(false, copyActor)
			if err != nil {
				e.finishNode(st, nil)
				return err
			}
			e.metrics.props.Inc()
			children = append(children, frame{space: clone, desc: desc, alt: alt})
		}
		cur.Release()
		e.finishNode(st, children)
	}
}

// pop blocks until a frame is available, the search is done, or every
// other worker is also idle with an empty stack (in which case the
// search is over and pop reports so by returning ok=false).
func (e *Parallel) pop(st *sharedState) (frame, *kernel.Space, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for {
		if st.done {
			return frame{}, nil, false
		}
		if len(st.stack) > 0 {
			if e.opts.NodeLimit > 0 && st.nodes >= e.opts.NodeLimit {
				st.done = true
				st.cond.Broadcast()
				return frame{}, nil, false
			}
			st.nodes++
			st.inFlight++
			top := st.stack[len(st.stack)-1]
			st.stack = st.stack[:len(st.stack)-1]
			return top, st.best, true
		}
		if st.inFlight == 0 {
			st.done = true
			st.cond.Broadcast()
			return frame{}, nil, false
		}
		st.cond.Wait()
	}
}

// finishNode marks the just-popped frame fully processed, optionally
// pushing its children, and wakes any worker blocked in pop waiting to
// see whether the pool is actually empty.
func (e *Parallel) finishNode(st *sharedState, children []frame) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stack = append(st.stack, children...)
	st.inFlight--
	st.cond.Broadcast()
}

func (e *Parallel) finishFail(st *sharedState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.inFlight--
	st.fails++
	if e.opts.FailLimit > 0 && st.fails >= e.opts.FailLimit {
		st.done = true
	}
	st.cond.Broadcast()
}

// finishBest records cand as the new best solution and reports true,
// unless another worker has meanwhile recorded one that cand does not
// beat (by constrain), in which case cand is released and it reports
// false.
func (e *Parallel) finishBest(st *sharedState, cand *kernel.Space, constrain ConstrainFunc) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.inFlight--
	st.cond.Broadcast()
	if st.best != nil && constrain != nil && constrain(cand, st.best) != nil {
		cand.Release()
		return false
	}
	if st.best != nil {
		st.best.Release()
	}
	st.best = cand
	return true
}
