package search

import (
	"github.com/Dekker1/gecode/kernel"
)

// Sequential is a single-goroutine depth-first branch-and-bound engine,
// modeled on gini's single-threaded S.Solve() loop (propagate, guess,
// backtrack on conflict) but restructured around branching descriptions
// and explicit clones instead of guessed literals and a trail: a choice
// point here is a BranchingDesc with N alternatives rather than a single
// binary guess, and backtracking is simply abandoning a clone rather
// than popping a trail.
type Sequential struct {
	opts    Options
	metrics *metrics
}

// frame is one pending choice point on the explicit stack Sequential
// walks depth-first, replacing the recursion gini's own solve loop would
// use with an explicit LIFO slice so NodeLimit/FailLimit can interrupt
// between frames.
type frame struct {
	space *kernel.Space
	desc  *kernel.BranchingDesc
	alt   int
}

func (e *Sequential) Run(root *kernel.Space, copyActor CopyActorFunc, constrain ConstrainFunc) (*Solution, error) {
	var (
		best  *kernel.Space
		nodes int64
		fails int64
	)
	stack := []frame{{space: root}}

	for len(stack) > 0 {
		if e.opts.NodeLimit > 0 && nodes >= e.opts.NodeLimit {
			break
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cur := top.space
		if top.desc != nil {
			if err := cur.Commit(top.desc, top.alt); err != nil {
				return nil, err
			}
		}
		if best != nil && constrain != nil {
			if err := cur.Constrain(func(home *kernel.Space) error {
				return constrain(home, best)
			}); err != nil {
				cur.Fail()
			}
		}

		nodes++
		e.metrics.nodes.Inc()
		status, progress, wmp, err := cur.Status()
		for status == kernel.SSSolved && wmp {
			e.metrics.propagations.Add(float64(progress))
			status, progress, wmp, err = cur.Status()
		}
		if err != nil {
			return nil, err
		}
		e.metrics.propagations.Add(float64(progress))
		switch status {
		case kernel.SSFailed:
			fails++
			e.metrics.fails.Inc()
			cur.Release()
			if e.opts.FailLimit > 0 && fails >= e.opts.FailLimit {
				e.logEvent("fail-limit reached", nodes, fails)
				return e.result(best, nodes, fails), e.drain(stack, best)
			}
			continue
		case kernel.SSSolved:
			if best != nil {
				best.Release()
			}
			best = cur
			e.metrics.bests.Inc()
			e.logEvent("new best", nodes, fails)
			continue
		}

		desc, err := cur.Description()
		if err != nil {
			return nil, err
		}
		for alt := desc.Alternatives() - 1; alt >= 0; alt-- {
			clone, err := cur.Clone(false, copyActor)
			if err != nil {
				return nil, err
			}
			e.metrics.props.Inc()
			stack = append(stack, frame{space: clone, desc: desc, alt: alt})
		}
		cur.Release()
	}
	return e.result(best, nodes, fails), e.drain(stack, best)
}

// drain releases every space still sitting unexplored on stack once the
// search stops early (a limit was hit), so NodeLimit/FailLimit never
// leak a clone's actors.
func (e *Sequential) drain(stack []frame, best *kernel.Space) error {
	for _, f := range stack {
		if f.space != best {
			f.space.Release()
		}
	}
	return nil
}

func (e *Sequential) result(best *kernel.Space, nodes, fails int64) *Solution {
	return &Solution{Space: best, Nodes: nodes, Fails: fails}
}

func (e *Sequential) logEvent(msg string, nodes, fails int64) {
	e.opts.Logger.Debug().Int64("nodes", nodes).Int64("fails", fails).Msg(msg)
}
