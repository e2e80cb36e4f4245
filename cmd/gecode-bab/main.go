// Command gecode-bab is a small demo driver for the search package: it
// poses a toy maximization problem directly against the kernel (no
// concrete variable library exists in this module, per its Non-goals)
// and reports the best solution branch-and-bound finds. Structurally
// adapted from gini's cmd/gini, which drives its solver from a single
// flat set of flags; gecode-bab instead composes a small cobra command
// tree (run, stats) since it exposes two genuinely different outputs
// rather than one solver invocation with output toggles.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dekker1/gecode/kernel"
	"github.com/Dekker1/gecode/search"
)

var (
	positions int
	width     int
	threads   int
	verbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "gecode-bab",
		Short: "Run toy branch-and-bound search against the gecode kernel",
	}
	root.PersistentFlags().IntVar(&positions, "positions", 6, "number of positions in the toy maximization problem")
	root.PersistentFlags().IntVar(&width, "width", 3, "domain width per position")
	root.PersistentFlags().IntVar(&threads, "threads", 1, "worker threads (1 selects the sequential engine)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log search progress")

	root.AddCommand(runCmd())
	root.AddCommand(statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Search for the best solution and print its objective value",
		RunE: func(cmd *cobra.Command, args []string) error {
			sol, _, err := runSearch(nil)
			if err != nil {
				return err
			}
			if sol.Space == nil {
				fmt.Println("no solution found")
				return nil
			}
			fmt.Printf("objective=%d nodes=%d fails=%d\n", objective(sol.Space), sol.Nodes, sol.Fails)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Search and print the prometheus counters gathered along the way",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			_, _, err := runSearch(reg)
			if err != nil {
				return err
			}
			mfs, err := reg.Gather()
			if err != nil {
				return err
			}
			for _, mf := range mfs {
				for _, m := range mf.GetMetric() {
					fmt.Printf("%s %v\n", mf.GetName(), m.GetCounter().GetValue())
				}
			}
			return nil
		},
	}
}

// maxBranch assigns each position a value in [0, width); Status runs out
// of positions exactly when positions values have been committed.
// It stands in for a real propagator library's branching, the one
// concrete branching this module's Non-goals permit: a demo, not a
// product.
type maxBranch struct {
	kernel.ActorBase
	width  int
	n      int
	chosen []int
}

func (b *maxBranch) Status(home *kernel.Space) bool { return len(b.chosen) < b.n }

func (b *maxBranch) Description(home *kernel.Space) *kernel.BranchingDesc {
	return home.NewBranchingDesc(b, b.width, nil)
}

func (b *maxBranch) Commit(home *kernel.Space, desc *kernel.BranchingDesc, alt int) kernel.ExecStatus {
	b.chosen = append(b.chosen, alt)
	return kernel.ESFix()
}

func (b *maxBranch) objective() int {
	total := 0
	for _, v := range b.chosen {
		total += v
	}
	return total
}

var (
	liveMu     sync.Mutex
	liveBranch = map[*kernel.Space]*maxBranch{}
)

func setLive(s *kernel.Space, b *maxBranch) {
	liveMu.Lock()
	defer liveMu.Unlock()
	liveBranch[s] = b
}

func live(s *kernel.Space) *maxBranch {
	liveMu.Lock()
	defer liveMu.Unlock()
	return liveBranch[s]
}

func objective(s *kernel.Space) int { return live(s).objective() }

func runSearch(reg prometheus.Registerer) (*search.Solution, *kernel.Space, error) {
	root := kernel.NewSpace()
	b := &maxBranch{width: width, n: positions}
	root.PostBranching(b)
	setLive(root, b)

	copyActor := func(home *kernel.Space, a kernel.Actor) kernel.Actor {
		old := a.(*maxBranch)
		nb := &maxBranch{width: old.width, n: old.n, chosen: append([]int(nil), old.chosen...)}
		home.PostBranching(nb)
		setLive(home, nb)
		return nb
	}
	constrain := func(candidate, best *kernel.Space) error {
		// Best objective still reachable: every uncommitted position
		// takes the largest value, width-1.
		c := live(candidate)
		if c.objective()+(c.n-len(c.chosen))*(c.width-1) <= objective(best) {
			return fmt.Errorf("not better than incumbent")
		}
		return nil
	}

	opts := search.Options{Threads: threads, Registerer: reg}
	if verbose {
		opts.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	eng := search.Bab(positions*width, opts)
	sol, err := eng.Run(root, copyActor, constrain)
	return sol, root, err
}
