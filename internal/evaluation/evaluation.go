// Package evaluation runs many matches between two AIs, in parallel, and summarizes the results.
//
// Players are swapped every other match, so each AI plays half of the matches as the first player.
package evaluation

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gomlx/exceptions"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Result of a match.
type Result int

const (
	// FirstWins means the first player won.
	FirstWins Result = iota
	// SecondWins means the second player won.
	SecondWins
	// Draw means nobody won.
	Draw
	numResults
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case FirstWins:
		return "FirstWins"
	case SecondWins:
		return "SecondWins"
	case Draw:
		return "Draw"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// MatchFn plays match number matchIdx. seats[0] is the index of the AI (0 for AI-1, 1 for AI-2) that moves first,
// and seats[1] the one that moves second. The result returned is relative to the seats.
//
// MatchFn is called concurrently, up to the parallelism configured.
type MatchFn func(ctx context.Context, matchIdx int, seats [2]int) (Result, error)

// Summary of the matches played so far.
type Summary struct {
	Start time.Time

	// WinsAs1st and WinsAs2nd are indexed by AI.
	WinsAs1st, WinsAs2nd [2]int

	// Draws are indexed by the AI that moved first.
	Draws [2]int

	Played, Total int

	// Averages holds the moving average of the results in match order, after each match.
	// Results in this case are relative to the AIs: FirstWins means AI-1 won.
	Averages []Stats
}

// Wins returns the total number of wins of the AI.
func (s *Summary) Wins(ai int) int {
	return s.WinsAs1st[ai] + s.WinsAs2nd[ai]
}

// TotalDraws returns the number of draws.
func (s *Summary) TotalDraws() int {
	return s.Draws[0] + s.Draws[1]
}

// String implements fmt.Stringer.
func (s *Summary) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", s.Played, s.Total))
	for aiIdx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d) / ",
				aiIdx+1, s.Wins(aiIdx), s.WinsAs1st[aiIdx], s.WinsAs2nd[aiIdx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws (%d AI-1 as 1st, %d AI-2 as 1st) - ",
		s.TotalDraws(), s.Draws[0], s.Draws[1]))
	parts = append(parts, time.Since(s.Start).Round(time.Millisecond).String())
	return strings.Join(parts, "")
}

// Runner runs matches in parallel. Create it with New, and configure it with the With... methods.
type Runner struct {
	numMatches  int
	parallelism int
	progress    func(summary *Summary)
}

// New creates a Runner for numMatches matches. The default parallelism is runtime.GOMAXPROCS(0).
func New(numMatches int) *Runner {
	return &Runner{numMatches: numMatches, parallelism: runtime.GOMAXPROCS(0)}
}

// WithParallelism sets the number of matches played simultaneously. If <= 0 it uses runtime.GOMAXPROCS(0).
func (r *Runner) WithParallelism(parallelism int) *Runner {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	r.parallelism = parallelism
	return r
}

// WithProgress sets a function called after each match finishes, with the summary so far.
// It is called serialized, and the summary must not be retained.
func (r *Runner) WithProgress(progress func(summary *Summary)) *Runner {
	r.progress = progress
	return r
}

// Run all matches with matchFn, and return the summary.
//
// If ctx is cancelled, it returns the summary of the matches finished so far along with the context error.
// The first error returned by matchFn interrupts the evaluation and is returned.
func (r *Runner) Run(ctx context.Context, matchFn MatchFn) (*Summary, error) {
	summary := &Summary{Start: time.Now(), Total: r.numMatches}
	var (
		mu sync.Mutex
		ma MovingAverage
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for matchIdx := range r.numMatches {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gCtx.Err() != nil {
				return nil
			}
			seats := [2]int{0, 1}
			isSwapped := matchIdx%2 == 1
			if isSwapped {
				seats = [2]int{1, 0}
			}
			result, err := matchFn(gCtx, matchIdx, seats)
			if err != nil {
				return err
			}
			if gCtx.Err() != nil {
				// Interrupted matches are not counted.
				return nil
			}
			if klog.V(1).Enabled() {
				klog.Infof("Match #%d (AI-%d first): %s", matchIdx, seats[0]+1, result)
			}

			mu.Lock()
			defer mu.Unlock()
			aiResult := result
			switch result {
			case FirstWins:
				summary.WinsAs1st[seats[0]]++
				if isSwapped {
					aiResult = SecondWins
				}
			case SecondWins:
				summary.WinsAs2nd[seats[1]]++
				if isSwapped {
					aiResult = FirstWins
				}
			case Draw:
				summary.Draws[seats[0]]++
			default:
				exceptions.Panicf("match #%d returned invalid result %d", matchIdx, result)
			}
			summary.Played++
			summary.Averages = append(summary.Averages, ma.Add(matchIdx, aiResult)...)
			if r.progress != nil {
				r.progress(summary)
			}
			return nil
		})
	}
	err := g.Wait()
	summary.Averages = append(summary.Averages, ma.Flush()...)
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// Run is a shortcut to New(numMatches).WithParallelism(parallelism).Run(ctx, matchFn).
func Run(ctx context.Context, numMatches, parallelism int, matchFn MatchFn) (*Summary, error) {
	return New(numMatches).WithParallelism(parallelism).Run(ctx, matchFn)
}
