// Package minimax implements an exhaustive minimax searcher for any searchers.Game.
//
// There is no pruning and no memoization: every reachable state below the searched one is visited.
// This is only practical for small games like Tic-Tac-Toe.
//
// See: wikipedia.org/wiki/Minimax
package minimax

import (
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/classicai/internal/generics"
	"github.com/janpfeifer/classicai/internal/searchers"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface using exhaustive minimax.
//
// It holds no mutable state, so it can be used concurrently.
type Searcher[S, A any] struct {
	game searchers.Game[S, A]
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher[int, int] = (*Searcher[int, int])(nil)

// Stats stores running stats collected during one search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search: execution of an action in a state, followed by the creation of the new state.
	Nodes int

	// Leaves are the terminal states reached.
	Leaves int
}

// New returns an exhaustive minimax searchers.Searcher for the given game.
func New[S, A any](game searchers.Game[S, A]) *Searcher[S, A] {
	return &Searcher[S, A]{game: game}
}

// Search implements searchers.Searcher.
//
// It returns the first action, in the game's enumeration order, with the best minimax value for the player to move.
// The score and actionsScores are minimax values from the point of view of the player to move.
// If the state is terminal, ok is false.
func (s *Searcher[S, A]) Search(state S) (action A, ok bool, score float32, actionsScores []float32) {
	if s.game.IsFinished(state) {
		return
	}
	actions := s.game.Actions(state)
	if len(actions) == 0 {
		return
	}
	start := time.Now()
	var stats Stats
	maximizing := s.game.IsMaximizing(state)
	actionsScores = make([]float32, len(actions))
	stats.Nodes += len(actions)
	for ii, a := range actions {
		value := s.recursion(s.act(state, a), &stats)
		if !maximizing {
			value = -value
		}
		actionsScores[ii] = float32(value)
	}
	bestIdx := generics.ArgMax(actionsScores)
	action, ok, score = actions[bestIdx], true, actionsScores[bestIdx]
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("minimax: best action %v (score=%.0f) out of %d, stats: %+v, nodes/s=%.1f",
			action, score, len(actions), stats, float64(stats.Nodes)/elapsed.Seconds())
	}
	return
}

// Value returns the minimax value of the state, from the point of view of the maximizing player.
func (s *Searcher[S, A]) Value(state S) int {
	var stats Stats
	return s.recursion(state, &stats)
}

// recursion returns the minimax value of state, from the point of view of the maximizing player.
func (s *Searcher[S, A]) recursion(state S, stats *Stats) int {
	if s.game.IsFinished(state) {
		stats.Leaves++
		return s.game.Utility(state)
	}
	actions := s.game.Actions(state)
	maximizing := s.game.IsMaximizing(state)
	stats.Nodes += len(actions)
	var best int
	for ii, a := range actions {
		value := s.recursion(s.act(state, a), stats)
		if ii == 0 || (maximizing && value > best) || (!maximizing && value < best) {
			best = value
		}
	}
	return best
}

// act executes one of the legal actions, enumerated by the game itself.
func (s *Searcher[S, A]) act(state S, action A) S {
	next, err := s.game.Act(state, action)
	if err != nil {
		exceptions.Panicf("minimax: game rejected action %v it enumerated as legal: %+v", action, err)
	}
	return next
}
