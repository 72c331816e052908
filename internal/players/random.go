package players

import (
	"math/rand/v2"
	"sync"
)

// RandomPlayer picks any of the legal actions with equal probability.
//
// It is safe for concurrent use: the random number generator is protected by a mutex.
type RandomPlayer[S, A any] struct {
	actions func(state S) []A

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPlayer creates a RandomPlayer. actions enumerate the legal actions of a state.
// If seed is 0 a random seed is used.
func NewRandomPlayer[S, A any](actions func(state S) []A, seed uint64) *RandomPlayer[S, A] {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomPlayer[S, A]{actions: actions, rng: rand.New(rand.NewPCG(seed, 0))}
}

// Play implements Player.
func (p *RandomPlayer[S, A]) Play(state S) (action A, ok bool) {
	actions := p.actions(state)
	if len(actions) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return actions[p.rng.IntN(len(actions))], true
}

// String implements Player.
func (p *RandomPlayer[S, A]) String() string {
	return "Random AI"
}
