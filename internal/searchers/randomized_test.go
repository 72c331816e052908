package searchers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedGame has 3 actions (0, 1, 2) on any non-negative state.
type fixedGame struct{}

func (fixedGame) Actions(state int) []int {
	if state < 0 {
		return nil
	}
	return []int{0, 1, 2}
}
func (fixedGame) Act(state, action int) (int, error) { return state + 1, nil }
func (fixedGame) IsFinished(state int) bool          { return state < 0 }
func (fixedGame) Utility(state int) int              { return 0 }
func (fixedGame) IsMaximizing(state int) bool        { return true }

// fixedSearcher always scores the actions with the same values.
type fixedSearcher struct {
	scores []float32
}

func (s fixedSearcher) Search(state int) (action int, ok bool, score float32, actionsScores []float32) {
	if state < 0 {
		return
	}
	return 1, true, s.scores[1], s.scores
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{1, 1, 1, 1})
	for _, p := range probs {
		assert.InDelta(t, 0.25, p, 1e-6)
	}
	probs = softmax([]float32{1000, 0})
	assert.InDelta(t, 1.0, probs[0], 1e-6)
	assert.InDelta(t, 0.0, probs[1], 1e-6)
}

func TestNewRandomized(t *testing.T) {
	base := fixedSearcher{scores: []float32{0, 1, 0}}

	// No randomness returns the base searcher.
	assert.Equal(t, Searcher[int, int](base), NewRandomized[int, int](fixedGame{}, base, 0, nil))

	// Very little randomness: always the best action.
	rng := rand.New(rand.NewPCG(42, 0))
	greedy := NewRandomized[int, int](fixedGame{}, base, 0.001, rng)
	for range 100 {
		action, ok, score, _ := greedy.Search(0)
		require.True(t, ok)
		assert.Equal(t, 1, action)
		assert.Equal(t, float32(1), score)
	}

	// Lots of randomness: every action is eventually chosen.
	noisy := NewRandomized[int, int](fixedGame{}, base, 1000, rng)
	counts := make([]int, 3)
	for range 300 {
		action, ok, _, _ := noisy.Search(0)
		require.True(t, ok)
		counts[action]++
	}
	for action, count := range counts {
		assert.Greater(t, count, 50, "action %d chosen %d times", action, count)
	}

	// Terminal states pass through.
	_, ok, _, _ := noisy.Search(-1)
	assert.False(t, ok)
}
