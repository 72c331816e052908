package minimax_test

import (
	"testing"

	"github.com/janpfeifer/classicai/internal/searchers"
	"github.com/janpfeifer/classicai/internal/searchers/minimax"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// takeAway is a tiny game: players alternate removing 1 or 2 tokens, and whoever takes the last token wins.
// Positions with a multiple of 3 tokens are lost for the player to move.
type takeAway struct{}

type takeAwayState struct {
	left      int
	maxToMove bool
}

var _ searchers.Game[takeAwayState, int] = takeAway{}

func (takeAway) Actions(s takeAwayState) []int {
	var actions []int
	for take := 1; take <= 2 && take <= s.left; take++ {
		actions = append(actions, take)
	}
	return actions
}

func (takeAway) Act(s takeAwayState, take int) (takeAwayState, error) {
	if take < 1 || take > 2 || take > s.left {
		return s, errors.Errorf("invalid take %d", take)
	}
	return takeAwayState{left: s.left - take, maxToMove: !s.maxToMove}, nil
}

func (takeAway) IsFinished(s takeAwayState) bool { return s.left == 0 }

func (takeAway) Utility(s takeAwayState) int {
	if s.left > 0 {
		return 0
	}
	if s.maxToMove {
		// Min took the last token.
		return -1
	}
	return 1
}

func (takeAway) IsMaximizing(s takeAwayState) bool { return s.maxToMove }

func TestValue(t *testing.T) {
	searcher := minimax.New[takeAwayState, int](takeAway{})
	for left := 1; left <= 8; left++ {
		want := 1
		if left%3 == 0 {
			want = -1
		}
		assert.Equal(t, want, searcher.Value(takeAwayState{left: left, maxToMove: true}), "left=%d", left)
		assert.Equal(t, -want, searcher.Value(takeAwayState{left: left, maxToMove: false}), "left=%d", left)
	}
}

func TestSearch(t *testing.T) {
	searcher := minimax.New[takeAwayState, int](takeAway{})

	// Winning move for max: leave a multiple of 3.
	action, ok, score, actionsScores := searcher.Search(takeAwayState{left: 5, maxToMove: true})
	require.True(t, ok)
	assert.Equal(t, 2, action)
	assert.Equal(t, float32(1), score)
	assert.Equal(t, []float32{-1, 1}, actionsScores)

	// Scores are from the point of view of the player to move, also for the minimizing player.
	action, ok, score, _ = searcher.Search(takeAwayState{left: 4, maxToMove: false})
	require.True(t, ok)
	assert.Equal(t, 1, action)
	assert.Equal(t, float32(1), score)

	// Lost position: all actions are equally bad, the first one is taken.
	action, ok, score, _ = searcher.Search(takeAwayState{left: 6, maxToMove: true})
	require.True(t, ok)
	assert.Equal(t, 1, action)
	assert.Equal(t, float32(-1), score)

	// Terminal state.
	_, ok, _, _ = searcher.Search(takeAwayState{left: 0, maxToMove: true})
	assert.False(t, ok)
}
