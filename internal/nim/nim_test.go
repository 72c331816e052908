package nim_test

import (
	"testing"

	. "github.com/janpfeifer/classicai/internal/nim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	game := NewDefault()
	assert.Equal(t, Piles{1, 3, 5, 7}, game.Piles())
	assert.Equal(t, PlayerFirst, game.Player())
	assert.Equal(t, InProgress, game.Status())

	require.NoError(t, game.Move(Action{Pile: 0, Count: 1}))
	assert.Equal(t, Piles{0, 3, 5, 7}, game.Piles())
	assert.Equal(t, PlayerSecond, game.Player())
	assert.False(t, game.IsFinished())
	_, won := game.Winner()
	assert.False(t, won)

	// Piles returns a copy.
	piles := game.Piles()
	piles[1] = 100
	assert.Equal(t, Piles{0, 3, 5, 7}, game.Piles())
}

func TestMoveErrors(t *testing.T) {
	game := New(Piles{0, 2})
	for _, tc := range []struct {
		action Action
		want   error
	}{
		{Action{Pile: -1, Count: 1}, ErrInvalidPile},
		{Action{Pile: 2, Count: 1}, ErrInvalidPile},
		{Action{Pile: 0, Count: 1}, ErrInvalidCount},
		{Action{Pile: 1, Count: 0}, ErrInvalidCount},
		{Action{Pile: 1, Count: 3}, ErrInvalidCount},
	} {
		err := game.Move(tc.action)
		require.Error(t, err, "action %s", tc.action)
		assert.True(t, errors.Is(err, tc.want), "action %s: got %v", tc.action, err)
	}
	// Game unchanged by invalid moves.
	assert.Equal(t, Piles{0, 2}, game.Piles())
	assert.Equal(t, PlayerFirst, game.Player())
}

func TestWinner(t *testing.T) {
	game := New(Piles{1, 1})
	require.NoError(t, game.Move(Action{Pile: 0, Count: 1}))
	require.NoError(t, game.Move(Action{Pile: 1, Count: 1}))

	// PlayerSecond took the last object, so PlayerFirst wins.
	assert.True(t, game.IsFinished())
	assert.Equal(t, Won, game.Status())
	winner, won := game.Winner()
	require.True(t, won)
	assert.Equal(t, PlayerFirst, winner)

	err := game.Move(Action{Pile: 0, Count: 1})
	assert.True(t, errors.Is(err, ErrAlreadyWon))
	assert.Empty(t, AvailableActions(game.Piles()))
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t,
		[]Action{{0, 1}, {2, 1}, {2, 2}},
		AvailableActions(Piles{1, 0, 2}))
	assert.Len(t, AvailableActions(DefaultPiles()), 1+3+5+7)
	assert.Empty(t, AvailableActions(Piles{0, 0}))
}

func TestPiles(t *testing.T) {
	assert.Equal(t, StateKey("1,3,5,7"), DefaultPiles().Key())
	assert.NotEqual(t, Piles{1, 23}.Key(), Piles{12, 3}.Key())

	assert.NoError(t, Piles{0, 1}.Validate())
	assert.Error(t, Piles{}.Validate())
	assert.Error(t, Piles{0, 0}.Validate())
	assert.Error(t, Piles{2, -1}.Validate())
	assert.Panics(t, func() { New(Piles{0}) })

	assert.Equal(t, "Player 2", PlayerFirst.Opponent().String())
}

func TestCheckAction(t *testing.T) {
	piles := Piles{0, 2}
	assert.NoError(t, piles.CheckAction(Action{Pile: 1, Count: 2}))
	assert.True(t, errors.Is(piles.CheckAction(Action{Pile: 2, Count: 1}), ErrInvalidPile))
	assert.True(t, errors.Is(piles.CheckAction(Action{Pile: -1, Count: 1}), ErrInvalidPile))
	assert.True(t, errors.Is(piles.CheckAction(Action{Pile: 0, Count: 1}), ErrInvalidCount))
	assert.True(t, errors.Is(piles.CheckAction(Action{Pile: 1, Count: 3}), ErrInvalidCount))
	assert.True(t, errors.Is(piles.CheckAction(Action{Pile: 1, Count: 0}), ErrInvalidCount))
}
