package players_test

import (
	"context"
	"testing"

	"github.com/janpfeifer/classicai/internal/evaluation"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/janpfeifer/classicai/internal/players"
	_ "github.com/janpfeifer/classicai/internal/players/default"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tttPlayer = players.Player[tictactoe.Board, tictactoe.Action]
type nimPlayer = players.Player[nim.Piles, nim.Action]

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"minimax", "random"}, players.TicTacToe.Names())
	assert.Equal(t, []string{"qlearning", "random"}, players.Nim.Names())

	// Default configuration.
	player, err := players.TicTacToe.New("")
	require.NoError(t, err)
	assert.Equal(t, "Minimax AI", player.String())

	player, err = players.TicTacToe.New("minimax:randomness=0.5,seed=3")
	require.NoError(t, err)
	assert.Contains(t, player.String(), "randomness=0.5")

	_, err = players.TicTacToe.New("alphabeta")
	assert.ErrorContains(t, err, "unknown tic-tac-toe player")
	_, err = players.TicTacToe.New("minimax:depth=3")
	assert.ErrorContains(t, err, "unknown parameters")
	_, err = players.TicTacToe.New("minimax:randomness=-1")
	assert.Error(t, err)
	_, err = players.Nim.New("qlearning:alpha=2")
	assert.Error(t, err)

	// Custom registries.
	registry := players.NewRegistry[nim.Piles, nim.Action]("test", "")
	_, err = registry.New("random")
	assert.ErrorContains(t, err, "no test players registered")
	registry.Register("random", players.ModuleFunc[nim.Piles, nim.Action](
		func(params parameters.Params) (nimPlayer, error) {
			return players.NewRandomPlayer(nim.AvailableActions, 1), nil
		}))
	player2, err := registry.New("random")
	require.NoError(t, err)
	assert.Equal(t, "Random AI", player2.String())
}

func TestPlayTicTacToe(t *testing.T) {
	ctx := context.Background()
	minimaxPlayer, err := players.TicTacToe.New("minimax")
	require.NoError(t, err)
	randomPlayer, err := players.TicTacToe.New("random:seed=17")
	require.NoError(t, err)

	// Optimal play draws.
	var moves int
	result, board, err := players.PlayTicTacToe(ctx, [2]tttPlayer{minimaxPlayer, minimaxPlayer},
		func(seat int, before tictactoe.Board, action tictactoe.Action, after tictactoe.Board) {
			moves++
			assert.Equal(t, moves%2 == 0, seat == 1)
		})
	require.NoError(t, err)
	assert.Equal(t, evaluation.Draw, result)
	assert.Equal(t, 9, moves)
	assert.True(t, board.IsFinished())

	// Minimax never loses against random.
	for range 5 {
		result, _, err = players.PlayTicTacToe(ctx, [2]tttPlayer{minimaxPlayer, randomPlayer})
		require.NoError(t, err)
		assert.NotEqual(t, evaluation.SecondWins, result)
		result, _, err = players.PlayTicTacToe(ctx, [2]tttPlayer{randomPlayer, minimaxPlayer})
		require.NoError(t, err)
		assert.NotEqual(t, evaluation.FirstWins, result)
	}
}

// quitter never returns an action.
type quitter struct{}

func (quitter) Play(nim.Piles) (nim.Action, bool) { return nim.Action{}, false }
func (quitter) String() string                    { return "quitter" }

// cheater always takes too many objects.
type cheater struct{}

func (cheater) Play(nim.Piles) (nim.Action, bool) { return nim.Action{Pile: 0, Count: 100}, true }
func (cheater) String() string                    { return "cheater" }

func TestPlayNim(t *testing.T) {
	ctx := context.Background()
	randomPlayer, err := players.Nim.New("random:seed=5")
	require.NoError(t, err)

	var moves int
	result, err := players.PlayNim(ctx, nim.DefaultPiles(), [2]nimPlayer{randomPlayer, randomPlayer},
		func(seat int, before nim.Piles, action nim.Action, after nim.Piles) {
			moves++
			assert.Equal(t, before[action.Pile]-action.Count, after[action.Pile])
		})
	require.NoError(t, err)
	assert.NotEqual(t, evaluation.Draw, result)
	assert.GreaterOrEqual(t, moves, 4)
	assert.LessOrEqual(t, moves, 16)

	// A single object: the first player must take it and loses.
	result, err = players.PlayNim(ctx, nim.Piles{1}, [2]nimPlayer{randomPlayer, quitter{}})
	require.NoError(t, err)
	assert.Equal(t, evaluation.SecondWins, result)

	_, err = players.PlayNim(ctx, nim.DefaultPiles(), [2]nimPlayer{quitter{}, randomPlayer})
	assert.True(t, errors.Is(err, players.ErrNoAction))
	_, err = players.PlayNim(ctx, nim.DefaultPiles(), [2]nimPlayer{cheater{}, randomPlayer})
	assert.True(t, errors.Is(err, nim.ErrInvalidCount))
	_, err = players.PlayNim(ctx, nim.Piles{0}, [2]nimPlayer{randomPlayer, randomPlayer})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = players.PlayNim(cancelled, nim.DefaultPiles(), [2]nimPlayer{randomPlayer, randomPlayer})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestQLearningPlayer(t *testing.T) {
	ctx := context.Background()
	learner, err := players.Nim.New("qlearning:episodes=20000,seed=42")
	require.NoError(t, err)
	randomPlayer, err := players.Nim.New("random:seed=9")
	require.NoError(t, err)

	summary, err := evaluation.Run(ctx, 200, 4, func(ctx context.Context, matchIdx int, seats [2]int) (evaluation.Result, error) {
		ais := [2]nimPlayer{learner, randomPlayer}
		return players.PlayNim(ctx, nim.DefaultPiles(), [2]nimPlayer{ais[seats[0]], ais[seats[1]]})
	})
	require.NoError(t, err)
	t.Logf("%s", summary)
	assert.Greater(t, summary.Wins(0), 140)
}
