package players

import (
	"context"

	"github.com/janpfeifer/classicai/internal/evaluation"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNoAction is returned when a player doesn't return an action for a match in progress.
var ErrNoAction = errors.New("player returned no action")

// MoveObserver is called after each move of a match: seat is 0 for the first player and 1 for the second.
type MoveObserver[S, A any] func(seat int, before S, action A, after S)

// PlayTicTacToe plays a match of Tic-Tac-Toe: players[0] plays X (and moves first), players[1] plays O.
// It returns the result and the final board.
//
// If ctx is cancelled the match is interrupted and the context error is returned.
func PlayTicTacToe(ctx context.Context, players [2]Player[tictactoe.Board, tictactoe.Action],
	observers ...MoveObserver[tictactoe.Board, tictactoe.Action]) (evaluation.Result, tictactoe.Board, error) {
	board := tictactoe.InitialState()
	for !board.IsFinished() {
		if err := ctx.Err(); err != nil {
			return evaluation.Draw, board, err
		}
		seat := 0
		if board.NextPlayer() == tictactoe.O {
			seat = 1
		}
		player := players[seat]
		action, ok := player.Play(board)
		if !ok {
			if err := ctx.Err(); err != nil {
				return evaluation.Draw, board, err
			}
			return evaluation.Draw, board, errors.Wrapf(ErrNoAction, "%s playing %s", player, board.NextPlayer())
		}
		next, err := board.Act(action)
		if err != nil {
			return evaluation.Draw, board, errors.WithMessagef(err, "%s playing %s", player, board.NextPlayer())
		}
		if klog.V(2).Enabled() {
			klog.Infof("%s (%s) played %s", player, board.NextPlayer(), action)
		}
		for _, observer := range observers {
			observer(seat, board, action, next)
		}
		board = next
	}
	switch board.Winner() {
	case tictactoe.X:
		return evaluation.FirstWins, board, nil
	case tictactoe.O:
		return evaluation.SecondWins, board, nil
	default:
		return evaluation.Draw, board, nil
	}
}

// PlayNim plays a match of Nim starting from the initial piles: players[0] moves first.
// Nim has no draws.
//
// If ctx is cancelled the match is interrupted and the context error is returned.
func PlayNim(ctx context.Context, initial nim.Piles, players [2]Player[nim.Piles, nim.Action],
	observers ...MoveObserver[nim.Piles, nim.Action]) (evaluation.Result, error) {
	if err := initial.Validate(); err != nil {
		return evaluation.Draw, err
	}
	game := nim.New(initial)
	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return evaluation.Draw, err
		}
		seat := int(game.Player())
		player := players[seat]
		before := game.Piles()
		action, ok := player.Play(before)
		if !ok {
			if err := ctx.Err(); err != nil {
				return evaluation.Draw, err
			}
			return evaluation.Draw, errors.Wrapf(ErrNoAction, "%s as %s", player, game.Player())
		}
		if err := game.Move(action); err != nil {
			return evaluation.Draw, errors.WithMessagef(err, "%s as %s", player, nim.PlayerNum(seat))
		}
		if klog.V(2).Enabled() {
			klog.Infof("%s (%s) played %s: piles %v", player, nim.PlayerNum(seat), action, game.Piles())
		}
		for _, observer := range observers {
			observer(seat, before, action, game.Piles())
		}
	}
	winner, _ := game.Winner()
	if winner == nim.PlayerFirst {
		return evaluation.FirstWins, nil
	}
	return evaluation.SecondWins, nil
}
