// tictactoe plays Tic-Tac-Toe in the terminal: human vs AI, or AI vs AI with -watch.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/janpfeifer/classicai/internal/players"
	_ "github.com/janpfeifer/classicai/internal/players/default"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/janpfeifer/classicai/internal/ui/cli"
	"github.com/janpfeifer/classicai/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

type player = players.Player[tictactoe.Board, tictactoe.Action]

var (
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst     = flag.String("first", "", "Who plays first (X): human or ai. Default is random.")
	flagAIConfig  = flag.String("ai", "minimax", "AI configuration against which to play")
	flagAIConfig2 = flag.String("ai2", "minimax", "Second AI configuration (O), if playing AI vs AI with -watch")
	flagColor     = flag.Bool("color", true, "Use colors in the terminal")
	flagClear     = flag.Bool("clear", false, "Clear the screen before printing the board")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	ui := cli.New(*flagColor, *flagClear)
	matchPlayers := must.M1(createPlayers(ui))
	fmt.Printf("X: %s\nO: %s\n\n", matchPlayers[0], matchPlayers[1])
	ui.PrintTicTacToe(tictactoe.InitialState())

	// Show the board after each move.
	observer := func(seat int, before tictactoe.Board, action tictactoe.Action, after tictactoe.Board) {
		ui.ClearScreen()
		ui.Printf("\n%s (%s) plays %s\n\n", matchPlayers[seat], ui.Mark(before.NextPlayer()), action)
		ui.PrintTicTacToe(after)
	}
	_, board, err := players.PlayTicTacToe(globalCtx, matchPlayers, observer)
	if err != nil {
		klog.Exitf("Match interrupted: %+v", err)
	}
	ui.PrintTicTacToeResult(board)
}

// thinking wraps an AI player, to show a spinner while it searches.
type thinking struct {
	player
}

func (t thinking) Play(board tictactoe.Board) (tictactoe.Action, bool) {
	s := spinning.New(globalCtx, fmt.Sprintf("%s thinking", t.player))
	defer s.Done()
	return t.player.Play(board)
}

// createPlayers for X (index 0) and O (index 1).
func createPlayers(ui *cli.UI) (matchPlayers [2]player, err error) {
	ai, err := players.TicTacToe.New(*flagAIConfig)
	if err != nil {
		return
	}
	if *flagWatch {
		var ai2 player
		ai2, err = players.TicTacToe.New(*flagAIConfig2)
		if err != nil {
			return
		}
		return [2]player{thinking{ai}, thinking{ai2}}, nil
	}

	var aiSeat int
	switch strings.ToLower(*flagFirst) {
	case "human":
		aiSeat = 1
	case "ai":
		aiSeat = 0
	case "":
		aiSeat = rand.IntN(2)
	default:
		klog.Exitf("invalid -first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
	}
	matchPlayers[aiSeat] = thinking{ai}
	matchPlayers[1-aiSeat] = &cli.TicTacToeHuman{UI: ui}
	return
}
