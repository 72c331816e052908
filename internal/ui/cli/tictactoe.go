package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/classicai/internal/players"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var markStyles = map[tictactoe.Player]lipgloss.Style{
	tictactoe.X: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	tictactoe.O: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
}

// Mark returns the player's mark, colored if colors are enabled.
func (ui *UI) Mark(player tictactoe.Player) string {
	if player == tictactoe.Empty {
		return " "
	}
	return ui.render(markStyles[player], player.String())
}

// PrintTicTacToe prints the board, with the row and column numbers.
func (ui *UI) PrintTicTacToe(board tictactoe.Board) {
	var sb strings.Builder
	sb.WriteString("     0   1   2\n")
	sb.WriteString("   ┌───┬───┬───┐\n")
	for row := range tictactoe.Size {
		fmt.Fprintf(&sb, " %d │", row)
		for col := range tictactoe.Size {
			fmt.Fprintf(&sb, " %s │", ui.Mark(board[row][col]))
		}
		sb.WriteString("\n")
		if row < tictactoe.Size-1 {
			sb.WriteString("   ├───┼───┼───┤\n")
		}
	}
	sb.WriteString("   └───┴───┴───┘")
	ui.printCentered(sb.String())
}

// PrintTicTacToeResult prints the winner of a finished board.
func (ui *UI) PrintTicTacToeResult(board tictactoe.Board) {
	winner := board.Winner()
	if winner == tictactoe.Empty {
		ui.PrintBanner("DRAW")
		return
	}
	ui.PrintBanner(fmt.Sprintf("%s WINS!! Congratulations!", winner))
}

// ReadTicTacToeAction reads the action of the player to move, as "row col".
// It gives the user MaxInputErrors tries, after which it returns ErrTooManyErrors.
func (ui *UI) ReadTicTacToeAction(board tictactoe.Board) (tictactoe.Action, error) {
	for range MaxInputErrors {
		values, err := ui.readInts(fmt.Sprintf("%s action (row col)", ui.Mark(board.NextPlayer())), 2)
		if err != nil {
			if errors.Is(err, errInvalidInput) {
				ui.Printf("    * %v, please try again.\n", err)
				continue
			}
			return tictactoe.Action{}, err
		}
		action := tictactoe.Action{Row: values[0], Col: values[1]}
		if _, err := board.Act(action); err != nil {
			ui.Printf("    * %v, please try again.\n", err)
			continue
		}
		return action, nil
	}
	return tictactoe.Action{}, ErrTooManyErrors
}

// TicTacToeHuman is a players.Player that reads its moves from the UI.
type TicTacToeHuman struct {
	UI *UI
}

// Assert TicTacToeHuman is a players.Player.
var _ players.Player[tictactoe.Board, tictactoe.Action] = (*TicTacToeHuman)(nil)

// Play implements players.Player. It returns false if the input fails (e.g. end of file).
func (h *TicTacToeHuman) Play(board tictactoe.Board) (tictactoe.Action, bool) {
	action, err := h.UI.ReadTicTacToeAction(board)
	if err != nil {
		klog.Errorf("Failed to read move: %v", err)
		return action, false
	}
	return action, true
}

// String implements players.Player.
func (h *TicTacToeHuman) String() string {
	return "Human"
}
