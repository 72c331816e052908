// Package tictactoe implements the rules of Tic-Tac-Toe on a 3x3 board.
//
// Board is a value type: Act returns a new board and never changes the one it is called on.
// X always moves first.
package tictactoe

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/classicai/internal/searchers"
	"github.com/janpfeifer/classicai/internal/searchers/minimax"
	"github.com/pkg/errors"
)

// Size of the board in each dimension.
const Size = 3

// Player is the mark on a cell of the board: also used to indicate a player.
type Player uint8

const (
	Empty Player = iota
	X
	O
)

// String implements fmt.Stringer.
func (p Player) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the other player. The opponent of Empty is Empty.
func (p Player) Opponent() Player {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Board holds the marks of a match, indexed by [row][column].
type Board [Size][Size]Player

// Action is the cell where the player to move places its mark.
type Action struct {
	Row, Col int
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return fmt.Sprintf("(%d, %d)", a.Row, a.Col)
}

// ErrInvalidAction is returned when trying to act on an occupied or out-of-range cell, or on a finished board.
var ErrInvalidAction = errors.New("invalid action")

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

// count returns the number of marks of each player.
func (b Board) count() (xs, os int) {
	for _, row := range b {
		for _, cell := range row {
			switch cell {
			case X:
				xs++
			case O:
				os++
			}
		}
	}
	return
}

// NextPlayer returns the player to move: X if both players have the same number of marks, O otherwise.
func (b Board) NextPlayer() Player {
	xs, os := b.count()
	if xs > os {
		return O
	}
	return X
}

// Actions returns the empty cells in row-major order. It is empty if the board is finished.
func (b Board) Actions() []Action {
	if b.IsFinished() {
		return []Action{}
	}
	actions := make([]Action, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if b[row][col] == Empty {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}
	return actions
}

// Act returns a new board with the mark of the player to move placed on the cell of the action.
// It returns an error wrapping ErrInvalidAction if the action is not legal.
func (b Board) Act(action Action) (Board, error) {
	if action.Row < 0 || action.Row >= Size || action.Col < 0 || action.Col >= Size {
		return b, errors.Wrapf(ErrInvalidAction, "cell %s is out of the board", action)
	}
	if b[action.Row][action.Col] != Empty {
		return b, errors.Wrapf(ErrInvalidAction, "cell %s is already taken by %s", action, b[action.Row][action.Col])
	}
	if b.IsFinished() {
		return b, errors.Wrapf(ErrInvalidAction, "cell %s: match is already over", action)
	}
	b[action.Row][action.Col] = b.NextPlayer()
	return b, nil
}

// lines lists the 8 winning lines, in the order they are checked: rows, columns and then the diagonals.
var lines = func() (lines [][Size]Action) {
	for row := range Size {
		lines = append(lines, [Size]Action{{row, 0}, {row, 1}, {row, 2}})
	}
	for col := range Size {
		lines = append(lines, [Size]Action{{0, col}, {1, col}, {2, col}})
	}
	lines = append(lines, [Size]Action{{0, 0}, {1, 1}, {2, 2}})
	lines = append(lines, [Size]Action{{0, 2}, {1, 1}, {2, 0}})
	return
}()

// Winner returns the player with three marks in a line, or Empty if there is none.
func (b Board) Winner() Player {
	for _, line := range lines {
		first := b[line[0].Row][line[0].Col]
		if first != Empty && b[line[1].Row][line[1].Col] == first && b[line[2].Row][line[2].Col] == first {
			return first
		}
	}
	return Empty
}

// IsFinished returns true if there is a winner or the board is full.
func (b Board) IsFinished() bool {
	if b.Winner() != Empty {
		return true
	}
	xs, os := b.count()
	return xs+os == Size*Size
}

// Utility returns +1 if X won, -1 if O won and 0 otherwise.
func (b Board) Utility() int {
	switch b.Winner() {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// String returns one line per row, with "." for the empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range Size {
			sb.WriteString(b[row][col].String())
		}
	}
	return sb.String()
}

// FromRows parses a board given by its rows, e.g. FromRows("X.O", ".X.", "..O").
// Empty cells can be given by ".", "_" or " ". The board must be reachable from the initial state
// as far as the counts of marks go (X has the same number of marks as O, or one more).
func FromRows(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, errors.Errorf("board needs %d rows, got %d", Size, len(rows))
	}
	for row, line := range rows {
		if len(line) != Size {
			return b, errors.Errorf("row %d (%q) must have %d cells", row, line, Size)
		}
		for col, c := range line {
			switch c {
			case 'X', 'x':
				b[row][col] = X
			case 'O', 'o':
				b[row][col] = O
			case '.', '_', ' ':
				b[row][col] = Empty
			default:
				return b, errors.Errorf("row %d (%q) has invalid cell %q", row, line, c)
			}
		}
	}
	xs, os := b.count()
	if xs-os < 0 || xs-os > 1 {
		return b, errors.Errorf("board with %d X's and %d O's is not reachable", xs, os)
	}
	return b, nil
}

// Game implements searchers.Game for Tic-Tac-Toe. X is the maximizing player.
type Game struct{}

// Assert Game is a searchers.Game.
var _ searchers.Game[Board, Action] = Game{}

func (Game) Actions(b Board) []Action             { return b.Actions() }
func (Game) Act(b Board, a Action) (Board, error) { return b.Act(a) }
func (Game) IsFinished(b Board) bool              { return b.IsFinished() }
func (Game) Utility(b Board) int                  { return b.Utility() }
func (Game) IsMaximizing(b Board) bool            { return b.NextPlayer() == X }

// NewSearcher returns the exhaustive minimax searcher for Tic-Tac-Toe.
func NewSearcher() *minimax.Searcher[Board, Action] {
	return minimax.New[Board, Action](Game{})
}

// BestAction returns the optimal action for the player to move. Among equally good actions the first
// in row-major order is returned. It returns false if the board is finished.
func BestAction(b Board) (Action, bool) {
	action, ok, _, _ := NewSearcher().Search(b)
	return action, ok
}
