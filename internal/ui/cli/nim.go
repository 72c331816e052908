package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/players"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var objectStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// PrintNim prints the piles, one per line, with their index and count.
func (ui *UI) PrintNim(piles nim.Piles) {
	var sb strings.Builder
	for ii, count := range piles {
		if ii > 0 {
			sb.WriteString("\n")
		}
		objects := fmt.Sprintf("%-14s", strings.TrimSpace(strings.Repeat("| ", count)))
		fmt.Fprintf(&sb, "Pile %d: %s (%d)", ii, ui.render(objectStyle, objects), count)
	}
	ui.printCentered(sb.String())
}

// PrintNimWinner prints the winner of a finished game. humanPlayer is used to tell whether the human won, if
// it is set to a valid player.
func (ui *UI) PrintNimWinner(winner nim.PlayerNum, humanPlayer nim.PlayerNum, hasHuman bool) {
	switch {
	case !hasHuman:
		ui.PrintBanner(fmt.Sprintf("%s WINS!!", strings.ToUpper(winner.String())))
	case winner == humanPlayer:
		ui.PrintBanner("YOU WIN!! Congratulations!")
	default:
		ui.PrintBanner("AI WINS!!")
	}
}

// ReadNimAction reads an action on the piles, as "pile count".
// It gives the user MaxInputErrors tries, after which it returns ErrTooManyErrors.
func (ui *UI) ReadNimAction(piles nim.Piles) (nim.Action, error) {
	for range MaxInputErrors {
		values, err := ui.readInts("Your move (pile count)", 2)
		if err != nil {
			if errors.Is(err, errInvalidInput) {
				ui.Printf("    * %v, please try again.\n", err)
				continue
			}
			return nim.Action{}, err
		}
		action := nim.Action{Pile: values[0], Count: values[1]}
		if err := piles.CheckAction(action); err != nil {
			ui.Printf("    * %v, please try again.\n", err)
			continue
		}
		return action, nil
	}
	return nim.Action{}, ErrTooManyErrors
}

// NimHuman is a players.Player that reads its moves from the UI.
type NimHuman struct {
	UI *UI
}

// Assert NimHuman is a players.Player.
var _ players.Player[nim.Piles, nim.Action] = (*NimHuman)(nil)

// Play implements players.Player. It returns false if the input fails (e.g. end of file).
func (h *NimHuman) Play(piles nim.Piles) (nim.Action, bool) {
	action, err := h.UI.ReadNimAction(piles)
	if err != nil {
		klog.Errorf("Failed to read move: %v", err)
		return action, false
	}
	return action, true
}

// String implements players.Player.
func (h *NimHuman) String() string {
	return "Human"
}
