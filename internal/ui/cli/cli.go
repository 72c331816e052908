// Package cli implements a command-line UI for the games: it prints boards and piles, and reads
// the moves of human players.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

var (
	// ErrTooManyErrors is returned when the user fails to enter a valid move too many times in a row.
	ErrTooManyErrors = errors.New("failed to read a valid move 3 times")

	errInvalidInput = errors.New("invalid input")
)

// MaxInputErrors is the number of invalid inputs accepted before giving up.
const MaxInputErrors = 3

// UI prints to an output and reads human moves from an input. Create it with New or NewWithIO.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer
	outFd              int
}

// New creates a UI on the standard input and output.
func New(color bool, clearScreen bool) *UI {
	ui := NewWithIO(os.Stdin, os.Stdout, color)
	ui.clearScreen = clearScreen
	ui.outFd = int(os.Stdout.Fd())
	return ui
}

// NewWithIO creates a UI that reads from in and writes to out. Output is not centered.
func NewWithIO(in io.Reader, out io.Writer, color bool) *UI {
	return &UI{
		color:  color,
		reader: bufio.NewReader(in),
		out:    out,
		outFd:  -1,
	}
}

// Printf prints to the UI output.
func (ui *UI) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, format, args...)
}

// Println prints to the UI output.
func (ui *UI) Println(args ...any) {
	_, _ = fmt.Fprintln(ui.out, args...)
}

// ClearScreen if the UI was configured to do so.
func (ui *UI) ClearScreen() {
	if ui.clearScreen {
		ui.Printf("\033c")
	}
}

// render the text with the style, if colors are enabled.
func (ui *UI) render(style lipgloss.Style, text string) string {
	if !ui.color {
		return text
	}
	return style.Render(text)
}

// printCentered prints the block of text centered in the terminal, if the output is a terminal.
func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	terminalWidth := 0
	if ui.outFd >= 0 {
		terminalWidth, _, _ = term.GetSize(ui.outFd)
	}
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			ui.Println()
			continue
		}
		ui.Printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}

var winnerStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("13")).
	Foreground(lipgloss.Color("0")).
	Padding(1, 2)

// PrintBanner prints message centered and highlighted, e.g. the result of a match.
func (ui *UI) PrintBanner(message string) {
	ui.Println()
	ui.printCentered(ui.render(winnerStyle, fmt.Sprintf("*** %s ***", message)))
	ui.Println()
}

// readInts reads one line with exactly n integers separated by spaces or commas.
// It returns io.EOF (or other reading errors) as is, and a parsing error for invalid lines.
func (ui *UI) readInts(prompt string, n int) ([]int, error) {
	// ANSI escape codes for:
	// - \033[30;45;2m: Purplish background
	// - \033[39;49;0m\033[0K: Reset color and clear to the end-of-line.
	const (
		inputAreaColor = "\033[30;45;2m"
		inputAreaReset = "\033[39;49;0m\033[0K"
		inputWidth     = 10
	)
	ui.Printf("    %s > ", prompt)
	if ui.color {
		// Print "input area" in purple, and move the cursor back to the beginning of the input area.
		ui.Printf("%s%s", inputAreaColor, strings.Repeat(" ", inputWidth))
		ui.Printf("\033[%dD", inputWidth-1) // Left 1 char padding.
	}
	text, err := ui.reader.ReadString('\n')
	if ui.color {
		ui.Printf(inputAreaReset) // We don't want the purple color to leak.
	}
	if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
		return nil, err
	}
	if !ui.color && ui.outFd < 0 {
		// Echo the input, so the transcript is readable.
		ui.Println(strings.TrimSpace(text))
	}
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' })
	if len(fields) != n {
		return nil, errors.Wrapf(errInvalidInput, "expected %d numbers, got %q", n, strings.TrimSpace(text))
	}
	values := make([]int, n)
	for ii, field := range fields {
		values[ii], err = strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(errInvalidInput, "failed to parse %q as a number", field)
		}
	}
	return values, nil
}
