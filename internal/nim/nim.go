// Package nim implements the rules of Nim as a finite-state machine.
//
// Players alternate removing one or more objects from a single pile. The player that removes the last
// object loses (misère play), so the game transitions from InProgress to Won, with the opponent of the
// last mover as the winner. There are no other transitions.
package nim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Piles holds the number of objects in each pile.
type Piles []int

// DefaultPiles returns a new copy of the default initial piles: [1, 3, 5, 7].
func DefaultPiles() Piles {
	return Piles{1, 3, 5, 7}
}

// StateKey is a hashable representation of Piles.
type StateKey string

// Key returns the hashable representation of the piles.
func (p Piles) Key() StateKey {
	parts := make([]string, len(p))
	for ii, count := range p {
		parts[ii] = strconv.Itoa(count)
	}
	return StateKey(strings.Join(parts, ","))
}

// Clone returns a copy of the piles.
func (p Piles) Clone() Piles {
	return append(Piles(nil), p...)
}

// IsEmpty returns whether all piles are empty.
func (p Piles) IsEmpty() bool {
	for _, count := range p {
		if count > 0 {
			return false
		}
	}
	return true
}

// Validate returns an error if the piles can't be used to start a game: there must be at least one pile,
// no negative counts and at least one object.
func (p Piles) Validate() error {
	if len(p) == 0 {
		return errors.New("nim needs at least one pile")
	}
	for ii, count := range p {
		if count < 0 {
			return errors.Errorf("pile #%d has negative count %d", ii, count)
		}
	}
	if p.IsEmpty() {
		return errors.Errorf("piles %v have no objects", p)
	}
	return nil
}

// CheckAction returns an error wrapping ErrInvalidPile or ErrInvalidCount if the action can't be taken on the piles.
func (p Piles) CheckAction(action Action) error {
	if action.Pile < 0 || action.Pile >= len(p) {
		return errors.Wrapf(ErrInvalidPile, "pile #%d not in [0, %d)", action.Pile, len(p))
	}
	if action.Count < 1 || action.Count > p[action.Pile] {
		return errors.Wrapf(ErrInvalidCount, "can't take %d from pile #%d with %d objects",
			action.Count, action.Pile, p[action.Pile])
	}
	return nil
}

// Action removes Count objects from the pile with index Pile.
type Action struct {
	Pile, Count int
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return fmt.Sprintf("take %d from pile #%d", a.Count, a.Pile)
}

// AvailableActions returns all legal actions on the piles, ordered by ascending pile and then ascending count.
// It is empty if all piles are empty.
func AvailableActions(piles Piles) []Action {
	actions := make([]Action, 0)
	for pile, count := range piles {
		for take := 1; take <= count; take++ {
			actions = append(actions, Action{Pile: pile, Count: take})
		}
	}
	return actions
}

// PlayerNum identifies the players: PlayerFirst moves first.
type PlayerNum int

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond
)

// Opponent returns the other player.
func (p PlayerNum) Opponent() PlayerNum {
	return 1 - p
}

// String implements fmt.Stringer.
func (p PlayerNum) String() string {
	return fmt.Sprintf("Player %d", int(p)+1)
}

// Status of a game.
type Status int

const (
	InProgress Status = iota
	Won
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Won {
		return "Won"
	}
	return "InProgress"
}

var (
	// ErrAlreadyWon is returned when moving in a game that is over.
	ErrAlreadyWon = errors.New("game already won")

	// ErrInvalidPile is returned when the pile index is out of range.
	ErrInvalidPile = errors.New("invalid pile")

	// ErrInvalidCount is returned when the count is not between 1 and the number of objects in the pile.
	ErrInvalidCount = errors.New("invalid object count")
)

// Game holds one match of Nim. It is mutated in place by Move.
type Game struct {
	piles  Piles
	player PlayerNum
	status Status
	winner PlayerNum
}

// New creates a game starting from a copy of the initial piles, with PlayerFirst to move.
// It panics if the piles are not valid, see Piles.Validate.
func New(initial Piles) *Game {
	if err := initial.Validate(); err != nil {
		exceptions.Panicf("nim.New(%v): %v", initial, err)
	}
	return &Game{piles: initial.Clone(), player: PlayerFirst, status: InProgress}
}

// NewDefault creates a game with the default piles.
func NewDefault() *Game {
	return New(DefaultPiles())
}

// Piles returns a copy of the current piles.
func (g *Game) Piles() Piles {
	return g.piles.Clone()
}

// Player returns the player to move. Once the game is won, it is the player that would have moved next.
func (g *Game) Player() PlayerNum {
	return g.player
}

// Status returns the current status of the game.
func (g *Game) Status() Status {
	return g.status
}

// IsFinished returns whether the game is won.
func (g *Game) IsFinished() bool {
	return g.status == Won
}

// Winner returns the winner, and false if the game is still in progress.
func (g *Game) Winner() (PlayerNum, bool) {
	if g.status != Won {
		return 0, false
	}
	return g.winner, true
}

// Move executes the action for the player to move.
//
// It returns an error wrapping ErrAlreadyWon, ErrInvalidPile or ErrInvalidCount if the action can't be taken,
// in which case the game is not changed.
// If the move empties all the piles, the mover loses and the game is won by its opponent.
func (g *Game) Move(action Action) error {
	if g.status == Won {
		return errors.Wrapf(ErrAlreadyWon, "%s can't %s", g.player, action)
	}
	if err := g.piles.CheckAction(action); err != nil {
		return err
	}
	g.piles[action.Pile] -= action.Count
	mover := g.player
	g.player = mover.Opponent()
	if g.piles.IsEmpty() {
		g.status = Won
		g.winner = mover.Opponent()
	}
	return nil
}
