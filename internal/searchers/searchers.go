// Package searchers defines the interfaces shared by the game engines and the search algorithms that play them.
//
// The concrete algorithms live in sub-packages (e.g. minimax). Any game that implements Game can be searched.
package searchers

// Game is the capability set a turn-based, two-player, zero-sum game must provide to be searched.
//
// S is the state type (it must behave as a value: Act never changes the state passed to it), and A the action type.
type Game[S, A any] interface {
	// Actions returns the legal actions on the given state, in a fixed enumeration order.
	// It returns an empty slice if the state is terminal.
	Actions(state S) []A

	// Act returns the state after the player to move takes action. It returns an error if the action is not legal.
	Act(state S, action A) (S, error)

	// IsFinished returns whether the state is terminal.
	IsFinished(state S) bool

	// Utility of a terminal state from the point of view of the maximizing player:
	// +1 if it won, -1 if it lost and 0 for a draw.
	Utility(state S) int

	// IsMaximizing returns whether the player to move is the maximizing player.
	IsMaximizing(state S) bool
}

// Searcher is the interface that any of the search algorithms
// must adhere to be valid.
type Searcher[S, A any] interface {
	// Search returns the action to take on the given state and its expected score.
	// If the state is terminal (no actions available) ok is false.
	//
	// Scores are given from the point of view of the player to move: higher is better for them.
	// Optionally, it can also return the score for each of the actions available on the state, in the same
	// order as Game.Actions. Searchers that can't provide good approximations return nil.
	Search(state S) (action A, ok bool, score float32, actionsScores []float32)
}
