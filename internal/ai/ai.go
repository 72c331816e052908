// Package ai (Artificial Intelligence) defines values shared by the learning AIs.
//
// Concrete learners live in sub-packages (e.g. qlearning).
package ai

// Rewards given to a learner at the end of each transition, from the point of view of the player that acted.
const (
	// WinReward is given to the player that won the match.
	WinReward = 1.0

	// LossReward is given to the player that lost the match.
	LossReward = -1.0

	// NoReward is given to moves that don't finish the match.
	NoReward = 0.0
)
