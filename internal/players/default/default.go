// Package _default registers the default players that can be included in any
// front-end. Import it for its side effects:
//
//	import _ "github.com/janpfeifer/classicai/internal/players/default"
//
// Tic-Tac-Toe players:
//
//   - "minimax": exhaustive minimax search. Parameters:
//     randomness (float) adds a softmax sampling of the actions' scores divided by this value, 0 (default)
//     plays optimally; seed (int) for the randomness.
//   - "random": picks a random legal action. Parameters: seed (int).
//
// Nim players:
//
//   - "qlearning": Q-learning AI trained by self-play when created. Parameters:
//     episodes (int, default 10000), alpha (float), epsilon (float), piles (e.g. "1;3;5;7") and seed (int).
//   - "random": picks a random legal action. Parameters: seed (int).
package _default

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/janpfeifer/classicai/internal/ai/qlearning"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/janpfeifer/classicai/internal/players"
	"github.com/janpfeifer/classicai/internal/searchers"
	"github.com/janpfeifer/classicai/internal/tictactoe"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

func init() {
	players.TicTacToe.Register("minimax", players.ModuleFunc[tictactoe.Board, tictactoe.Action](newMinimaxPlayer))
	players.TicTacToe.Register("random", players.ModuleFunc[tictactoe.Board, tictactoe.Action](
		func(params parameters.Params) (players.Player[tictactoe.Board, tictactoe.Action], error) {
			return newRandomPlayer(params, tictactoe.Board.Actions)
		}))
	players.Nim.Register("qlearning", players.ModuleFunc[nim.Piles, nim.Action](newQLearningPlayer))
	players.Nim.Register("random", players.ModuleFunc[nim.Piles, nim.Action](
		func(params parameters.Params) (players.Player[nim.Piles, nim.Action], error) {
			return newRandomPlayer(params, nim.AvailableActions)
		}))
}

func newMinimaxPlayer(params parameters.Params) (players.Player[tictactoe.Board, tictactoe.Action], error) {
	randomness, err := parameters.PopParamOr(params, "randomness", float32(0))
	if err != nil {
		return nil, err
	}
	if randomness < 0 {
		return nil, errors.Errorf("randomness=%g must be >= 0", randomness)
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}
	searcher := searchers.NewRandomized[tictactoe.Board, tictactoe.Action](
		tictactoe.Game{}, tictactoe.NewSearcher(), randomness, rng)
	name := "Minimax"
	if randomness > 0 {
		name = fmt.Sprintf("Minimax(randomness=%g)", randomness)
	}
	return players.NewSearcherPlayer(name, searcher), nil
}

func newRandomPlayer[S, A any](params parameters.Params, actions func(S) []A) (players.Player[S, A], error) {
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	return players.NewRandomPlayer(actions, uint64(seed)), nil
}

// QLearningPlayer plays greedily the action with the highest Q-value of its Learner.
// It is safe for concurrent use, as long as the Learner is not trained concurrently.
type QLearningPlayer struct {
	Learner *qlearning.Learner
}

// Assert QLearningPlayer implements players.Player.
var _ players.Player[nim.Piles, nim.Action] = (*QLearningPlayer)(nil)

// Play implements players.Player.
func (p *QLearningPlayer) Play(piles nim.Piles) (nim.Action, bool) {
	return p.Learner.ChooseAction(piles, false)
}

// String implements players.Player.
func (p *QLearningPlayer) String() string {
	return p.Learner.String()
}

func newQLearningPlayer(params parameters.Params) (players.Player[nim.Piles, nim.Action], error) {
	episodes, err := parameters.PopParamOr(params, "episodes", qlearning.DefaultEpisodes)
	if err != nil {
		return nil, err
	}
	if episodes < 0 {
		return nil, errors.Errorf("episodes=%d must be >= 0", episodes)
	}
	learner, err := qlearning.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	learner.Train(episodes)
	klog.V(1).Infof("Trained %s in %s", learner, time.Since(start))
	return &QLearningPlayer{Learner: learner}, nil
}
