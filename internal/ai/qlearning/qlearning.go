// Package qlearning implements a tabular Q-learning AI for Nim, trained by self-play.
//
// The Q-table maps (state, action) pairs to the expected reward of taking the action on the state, from the point
// of view of the player to move. Unseen pairs are worth 0.
//
// Updates follow the temporal-difference rule:
//
//	Q(s, a) <- Q(s, a) + alpha * (reward + bestFutureReward(s') - Q(s, a))
//
// Notice there is no discount factor, and the future reward is taken as is (not negated), even though s' is a state
// where the opponent moves.
package qlearning

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/classicai/internal/ai"
	"github.com/janpfeifer/classicai/internal/generics"
	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// DefaultAlpha is the default learning rate.
	DefaultAlpha = 0.5

	// DefaultEpsilon is the default exploration rate.
	DefaultEpsilon = 0.1

	// DefaultEpisodes is the number of self-play games used by default to train.
	DefaultEpisodes = 10_000
)

// entry is a key of the Q-table.
type entry struct {
	state  nim.StateKey
	action nim.Action
}

// Learner holds the Q-table and the hyperparameters used to train it.
//
// It is not safe for concurrent mutation (Update, Train or ChooseAction with explore): but once trained,
// concurrent greedy ChooseAction calls are safe.
type Learner struct {
	alpha, epsilon float64
	initialPiles   nim.Piles
	rng            *rand.Rand

	q        map[entry]float64
	episodes int
}

// New returns a Learner with an empty Q-table and default hyperparameters.
// There are other optional configurations, see methods Learner.With...
func New() *Learner {
	return &Learner{
		alpha:        DefaultAlpha,
		epsilon:      DefaultEpsilon,
		initialPiles: nim.DefaultPiles(),
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		q:            make(map[entry]float64),
	}
}

// WithAlpha sets the learning rate. Default is 0.5.
func (l *Learner) WithAlpha(alpha float64) *Learner {
	l.alpha = alpha
	return l
}

// WithEpsilon sets the probability of taking a random action while training. Default is 0.1.
func (l *Learner) WithEpsilon(epsilon float64) *Learner {
	l.epsilon = epsilon
	return l
}

// WithInitialPiles sets the piles each self-play game starts with. Default is nim.DefaultPiles.
func (l *Learner) WithInitialPiles(piles nim.Piles) *Learner {
	l.initialPiles = piles.Clone()
	return l
}

// WithRand sets the random number generator used for exploration, e.g. to make training reproducible.
func (l *Learner) WithRand(rng *rand.Rand) *Learner {
	l.rng = rng
	return l
}

// NewFromParams creates a Learner configured by params. It pops the keys it uses:
//
//   - alpha: learning rate, in (0, 1].
//   - epsilon: exploration rate, in [0, 1].
//   - piles: initial piles for self-play, separated by ";", e.g. "1;3;5;7".
//   - seed: random seed, to make training reproducible. 0 (default) means random.
func NewFromParams(params parameters.Params) (*Learner, error) {
	l := New()
	var err error
	l.alpha, err = parameters.PopParamOr(params, "alpha", DefaultAlpha)
	if err != nil {
		return nil, err
	}
	if l.alpha <= 0 || l.alpha > 1 {
		return nil, errors.Errorf("qlearning: alpha=%g must be in (0, 1]", l.alpha)
	}
	l.epsilon, err = parameters.PopParamOr(params, "epsilon", DefaultEpsilon)
	if err != nil {
		return nil, err
	}
	if l.epsilon < 0 || l.epsilon > 1 {
		return nil, errors.Errorf("qlearning: epsilon=%g must be in [0, 1]", l.epsilon)
	}
	piles, err := parameters.PopIntsOr(params, "piles", nim.DefaultPiles())
	if err != nil {
		return nil, err
	}
	if err = nim.Piles(piles).Validate(); err != nil {
		return nil, errors.WithMessage(err, "qlearning: invalid piles")
	}
	l.initialPiles = piles
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		l.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}
	return l, nil
}

// String implements fmt.Stringer.
func (l *Learner) String() string {
	return fmt.Sprintf("Q-Learning(alpha=%g, epsilon=%g, episodes=%d, entries=%d)", l.alpha, l.epsilon, l.episodes, len(l.q))
}

// InitialPiles returns a copy of the piles the self-play games start with.
func (l *Learner) InitialPiles() nim.Piles {
	return l.initialPiles.Clone()
}

// Len returns the number of entries in the Q-table.
func (l *Learner) Len() int {
	return len(l.q)
}

// Episodes returns the number of self-play games used in training so far.
func (l *Learner) Episodes() int {
	return l.episodes
}

// QValue returns the Q-value of taking action on state, 0 if it was never updated.
func (l *Learner) QValue(state nim.Piles, action nim.Action) float64 {
	return l.q[entry{state: state.Key(), action: action}]
}

// Update the Q-value of taking action on oldState, given it led to newState and the reward.
func (l *Learner) Update(oldState nim.Piles, action nim.Action, newState nim.Piles, reward float64) {
	key := entry{state: oldState.Key(), action: action}
	old := l.q[key]
	l.q[key] = old + l.alpha*(reward+l.BestFutureReward(newState)-old)
}

// BestFutureReward returns the largest Q-value among the available actions on state.
// It is 0 for terminal states and never less than 0 (unseen pairs are worth 0).
func (l *Learner) BestFutureReward(state nim.Piles) float64 {
	key := state.Key()
	var best float64
	for _, action := range nim.AvailableActions(state) {
		best = max(best, l.q[entry{state: key, action: action}])
	}
	return best
}

// ChooseAction returns the action with the highest Q-value on state, taking the first one in the order of
// nim.AvailableActions in case of ties.
//
// If explore is true, with probability epsilon a uniformly random action is returned instead.
// It returns false if there are no available actions.
func (l *Learner) ChooseAction(state nim.Piles, explore bool) (nim.Action, bool) {
	actions := nim.AvailableActions(state)
	if len(actions) == 0 {
		return nim.Action{}, false
	}
	if explore && l.rng.Float64() < l.epsilon {
		return actions[l.rng.IntN(len(actions))], true
	}
	key := state.Key()
	values := generics.SliceMap(actions, func(action nim.Action) float64 {
		return l.q[entry{state: key, action: action}]
	})
	return actions[generics.ArgMax(values)], true
}

// Train plays numEpisodes games of self-play, updating the Q-table after every move.
// It can be called more than once, the table keeps growing.
func (l *Learner) Train(numEpisodes int) {
	_ = l.TrainContext(context.Background(), numEpisodes)
}

// lastMove of a player, pending a reward.
type lastMove struct {
	state  nim.Piles
	action nim.Action
	valid  bool
}

// TrainContext is like Train, but it stops early if ctx is cancelled, returning the context error.
func (l *Learner) TrainContext(ctx context.Context, numEpisodes int) error {
	start := time.Now()
	for episode := range numEpisodes {
		if err := ctx.Err(); err != nil {
			klog.V(1).Infof("Training interrupted after %d episodes", episode)
			return err
		}
		moves := l.playEpisode()
		l.episodes++
		if klog.V(2).Enabled() {
			klog.Infof("Episode #%d: %d moves, %d Q-table entries", l.episodes, moves, len(l.q))
		}
		if klog.V(1).Enabled() && (episode+1)%1000 == 0 {
			klog.Infof("Trained %d/%d episodes (%.0f episodes/s), %d Q-table entries",
				episode+1, numEpisodes, float64(episode+1)/time.Since(start).Seconds(), len(l.q))
		}
	}
	return nil
}

// playEpisode plays one self-play game and returns the number of moves.
//
// Rewards are assigned with a delay of one move: the result of a player's move is only known after the
// opponent replies. A non-final move gives the previous move of the player about to move a 0 reward update,
// valued with the new state. The final move gives
// the mover a loss, and the opponent's last move a win.
func (l *Learner) playEpisode() (moves int) {
	game := nim.New(l.initialPiles)
	var last [2]lastMove
	for {
		state := game.Piles()
		action, ok := l.ChooseAction(state, true)
		if !ok {
			exceptions.Panicf("qlearning: no actions available for in-progress game with piles %v", state)
		}
		mover := game.Player()
		last[mover] = lastMove{state: state, action: action, valid: true}
		if err := game.Move(action); err != nil {
			exceptions.Panicf("qlearning: chose invalid action %s for piles %v: %+v", action, state, err)
		}
		moves++
		newState := game.Piles()

		if game.IsFinished() {
			l.Update(state, action, newState, ai.LossReward)
			if opponentMove := last[mover.Opponent()]; opponentMove.valid {
				l.Update(opponentMove.state, opponentMove.action, newState, ai.WinReward)
			}
			return
		}
		if previous := last[game.Player()]; previous.valid {
			l.Update(previous.state, previous.action, newState, ai.NoReward)
		}
	}
}

// Train creates a Learner with the default hyperparameters and trains it with numEpisodes games of self-play.
func Train(numEpisodes int) *Learner {
	l := New()
	l.Train(numEpisodes)
	return l
}
