package searchers

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// NewRandomized adds randomness to the action taken by an existing Searcher.
// Args:
//
//   - game: used to enumerate the actions the scores refer to.
//   - searcher: Baseline Searcher. It must return actionsScores, otherwise no randomness is added.
//   - randomness (>=0): Amount of randomness to use: it is applied as a divisor to the scores
//     returned by the Searcher.
//     The larger the value the more it leads to randomness (exploration), and lower values
//     lead to "pick the best scoring move" (exploitation), with zero meaning no randomness.
//   - rng: random number generator. If nil, one is created with a random seed.
func NewRandomized[S, A any](game Game[S, A], searcher Searcher[S, A], randomness float32, rng *rand.Rand) Searcher[S, A] {
	if randomness <= 0 {
		// Without randomness, simply return the original Searcher.
		return searcher
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &randomizedSearcher[S, A]{game: game, searcher: searcher, randomness: randomness, rng: rng}
}

// randomizedSearcher is a meta Searcher, that introduces randomness to its scorer.
type randomizedSearcher[S, A any] struct {
	game       Game[S, A]
	searcher   Searcher[S, A]
	randomness float32

	muRng sync.Mutex
	rng   *rand.Rand
}

// Assert randomizedSearcher is a Searcher.
var _ Searcher[int, int] = &randomizedSearcher[int, int]{}

// Search implements the Searcher interface.
func (rs *randomizedSearcher[S, A]) Search(state S) (chosenAction A, ok bool, score float32, actionsScores []float32) {
	chosenAction, ok, score, actionsScores = rs.searcher.Search(state)

	// If the searcher doesn't return scores for the different actions, or if there is only one action possible,
	// we don't add any randomness.
	if !ok || len(actionsScores) <= 1 {
		return
	}
	actions := rs.game.Actions(state)
	if len(actionsScores) != len(actions) {
		exceptions.Panicf("randomizedSearcher: Searcher returned %d actionsScores, but state has %d actions!?", len(actionsScores), len(actions))
	}

	// Calculate probability for each action.
	logits := make([]float32, len(actionsScores))
	for ii, score := range actionsScores {
		logits[ii] = score / rs.randomness
	}
	probabilities := softmax(logits)

	// Select from probabilities.
	rs.muRng.Lock()
	chance := rs.rng.Float32()
	rs.muRng.Unlock()
	for actionIdx, value := range probabilities {
		if chance > value && actionIdx < len(probabilities)-1 {
			chance -= value
			continue
		}

		// Found the new action:
		if klog.V(2).Enabled() {
			klog.Infof("randomizedSearcher selection: action=%v, score=%.3f", actions[actionIdx], actionsScores[actionIdx])
		}
		return actions[actionIdx], true, actionsScores[actionIdx], actionsScores
	}
	// It should not reach here.
	exceptions.Panicf("Nothing selected!? remaining chance=%f, probabilities=%v", chance, probabilities)
	return
}

func softmax(values []float32) (probs []float32) {
	probs = make([]float32, len(values))
	var sum float32

	// Subtract maxValue from all values keep the probability the same, but makes for more numerically stable
	// values.
	maxValue := slices.Max(values)
	for ii, value := range values {
		probs[ii] = math32.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
