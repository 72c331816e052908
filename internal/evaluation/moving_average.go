package evaluation

import (
	"github.com/janpfeifer/classicai/internal/generics"
)

// MaxMovingAverageWeight is the most weight the moving average carries from past results.
const MaxMovingAverageWeight = 0.99

// Stats is a moving average of the frequency of each Result. They sum up to 1.
type Stats [numResults]float32

// combine the result as the count-th result of the sequence.
func (s *Stats) combine(r Result, count int) {
	weight := 1 - 1/float32(count)
	weight = min(weight, MaxMovingAverageWeight)
	for ii := range s {
		s[ii] *= weight
		if Result(ii) == r {
			s[ii] += 1 - weight
		}
	}
}

// MovingAverage of match results that may arrive out of order (matches are played in parallel and end
// asynchronously). It holds on to results until all earlier ones are available, so the averages are always
// reported in match order.
//
// The zero value is ready to use. It is not safe for concurrent use.
type MovingAverage struct {
	next, count int
	stats       Stats
	pending     map[int]Result
}

// Add the result of match matchIdx (starting from 0) and returns the moving averages that became available,
// one per match, in order.
func (ma *MovingAverage) Add(matchIdx int, r Result) (updates []Stats) {
	if matchIdx < ma.next {
		// Repeated match: ignored.
		return nil
	}
	if matchIdx > ma.next {
		if ma.pending == nil {
			ma.pending = make(map[int]Result)
		}
		ma.pending[matchIdx] = r
		return nil
	}
	updates = append(updates, ma.combine(r))

	// Check if next results are already available.
	for {
		r, found := ma.pending[ma.next]
		if !found {
			break
		}
		delete(ma.pending, ma.next)
		updates = append(updates, ma.combine(r))
	}
	return
}

// combine the next result in order, and returns the updated moving average.
func (ma *MovingAverage) combine(r Result) Stats {
	ma.next++
	ma.count++
	ma.stats.combine(r, ma.count)
	return ma.stats
}

// Flush combines the pending results, skipping over the missing matches (e.g. interrupted ones),
// and returns the moving averages for them.
func (ma *MovingAverage) Flush() (updates []Stats) {
	for matchIdx, r := range generics.SortedKeysAndValues(ma.pending) {
		ma.next = matchIdx
		updates = append(updates, ma.combine(r))
	}
	ma.pending = nil
	return
}
