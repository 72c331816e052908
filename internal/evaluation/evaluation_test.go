package evaluation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverageInOrder(t *testing.T) {
	var ma MovingAverage
	updates := ma.Add(0, FirstWins)
	require.Len(t, updates, 1)
	assert.Equal(t, Stats{1, 0, 0}, updates[0])

	updates = ma.Add(1, Draw)
	require.Len(t, updates, 1)
	assert.InDeltaSlice(t, []float32{0.5, 0, 0.5}, updates[0][:], 1e-6)

	// Repeated matches are ignored.
	assert.Empty(t, ma.Add(1, SecondWins))
}

func TestMovingAverageOutOfOrder(t *testing.T) {
	var inOrder, outOfOrder MovingAverage
	results := []Result{FirstWins, SecondWins, SecondWins, Draw, FirstWins}
	var want []Stats
	for ii, r := range results {
		want = append(want, inOrder.Add(ii, r)...)
	}

	var got []Stats
	assert.Empty(t, outOfOrder.Add(2, results[2]))
	assert.Empty(t, outOfOrder.Add(1, results[1]))
	got = append(got, outOfOrder.Add(0, results[0])...)
	assert.Len(t, got, 3)
	got = append(got, outOfOrder.Add(4, results[4])...)
	assert.Len(t, got, 3)
	got = append(got, outOfOrder.Add(3, results[3])...)
	assert.Equal(t, want, got)
	assert.Empty(t, outOfOrder.Flush())

	// Moving averages sum up to 1.
	for _, stats := range got {
		assert.InDelta(t, 1.0, stats[0]+stats[1]+stats[2], 1e-5)
	}
}

func TestMovingAverageFlush(t *testing.T) {
	var ma MovingAverage
	assert.Empty(t, ma.Add(3, SecondWins))
	assert.Empty(t, ma.Add(1, FirstWins))
	updates := ma.Flush()
	require.Len(t, updates, 2)
	assert.Equal(t, Stats{1, 0, 0}, updates[0])
	assert.InDeltaSlice(t, []float32{0.5, 0.5, 0}, updates[1][:], 1e-6)
}

func TestRun(t *testing.T) {
	// AI-1 always wins when it is first, and the match is a draw otherwise.
	var calls atomic.Int32
	summary, err := Run(context.Background(), 10, 3, func(ctx context.Context, matchIdx int, seats [2]int) (Result, error) {
		calls.Add(1)
		assert.Equal(t, matchIdx%2 == 1, seats[0] == 1, "match #%d", matchIdx)
		// Finish out of order.
		time.Sleep(time.Duration(10-matchIdx) * time.Millisecond)
		if seats[0] == 0 {
			return FirstWins, nil
		}
		return Draw, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(10), calls.Load())
	assert.Equal(t, 10, summary.Played)
	assert.Equal(t, [2]int{5, 0}, summary.WinsAs1st)
	assert.Equal(t, [2]int{0, 0}, summary.WinsAs2nd)
	assert.Equal(t, [2]int{0, 5}, summary.Draws)
	assert.Equal(t, 5, summary.Wins(0))
	assert.Equal(t, 5, summary.TotalDraws())
	require.Len(t, summary.Averages, 10)
	last := summary.Averages[9]
	assert.InDelta(t, 0.5, last[FirstWins], 0.1)
	assert.Equal(t, float32(0), last[SecondWins])
	assert.Contains(t, summary.String(), "Played 10 of 10")
}

func TestRunSecondSeatWins(t *testing.T) {
	// Second player always wins: each AI wins when it is the second to move.
	var progressCalls int
	summary, err := New(4).WithParallelism(1).WithProgress(func(s *Summary) { progressCalls++ }).
		Run(context.Background(), func(ctx context.Context, matchIdx int, seats [2]int) (Result, error) {
			return SecondWins, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 4, progressCalls)
	assert.Equal(t, [2]int{2, 2}, summary.WinsAs2nd)
	// Seen from the AIs, wins alternate: AI-2 wins first (AI-1 moved first).
	assert.Equal(t, Stats{0, 1, 0}, summary.Averages[0])
}

func TestRunErrors(t *testing.T) {
	errMatch := errors.New("match failed")
	_, err := Run(context.Background(), 5, 1, func(ctx context.Context, matchIdx int, seats [2]int) (Result, error) {
		if matchIdx == 2 {
			return Draw, errMatch
		}
		return Draw, nil
	})
	assert.True(t, errors.Is(err, errMatch))

	ctx, cancel := context.WithCancel(context.Background())
	summary, err := Run(ctx, 100, 1, func(ctx context.Context, matchIdx int, seats [2]int) (Result, error) {
		if matchIdx == 3 {
			cancel()
		}
		return Draw, nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 3, summary.Played)
}
