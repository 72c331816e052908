package spinning

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinning(t *testing.T) {
	var out syncBuffer
	savedOutput, savedTheme, savedInterval := Output, Theme, Interval
	Output, Theme, Interval = &out, ThemeAscii, time.Millisecond
	defer func() { Output, Theme, Interval = savedOutput, savedTheme, savedInterval }()

	s := New(context.Background(), "Training")
	time.Sleep(20 * time.Millisecond)
	elapsed := s.Done()
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	got := out.String()
	assert.Contains(t, got, "Training |")
	assert.Contains(t, got, "Training /")
	assert.Contains(t, got, " done (")

	// Done can be called again.
	s.Done()
	assert.Equal(t, got, out.String())

	// Cancelling the context stops the spinner, Done still reports.
	ctx, cancel := context.WithCancel(context.Background())
	s = New(ctx, "Thinking")
	cancel()
	s.Done()
	assert.Contains(t, out.String(), "Thinking")
}
