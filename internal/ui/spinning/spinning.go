// Package spinning provides a friendly spinning clock (or some other spinning symbols)
// to use while the AI is thinking or training, and graceful handling of Ctrl+C.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// Spinning is a running spinner. Create it with New and stop it with Done.
type Spinning struct {
	wg      sync.WaitGroup
	cancel  func()
	start   time.Time
	message string
	out     io.Writer
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else.
	Theme = ThemeClock

	// Output where the spinner is displayed.
	Output io.Writer = os.Stdout

	// Interval between frames of the spinner.
	Interval = 250 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program haven't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}

		// Wait for gracePeriod before exiting.
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n") // Restore cursor and colors.
}

// New starts a spinning display, after the message, that runs on a separate goroutine.
// It stops when Spinning.Done is called or the context is cancelled.
func New(ctx context.Context, message string) *Spinning {
	s := &Spinning{start: time.Now(), message: message, out: Output}
	ctx, s.cancel = context.WithCancel(ctx)
	theme := Theme
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Interval)
		defer ticker.Stop()
		_, _ = fmt.Fprint(s.out, "\033[?25l")                    // Hide cursor.
		defer func() { _, _ = fmt.Fprint(s.out, "\033[?25h") }() // Restore cursor.

		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(s.out, "\r%s %c ", s.message, theme[idx])
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprintf(s.out, "\r%s\033[0K", s.message)
				return
			case <-ticker.C:
				// continue
			}
		}
	}()
	return s
}

// Done stops the spinner, and prints the time elapsed since it started. It is safe to call it more than once.
func (s *Spinning) Done() time.Duration {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.wg.Wait()
		_, _ = fmt.Fprintf(s.out, " done (%s)\n", time.Since(s.start).Round(time.Millisecond))
	}
	return time.Since(s.start)
}
