package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"arcos/internal/console"
)

var errFeedClosed = errors.New("console closed")

// feedGrace bounds the wait for a feeder after its context is cancelled.
// A blocked stdin Read cannot be interrupted.
var feedGrace = 2 * time.Second

// feedGate sits between a feeder and the driver so the surface can be
// released while a feeder goroutine is still alive.
type feedGate struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func (g *feedGate) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, errFeedClosed
	}
	return g.w.Write(p)
}

// Close waits for an in-flight Write and rejects all later ones.
func (g *feedGate) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

// startFeed streams the command output, or stdin when it is not a terminal,
// into w. The channel yields the feeder's result once.
var startFeed = func(ctx context.Context, w io.Writer, cols, rows int, command []string, stdin *os.File) <-chan error {
	done := make(chan error, 1)
	switch {
	case len(command) > 0:
		go func() {
			done <- console.RunCommand(ctx, w, cols, rows, command...)
		}()
	case !term.IsTerminal(int(stdin.Fd())):
		go func() {
			_, err := console.Pump(ctx, w, stdin)
			done <- err
		}()
	default:
		done <- nil
	}
	return done
}

// stopFeed cancels the feeder, waits up to grace for it and then shuts the
// gate so nothing reaches the driver afterwards.
func stopFeed(cancel context.CancelFunc, gate *feedGate, done <-chan error, grace time.Duration) {
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errFeedClosed) {
			log.Printf("Feed stopped: %v", err)
		}
	case <-time.After(grace):
		log.Printf("Feed still running after %v, detaching it", grace)
	}
	gate.Close()
}
