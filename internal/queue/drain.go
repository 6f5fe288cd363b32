package queue

import (
	"context"
	"sync"
	"time"
)

// Drain runs event handlers on a context that survives cancellation of the
// receive loop, so work already taken off a queue can finish on shutdown.
type Drain struct {
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDrain returns a Drain whose handlers keep parent's values but not its
// cancellation.
func NewDrain(parent context.Context) *Drain {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &Drain{ctx: ctx, cancel: cancel}
}

// Go runs fn in its own goroutine with the processing context.
func (d *Drain) Go(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn(d.ctx)
	}()
}

// Wait blocks until every handler has returned or timeout elapses, then
// cancels the processing context. It reports whether all handlers finished.
func (d *Drain) Wait(timeout time.Duration) bool {
	defer d.cancel()
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	if timeout <= 0 {
		d.cancel()
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
