// File: loop/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Serial run loop: a controller-owned native thread that executes posted
// tasks one at a time, in FIFO order. Useful for code that requires thread
// confinement, e.g. C libraries with thread-local state.

package loop

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/osthread/api"
	"github.com/momentics/osthread/thread"
)

// ErrNilTask is returned by Post for a nil task.
var ErrNilTask = errors.New("loop: nil task")

// Task is a unit of work executed on the loop thread.
type Task func()

// Loop runs posted tasks on one dedicated native thread.
type Loop struct {
	mu      sync.Mutex
	pending *queue.Queue // guarded by mu; queue.Queue is not goroutine-safe
	wake    chan struct{}

	thr *thread.Thread
}

// NewLoop creates a loop around a named thread controller. The loop is idle
// until Start.
func NewLoop(name string, opts ...thread.Option) *Loop {
	l := &Loop{
		pending: queue.New(),
		wake:    make(chan struct{}, 1),
	}
	l.thr = thread.New(name, api.RunFunc(l.run), opts...)
	return l
}

// Start spawns the loop thread.
func (l *Loop) Start() error {
	return l.thr.Start()
}

// Post enqueues a task for execution on the loop thread. Tasks posted from
// any goroutine run in FIFO order. Fails with api.ErrNotRunning before
// Start or after the loop has stopped.
func (l *Loop) Post(fn Task) error {
	if fn == nil {
		return ErrNilTask
	}
	if !l.thr.IsRunning() {
		return api.ErrNotRunning
	}
	l.mu.Lock()
	l.pending.Add(fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of tasks waiting to execute.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending.Length()
}

// Stop requests cooperative shutdown. Tasks already dequeued finish; tasks
// still pending when the loop observes the stop are discarded.
func (l *Loop) Stop() {
	l.thr.Stop()
}

// Wait joins the loop thread after Stop.
func (l *Loop) Wait() error {
	return l.thr.Wait()
}

// Thread exposes the underlying controller for affinity and priority
// control of the loop thread.
func (l *Loop) Thread() *thread.Thread {
	return l.thr
}

// run is the loop's work routine: drain the pending queue, then sleep on
// the wake channel until either new work or cancellation arrives. Returns
// the number of executed tasks as the thread's opaque result.
func (l *Loop) run(ctx context.Context) any {
	var executed uint64
	for {
		for {
			l.mu.Lock()
			if l.pending.Length() == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.pending.Remove().(Task)
			l.mu.Unlock()

			l.safeExecute(fn)
			executed++
		}

		select {
		case <-ctx.Done():
			return executed
		case <-l.wake:
		}
	}
}

func (l *Loop) safeExecute(fn Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("loop: %q: task panic: %v", l.thr.Name(), r)
		}
	}()
	fn()
}
