// File: thread/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Native thread lifecycle controller: the start/stop/wait/kill state
// machine and the creator/worker handshake.

package thread

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/momentics/osthread/adapters"
	"github.com/momentics/osthread/api"
	"github.com/momentics/osthread/control"
)

// worker is the state of one launch. A fresh worker is allocated per Start
// so that a killed (abandoned) execution context can never mutate the state
// of a later launch.
type worker struct {
	ctx    context.Context
	cancel context.CancelFunc

	// gate is closed by Start once the launch is recorded on the
	// controller; the worker blocks on it before running user code.
	gate chan struct{}
	// started is closed by the worker once it has begun executing.
	started chan struct{}
	// done is closed by the worker when the work routine returned.
	done chan struct{}

	handle api.Handle // valid once started is closed
	regID  uint64

	// detached is set by Kill; a detached worker must not touch the
	// controller, its state belongs to a later launch.
	detached atomic.Bool
}

// Thread owns at most one native thread at a time and drives it through
// the lifecycle Idle -> Launching -> Running -> Finished -> Idle, with Kill
// as a forced exit from Running.
//
// Start, Wait and Kill serialize against each other on the same instance;
// distinct instances are fully independent. IsRunning and StopRequested are
// safe from any goroutine at any time.
type Thread struct {
	nameMu sync.Mutex
	name   string

	runner api.Runnable
	caps   api.Native
	reg    *control.Registry

	running     atomic.Bool
	requestStop atomic.Bool

	stateMu  sync.Mutex // serializes Start, Wait and Kill
	joinable bool
	cur      atomic.Pointer[worker]

	unsafeTerminate bool

	retMu  sync.Mutex
	retval any
}

// New creates a controller for the given work routine. No native thread
// exists until Start.
func New(name string, r api.Runnable, opts ...Option) *Thread {
	t := &Thread{
		name:   name,
		runner: r,
		caps:   adapters.NewNativeAdapter(),
		reg:    control.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Start spawns the native thread and blocks until the worker has begun
// executing. Returns api.ErrAlreadyRunning while a previous launch is still
// running, or a wrapped api.ErrSpawnFailed when the platform refuses to
// create an execution context (no state is retained in that case).
//
// The cooperative-stop flag is reset on every Start, so a killed or stopped
// instance restarts with a clean history.
func (t *Thread) Start() error {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()

	if t.running.Load() {
		return api.ErrAlreadyRunning
	}
	t.requestStop.Store(false)

	ctx, cancel := context.WithCancel(context.Background())
	w := &worker{
		ctx:     ctx,
		cancel:  cancel,
		gate:    make(chan struct{}),
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}

	if err := t.caps.Spawn(func() { t.entry(w) }); err != nil {
		cancel()
		return fmt.Errorf("%w: %v", api.ErrSpawnFailed, err)
	}

	// Record the launch, then open the gate so the worker may proceed
	// past its handshake into user code.
	t.cur.Store(w)
	close(w.gate)

	// By the time Start returns the worker has begun executing.
	<-w.started

	t.joinable = true
	return nil
}

// entry is the procedure executed on the worker thread.
func (t *Thread) entry(w *worker) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w.handle = t.caps.CurrentHandle()

	if err := t.caps.SetCurrentThreadName(t.Name()); err != nil && !errors.Is(err, api.ErrNotSupported) {
		log.Printf("thread: set name %q: %v", t.Name(), err)
	}
	w.regID = t.reg.Register(t.Name(), w.handle.TID)

	t.running.Store(true)
	close(w.started)

	// Wait for the creator to finish recording this launch so that
	// handle-dependent calls observe a fully published worker.
	<-w.gate

	ret := t.safeRun(w.ctx)

	// Kill detaches the worker before it clears the return value, both
	// under retMu; re-checking under the same lock keeps "killed implies
	// nil retval" intact when Kill races a finishing routine.
	t.retMu.Lock()
	detached := w.detached.Load()
	if !detached {
		t.retval = ret
	}
	t.retMu.Unlock()

	if detached {
		// Killed. The controller has moved on; just vanish.
		close(w.done)
		return
	}

	if t.cur.Load() == w {
		t.running.CompareAndSwap(true, false)
	}
	t.reg.Deregister(w.regID)
	close(w.done)
}

// safeRun shields the worker thread from panicking routines; a panic is
// logged and yields a nil return value.
func (t *Thread) safeRun(ctx context.Context) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("thread: %q: work routine panic: %v", t.Name(), r)
			ret = nil
		}
	}()
	return t.runner.Run(ctx)
}

// Stop requests cooperative termination: it sets the stop flag and cancels
// the worker's context, then returns immediately. Nothing is terminated by
// Stop itself; a routine that never observes ctx or StopRequested will keep
// running. Stop is idempotent.
func (t *Thread) Stop() {
	t.requestStop.Store(true)
	if w := t.cur.Load(); w != nil {
		w.cancel()
	}
}

// StopRequested reports whether Stop has been called since the last Start.
// Work routines poll this (or select on their ctx) for cooperative stop.
func (t *Thread) StopRequested() bool {
	return t.requestStop.Load()
}

// Wait joins the native thread: it blocks until the work routine has
// returned, then releases the handle. Returns api.ErrNotJoinable when there
// is no outstanding thread to join.
func (t *Thread) Wait() error {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	return t.waitLocked()
}

func (t *Thread) waitLocked() error {
	if !t.joinable {
		return api.ErrNotJoinable
	}
	w := t.cur.Load()
	<-w.done

	t.joinable = false
	t.cur.Store(nil)
	return nil
}

// Kill forcibly terminates a running worker.
//
// The controller is marked not-running before termination so observers see
// the transition promptly. The worker is detached: its context is
// cancelled, the handle released, the return value cleared, and the
// instance is immediately restartable. A routine that never observes its
// context is abandoned on its locked OS thread.
//
// Controllers built with WithUnsafeTerminate additionally invoke the
// platform's forced-termination facility (pthread_cancel, TerminateThread)
// on the worker's handle where one exists.
//
// Hazard: a terminated or abandoned routine performs no cleanup of its own.
// Locks it held stay held, resources it owned leak, and OS-level
// termination destroys a thread the Go runtime still accounts for. Reserve
// Kill for shutdown paths and prefer Stop.
//
// Killing a non-running instance reclaims any finished-but-unjoined thread
// and reports api.ErrNotRunning.
func (t *Thread) Kill() error {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()

	if !t.running.Load() {
		t.waitLocked() // reclaim a finished thread, if any
		return api.ErrNotRunning
	}

	w := t.cur.Load()
	t.retMu.Lock()
	w.detached.Store(true)
	t.retval = nil
	t.retMu.Unlock()
	t.running.Store(false)
	w.cancel()

	if term := t.caps.Terminator(); t.unsafeTerminate && term.Supported {
		if err := term.Terminate(w.handle); err != nil {
			log.Printf("thread: %q: forced terminate: %v", t.Name(), err)
		}
	} else {
		log.Printf("thread: %q: abandoning worker tid=%d", t.Name(), w.handle.TID)
	}
	t.reg.MarkKilled(w.regID)

	t.joinable = false
	t.requestStop.Store(false)
	t.cur.Store(nil)
	return nil
}

// ReturnValue exposes the work routine's opaque result. It fails with
// api.ErrStillRunning while the routine executes; after Kill the value
// is nil.
func (t *Thread) ReturnValue() (any, error) {
	if t.running.Load() {
		return nil, api.ErrStillRunning
	}
	t.retMu.Lock()
	defer t.retMu.Unlock()
	return t.retval, nil
}

// IsRunning reports whether the work routine is currently executing.
func (t *Thread) IsRunning() bool {
	return t.running.Load()
}

// Name returns the controller's name.
func (t *Thread) Name() string {
	t.nameMu.Lock()
	defer t.nameMu.Unlock()
	return t.name
}

// SetName records a new display name. The OS-level name is applied from
// inside the worker at the next Start; renaming a live thread from outside
// is not portable, so this is best effort with no status reported.
func (t *Thread) SetName(name string) {
	t.nameMu.Lock()
	t.name = name
	t.nameMu.Unlock()
}

// BindToProcessor pins the live worker thread to a zero-based logical
// processor index. Fails with api.ErrNotRunning without a live worker and
// with api.ErrInvalidProcessor for an out-of-range index.
func (t *Thread) BindToProcessor(cpu int) error {
	w := t.cur.Load()
	if w == nil || !t.running.Load() {
		return api.ErrNotRunning
	}
	return t.caps.BindToProcessor(w.handle, cpu)
}

// SetPriority adjusts the live worker thread's scheduling priority.
// level is linearly mapped into the platform's priority range.
func (t *Thread) SetPriority(level int) error {
	w := t.cur.Load()
	if w == nil || !t.running.Load() {
		return api.ErrNotRunning
	}
	return t.caps.SetPriority(w.handle, level)
}

// NumProcessors reports hardware concurrency. Process-wide, no instance
// state involved.
func (t *Thread) NumProcessors() int {
	return t.caps.NumProcessors()
}

// Close tears the controller down: a running worker is killed, a finished
// one reclaimed. Safe to call repeatedly; after Close the instance may
// still be restarted with Start.
func (t *Thread) Close() error {
	if err := t.Kill(); err != nil && !errors.Is(err, api.ErrNotRunning) {
		return err
	}
	return nil
}

// NumProcessors reports hardware concurrency without constructing a
// controller.
func NumProcessors() int {
	return adapters.NewNativeAdapter().NumProcessors()
}
