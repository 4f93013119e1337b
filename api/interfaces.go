// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package api

import (
	"context"
)

// Runnable is the work routine executed on a controller-owned native thread.
//
// Run receives a context that is cancelled by Stop and Kill. Routines that
// want cooperative cancellation either select on ctx.Done() or poll the
// controller's StopRequested accessor. The returned value is opaque to the
// controller and is exposed unmodified through ReturnValue.
type Runnable interface {
	Run(ctx context.Context) any
}

// RunFunc adapts a plain function to the Runnable interface.
type RunFunc func(ctx context.Context) any

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) any {
	return f(ctx)
}

// Handle identifies a live native thread to the capability provider.
// The zero Handle identifies no thread.
type Handle struct {
	// TID is the kernel thread id (Linux gettid, Windows thread id).
	TID int
	// Sys carries an additional platform token when one is required,
	// e.g. the pthread_t of the thread on cgo-enabled Linux builds.
	Sys uintptr
}

// IsZero reports whether h identifies no thread.
func (h Handle) IsZero() bool {
	return h.TID == 0 && h.Sys == 0
}

// TerminateCapability describes the platform's forced-termination facility.
//
// Forced termination bypasses all cleanup the target thread would normally
// perform; resources it holds (locks, open handles) may leak or stay locked.
// On platforms without such a facility Supported is false and the controller
// falls back to abandoning the worker.
type TerminateCapability struct {
	Supported bool
	Terminate func(h Handle) error
}

// Native is the platform capability set the thread controller depends on.
// Every operation is best effort: unsupported platforms return
// ErrNotSupported rather than failing fatally.
type Native interface {
	// Spawn starts fn on a new execution context. An error means the
	// platform refused to create one; no partial state is retained.
	Spawn(fn func()) error

	// CurrentHandle returns the Handle of the calling thread.
	// Must be called from a goroutine locked to its OS thread.
	CurrentHandle() Handle

	// SetCurrentThreadName sets the calling thread's display name.
	SetCurrentThreadName(name string) error

	// BindToProcessor pins the thread identified by h to a zero-based
	// logical processor index.
	BindToProcessor(h Handle, cpu int) error

	// SetPriority maps level (0..PriorityHighest) linearly onto the
	// platform's scheduling priority range for the thread's policy.
	SetPriority(h Handle, level int) error

	// NumProcessors reports hardware concurrency.
	NumProcessors() int

	// Terminator exposes the forced-termination capability, if any.
	Terminator() TerminateCapability
}

// Scheduling priority levels accepted by SetPriority.
const (
	PriorityLow    = 0
	PriorityNormal = 1
	PriorityHigh   = 2

	// PriorityHighest is the upper bound of the level range and the
	// denominator of the linear interpolation on POSIX platforms.
	PriorityHighest = PriorityHigh
)
