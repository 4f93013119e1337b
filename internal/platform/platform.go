// File: internal/platform/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for native thread control. Platform-specific
// implementations are located in separate files guarded by build tags.

package platform

import (
	"runtime"

	"github.com/momentics/osthread/api"
)

// CurrentHandle returns a Handle identifying the calling native thread.
// The caller must be locked to its OS thread for the result to stay valid.
func CurrentHandle() api.Handle {
	return platformCurrentHandle()
}

// SetCurrentThreadName sets the calling thread's display name.
// On unsupported platforms returns api.ErrNotSupported.
func SetCurrentThreadName(name string) error {
	return platformSetCurrentThreadName(name)
}

// BindToProcessor pins the thread identified by h to the given logical
// processor. Invalid indices are rejected, never fatal.
func BindToProcessor(h api.Handle, cpu int) error {
	return platformBindToProcessor(h, cpu)
}

// SetPriority maps level (0..api.PriorityHighest) onto the platform's
// priority range for the thread identified by h.
func SetPriority(h api.Handle, level int) error {
	return platformSetPriority(h, level)
}

// NumProcessors reports hardware concurrency.
func NumProcessors() int {
	return runtime.NumCPU()
}

// CanTerminate reports whether this platform has a forced-termination
// facility for individual threads.
func CanTerminate() bool {
	return platformCanTerminate()
}

// Terminate forcibly terminates the thread identified by h. The target
// thread performs no cleanup of its own; see the kill hazard notes in the
// thread package.
func Terminate(h api.Handle) error {
	return platformTerminate(h)
}

// clampPriority bounds level to the accepted range.
func clampPriority(level int) int {
	if level < api.PriorityLow {
		return api.PriorityLow
	}
	if level > api.PriorityHighest {
		return api.PriorityHighest
	}
	return level
}
