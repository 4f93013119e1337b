// File: adapters/native_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter implementing the api.Native interface, delegating to
//   internal platform primitives for spawning, naming, affinity,
//   priority and forced termination.
//
// Package adapters provides glue code between the core API contracts
// and the internal implementation.

package adapters

import (
	"github.com/momentics/osthread/api"
	"github.com/momentics/osthread/internal/platform"
)

// NativeAdapter implements api.Native using internal platform functions.
// It is stateless; one instance may serve any number of controllers.
type NativeAdapter struct{}

// NewNativeAdapter creates a new NativeAdapter.
func NewNativeAdapter() api.Native {
	return &NativeAdapter{}
}

// Spawn starts fn on a new execution context. The Go runtime multiplexes
// goroutines onto native threads; the controller's entry procedure locks
// itself to one, so fn effectively owns a native thread for its lifetime.
func (a *NativeAdapter) Spawn(fn func()) error {
	go fn()
	return nil
}

// CurrentHandle returns the calling thread's Handle.
func (a *NativeAdapter) CurrentHandle() api.Handle {
	return platform.CurrentHandle()
}

// SetCurrentThreadName sets the calling thread's display name.
func (a *NativeAdapter) SetCurrentThreadName(name string) error {
	return platform.SetCurrentThreadName(name)
}

// BindToProcessor pins the identified thread to a logical processor.
func (a *NativeAdapter) BindToProcessor(h api.Handle, cpu int) error {
	return platform.BindToProcessor(h, cpu)
}

// SetPriority maps the requested level onto the platform priority range.
func (a *NativeAdapter) SetPriority(h api.Handle, level int) error {
	return platform.SetPriority(h, level)
}

// NumProcessors reports hardware concurrency.
func (a *NativeAdapter) NumProcessors() int {
	return platform.NumProcessors()
}

// Terminator exposes the platform's forced-termination capability.
func (a *NativeAdapter) Terminator() api.TerminateCapability {
	return api.TerminateCapability{
		Supported: platform.CanTerminate(),
		Terminate: platform.Terminate,
	}
}
