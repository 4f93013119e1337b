// File: thread/options.go
// Author: momentics <momentics@gmail.com>
//
// Constructor options for the thread controller.

package thread

import (
	"github.com/momentics/osthread/api"
	"github.com/momentics/osthread/control"
)

// Option configures a Thread at construction time.
type Option func(*Thread)

// WithAdapter replaces the platform capability provider. Mainly useful for
// tests that need to fail spawning or fake termination support.
func WithAdapter(caps api.Native) Option {
	return func(t *Thread) {
		if caps != nil {
			t.caps = caps
		}
	}
}

// WithRegistry attaches the controller to a specific registry instead of
// the process-wide default.
func WithRegistry(reg *control.Registry) Option {
	return func(t *Thread) {
		if reg != nil {
			t.reg = reg
		}
	}
}

// WithUnsafeTerminate lets Kill invoke the platform's forced-termination
// facility on the worker's native thread. The terminated thread still
// belongs to the Go runtime; use only for routines designed to be killed,
// e.g. ones running foreign blocking calls.
func WithUnsafeTerminate() Option {
	return func(t *Thread) {
		t.unsafeTerminate = true
	}
}
