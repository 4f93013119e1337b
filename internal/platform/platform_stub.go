//go:build !linux && !windows
// +build !linux,!windows

// File: internal/platform/platform_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without naming/affinity/priority
// support. Returns api.ErrNotSupported to indicate unavailability;
// NumProcessors still answers through the neutral file.

package platform

import "github.com/momentics/osthread/api"

func platformCurrentHandle() api.Handle {
	return api.Handle{}
}

func platformSetCurrentThreadName(name string) error {
	return api.ErrNotSupported
}

func platformBindToProcessor(h api.Handle, cpu int) error {
	return api.ErrNotSupported
}

func platformSetPriority(h api.Handle, level int) error {
	return api.ErrNotSupported
}

func platformCanTerminate() bool {
	return false
}

func platformTerminate(h api.Handle) error {
	return api.ErrNotSupported
}
