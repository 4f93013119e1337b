//go:build linux && !cgo
// +build linux,!cgo

// File: internal/platform/terminate_linux_pure.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pure-Go fallback for Linux builds without cgo. No pthread handle is
// available, so forced termination is unsupported and killed workers are
// abandoned by the controller instead.

package platform

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/osthread/api"
)

func platformCurrentHandle() api.Handle {
	return api.Handle{TID: unix.Gettid()}
}

func platformCanTerminate() bool {
	return false
}

func platformTerminate(h api.Handle) error {
	return api.ErrNotSupported
}
