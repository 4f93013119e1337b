//go:build linux && cgo
// +build linux,cgo

// File: internal/platform/terminate_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Forced termination on Linux via pthread_cancel. The pthread_t of the
// target thread is captured into Handle.Sys by CurrentHandle at worker
// entry, while the goroutine is locked to its OS thread.
//
// pthread_cancel terminates the thread without unwinding any Go state on
// it; the caller must treat the worker as lost.

package platform

/*
#include <pthread.h>
*/
import "C"
import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/osthread/api"
)

func platformCurrentHandle() api.Handle {
	return api.Handle{
		TID: unix.Gettid(),
		Sys: uintptr(C.pthread_self()),
	}
}

func platformCanTerminate() bool {
	return true
}

func platformTerminate(h api.Handle) error {
	if h.Sys == 0 {
		return api.ErrNotSupported
	}
	if rc := C.pthread_cancel(C.pthread_t(h.Sys)); rc != 0 {
		return fmt.Errorf("platform: pthread_cancel failed, code %d", int(rc))
	}
	return nil
}
